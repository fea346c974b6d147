// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is a stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the number of
	// float32 values written (not frames). n == 0 with io.EOF ends the stream.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Encoder drains a Source into a seekable output, writing the container
// header once the length is known.
type Encoder interface {
	Encode(w io.WriteSeeker, src Source) error
}

// Registry maps output format keys (usually file extensions such as "wav"
// or "aiff") to encoders.
type Registry struct {
	encoders map[string]Encoder

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]Encoder),
		mtx:      &sync.RWMutex{},
	}
}

func (r *Registry) Register(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.encoders[format] = e
}

func (r *Registry) Get(format string) (Encoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	e, ok := r.encoders[format]
	return e, ok
}

// Formats returns the registered format keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	formats := make([]string, 0, len(r.encoders))
	for f := range r.encoders {
		formats = append(formats, f)
	}

	return formats
}
