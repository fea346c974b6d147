// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/sfsynth/synth"
)

const bytesPerSample = 4

// PCMReader renders blocks on demand and serves them as float32
// little-endian bytes, the layout oto.FormatFloat32LE expects. Read is called
// from the audio driver's goroutine, which therefore owns the renderer.
type PCMReader struct {
	r        synth.BlockRenderer
	output   synth.OutputConfig
	channels int
	block    []float32
	pending  []byte
	raw      []byte
}

// NewPCMReader renders blockFrames frames per refill.
func NewPCMReader(r synth.BlockRenderer, blockFrames int) (*PCMReader, error) {
	cfg, ok := r.Output()
	if !ok {
		return nil, synth.ErrNotConfigured
	}

	if cfg.Mode == synth.StereoUnweaved {
		return nil, fmt.Errorf("%w: playback needs an interleaved layout, got %s", synth.ErrInvalidParameter, cfg.Mode)
	}

	if blockFrames <= 0 {
		return nil, fmt.Errorf("%w: block of %d frames", synth.ErrInvalidParameter, blockFrames)
	}

	channels := cfg.Mode.Channels()

	return &PCMReader{
		r:        r,
		output:   cfg,
		channels: channels,
		block:    make([]float32, blockFrames*channels),
		raw:      make([]byte, blockFrames*channels*bytesPerSample),
	}, nil
}

// Read never returns io.EOF; the synthesizer renders silence when idle. It
// fails with synth.ErrInvalidParameter once the output layout or sample rate
// differs from the one the reader was built for.
func (p *PCMReader) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		if _, err := p.r.RenderInto(p.block); err != nil {
			return 0, err
		}

		if err := p.checkOutput(); err != nil {
			return 0, err
		}

		for i, v := range p.block {
			binary.LittleEndian.PutUint32(p.raw[i*bytesPerSample:], math.Float32bits(v))
		}
		p.pending = p.raw
	}

	n := copy(b, p.pending)
	p.pending = p.pending[n:]

	return n, nil
}

func (p *PCMReader) checkOutput() error {
	cfg, _ := p.r.Output()
	if cfg.Mode != p.output.Mode || cfg.SampleRate != p.output.SampleRate {
		return fmt.Errorf("%w: output changed from %s at %d Hz to %s at %d Hz",
			synth.ErrInvalidParameter, p.output.Mode, p.output.SampleRate, cfg.Mode, cfg.SampleRate)
	}

	return nil
}

// Channels returns the number of interleaved channels in the byte stream.
func (p *PCMReader) Channels() int {
	return p.channels
}
