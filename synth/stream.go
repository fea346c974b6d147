// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"fmt"
	"io"

	"github.com/ik5/sfsynth/audio"
)

// BlockRenderer is implemented by Synthesizer and Renderer.
type BlockRenderer interface {
	RenderInto(dst []float32) (int, error)
	Output() (OutputConfig, bool)
}

// Stream exposes a configured synthesizer as an interleaved audio.Source so
// it can feed the resampler and the file encoders. Unweaved output is not
// interleaved and is rejected. The output must keep the layout and rate the
// stream was built with; ReadSamples fails with ErrInvalidParameter once it
// changes.
type Stream struct {
	r          BlockRenderer
	sampleRate int
	channels   int
	remaining  int
	bounded    bool
}

var _ audio.Source = (*Stream)(nil)

// NewStream reads frames sample frames from r before returning io.EOF.
// frames == 0 streams until the caller stops reading.
func NewStream(r BlockRenderer, frames int) (*Stream, error) {
	cfg, ok := r.Output()
	if !ok {
		return nil, ErrNotConfigured
	}

	if cfg.Mode == StereoUnweaved {
		return nil, fmt.Errorf("%w: streams need an interleaved layout, got %s", ErrInvalidParameter, cfg.Mode)
	}

	if frames < 0 {
		return nil, fmt.Errorf("%w: frame count %d", ErrInvalidParameter, frames)
	}

	return &Stream{
		r:          r,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Mode.Channels(),
		remaining:  frames,
		bounded:    frames > 0,
	}, nil
}

func (s *Stream) SampleRate() int { return s.sampleRate }
func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) BufSize() int    { return 4096 }

// Close does not close the underlying synthesizer.
func (s *Stream) Close() error { return nil }

func (s *Stream) checkOutput() error {
	cfg, _ := s.r.Output()
	if cfg.Mode.Channels() != s.channels || cfg.Mode == StereoUnweaved || cfg.SampleRate != s.sampleRate {
		return fmt.Errorf("%w: output changed to %s at %d Hz under a %d channel %d Hz stream",
			ErrInvalidParameter, cfg.Mode, cfg.SampleRate, s.channels, s.sampleRate)
	}

	return nil
}

func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if s.bounded && s.remaining == 0 {
		return 0, io.EOF
	}

	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	frames := len(dst) / s.channels
	if s.bounded {
		frames = min(frames, s.remaining)
	}

	if err := s.checkOutput(); err != nil {
		return 0, err
	}

	n, err := s.r.RenderInto(dst[:frames*s.channels])
	if err != nil {
		return 0, err
	}

	// A Renderer applies queued commands inside RenderInto.
	if err := s.checkOutput(); err != nil {
		return 0, err
	}

	if !s.bounded {
		return n * s.channels, nil
	}

	s.remaining -= n
	if s.remaining == 0 {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}
