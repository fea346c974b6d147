// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds audio.Source fakes and helpers shared by tests.
package audiotest

import (
	"io"
	"math"
)

// Source generates frames from a waveform function. It satisfies
// audio.Source without importing it.
type Source struct {
	Rate     int
	Chans    int
	Frames   int
	Waveform func(frame, channel int) float32

	read int
}

// Silence returns a source of frames zero-valued frames.
func Silence(rate, channels, frames int) *Source {
	return Constant(rate, channels, frames, 0)
}

// Constant returns a source repeating value on every channel.
func Constant(rate, channels, frames int, value float32) *Source {
	return &Source{
		Rate:     rate,
		Chans:    channels,
		Frames:   frames,
		Waveform: func(int, int) float32 { return value },
	}
}

// Sine returns a full-scale sine at freq Hz on every channel.
func Sine(rate, channels, frames int, freq float64) *Source {
	return &Source{
		Rate:   rate,
		Chans:  channels,
		Frames: frames,
		Waveform: func(frame, _ int) float32 {
			return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
		},
	}
}

func (s *Source) SampleRate() int { return s.Rate }
func (s *Source) Channels() int   { return s.Chans }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Reset rewinds the source to its first frame.
func (s *Source) Reset() {
	s.read = 0
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.read >= s.Frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/s.Chans, s.Frames-s.read)
	for f := range frames {
		for c := range s.Chans {
			dst[f*s.Chans+c] = s.Waveform(s.read+f, c)
		}
	}

	s.read += frames
	if s.read >= s.Frames {
		return frames * s.Chans, io.EOF
	}

	return frames * s.Chans, nil
}

// Reader is the part of audio.Source ReadAll needs.
type Reader interface {
	ReadSamples(dst []float32) (int, error)
}

// ReadAll drains r in chunks of size samples.
func ReadAll(r Reader, size int) ([]float32, error) {
	var out []float32

	buf := make([]float32, size)
	for {
		n, err := r.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}

		if err != nil {
			return out, err
		}
	}
}
