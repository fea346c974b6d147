// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/sfsynth/utils"
)

// denormal is the magnitude below which the low-pass state is flushed to
// zero, so a decaying tail settles on exact silence.
const denormal = 1e-30

// Resampler converts a Source to another sample rate with Catmull-Rom
// interpolation. It keeps the channel count. When downsampling, incoming
// frames pass through a one-pole low-pass filter first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// history holds the source frames around the read position:
	// [0]=n-1, [1]=n, [2]=n+1, [3]=n+2. real marks frames that came from
	// the source rather than edge padding.
	history [4][]float32
	real    [4]bool
	pos     float64
	primed  bool
	done    bool

	in       []float32
	inPos    int
	inLen    int
	srcEOF   bool
	lowpass  []float32
	alpha    float32
	useAlpha bool
	seeded   bool
}

// NewResampler returns a Resampler producing dstRate Hz from src.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d Hz -> %d Hz", ErrInvalidRate, src.SampleRate(), dstRate)
	}

	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, 1024*channels),
		lowpass:  make([]float32, channels),
		useAlpha: step > 1,
		alpha:    float32(1 / step),
	}

	for i := range r.history {
		r.history[i] = make([]float32, channels)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels

		if err == io.EOF {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.useAlpha {
		if !r.seeded {
			// Start the filter settled on the first frame.
			copy(r.lowpass, dst)
			r.seeded = true
		}

		for c := range dst {
			v := r.lowpass[c] + r.alpha*(dst[c]-r.lowpass[c])
			if v > -denormal && v < denormal {
				v = 0
			}
			r.lowpass[c] = v
			dst[c] = v
		}
	}

	return true, nil
}

// fill loads history[i] from the source or pads it with history[i-1].
func (r *Resampler) fill(i int) error {
	ok, err := r.nextFrame(r.history[i])
	if err != nil {
		return err
	}

	if !ok {
		copy(r.history[i], r.history[i-1])
	}

	r.real[i] = ok

	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.nextFrame(r.history[1])
	if err != nil {
		return err
	}

	if !ok {
		r.done = true
		return nil
	}

	copy(r.history[0], r.history[1])
	r.real[1] = true

	if err := r.fill(2); err != nil {
		return err
	}

	return r.fill(3)
}

func (r *Resampler) advance() error {
	first := r.history[0]
	copy(r.history[:], r.history[1:])
	r.history[3] = first
	copy(r.real[:], r.real[1:])

	if !r.real[1] {
		r.done = true
		return nil
	}

	return r.fill(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames && !r.done {
		for r.pos >= 1 && !r.done {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if r.done {
			break
		}

		t := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.history[0][c], r.history[1][c], r.history[2][c], r.history[3][c], t)
		}

		written++
		r.pos += r.step
	}

	if r.done {
		return written * r.channels, io.EOF
	}

	return written * r.channels, nil
}
