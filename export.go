// SPDX-License-Identifier: EPL-2.0

package sfsynth

import (
	"fmt"
	"io"

	"github.com/ik5/sfsynth/audio"
	"github.com/ik5/sfsynth/formats/aiff"
	"github.com/ik5/sfsynth/formats/wav"
	"github.com/ik5/sfsynth/utils"
)

// DefaultRegistry returns a registry holding the bundled encoders under
// "wav" and "aiff" (also "aif"), writing bitDepth bit samples.
func DefaultRegistry(bitDepth int) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Encoder{BitDepth: bitDepth})
	reg.Register("aiff", aiff.Encoder{BitDepth: bitDepth})
	reg.Register("aif", aiff.Encoder{BitDepth: bitDepth})

	return reg
}

// Export encodes src into w, resampling to targetRate first when it is
// positive and differs from the source rate.
//
// Encoders patch their headers after the last sample, so a w that does not
// implement io.WriteSeeker is fed from an in-memory copy of the whole file.
func Export(w io.Writer, enc audio.Encoder, src audio.Source, targetRate int) error {
	pipeline, err := resampled(src, targetRate)
	if err != nil {
		return err
	}

	if ws, ok := w.(io.WriteSeeker); ok {
		return enc.Encode(ws, pipeline)
	}

	var buf audio.WriteSeekBuffer
	if err := enc.Encode(&buf, pipeline); err != nil {
		return err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ResampleToPCM16 resamples src to targetRate and collects every sample as
// interleaved 16-bit PCM, keeping the channel count. It returns the samples
// and the output rate.
//
// Example:
//
//	stream, _ := synth.NewStream(s, 48000)
//	pcm16, rate, err := sfsynth.ResampleToPCM16(stream, 8000, 4096)
//	// pcm16 holds one second at 8 kHz
func ResampleToPCM16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	pipeline, err := resampled(src, targetRate)
	if err != nil {
		return nil, 0, err
	}

	channels := pipeline.Channels()
	bufferSize = max(bufferSize/channels, 1) * channels

	pcm16 := make([]int16, 0, pipeline.SampleRate()*channels)
	buf := make([]float32, bufferSize)

	for {
		n, err := pipeline.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(v))
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, pipeline.SampleRate(), fmt.Errorf("%w", err)
		}
	}

	return pcm16, pipeline.SampleRate(), nil
}

func resampled(src audio.Source, targetRate int) (audio.Source, error) {
	if targetRate <= 0 || targetRate == src.SampleRate() {
		return src, nil
	}

	return audio.NewResampler(src, targetRate)
}
