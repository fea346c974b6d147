// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sfsynth/utils"
)

// WriteInts drains src block by block, converts every sample to signed PCM
// of bitDepth bits and passes the block to write. It returns the number of
// frames written. The buffer handed to write is reused between calls.
func WriteInts(src Source, bitDepth int, write func(*goaudio.IntBuffer) error) (int, error) {
	if bitDepth != 16 && bitDepth != 24 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	if channels <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	size := max(src.BufSize()/channels, 1) * channels
	samples := make([]float32, size)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  src.SampleRate(),
		},
		Data:           make([]int, size),
		SourceBitDepth: bitDepth,
	}

	frames := 0
	for {
		n, err := src.ReadSamples(samples)
		if err != nil && !errors.Is(err, io.EOF) {
			return frames, fmt.Errorf("%w", err)
		}

		n -= n % channels
		if n > 0 {
			buf.Data = buf.Data[:n]
			for i, v := range samples[:n] {
				buf.Data[i] = utils.Float32ToPCM(v, bitDepth)
			}

			if werr := write(buf); werr != nil {
				return frames, werr
			}

			frames += n / channels
		}

		if err != nil {
			return frames, nil
		}
	}
}
