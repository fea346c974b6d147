// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/sfsynth/audio"
)

const (
	formatPCM       = 1
	defaultBitDepth = 16
)

// Encoder writes a Source as a PCM WAV file.
type Encoder struct {
	// BitDepth is 16 or 24. Zero means 16.
	BitDepth int
}

var _ audio.Encoder = Encoder{}

// Encode drains src into w. The RIFF sizes are patched on completion, which
// is why w must be seekable; wrap non-seekable writers with
// audio.WriteSeekBuffer. src is not closed.
func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	depth := e.BitDepth
	if depth == 0 {
		depth = defaultBitDepth
	}

	enc := wav.NewEncoder(w, src.SampleRate(), depth, src.Channels(), formatPCM)

	frames, err := audio.WriteInts(src, depth, func(buf *goaudio.IntBuffer) error {
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if frames == 0 {
		// go-audio only emits the header with the first block.
		if err := enc.Write(&goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: src.Channels(), SampleRate: src.SampleRate()},
		}); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return nil
}
