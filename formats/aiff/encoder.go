// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sfsynth/audio"
)

const defaultBitDepth = 16

// Encoder writes a Source as an uncompressed AIFF file.
type Encoder struct {
	// BitDepth is 16 or 24. Zero means 16.
	BitDepth int
}

var _ audio.Encoder = Encoder{}

// Encode drains src into w and patches the FORM and SSND sizes once the
// length is known. src is not closed.
func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	depth := e.BitDepth
	if depth == 0 {
		depth = defaultBitDepth
	}

	enc := aiff.NewEncoder(w, src.SampleRate(), depth, src.Channels())

	_, err := audio.WriteInts(src, depth, func(buf *goaudio.IntBuffer) error {
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	return nil
}
