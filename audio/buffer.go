// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("negative seek offset")

// WriteSeekBuffer is an in-memory io.WriteSeeker for encoders whose
// destination cannot seek (pipes, sockets, HTTP bodies). Encode into it,
// then copy Bytes to the real writer.
type WriteSeekBuffer struct {
	data   []byte
	offset int64
}

func (b *WriteSeekBuffer) Write(p []byte) (int, error) {
	end := b.offset + int64(len(p))
	if end > int64(len(b.data)) {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, max(end, 2*int64(cap(b.data))))
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
		}
	}

	copy(b.data[b.offset:], p)
	b.offset = end

	return len(p), nil
}

func (b *WriteSeekBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.offset + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if next < 0 {
		return 0, errNegativeOffset
	}

	b.offset = next

	return next, nil
}

// Bytes returns the written data. The slice aliases the buffer.
func (b *WriteSeekBuffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes written.
func (b *WriteSeekBuffer) Len() int {
	return len(b.data)
}
