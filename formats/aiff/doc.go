// SPDX-License-Identifier: EPL-2.0

// Package aiff encodes audio.Source streams as uncompressed AIFF files using
// github.com/go-audio/aiff. Like the wav encoder it needs an io.WriteSeeker
// to patch chunk sizes after the last block.
package aiff
