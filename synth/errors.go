// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad indicates the SoundFont data or file could not be opened or parsed.
	ErrLoad = errors.New("unable to load soundfont")

	// ErrInvalidPath indicates a path that can never name a file (embedded NUL byte).
	ErrInvalidPath = errors.New("invalid soundfont path")

	// ErrInvalidParameter indicates a value outside its documented domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrPrecondition indicates an operation was called out of sequence.
	ErrPrecondition = errors.New("precondition violated")

	// ErrNotConfigured is returned by the render calls before Configure succeeded.
	ErrNotConfigured = fmt.Errorf("%w: output not configured", ErrPrecondition)

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("synthesizer is closed")

	// ErrQueueFull is returned by Renderer.Send when the command queue has no room.
	ErrQueueFull = errors.New("command queue is full")
)
