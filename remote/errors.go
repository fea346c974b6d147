// SPDX-License-Identifier: EPL-2.0

package remote

import "errors"

var (
	ErrDecode       = errors.New("decode event")
	ErrUnknownEvent = errors.New("unknown event type")
	ErrConnect      = errors.New("nats connect")
)
