// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var ErrEncode = errors.New("aiff encode")
