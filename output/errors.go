// SPDX-License-Identifier: EPL-2.0

package output

import "errors"

var ErrDevice = errors.New("audio device")
