// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var ErrEncode = errors.New("wav encode")
