// SPDX-License-Identifier: EPL-2.0

package sequencer

import "errors"

var ErrParse = errors.New("midi parse")
