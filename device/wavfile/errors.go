// SPDX-License-Identifier: EPL-2.0

package wavfile

import "errors"

// ErrNoPath is returned by Open for an empty device name.
var ErrNoPath = errors.New("wavfile: output path is empty")
