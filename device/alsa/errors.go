// SPDX-License-Identifier: EPL-2.0

package alsa

import "errors"

// ErrUnsupportedPlatform is returned by Open outside Linux.
var ErrUnsupportedPlatform = errors.New("alsa: only available on linux")
