// SPDX-License-Identifier: EPL-2.0

package oto

import "errors"

// ErrContextInUse is returned by Apply when the process already has an oto
// context running with a different configuration.
var ErrContextInUse = errors.New("oto: context already running with another configuration")
