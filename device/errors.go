// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrUnsupportedAccess   = errors.New("access mode not supported")
	ErrUnsupportedFormat   = errors.New("sample format not supported")
	ErrUnsupportedRate     = errors.New("sample rate not supported")
	ErrUnsupportedChannels = errors.New("channel count not supported")

	// ErrNotConfigured is returned when the stream is used before its
	// hardware parameters were applied.
	ErrNotConfigured = errors.New("device parameters not applied")

	// ErrClosed is returned by any operation on a closed device.
	ErrClosed = errors.New("device closed")

	// ErrUnderrun reports that the device ran out of data.
	ErrUnderrun = errors.New("buffer underrun")

	ErrUnknownBackend = errors.New("unknown output backend")
	ErrInvalidName    = errors.New("invalid device name")
)
