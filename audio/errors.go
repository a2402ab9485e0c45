// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrOpenFile indicates the input could not be opened or read.
	ErrOpenFile = errors.New("cannot open audio file")

	// ErrUnknownFormat indicates no loader is registered for the input.
	ErrUnknownFormat = errors.New("unknown audio container format")

	// ErrMalformedHeader indicates the container header could not be parsed.
	ErrMalformedHeader = errors.New("malformed audio header")

	// ErrUnsupportedEncoding indicates a non-PCM sample encoding.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")

	ErrUnknownSampleFormat = errors.New("unknown sample format")
	ErrZeroFrameSize       = errors.New("frame size must be greater than zero")
	ErrZeroSampleRate      = errors.New("sample rate must be greater than zero")
)
