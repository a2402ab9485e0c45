// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrOpenFile, "cannot open audio file"},
		{ErrUnknownFormat, "unknown audio container format"},
		{ErrMalformedHeader, "malformed audio header"},
		{ErrUnsupportedEncoding, "unsupported sample encoding"},
		{ErrUnknownSampleFormat, "unknown sample format"},
		{ErrZeroFrameSize, "frame size must be greater than zero"},
		{ErrZeroSampleRate, "sample rate must be greater than zero"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestErrors_Wrapped(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("load noise.wav: %w", ErrUnsupportedEncoding)
	if !errors.Is(wrapped, ErrUnsupportedEncoding) {
		t.Error("errors.Is() failed to match wrapped ErrUnsupportedEncoding")
	}

	if errors.Is(wrapped, ErrMalformedHeader) {
		t.Error("errors.Is() matched an unrelated sentinel")
	}
}
