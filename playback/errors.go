// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when a Player operation is called out of
	// the open -> negotiate -> prepare -> stream -> drain -> close order.
	ErrInvalidState = errors.New("invalid player state")

	// ErrChunkTooSmall means the transfer buffer cannot hold one frame.
	ErrChunkTooSmall = errors.New("transfer buffer smaller than one frame")

	// ErrPartialFrame means the sample buffer does not end on a frame
	// boundary.
	ErrPartialFrame = errors.New("sample buffer is not a whole number of frames")
)

// Step names one stage of hardware parameter negotiation.
type Step string

const (
	StepAllocate Step = "allocate hw params"
	StepAccess   Step = "set access"
	StepFormat   Step = "set format"
	StepRate     Step = "set rate"
	StepChannels Step = "set channels"
	StepApply    Step = "apply hw params"
)

// NegotiationError reports which negotiation step the device refused.
type NegotiationError struct {
	Step Step
	Err  error
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *NegotiationError) Unwrap() error { return e.Err }
