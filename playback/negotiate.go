// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
)

// Negotiate configures dev for interleaved frames of desc in the given sample
// format. The steps run in a fixed order and the first refusal aborts the
// negotiation with a *NegotiationError; nothing is retried. The parameter
// space is released on every path.
func Negotiate(dev device.Device, desc audio.FormatDescriptor, format audio.SampleFormat) error {
	hw, err := dev.HWParams()
	if err != nil {
		return &NegotiationError{Step: StepAllocate, Err: err}
	}
	defer hw.Free()

	steps := []struct {
		step Step
		run  func() error
	}{
		{StepAccess, func() error { return hw.SetAccess(device.AccessRWInterleaved) }},
		{StepFormat, func() error {
			if format.Width() != desc.BytesPerSample {
				return fmt.Errorf("%w: %s cannot carry %d-byte samples",
					device.ErrUnsupportedFormat, format, desc.BytesPerSample)
			}
			return hw.SetFormat(format)
		}},
		{StepRate, func() error { return hw.SetRate(desc.SampleRate) }},
		{StepChannels, func() error { return hw.SetChannels(desc.Channels) }},
		{StepApply, hw.Apply},
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			return &NegotiationError{Step: s.step, Err: err}
		}
	}

	return nil
}
