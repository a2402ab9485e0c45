// SPDX-License-Identifier: EPL-2.0

package alsa

import (
	"fmt"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
)

// Caps is a snapshot of what a PCM device accepts.
type Caps struct {
	Access  map[device.Access]bool
	Formats map[audio.SampleFormat]bool

	MinRate, MaxRate         uint
	MinChannels, MaxChannels uint
}

func (c Caps) checkAccess(a device.Access) error {
	if !c.Access[a] {
		return fmt.Errorf("%w: %s", device.ErrUnsupportedAccess, a)
	}
	return nil
}

func (c Caps) checkFormat(f audio.SampleFormat) error {
	if !c.Formats[f] {
		return fmt.Errorf("%w: %s", device.ErrUnsupportedFormat, f)
	}
	return nil
}

func (c Caps) checkRate(rate uint) error {
	if rate < c.MinRate || rate > c.MaxRate {
		return fmt.Errorf("%w: %d Hz, device takes %d-%d Hz",
			device.ErrUnsupportedRate, rate, c.MinRate, c.MaxRate)
	}
	return nil
}

func (c Caps) checkChannels(channels uint) error {
	if channels < c.MinChannels || channels > c.MaxChannels {
		return fmt.Errorf("%w: %d, device takes %d-%d",
			device.ErrUnsupportedChannels, channels, c.MinChannels, c.MaxChannels)
	}
	return nil
}
