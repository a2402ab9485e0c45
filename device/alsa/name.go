// SPDX-License-Identifier: EPL-2.0

package alsa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ik5/wavplay/device"
)

// DefaultName is the device used when none is configured.
const DefaultName = "default"

// ParseName splits "hw:CARD,DEVICE" into its numbers. "default" is card 0,
// device 0.
func ParseName(name string) (card, dev uint, err error) {
	if name == DefaultName {
		return 0, 0, nil
	}

	rest, ok := strings.CutPrefix(name, "hw:")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q: want %q or hw:CARD,DEVICE", device.ErrInvalidName, name, DefaultName)
	}

	cardStr, devStr, ok := strings.Cut(rest, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q: missing device number", device.ErrInvalidName, name)
	}

	c, err := strconv.ParseUint(cardStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: card: %w", device.ErrInvalidName, name, err)
	}

	d, err := strconv.ParseUint(devStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: device: %w", device.ErrInvalidName, name, err)
	}

	return uint(c), uint(d), nil
}
