// SPDX-License-Identifier: EPL-2.0

//go:build !linux

package alsa

import (
	"fmt"

	"github.com/pion/logging"

	"github.com/ik5/wavplay/device"
)

const BackendName = "alsa"

type Options struct {
	PeriodSize    uint32
	PeriodCount   uint32
	LoggerFactory logging.LoggerFactory
}

type Backend struct{}

func New(Options) *Backend { return &Backend{} }

func (*Backend) Name() string { return BackendName }

func (*Backend) Open(name string) (device.Device, error) {
	return nil, fmt.Errorf("open %s: %w", name, ErrUnsupportedPlatform)
}
