// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
)

// ErrRejected is the error a MockDevice reports for a rejected parameter.
var ErrRejected = errors.New("Invalid argument")

// Params records the values a MockDevice was configured with.
type Params struct {
	Access   device.Access
	Format   audio.SampleFormat
	Rate     uint
	Channels uint
}

// MockDevice is a scripted device.Device that records every call.
type MockDevice struct {
	DeviceName string

	// Reject maps a negotiation step ("allocate", "access", "format",
	// "rate", "channels", "apply") to the error it should fail with.
	Reject map[string]error

	// ShortWrites maps a write index to the number of frames that write
	// accepts. WriteErrs maps a write index to the error it fails with.
	ShortWrites map[int]int
	WriteErrs   map[int]error

	PrepareErr error
	DrainErr   error
	CloseErr   error

	Calls   []string
	Writes  [][]byte
	Params  Params
	Applied bool
	Freed   int
	Closed  bool

	pending Params
}

// NewMockDevice returns a device that accepts everything.
func NewMockDevice(name string) *MockDevice {
	return &MockDevice{
		DeviceName:  name,
		Reject:      map[string]error{},
		ShortWrites: map[int]int{},
		WriteErrs:   map[int]error{},
	}
}

func (d *MockDevice) Name() string { return d.DeviceName }

func (d *MockDevice) HWParams() (device.HWParams, error) {
	d.Calls = append(d.Calls, "hw_params")
	if err := d.Reject["allocate"]; err != nil {
		return nil, err
	}

	return &mockParams{dev: d}, nil
}

func (d *MockDevice) Prepare() error {
	d.Calls = append(d.Calls, "prepare")
	return d.PrepareErr
}

func (d *MockDevice) Write(buf []byte) (int, error) {
	idx := len(d.Writes)
	d.Calls = append(d.Calls, "write")
	d.Writes = append(d.Writes, append([]byte(nil), buf...))

	if d.Closed {
		return 0, device.ErrClosed
	}

	if err, ok := d.WriteErrs[idx]; ok {
		return 0, err
	}

	if n, ok := d.ShortWrites[idx]; ok {
		return n, nil
	}

	frameSize := int(d.Params.Channels * d.Params.Format.Width())
	if frameSize == 0 {
		return 0, device.ErrNotConfigured
	}

	return len(buf) / frameSize, nil
}

func (d *MockDevice) Drain() error {
	d.Calls = append(d.Calls, "drain")
	return d.DrainErr
}

func (d *MockDevice) Close() error {
	d.Calls = append(d.Calls, "close")
	d.Closed = true
	return d.CloseErr
}

// WriteSizes returns the byte length of every write, in order.
func (d *MockDevice) WriteSizes() []int {
	sizes := make([]int, len(d.Writes))
	for i, w := range d.Writes {
		sizes[i] = len(w)
	}
	return sizes
}

// Count returns how many times call was recorded.
func (d *MockDevice) Count(call string) int {
	n := 0
	for _, c := range d.Calls {
		if c == call {
			n++
		}
	}
	return n
}

type mockParams struct {
	dev *MockDevice
}

func (p *mockParams) step(name string) error {
	p.dev.Calls = append(p.dev.Calls, name)
	return p.dev.Reject[name]
}

func (p *mockParams) SetAccess(access device.Access) error {
	if err := p.step("access"); err != nil {
		return err
	}
	p.dev.pending.Access = access
	return nil
}

func (p *mockParams) SetFormat(format audio.SampleFormat) error {
	if err := p.step("format"); err != nil {
		return err
	}
	p.dev.pending.Format = format
	return nil
}

func (p *mockParams) SetRate(rate uint) error {
	if err := p.step("rate"); err != nil {
		return err
	}
	p.dev.pending.Rate = rate
	return nil
}

func (p *mockParams) SetChannels(channels uint) error {
	if err := p.step("channels"); err != nil {
		return err
	}
	p.dev.pending.Channels = channels
	return nil
}

func (p *mockParams) Apply() error {
	if err := p.step("apply"); err != nil {
		return err
	}
	p.dev.Params = p.dev.pending
	p.dev.Applied = true
	return nil
}

func (p *mockParams) Free() {
	p.dev.Calls = append(p.dev.Calls, "free")
	p.dev.Freed++
}

// MockBackend hands out MockDevices and counts how often it was asked to.
type MockBackend struct {
	BackendName string
	OpenErr     error
	// Configure, when set, is applied to every device before it is returned.
	Configure func(d *MockDevice)

	Opened []*MockDevice
}

func NewMockBackend(name string) *MockBackend {
	return &MockBackend{BackendName: name}
}

func (b *MockBackend) Name() string { return b.BackendName }

func (b *MockBackend) Open(name string) (device.Device, error) {
	if b.OpenErr != nil {
		return nil, fmt.Errorf("open %s: %w", name, b.OpenErr)
	}

	d := NewMockDevice(name)
	if b.Configure != nil {
		b.Configure(d)
	}
	b.Opened = append(b.Opened, d)

	return d, nil
}

// Last returns the most recently opened device, or nil.
func (b *MockBackend) Last() *MockDevice {
	if len(b.Opened) == 0 {
		return nil
	}
	return b.Opened[len(b.Opened)-1]
}
