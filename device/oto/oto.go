// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pion/logging"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
	"github.com/ik5/wavplay/internal/logutil"
)

// BackendName is the name the backend registers under.
const BackendName = "oto"

const drainPoll = 10 * time.Millisecond

// defaultBufferFrames is what oto's ALSA driver allocates (two 1024-frame
// periods) when BufferSize is zero.
const defaultBufferFrames = 2048

// Options sizes oto's output buffer. PeriodSize*PeriodCount frames become
// NewContextOptions.BufferSize; zero leaves the platform default.
type Options struct {
	PeriodSize    uint32
	PeriodCount   uint32
	LoggerFactory logging.LoggerFactory
}

// Backend opens the default oto output.
type Backend struct {
	opts  Options
	log   logging.LeveledLogger
	start starter
	sleep func(time.Duration)
}

func New(opts Options) *Backend {
	return &Backend{
		opts:  opts,
		log:   logutil.Logger(opts.LoggerFactory, "oto"),
		start: startPlayer,
		sleep: time.Sleep,
	}
}

func (*Backend) Name() string { return BackendName }

// Open accepts only "default"; oto has no device selection.
func (b *Backend) Open(name string) (device.Device, error) {
	if name != "default" {
		return nil, fmt.Errorf("%w: %q: oto only plays to \"default\"", device.ErrInvalidName, name)
	}

	return &Device{name: name, backend: b}, nil
}

func otoFormat(f audio.SampleFormat) (oto.Format, error) {
	switch f {
	case audio.FormatU8:
		return oto.FormatUnsignedInt8, nil
	case audio.FormatS16LE:
		return oto.FormatSignedInt16LE, nil
	}
	return 0, fmt.Errorf("%w: %s", device.ErrUnsupportedFormat, f)
}

// Device streams frames into one oto player.
type Device struct {
	name    string
	backend *Backend

	frameSize int
	// tail is how long the context buffer keeps playing after the player
	// has handed it the last byte.
	tail   time.Duration
	player sink
	pr     *io.PipeReader
	pw     *io.PipeWriter

	closed bool
}

func (d *Device) Name() string { return d.name }

func (d *Device) HWParams() (device.HWParams, error) {
	if d.closed {
		return nil, device.ErrClosed
	}
	return &hwParams{dev: d}, nil
}

// Prepare has nothing to reset; oto never stops on an underrun.
func (d *Device) Prepare() error {
	switch {
	case d.closed:
		return device.ErrClosed
	case d.player == nil:
		return device.ErrNotConfigured
	}
	return nil
}

func (d *Device) Write(buf []byte) (int, error) {
	switch {
	case d.closed:
		return 0, device.ErrClosed
	case d.player == nil:
		return 0, device.ErrNotConfigured
	}

	n, err := d.pw.Write(buf)
	return n / d.frameSize, err
}

// Drain ends the stream and waits until the player has played it out.
// IsPlaying turns false once the player's own buffer is empty, so Drain then
// waits one context buffer more for the device to reach silence.
func (d *Device) Drain() error {
	switch {
	case d.closed:
		return device.ErrClosed
	case d.player == nil:
		return device.ErrNotConfigured
	}

	if err := d.pw.Close(); err != nil {
		return err
	}

	for d.player.IsPlaying() {
		d.backend.sleep(drainPoll)
	}
	d.backend.sleep(d.tail)

	return nil
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if d.player == nil {
		return nil
	}

	_ = d.pw.Close()
	err := d.player.Close()
	_ = d.pr.Close()

	if serr := suspend(); serr != nil && err == nil {
		err = serr
	}

	return err
}

type hwParams struct {
	dev *Device

	access   device.Access
	format   audio.SampleFormat
	otoFmt   oto.Format
	rate     uint
	channels uint
}

func (p *hwParams) SetAccess(access device.Access) error {
	if access != device.AccessRWInterleaved {
		return fmt.Errorf("%w: %s", device.ErrUnsupportedAccess, access)
	}
	p.access = access
	return nil
}

func (p *hwParams) SetFormat(format audio.SampleFormat) error {
	f, err := otoFormat(format)
	if err != nil {
		return err
	}
	p.format, p.otoFmt = format, f
	return nil
}

func (p *hwParams) SetRate(rate uint) error {
	if rate == 0 {
		return fmt.Errorf("%w: %d Hz", device.ErrUnsupportedRate, rate)
	}
	p.rate = rate
	return nil
}

func (p *hwParams) SetChannels(channels uint) error {
	if channels == 0 {
		return fmt.Errorf("%w: %d", device.ErrUnsupportedChannels, channels)
	}
	p.channels = channels
	return nil
}

// Apply starts the player. It may only succeed once per device.
func (p *hwParams) Apply() error {
	d := p.dev
	if d.player != nil {
		return fmt.Errorf("oto: %s: parameters already applied", d.name)
	}

	if p.format.Width() == 0 || p.rate == 0 || p.channels == 0 {
		return device.ErrNotConfigured
	}

	opts := &oto.NewContextOptions{
		SampleRate:   int(p.rate),
		ChannelCount: int(p.channels),
		Format:       p.otoFmt,
		BufferSize:   bufferSize(d.backend.opts, p.rate),
	}

	pr, pw := io.Pipe()

	player, err := d.backend.start(opts, pr)
	if err != nil {
		pr.Close()
		return err
	}

	d.player, d.pr, d.pw = player, pr, pw
	d.frameSize = int(p.format.Width() * p.channels)
	d.tail = opts.BufferSize
	if d.tail == 0 {
		d.tail = defaultBufferFrames * time.Second / time.Duration(p.rate)
	}
	d.backend.log.Infof("oto output: %s %d Hz %d ch, buffer %s", p.format, p.rate, p.channels, opts.BufferSize)

	return nil
}

func (p *hwParams) Free() {}

func bufferSize(opts Options, rate uint) time.Duration {
	frames := time.Duration(opts.PeriodSize) * time.Duration(opts.PeriodCount)
	if frames == 0 || rate == 0 {
		return 0
	}
	return frames * time.Second / time.Duration(rate)
}
