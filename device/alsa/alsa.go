// SPDX-License-Identifier: EPL-2.0

//go:build linux

package alsa

import (
	"errors"
	"fmt"

	alsalib "github.com/gen2brain/alsa"
	"github.com/pion/logging"
	"golang.org/x/sys/unix"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
	"github.com/ik5/wavplay/internal/logutil"
)

// BackendName is the name the backend registers under.
const BackendName = "alsa"

const (
	DefaultPeriodSize  = 1024
	DefaultPeriodCount = 4
)

// Options tunes the period geometry committed by Apply.
type Options struct {
	// PeriodSize is in frames. Zero means DefaultPeriodSize.
	PeriodSize uint32
	// PeriodCount is the number of periods in the ring buffer. Zero means
	// DefaultPeriodCount.
	PeriodCount uint32

	LoggerFactory logging.LoggerFactory
}

// pcm is the part of *alsalib.PCM a Device drives.
type pcm interface {
	SetConfig(cfg *alsalib.Config) error
	Rate() uint32
	Channels() uint32
	Prepare() error
	Write(buf []byte) (int, error)
	Drain() error
	Close() error
	Xruns() int
}

type opener func(card, dev uint) (pcm, Caps, error)

// Backend opens ALSA playback devices.
type Backend struct {
	opts Options
	log  logging.LeveledLogger
	open opener
}

func New(opts Options) *Backend {
	if opts.PeriodSize == 0 {
		opts.PeriodSize = DefaultPeriodSize
	}

	if opts.PeriodCount == 0 {
		opts.PeriodCount = DefaultPeriodCount
	}

	return &Backend{
		opts: opts,
		log:  logutil.Logger(opts.LoggerFactory, "alsa"),
		open: openHW,
	}
}

func (*Backend) Name() string { return BackendName }

// Open reads the capabilities of the named playback device and opens it.
func (b *Backend) Open(name string) (device.Device, error) {
	card, dev, err := ParseName(name)
	if err != nil {
		return nil, err
	}

	p, caps, err := b.open(card, dev)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	b.log.Debugf("%s: rate %d-%d Hz, channels %d-%d",
		name, caps.MinRate, caps.MaxRate, caps.MinChannels, caps.MaxChannels)

	return &Device{
		name:        name,
		pcm:         p,
		caps:        caps,
		periodSize:  b.opts.PeriodSize,
		periodCount: b.opts.PeriodCount,
		log:         b.log,
	}, nil
}

// openFlags keeps the library from re-preparing the stream on an xrun so
// Write can report it as device.ErrUnderrun.
const openFlags = alsalib.PCM_OUT | alsalib.PCM_NORESTART

// pcmAdapter narrows *alsalib.PCM's Write, which takes any numeric slice,
// to the byte buffers a Device hands it.
type pcmAdapter struct {
	*alsalib.PCM
}

var _ pcm = (*pcmAdapter)(nil)

// Write returns the number of frames written.
func (a *pcmAdapter) Write(buf []byte) (int, error) {
	return a.PCM.Write(buf)
}

func openHW(card, dev uint) (pcm, Caps, error) {
	caps, err := readCaps(card, dev)
	if err != nil {
		return nil, Caps{}, err
	}

	// PcmOpen commits a configuration; Apply replaces it
	p, err := alsalib.PcmOpen(card, dev, openFlags, openConfig(caps))
	if err != nil {
		return nil, Caps{}, err
	}

	return &pcmAdapter{PCM: p}, caps, nil
}

// openConfig picks a configuration the device accepts, close to 48 kHz
// stereo S16_LE.
func openConfig(caps Caps) *alsalib.Config {
	cfg := &alsalib.Config{
		Channels:    uint32(min(max(2, caps.MinChannels), caps.MaxChannels)),
		Rate:        uint32(min(max(48000, caps.MinRate), caps.MaxRate)),
		PeriodSize:  DefaultPeriodSize,
		PeriodCount: DefaultPeriodCount,
		Format:      alsalib.SNDRV_PCM_FORMAT_S16_LE,
	}

	if !caps.Formats[audio.FormatS16LE] {
		for _, f := range []audio.SampleFormat{audio.FormatS32LE, audio.FormatS24_3LE, audio.FormatU8} {
			if caps.Formats[f] {
				cfg.Format = pcmFormats[f]
				break
			}
		}
	}

	return cfg
}

// accessRWNonInterleaved is SNDRV_PCM_ACCESS_RW_NONINTERLEAVED from the kernel
// ABI; the library only names the interleaved variants.
const accessRWNonInterleaved = 4

var accessBits = map[device.Access]uint{
	device.AccessRWInterleaved:    alsalib.SNDRV_PCM_ACCESS_RW_INTERLEAVED,
	device.AccessRWNonInterleaved: accessRWNonInterleaved,
	device.AccessMMapInterleaved:  alsalib.SNDRV_PCM_ACCESS_MMAP_INTERLEAVED,
}

var pcmFormats = map[audio.SampleFormat]alsalib.PcmFormat{
	audio.FormatU8:      alsalib.SNDRV_PCM_FORMAT_U8,
	audio.FormatS16LE:   alsalib.SNDRV_PCM_FORMAT_S16_LE,
	audio.FormatS24_3LE: alsalib.SNDRV_PCM_FORMAT_S24_3LE,
	audio.FormatS32LE:   alsalib.SNDRV_PCM_FORMAT_S32_LE,
}

func readCaps(card, dev uint) (Caps, error) {
	params, err := alsalib.PcmParamsGet(card, dev, alsalib.PCM_OUT)
	if err != nil {
		return Caps{}, fmt.Errorf("read capabilities: %w", err)
	}

	caps := Caps{
		Access:  map[device.Access]bool{},
		Formats: map[audio.SampleFormat]bool{},
	}

	mask, err := params.Mask(alsalib.SNDRV_PCM_HW_PARAM_ACCESS)
	if err != nil {
		return Caps{}, fmt.Errorf("read access mask: %w", err)
	}

	for a, bit := range accessBits {
		caps.Access[a] = mask.Test(bit)
	}

	for f, pf := range pcmFormats {
		caps.Formats[f] = params.FormatIsSupported(pf)
	}

	minRate, maxRate, err := paramRange(params, alsalib.SNDRV_PCM_HW_PARAM_RATE)
	if err != nil {
		return Caps{}, fmt.Errorf("read rate range: %w", err)
	}

	minChannels, maxChannels, err := paramRange(params, alsalib.SNDRV_PCM_HW_PARAM_CHANNELS)
	if err != nil {
		return Caps{}, fmt.Errorf("read channel range: %w", err)
	}

	caps.MinRate, caps.MaxRate = minRate, maxRate
	caps.MinChannels, caps.MaxChannels = minChannels, maxChannels

	return caps, nil
}

func paramRange(params *alsalib.PcmParams, param alsalib.PcmParam) (uint, uint, error) {
	lo, err := params.Min(param)
	if err != nil {
		return 0, 0, err
	}

	hi, err := params.Max(param)
	if err != nil {
		return 0, 0, err
	}

	return uint(lo), uint(hi), nil
}

// Device is one open ALSA playback PCM.
type Device struct {
	name string
	pcm  pcm
	caps Caps

	periodSize  uint32
	periodCount uint32

	applied bool
	closed  bool
	log     logging.LeveledLogger
}

func (d *Device) Name() string { return d.name }

func (d *Device) HWParams() (device.HWParams, error) {
	if d.closed {
		return nil, device.ErrClosed
	}
	return &hwParams{dev: d}, nil
}

func (d *Device) Prepare() error {
	switch {
	case d.closed:
		return device.ErrClosed
	case !d.applied:
		return device.ErrNotConfigured
	}

	return d.pcm.Prepare()
}

// Write blocks until buf, which must hold whole frames, is queued. It returns
// the number of frames the driver accepted.
func (d *Device) Write(buf []byte) (int, error) {
	switch {
	case d.closed:
		return 0, device.ErrClosed
	case !d.applied:
		return 0, device.ErrNotConfigured
	}

	n, err := d.pcm.Write(buf)
	if err != nil {
		if errors.Is(err, unix.EPIPE) {
			d.log.Debugf("%s: xrun, %d so far", d.name, d.pcm.Xruns())
			return n, fmt.Errorf("%w: %w", device.ErrUnderrun, err)
		}

		if errors.Is(err, unix.ESTRPIPE) {
			return n, fmt.Errorf("%s suspended: %w", d.name, err)
		}

		return n, err
	}

	return n, nil
}

func (d *Device) Drain() error {
	if d.closed {
		return device.ErrClosed
	}
	return d.pcm.Drain()
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	return d.pcm.Close()
}

type hwParams struct {
	dev *Device

	access   device.Access
	format   audio.SampleFormat
	rate     uint
	channels uint
}

func (p *hwParams) SetAccess(access device.Access) error {
	if err := p.dev.caps.checkAccess(access); err != nil {
		return err
	}
	p.access = access
	return nil
}

func (p *hwParams) SetFormat(format audio.SampleFormat) error {
	if err := p.dev.caps.checkFormat(format); err != nil {
		return err
	}
	p.format = format
	return nil
}

func (p *hwParams) SetRate(rate uint) error {
	if err := p.dev.caps.checkRate(rate); err != nil {
		return err
	}
	p.rate = rate
	return nil
}

func (p *hwParams) SetChannels(channels uint) error {
	if err := p.dev.caps.checkChannels(channels); err != nil {
		return err
	}
	p.channels = channels
	return nil
}

// Apply commits the configuration and checks the driver kept the requested
// rate and channel count.
func (p *hwParams) Apply() error {
	pf, ok := pcmFormats[p.format]
	if !ok || p.rate == 0 || p.channels == 0 {
		return device.ErrNotConfigured
	}

	if p.access != device.AccessRWInterleaved {
		return fmt.Errorf("%w: %s", device.ErrUnsupportedAccess, p.access)
	}

	d := p.dev
	cfg := alsalib.Config{
		Channels:    uint32(p.channels),
		Rate:        uint32(p.rate),
		PeriodSize:  d.periodSize,
		PeriodCount: d.periodCount,
		Format:      pf,
	}

	if err := d.pcm.SetConfig(&cfg); err != nil {
		return err
	}

	if got := uint(d.pcm.Rate()); got != p.rate {
		return fmt.Errorf("%w: asked for %d Hz, got %d Hz", device.ErrUnsupportedRate, p.rate, got)
	}

	if got := uint(d.pcm.Channels()); got != p.channels {
		return fmt.Errorf("%w: asked for %d, got %d", device.ErrUnsupportedChannels, p.channels, got)
	}

	d.applied = true
	d.log.Debugf("%s: %s %d Hz %d ch, period %d x %d frames",
		d.name, p.format, p.rate, p.channels, d.periodCount, d.periodSize)

	return nil
}

func (p *hwParams) Free() {}
