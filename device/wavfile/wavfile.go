// SPDX-License-Identifier: EPL-2.0

package wavfile

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
	"github.com/ik5/wavplay/utils"
)

// BackendName is the name the backend registers under.
const BackendName = "wavfile"

// Backend opens Devices that write to WAV files.
type Backend struct{}

func New() Backend { return Backend{} }

func (Backend) Name() string { return BackendName }

// Open returns a device for path. The file is created by HWParams().Apply.
func (Backend) Open(path string) (device.Device, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: %w", device.ErrInvalidName, ErrNoPath)
	}

	return &Device{path: path}, nil
}

type config struct {
	format   audio.SampleFormat
	rate     uint
	channels uint
}

func (c config) frameSize() int { return int(c.format.Width() * c.channels) }

// Device writes interleaved little-endian frames to a WAV file.
type Device struct {
	path string

	cfg     config
	applied bool
	closed  bool

	f   *os.File
	enc *gowav.Encoder
	buf *goaudio.IntBuffer
}

func (d *Device) Name() string { return d.path }

func (d *Device) HWParams() (device.HWParams, error) {
	if d.closed {
		return nil, device.ErrClosed
	}
	return &hwParams{dev: d, cfg: d.cfg}, nil
}

func (d *Device) Prepare() error {
	switch {
	case d.closed:
		return device.ErrClosed
	case !d.applied:
		return device.ErrNotConfigured
	}
	return nil
}

// Write encodes buf, which must hold whole frames, and returns the number of
// frames written.
func (d *Device) Write(buf []byte) (int, error) {
	switch {
	case d.closed:
		return 0, device.ErrClosed
	case !d.applied:
		return 0, device.ErrNotConfigured
	}

	frameSize := d.cfg.frameSize()
	frames := len(buf) / frameSize
	samples := frames * int(d.cfg.channels)

	if cap(d.buf.Data) < samples {
		d.buf.Data = make([]int, samples)
	}
	d.buf.Data = d.buf.Data[:samples]

	utils.UnpackLE(d.buf.Data, buf[:frames*frameSize], int(d.cfg.format.Width()))

	if err := d.enc.Write(d.buf); err != nil {
		return 0, fmt.Errorf("wavfile: encode %s: %w", d.path, err)
	}

	return frames, nil
}

// Drain is a no-op; the encoder flushes on Close.
func (d *Device) Drain() error {
	if d.closed {
		return device.ErrClosed
	}
	return nil
}

// Close finalises the WAV header and closes the file.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if d.f == nil {
		return nil
	}

	encErr := d.enc.Close()
	fileErr := d.f.Close()

	if encErr != nil {
		return fmt.Errorf("wavfile: finalise %s: %w", d.path, encErr)
	}

	if fileErr != nil {
		return fmt.Errorf("wavfile: close %s: %w", d.path, fileErr)
	}

	return nil
}

func (d *Device) create() error {
	if d.f != nil {
		return fmt.Errorf("wavfile: %s: parameters already applied", d.path)
	}

	f, err := os.Create(d.path)
	if err != nil {
		return fmt.Errorf("wavfile: %w", err)
	}

	bits := int(d.cfg.format.Width() * 8)
	d.f = f
	d.enc = gowav.NewEncoder(f, int(d.cfg.rate), bits, int(d.cfg.channels), int(audio.EncodingPCM))
	d.buf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: int(d.cfg.channels),
			SampleRate:  int(d.cfg.rate),
		},
		SourceBitDepth: bits,
	}

	// an empty write lays down the header and data chunk, so even a
	// zero-frame run leaves a valid file behind
	if err := d.enc.Write(d.buf); err != nil {
		f.Close()
		// leave the device unapplied so Apply can be retried and Close
		// does not touch the closed file
		d.f, d.enc, d.buf = nil, nil, nil
		return fmt.Errorf("wavfile: write header %s: %w", d.path, err)
	}
	d.applied = true

	return nil
}

type hwParams struct {
	dev *Device
	cfg config
}

func (p *hwParams) SetAccess(access device.Access) error {
	if access != device.AccessRWInterleaved {
		return fmt.Errorf("%w: %s", device.ErrUnsupportedAccess, access)
	}
	return nil
}

func (p *hwParams) SetFormat(format audio.SampleFormat) error {
	if format.Width() == 0 {
		return fmt.Errorf("%w: %s", device.ErrUnsupportedFormat, format)
	}
	p.cfg.format = format
	return nil
}

func (p *hwParams) SetRate(rate uint) error {
	if rate == 0 {
		return fmt.Errorf("%w: %d Hz", device.ErrUnsupportedRate, rate)
	}
	p.cfg.rate = rate
	return nil
}

func (p *hwParams) SetChannels(channels uint) error {
	// the fmt chunk stores the channel count in 16 bits
	if channels == 0 || channels > 0xFFFF {
		return fmt.Errorf("%w: %d", device.ErrUnsupportedChannels, channels)
	}
	p.cfg.channels = channels
	return nil
}

func (p *hwParams) Apply() error {
	if p.cfg.frameSize() == 0 || p.cfg.rate == 0 {
		return device.ErrNotConfigured
	}

	p.dev.cfg = p.cfg
	return p.dev.create()
}

func (p *hwParams) Free() {}
