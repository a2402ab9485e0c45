// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Encoding is the container's sample encoding tag (the WAV fmt chunk's
// wFormatTag).
type Encoding uint16

const (
	EncodingPCM        Encoding = 0x0001
	EncodingIEEEFloat  Encoding = 0x0003
	EncodingALaw       Encoding = 0x0006
	EncodingMuLaw      Encoding = 0x0007
	EncodingExtensible Encoding = 0xFFFE
)

func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "PCM"
	case EncodingIEEEFloat:
		return "IEEE float"
	case EncodingALaw:
		return "A-law"
	case EncodingMuLaw:
		return "mu-law"
	case EncodingExtensible:
		return "extensible"
	}

	return fmt.Sprintf("0x%04X", uint16(e))
}

// SampleFormat is the on-the-wire sample layout handed to a device.
type SampleFormat int

const (
	FormatU8 SampleFormat = iota
	FormatS16LE
	FormatS24_3LE
	FormatS32LE
)

var sampleFormatNames = map[SampleFormat]string{
	FormatU8:      "U8",
	FormatS16LE:   "S16_LE",
	FormatS24_3LE: "S24_3LE",
	FormatS32LE:   "S32_LE",
}

func (f SampleFormat) String() string {
	if name, ok := sampleFormatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// Width returns the number of bytes one sample occupies, or 0 for an
// unknown format.
func (f SampleFormat) Width() uint {
	switch f {
	case FormatU8:
		return 1
	case FormatS16LE:
		return 2
	case FormatS24_3LE:
		return 3
	case FormatS32LE:
		return 4
	}

	return 0
}

// ParseSampleFormat accepts the ALSA-style names returned by String,
// case-insensitively.
func ParseSampleFormat(s string) (SampleFormat, error) {
	for f, name := range sampleFormatNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSampleFormat, s)
}

// SampleFormatFor returns the packed little-endian format for the given
// sample width.
func SampleFormatFor(bytesPerSample uint) (SampleFormat, error) {
	switch bytesPerSample {
	case 1:
		return FormatU8, nil
	case 2:
		return FormatS16LE, nil
	case 3:
		return FormatS24_3LE, nil
	case 4:
		return FormatS32LE, nil
	}

	return 0, fmt.Errorf("%w: %d bytes per sample", ErrUnknownSampleFormat, bytesPerSample)
}

// FormatDescriptor describes the PCM data produced by a Loader.
type FormatDescriptor struct {
	Encoding       Encoding
	SampleRate     uint
	Channels       uint
	BytesPerSample uint
	// Frames is the number of whole frames in the sample buffer.
	Frames uint
}

// FrameSize is the size in bytes of one interleaved frame.
func (d FormatDescriptor) FrameSize() uint { return d.Channels * d.BytesPerSample }

// DataSize is the size in bytes of the whole sample buffer.
func (d FormatDescriptor) DataSize() uint { return d.Frames * d.FrameSize() }

func (d FormatDescriptor) String() string {
	return fmt.Sprintf("%s %dHz %dch %d-bit, %d frames",
		d.Encoding, d.SampleRate, d.Channels, d.BytesPerSample*8, d.Frames)
}

// Validate checks that the descriptor can drive a playback stream.
func (d FormatDescriptor) Validate() error {
	if d.Encoding != EncodingPCM {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, d.Encoding)
	}

	if d.FrameSize() == 0 {
		return ErrZeroFrameSize
	}

	if d.SampleRate == 0 {
		return ErrZeroSampleRate
	}

	return nil
}

// Loader reads a whole audio container into memory.
//
// The returned buffer holds interleaved little-endian samples and is exactly
// FormatDescriptor.DataSize() bytes long.
type Loader interface {
	Load(r io.ReadSeeker) (FormatDescriptor, []byte, error)
}

// Registry for loaders by format key (e.g., "wav", "aiff").
type Registry struct {
	loaders map[string]Loader

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[string]Loader),
		mtx:     &sync.Mutex{},
	}
}

// Register stores l under format. Keys are case-insensitive.
func (r *Registry) Register(format string, l Loader) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.loaders[strings.ToLower(format)] = l
}

func (r *Registry) Get(format string) (Loader, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	l, ok := r.loaders[strings.ToLower(format)]
	return l, ok
}
