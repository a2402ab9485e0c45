// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/utils"
)

const readChunk = 4096

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Loader reads an AIFF file and converts its big-endian samples to the
// little-endian layout used for playback.
type Loader struct{}

func (Loader) Load(r io.ReadSeeker) (audio.FormatDescriptor, []byte, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, ErrNotAiffFile)
	}

	dec.ReadInfo()

	return load(dec, int(dec.BitDepth))
}

func load(dec aiffReader, bitDepth int) (audio.FormatDescriptor, []byte, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, ErrUnsupportedAiffLayout)
	}

	width := bitDepth / 8
	if bitDepth%8 != 0 || width < 1 || width > 4 {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %d-bit samples", audio.ErrUnsupportedEncoding, bitDepth)
	}

	desc := audio.FormatDescriptor{
		Encoding:       audio.EncodingPCM,
		SampleRate:     uint(format.SampleRate),
		Channels:       uint(format.NumChannels),
		BytesPerSample: uint(width),
	}
	if err := desc.Validate(); err != nil {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, err)
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, readChunk),
		Format: format,
	}
	packed := make([]byte, readChunk*width)

	var data []byte
	for {
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			samples := buf.Data[:n]
			if width == 1 {
				// AIFF 8-bit is signed, U8 playback is not
				for i, s := range samples {
					samples[i] = s + 128
				}
			}
			m := utils.PackLE(packed, samples, width)
			data = append(data, packed[:m]...)
		}

		if err == io.EOF || (n == 0 && err == nil) {
			break
		}

		if err != nil {
			return audio.FormatDescriptor{}, nil, fmt.Errorf("reading aiff data: %w", err)
		}
	}

	desc.Frames = uint(len(data)) / desc.FrameSize()
	if data == nil {
		data = []byte{}
	}

	return desc, data[:desc.DataSize()], nil
}
