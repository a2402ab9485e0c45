// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavplay/audio"
)

// Loader reads a RIFF/WAVE file into memory. Only linear PCM is accepted;
// the data chunk is returned verbatim, minus any trailing partial frame.
type Loader struct{}

func (Loader) Load(r io.ReadSeeker) (audio.FormatDescriptor, []byte, error) {
	dec := gowav.NewDecoder(r)

	if !dec.IsValidFile() {
		// a parsed fmt chunk with e.g. a 4-bit ADPCM tag fails validation too
		if dec.Err() == nil && dec.NumChans > 0 && audio.Encoding(dec.WavAudioFormat) != audio.EncodingPCM {
			return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %s",
				audio.ErrUnsupportedEncoding, audio.Encoding(dec.WavAudioFormat))
		}
		if err := dec.Err(); err != nil {
			return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, err)
		}
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, ErrNotWavFile)
	}

	desc := audio.FormatDescriptor{
		Encoding:       audio.Encoding(dec.WavAudioFormat),
		SampleRate:     uint(dec.SampleRate),
		Channels:       uint(dec.NumChans),
		BytesPerSample: (uint(dec.BitDepth) + 7) / 8,
	}

	// reject before touching the sample data
	if desc.Encoding != audio.EncodingPCM {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %s (format tag 0x%04X)",
			audio.ErrUnsupportedEncoding, desc.Encoding, uint16(desc.Encoding))
	}

	if err := desc.Validate(); err != nil {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, err)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, ErrNoPCMData)
	}

	size, err := dataChunkSize(r)
	if err != nil {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrMalformedHeader, err)
	}

	// A data chunk may be shorter than declared (e.g. a stream that was cut
	// off); keep what is there.
	data, err := io.ReadAll(io.LimitReader(dec.PCMChunk, size))
	if err != nil {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("reading wav data: %w", err)
	}

	frameSize := desc.FrameSize()
	desc.Frames = uint(len(data)) / frameSize

	return desc, data[:desc.DataSize()], nil
}

// dataChunkSize re-reads the size field of the data chunk header that
// FwdToPCM just consumed. The decoder rounds an odd size up to include the
// RIFF pad byte, which is not sample data.
func dataChunkSize(r io.ReadSeeker) (int64, error) {
	if _, err := r.Seek(-4, io.SeekCurrent); err != nil {
		return 0, fmt.Errorf("seek to data chunk size: %w", err)
	}

	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, fmt.Errorf("read data chunk size: %w", err)
	}

	return int64(size), nil
}
