// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"math"
)

// WAVSpec describes a RIFF/WAVE file to build for tests.
type WAVSpec struct {
	FormatTag     uint16 // 1 = PCM
	Channels      int
	SampleRate    int
	BitsPerSample int
	Data          []byte

	// DeclaredDataSize overrides the data chunk size written in the header.
	DeclaredDataSize *uint32
	// ListChunk inserts a LIST chunk between fmt and data.
	ListChunk bool
	// OmitData leaves the data chunk out entirely.
	OmitData bool
}

// WAV returns the bytes of a canonical WAV file built from spec.
func WAV(spec WAVSpec) []byte {
	blockAlign := spec.Channels * spec.BitsPerSample / 8
	byteRate := spec.SampleRate * blockAlign

	dataSize := uint32(len(spec.Data))
	if spec.DeclaredDataSize != nil {
		dataSize = *spec.DeclaredDataSize
	}

	var list []byte
	if spec.ListChunk {
		list = make([]byte, 0, 20)
		list = append(list, "LIST"...)
		list = binary.LittleEndian.AppendUint32(list, 12)
		list = append(list, "INFOISFT"...)
		list = binary.LittleEndian.AppendUint32(list, 0)
	}

	riffSize := 4 + 24 + len(list)
	if !spec.OmitData {
		riffSize += 8 + len(spec.Data) + len(spec.Data)%2
	}

	out := make([]byte, 0, 12+riffSize)

	// RIFF header (12 bytes)
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(riffSize))
	out = append(out, "WAVE"...)

	// fmt chunk (24 bytes)
	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, spec.FormatTag)
	out = binary.LittleEndian.AppendUint16(out, uint16(spec.Channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(spec.SampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, uint16(spec.BitsPerSample))

	out = append(out, list...)

	if spec.OmitData {
		return out
	}

	// data chunk, padded to an even size
	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, dataSize)
	out = append(out, spec.Data...)
	if len(spec.Data)%2 == 1 {
		out = append(out, 0)
	}

	return out
}

// PCM16 returns interleaved 16-bit little-endian sample bytes.
func PCM16(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

// Ramp returns n bytes counting up from 0, so any reordering or loss shows up
// in a byte comparison.
func Ramp(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}

// AIFF returns the bytes of a FORM/AIFF file with big-endian samples.
func AIFF(channels, sampleRate, bitsPerSample int, samples []int) []byte {
	width := bitsPerSample / 8
	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}

	ssnd := make([]byte, 8, 8+len(samples)*width) // offset + block size
	for _, s := range samples {
		switch width {
		case 1:
			ssnd = append(ssnd, byte(int8(s)))
		case 2:
			ssnd = binary.BigEndian.AppendUint16(ssnd, uint16(int16(s)))
		case 3:
			ssnd = append(ssnd, byte(s>>16), byte(s>>8), byte(s))
		case 4:
			ssnd = binary.BigEndian.AppendUint32(ssnd, uint32(int32(s)))
		}
	}

	comm := make([]byte, 0, 18)
	comm = binary.BigEndian.AppendUint16(comm, uint16(channels))
	comm = binary.BigEndian.AppendUint32(comm, uint32(frames))
	comm = binary.BigEndian.AppendUint16(comm, uint16(bitsPerSample))
	rate := extended(float64(sampleRate))
	comm = append(comm, rate[:]...)

	body := make([]byte, 0, 4+8+len(comm)+8+len(ssnd)+1)
	body = append(body, "AIFF"...)
	body = append(body, "COMM"...)
	body = binary.BigEndian.AppendUint32(body, uint32(len(comm)))
	body = append(body, comm...)
	body = append(body, "SSND"...)
	body = binary.BigEndian.AppendUint32(body, uint32(len(ssnd)))
	body = append(body, ssnd...)
	if len(ssnd)%2 == 1 {
		body = append(body, 0)
	}

	out := make([]byte, 0, 8+len(body))
	out = append(out, "FORM"...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

// extended encodes v as an IEEE 754 80-bit extended float, as used by the
// AIFF COMM chunk.
func extended(v float64) [10]byte {
	var b [10]byte
	if v <= 0 {
		return b
	}

	frac, exp := math.Frexp(v) // v = frac * 2^exp, frac in [0.5, 1)
	e := uint16(exp - 1 + 16383)
	m := uint64(frac * (1 << 64))

	binary.BigEndian.PutUint16(b[0:2], e)
	binary.BigEndian.PutUint64(b[2:10], m)
	return b
}
