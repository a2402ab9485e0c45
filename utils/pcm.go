// SPDX-License-Identifier: EPL-2.0

package utils

import "encoding/binary"

// PackLE writes samples into dst as little-endian integers of width bytes and
// returns the number of bytes written. Width 1 stores the low byte as is
// (unsigned 8-bit PCM); wider samples are signed. Samples that do not fit
// completely into dst are not written.
func PackLE(dst []byte, samples []int, width int) int {
	if width < 1 || width > 4 {
		return 0
	}

	n := min(len(samples), len(dst)/width)
	for i := range n {
		b := dst[i*width : i*width+width]
		s := samples[i]

		switch width {
		case 1:
			b[0] = byte(s)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(int16(s)))
		case 3:
			b[0] = byte(s)
			b[1] = byte(s >> 8)
			b[2] = byte(s >> 16)
		case 4:
			binary.LittleEndian.PutUint32(b, uint32(int32(s)))
		}
	}

	return n * width
}

// UnpackLE is the inverse of PackLE. It returns the number of samples decoded
// into dst; a trailing partial sample in src is ignored.
func UnpackLE(dst []int, src []byte, width int) int {
	if width < 1 || width > 4 {
		return 0
	}

	n := min(len(dst), len(src)/width)
	for i := range n {
		b := src[i*width : i*width+width]

		switch width {
		case 1:
			dst[i] = int(b[0])
		case 2:
			dst[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case 3:
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			// sign extend from 24 bits
			dst[i] = int(v<<8) >> 8
		case 4:
			dst[i] = int(int32(binary.LittleEndian.Uint32(b)))
		}
	}

	return n
}
