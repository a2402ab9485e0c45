// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"bytes"
	"math"
	"testing"
)

func TestPackLE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []int
		width   int
		want    []byte
	}{
		{
			name:    "unsigned 8-bit",
			samples: []int{0, 128, 255},
			width:   1,
			want:    []byte{0x00, 0x80, 0xFF},
		},
		{
			name:    "signed 16-bit",
			samples: []int{1, -1, math.MaxInt16, math.MinInt16},
			width:   2,
			want:    []byte{0x01, 0x00, 0xFF, 0xFF, 0xFF, 0x7F, 0x00, 0x80},
		},
		{
			name:    "signed 24-bit",
			samples: []int{0x123456, -2},
			width:   3,
			want:    []byte{0x56, 0x34, 0x12, 0xFE, 0xFF, 0xFF},
		},
		{
			name:    "signed 32-bit",
			samples: []int{math.MinInt32, 7},
			width:   4,
			want:    []byte{0x00, 0x00, 0x00, 0x80, 0x07, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]byte, len(tt.want))
			n := PackLE(dst, tt.samples, tt.width)

			if n != len(tt.want) {
				t.Errorf("PackLE() = %d, want %d", n, len(tt.want))
			}

			if !bytes.Equal(dst, tt.want) {
				t.Errorf("PackLE() wrote % X, want % X", dst, tt.want)
			}
		})
	}
}

func TestUnpackLE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   []byte
		width int
		want  []int
	}{
		{
			name:  "unsigned 8-bit",
			src:   []byte{0x00, 0x80, 0xFF},
			width: 1,
			want:  []int{0, 128, 255},
		},
		{
			name:  "signed 16-bit",
			src:   []byte{0xFF, 0x7F, 0x00, 0x80},
			width: 2,
			want:  []int{math.MaxInt16, math.MinInt16},
		},
		{
			name:  "negative 24-bit",
			src:   []byte{0x00, 0x00, 0x80, 0xFF, 0xFF, 0x7F},
			width: 3,
			want:  []int{-8388608, 8388607},
		},
		{
			name:  "signed 32-bit",
			src:   []byte{0xFF, 0xFF, 0xFF, 0xFF},
			width: 4,
			want:  []int{-1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]int, len(tt.want))
			n := UnpackLE(dst, tt.src, tt.width)

			if n != len(tt.want) {
				t.Fatalf("UnpackLE() = %d, want %d", n, len(tt.want))
			}

			for i := range tt.want {
				if dst[i] != tt.want[i] {
					t.Errorf("dst[%d] = %d, want %d", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestPackUnpack_PartialAndInvalid(t *testing.T) {
	t.Parallel()

	// 5 bytes hold two 16-bit samples; the trailing byte is ignored
	dst := make([]int, 4)
	if n := UnpackLE(dst, []byte{1, 0, 2, 0, 3}, 2); n != 2 {
		t.Errorf("UnpackLE() with trailing byte = %d, want 2", n)
	}

	if n := PackLE(make([]byte, 3), []int{1, 2}, 2); n != 2 {
		t.Errorf("PackLE() into short dst = %d, want 2", n)
	}

	if n := PackLE(make([]byte, 8), []int{1}, 0); n != 0 {
		t.Errorf("PackLE() with width 0 = %d, want 0", n)
	}

	if n := UnpackLE(dst, []byte{1, 2, 3, 4, 5}, 5); n != 0 {
		t.Errorf("UnpackLE() with width 5 = %d, want 0", n)
	}
}
