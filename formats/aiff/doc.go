// SPDX-License-Identifier: EPL-2.0

// Package aiff loads AIFF (Audio Interchange File Format) files for playback.
//
// This package uses github.com/go-audio/aiff to decode the FORM container.
// AIFF stores linear PCM big-endian; the Loader repacks every sample into the
// interleaved little-endian layout the playback driver streams, so an AIFF
// file plays through exactly the same path as a WAV file.
//
// # Supported Formats
//
//   - Uncompressed AIFF
//   - 8, 16, 24 and 32-bit samples (8-bit is re-biased to unsigned U8)
//   - Any channel count and sample rate
//
// # Loading AIFF Files
//
//	file, _ := os.Open("audio.aif")
//	desc, data, err := aiff.Loader{}.Load(file)
//	if err != nil {
//	    // Handle error
//	}
//
// # Error Handling
//
//   - audio.ErrMalformedHeader wraps ErrNotAiffFile or ErrUnsupportedAiffLayout
//   - audio.ErrUnsupportedEncoding reports a sample width that is not a whole
//     number of bytes
package aiff
