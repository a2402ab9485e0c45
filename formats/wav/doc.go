// SPDX-License-Identifier: EPL-2.0

// Package wav loads RIFF/WAVE files for playback.
//
// It uses the github.com/go-audio/wav library to walk the RIFF container and
// hands back the raw contents of the data chunk together with an
// audio.FormatDescriptor.
//
// # Supported Formats
//
// Only linear PCM (format tag 1) is accepted, at any sample rate, channel
// count and sample width. IEEE float, A-law, mu-law and WAVE_FORMAT_EXTENSIBLE
// files are rejected with audio.ErrUnsupportedEncoding before any sample
// data is read.
//
// # Loading WAV Files
//
//	file, _ := os.Open("Noise.wav")
//	desc, data, err := wav.Loader{}.Load(file)
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(desc) // PCM 44100Hz 2ch 16-bit, 22050 frames
//
// The returned buffer is interleaved little-endian PCM, exactly
// desc.DataSize() bytes long. A trailing partial frame is dropped, and a data
// chunk that is shorter than its header claims is accepted as is.
//
// # Error Handling
//
//   - audio.ErrMalformedHeader wraps ErrNotWavFile, ErrNoPCMData or the
//     parser's error when the header cannot be used
//   - audio.ErrUnsupportedEncoding reports a non-PCM format tag
package wav
