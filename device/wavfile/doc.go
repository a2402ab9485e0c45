// SPDX-License-Identifier: EPL-2.0

// Package wavfile is a device backend that "plays" into a WAV file.
//
// The device name is the output path. Hardware parameter negotiation accepts
// any PCM format the go-audio/wav encoder can write, and Apply creates the
// file. Every frame the Player writes ends up in the file's data chunk, which
// makes the backend useful for checking a playback run without a sound card.
package wavfile
