// SPDX-License-Identifier: EPL-2.0

// Package playback streams an in-memory PCM buffer to a device.Device.
//
// A Player owns one open device and walks it through a strictly linear
// lifecycle:
//
//	Opened -> ParametersSet -> Prepared -> Streaming -> Draining -> Closed
//
// Negotiate requests interleaved read/write access, the configured sample
// format, and the file's own sample rate and channel count. The first step
// the device refuses ends the negotiation with a *NegotiationError naming
// that step ("set rate", "set channels", ...).
//
// Stream then copies the buffer to the device in chunks of whole frames. The
// number of frames per chunk is the transfer buffer size divided by the frame
// size, so a write never splits a frame. Each write blocks. When the device
// accepts fewer frames than requested, or fails, the Player logs it,
// re-prepares the device once and moves on to the next chunk without
// retrying; Stats records how many bytes went through and how many were
// skipped.
//
//	player := playback.NewPlayer(dev, playback.Options{ChunkSize: 512, Format: audio.FormatS16LE})
//	defer player.Close()
//
//	stats, err := player.Play(ctx, desc, data)
package playback
