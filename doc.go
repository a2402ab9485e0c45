// SPDX-License-Identifier: EPL-2.0

// Package wavplay plays uncompressed PCM audio files on an output device.
//
// The whole file is loaded into memory first, then handed to a
// playback.Player that negotiates the device's hardware parameters from the
// file's own format and streams it in frame-aligned chunks.
//
// # Supported Formats
//
// Loaders are registered by file extension:
//   - WAV (PCM, 8/16/24/32-bit) via formats/wav
//   - AIFF (PCM, 8/16/24/32-bit) via formats/aiff
//
// Float, A-law, mu-law and compressed files are rejected with
// audio.ErrUnsupportedEncoding before any device is opened.
//
// # Backends
//
//   - alsa: the Linux kernel PCM interface, device "default" or "hw:C,D"
//   - oto: the platform default output through ebitengine/oto
//   - wavfile: writes what would have been played to a WAV file; the device
//     name is the output path
//
// # Quick Start
//
//	cfg := config.Load()
//	cfg.File = "Noise.wav"
//
//	stats, err := wavplay.Play(ctx, cfg,
//		wavplay.DefaultLoaders(),
//		wavplay.DefaultBackends(wavplay.BackendOptions{}),
//		nil)
//
// For more control, load the file and drive a Player yourself:
//
//	desc, data, err := wavplay.LoadFile("Noise.wav", wavplay.DefaultLoaders())
//	dev, err := alsa.New(alsa.Options{}).Open("hw:0,0")
//
//	player := playback.NewPlayer(dev, playback.Options{Format: audio.FormatS16LE})
//	defer player.Close()
//
//	stats, err := player.Play(ctx, desc, data)
package wavplay
