// SPDX-License-Identifier: EPL-2.0

// Package oto plays through github.com/ebitengine/oto/v3, which reaches the
// platform's default output (ALSA on Linux, CoreAudio, WASAPI).
//
// oto mixes in software and owns a single context per process, so the device
// name is only "default" and, once a context exists, every later device must
// ask for the same rate, channel count and sample format. Frames written to a
// Device are fed to one long-lived oto player through an io.Pipe; Write
// returns when the player has taken the whole buffer.
//
// Only U8 and S16_LE can be carried.
package oto
