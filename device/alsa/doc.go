// SPDX-License-Identifier: EPL-2.0

// Package alsa plays through the Linux kernel's ALSA PCM interface using the
// pure Go github.com/gen2brain/alsa bindings; no libasound is required.
//
// Device names are "default", an alias for the first device of the first
// card, or "hw:CARD,DEVICE". Open reads the device's refined hardware
// capabilities before anything is configured, so each negotiation step can
// report exactly which of access type, sample format, rate or channel count
// the hardware cannot do. Apply then commits the whole configuration, with the
// period geometry taken from Options.
//
// A write that fails with EPIPE is reported as device.ErrUnderrun.
//
// On platforms other than Linux the backend registers but every Open fails
// with ErrUnsupportedPlatform.
package alsa
