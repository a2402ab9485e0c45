// SPDX-License-Identifier: EPL-2.0

// Package device defines the audio output collaborator used by the playback
// driver.
//
// A Backend opens a Device by name. The Device exposes the primitives of a
// blocking PCM output stream: a transient hardware parameter space
// (HWParams), prepare, write, drain and close. Implementations live in the
// subpackages:
//   - device/alsa writes to an ALSA PCM through github.com/gen2brain/alsa
//   - device/oto plays through github.com/ebitengine/oto/v3
//   - device/wavfile renders the stream into a WAV file
//
// Backends are selected at runtime through a Registry:
//
//	registry := device.NewRegistry()
//	registry.Register(alsa.NewBackend(alsa.Options{}))
//	backend, _ := registry.Get("alsa")
//	dev, err := backend.Open("hw:0,0")
package device
