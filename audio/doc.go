// SPDX-License-Identifier: EPL-2.0

// Package audio provides the types shared by loaders, devices and the
// playback driver.
//
// # Format Descriptor
//
// A FormatDescriptor is produced once by a Loader from the file header and
// never changes afterwards:
//
//	type FormatDescriptor struct {
//	    Encoding       Encoding
//	    SampleRate     uint
//	    Channels       uint
//	    BytesPerSample uint
//	    Frames         uint
//	}
//
// FrameSize is Channels*BytesPerSample, and the sample buffer that comes with
// a descriptor is always Frames*FrameSize bytes long. Validate rejects
// anything that is not linear PCM and any descriptor with a zero frame size.
//
// # Loaders
//
// The Loader interface reads a whole container into memory:
//
//	type Loader interface {
//	    Load(r io.ReadSeeker) (FormatDescriptor, []byte, error)
//	}
//
// Loaders are looked up by file extension through a Registry:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Loader{})
//	loader, _ := registry.Get("wav")
//
// # Sample Formats
//
// SampleFormat names the packed little-endian layouts a device can be
// configured with (U8, S16_LE, S24_3LE, S32_LE). S16_LE is the default
// playback format.
//
// # Error Handling
//
// Loaders report failures with the sentinel errors of this package so callers
// can tell them apart with errors.Is:
//
//	desc, data, err := loader.Load(file)
//	switch {
//	case errors.Is(err, audio.ErrUnsupportedEncoding):
//	    // the file is not linear PCM
//	case errors.Is(err, audio.ErrMalformedHeader):
//	    // the header could not be parsed
//	}
package audio
