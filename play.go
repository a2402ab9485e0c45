// SPDX-License-Identifier: EPL-2.0

package wavplay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pion/logging"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/config"
	"github.com/ik5/wavplay/device"
	"github.com/ik5/wavplay/device/alsa"
	"github.com/ik5/wavplay/device/oto"
	"github.com/ik5/wavplay/device/wavfile"
	"github.com/ik5/wavplay/formats/aiff"
	"github.com/ik5/wavplay/formats/wav"
	"github.com/ik5/wavplay/internal/logutil"
	"github.com/ik5/wavplay/playback"
)

// DefaultFormat is the registry key used for files without an extension.
const DefaultFormat = "wav"

// DefaultLoaders returns a registry with the WAV and AIFF loaders.
func DefaultLoaders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Loader{})
	reg.Register("wave", wav.Loader{})
	reg.Register("aif", aiff.Loader{})
	reg.Register("aiff", aiff.Loader{})

	return reg
}

// BackendOptions is shared by the hardware backends.
type BackendOptions struct {
	PeriodSize    uint32
	PeriodCount   uint32
	LoggerFactory logging.LoggerFactory
}

// DefaultBackends returns a registry with the alsa, oto and wavfile backends.
func DefaultBackends(opts BackendOptions) *device.Registry {
	reg := device.NewRegistry()
	reg.Register(alsa.New(alsa.Options{
		PeriodSize:    opts.PeriodSize,
		PeriodCount:   opts.PeriodCount,
		LoggerFactory: opts.LoggerFactory,
	}))
	reg.Register(oto.New(oto.Options{
		PeriodSize:    opts.PeriodSize,
		PeriodCount:   opts.PeriodCount,
		LoggerFactory: opts.LoggerFactory,
	}))
	reg.Register(wavfile.New())

	return reg
}

// LoadFile reads the whole file at path with the loader registered for its
// extension. A path without an extension is treated as WAV.
func LoadFile(path string, loaders *audio.Registry) (audio.FormatDescriptor, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %w", audio.ErrOpenFile, err)
	}
	defer f.Close()

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = DefaultFormat
	}

	l, ok := loaders.Get(ext)
	if !ok {
		return audio.FormatDescriptor{}, nil, fmt.Errorf("%w: %q", audio.ErrUnknownFormat, ext)
	}

	return l.Load(f)
}

// Play loads cfg.File, opens cfg.Device on cfg.Backend and plays the file to
// the end. The device is closed before Play returns, on every path.
//
// Errors name the failing operation ("config", "load", "open", "play") so the
// caller can print them as a single diagnostic line.
func Play(
	ctx context.Context,
	cfg config.Config,
	loaders *audio.Registry,
	backends *device.Registry,
	lf logging.LoggerFactory,
) (stats playback.Stats, err error) {
	log := logutil.Logger(lf, "wavplay")

	if err := cfg.Validate(); err != nil {
		return stats, fmt.Errorf("config: %w", err)
	}

	format, err := cfg.SampleFormat()
	if err != nil {
		return stats, fmt.Errorf("config: %w", err)
	}

	// loading first means an unplayable file never touches the device
	desc, data, err := LoadFile(cfg.File, loaders)
	if err != nil {
		return stats, fmt.Errorf("load %s: %w", cfg.File, err)
	}
	log.Infof("%s: %s", cfg.File, desc)

	backend, ok := backends.Get(cfg.Backend)
	if !ok {
		return stats, fmt.Errorf("open: %w: %q (have %s)",
			device.ErrUnknownBackend, cfg.Backend, strings.Join(backends.Names(), ", "))
	}

	dev, err := backend.Open(cfg.Device)
	if err != nil {
		return stats, fmt.Errorf("open: %w", err)
	}

	player := playback.NewPlayer(dev, playback.Options{
		ChunkSize:     cfg.ChunkSize,
		Format:        format,
		LoggerFactory: lf,
	})

	defer func() {
		if cerr := player.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	stats, err = player.Play(ctx, desc, data)
	if err != nil {
		return stats, fmt.Errorf("play %s: %w", dev.Name(), err)
	}

	log.Infof("%s: done, %s", dev.Name(), stats)
	if stats.Underruns > 0 {
		log.Warnf("%s: %d of %d chunks hit an underrun", dev.Name(), stats.Underruns, stats.Chunks)
	}

	return stats, nil
}
