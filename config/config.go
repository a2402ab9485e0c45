// SPDX-License-Identifier: EPL-2.0

// Package config holds the runtime settings of wavplay, read from WAVPLAY_*
// environment variables and optionally overridden by command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pion/logging"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/internal/logutil"
)

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all runtime configuration.
type Config struct {
	// File is the audio file to play.
	File string

	// Output
	Backend     string
	Device      string
	Format      string // sample format requested from the device: U8, S16_LE, S24_3LE, S32_LE
	ChunkSize   int    // transfer buffer in bytes
	PeriodSize  int    // frames per hardware period
	PeriodCount int    // periods per hardware buffer

	LogLevel string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		File: envStr("WAVPLAY_FILE", "Noise.wav"),

		Backend:     envStr("WAVPLAY_BACKEND", "alsa"),
		Device:      envStr("WAVPLAY_DEVICE", "default"),
		Format:      envStr("WAVPLAY_FORMAT", "S16_LE"),
		ChunkSize:   envInt("WAVPLAY_CHUNK_SIZE", 512),
		PeriodSize:  envInt("WAVPLAY_PERIOD_SIZE", 1024),
		PeriodCount: envInt("WAVPLAY_PERIOD_COUNT", 4),

		LogLevel: envStr("WAVPLAY_LOG_LEVEL", "info"),
	}
}

// BindFlags registers one flag per field on fs, defaulting to the current
// values so flags override the environment.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "file", c.File, "audio file to play (also the first argument)")
	fs.StringVar(&c.Backend, "backend", c.Backend, "output backend: alsa, oto or wavfile")
	fs.StringVar(&c.Device, "device", c.Device, "output device: default or hw:CARD,DEVICE; a file path for wavfile")
	fs.StringVar(&c.Format, "format", c.Format, "sample format: U8, S16_LE, S24_3LE or S32_LE")
	fs.IntVar(&c.ChunkSize, "chunk-size", c.ChunkSize, "transfer buffer size in bytes")
	fs.IntVar(&c.PeriodSize, "period-size", c.PeriodSize, "frames per hardware period")
	fs.IntVar(&c.PeriodCount, "period-count", c.PeriodCount, "periods per hardware buffer")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: error, warn, info, debug, trace or disabled")
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.File == "":
		return fmt.Errorf("%w: no file given", ErrInvalid)
	case c.Backend == "":
		return fmt.Errorf("%w: no backend given", ErrInvalid)
	case c.Device == "":
		return fmt.Errorf("%w: no device given", ErrInvalid)
	case c.ChunkSize < 1:
		return fmt.Errorf("%w: chunk size %d", ErrInvalid, c.ChunkSize)
	case c.PeriodSize < 1 || c.PeriodCount < 1:
		return fmt.Errorf("%w: period geometry %d x %d", ErrInvalid, c.PeriodCount, c.PeriodSize)
	}

	if _, err := c.SampleFormat(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

func (c Config) SampleFormat() (audio.SampleFormat, error) {
	return audio.ParseSampleFormat(c.Format)
}

func (c Config) Level() (logging.LogLevel, error) {
	return logutil.ParseLevel(c.LogLevel)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
