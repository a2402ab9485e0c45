// SPDX-License-Identifier: EPL-2.0

package wavplay_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/wavplay"
	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/config"
	"github.com/ik5/wavplay/device"
	"github.com/ik5/wavplay/internal/audiotest"
	"github.com/ik5/wavplay/internal/logutil"
	"github.com/ik5/wavplay/playback"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func stereoWAV(frames int) []byte {
	return audiotest.WAV(audiotest.WAVSpec{
		FormatTag:     1,
		Channels:      2,
		SampleRate:    44100,
		BitsPerSample: 16,
		Data:          audiotest.Ramp(frames * 4),
	})
}

func testConfig(file string) config.Config {
	return config.Config{
		File:        file,
		Backend:     "mock",
		Device:      "hw:0,0",
		Format:      "S16_LE",
		ChunkSize:   256,
		PeriodSize:  1024,
		PeriodCount: 4,
		LogLevel:    "info",
	}
}

func mockBackends(b *audiotest.MockBackend) *device.Registry {
	reg := device.NewRegistry()
	reg.Register(b)
	return reg
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	wavData := stereoWAV(100)
	aiffData := audiotest.AIFF(1, 8000, 16, []int{1, -1, 2, -2})

	tests := []struct {
		name    string
		file    string
		data    []byte
		want    audio.FormatDescriptor
		wantErr error
	}{
		{
			name: "wav",
			file: "a.wav",
			data: wavData,
			want: audio.FormatDescriptor{Encoding: audio.EncodingPCM, SampleRate: 44100, Channels: 2, BytesPerSample: 2, Frames: 100},
		},
		{
			name: "upper case extension",
			file: "A.WAV",
			data: wavData,
			want: audio.FormatDescriptor{Encoding: audio.EncodingPCM, SampleRate: 44100, Channels: 2, BytesPerSample: 2, Frames: 100},
		},
		{
			name: "no extension is wav",
			file: "Noise",
			data: wavData,
			want: audio.FormatDescriptor{Encoding: audio.EncodingPCM, SampleRate: 44100, Channels: 2, BytesPerSample: 2, Frames: 100},
		},
		{
			name: "aiff",
			file: "a.aiff",
			data: aiffData,
			want: audio.FormatDescriptor{Encoding: audio.EncodingPCM, SampleRate: 8000, Channels: 1, BytesPerSample: 2, Frames: 4},
		},
		{
			name:    "unknown extension",
			file:    "a.mp3",
			data:    wavData,
			wantErr: audio.ErrUnknownFormat,
		},
		{
			name:    "not a wav",
			file:    "a.wav",
			data:    []byte("this is not audio at all, just text"),
			wantErr: audio.ErrMalformedHeader,
		},
		{
			name: "float wav",
			file: "f.wav",
			data: audiotest.WAV(audiotest.WAVSpec{
				FormatTag: 3, Channels: 1, SampleRate: 48000, BitsPerSample: 32, Data: make([]byte, 16),
			}),
			wantErr: audio.ErrUnsupportedEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, tt.file, tt.data)
			desc, data, err := wavplay.LoadFile(path, wavplay.DefaultLoaders())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, desc)
			assert.Len(t, data, int(desc.DataSize()))
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, _, err := wavplay.LoadFile(filepath.Join(t.TempDir(), "nope.wav"), wavplay.DefaultLoaders())
	require.ErrorIs(t, err, audio.ErrOpenFile)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPlay(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "Noise.wav", stereoWAV(100))
	backend := audiotest.NewMockBackend("mock")

	var logs bytes.Buffer
	lf := logutil.NewFactory(&logs, logging.LogLevelInfo)

	stats, err := wavplay.Play(context.Background(), testConfig(path), wavplay.DefaultLoaders(), mockBackends(backend), lf)
	require.NoError(t, err)

	assert.Equal(t, playback.Stats{Chunks: 2, BytesWritten: 400}, stats)

	require.Len(t, backend.Opened, 1)
	dev := backend.Last()
	assert.Equal(t, "hw:0,0", dev.Name())
	assert.Equal(t, []int{256, 144}, dev.WriteSizes())
	assert.Equal(t, []string{"write", "write", "drain", "close"}, dev.Calls[len(dev.Calls)-4:])

	assert.Contains(t, logs.String(), "PCM 44100Hz 2ch 16-bit, 100 frames")
	assert.Contains(t, logs.String(), "2 chunks, 400 bytes written")
}

func TestPlay_NonPCMNeverOpensDevice(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "float.wav", audiotest.WAV(audiotest.WAVSpec{
		FormatTag: 3, Channels: 2, SampleRate: 44100, BitsPerSample: 32, Data: make([]byte, 32),
	}))
	backend := audiotest.NewMockBackend("mock")

	_, err := wavplay.Play(context.Background(), testConfig(path), wavplay.DefaultLoaders(), mockBackends(backend), nil)
	require.ErrorIs(t, err, audio.ErrUnsupportedEncoding)
	assert.Empty(t, backend.Opened)
}

func TestPlay_RateRejected(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "Noise.wav", stereoWAV(100))
	backend := audiotest.NewMockBackend("mock")
	backend.Configure = func(d *audiotest.MockDevice) {
		d.Reject["rate"] = audiotest.ErrRejected
	}

	_, err := wavplay.Play(context.Background(), testConfig(path), wavplay.DefaultLoaders(), mockBackends(backend), nil)

	var negErr *playback.NegotiationError
	require.ErrorAs(t, err, &negErr)
	assert.Equal(t, playback.StepRate, negErr.Step)
	assert.Equal(t, "play hw:0,0: set rate: Invalid argument", err.Error())

	dev := backend.Last()
	assert.True(t, dev.Closed)
	assert.Zero(t, dev.Count("write"))
}

func TestPlay_EmptyData(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "empty.wav", stereoWAV(0))
	backend := audiotest.NewMockBackend("mock")

	stats, err := wavplay.Play(context.Background(), testConfig(path), wavplay.DefaultLoaders(), mockBackends(backend), nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Chunks)

	dev := backend.Last()
	assert.Zero(t, dev.Count("write"))
	assert.Equal(t, 1, dev.Count("drain"))
	assert.True(t, dev.Closed)
}

func TestPlay_Failures(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "Noise.wav", stereoWAV(10))

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		backend func() *audiotest.MockBackend
		wantErr error
		prefix  string
	}{
		{
			name:    "invalid config",
			mutate:  func(c *config.Config) { c.ChunkSize = 0 },
			wantErr: config.ErrInvalid,
			prefix:  "config: ",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.Backend = "pulse" },
			wantErr: device.ErrUnknownBackend,
			prefix:  "open: ",
		},
		{
			name:    "missing file",
			mutate:  func(c *config.Config) { c.File = filepath.Join(filepath.Dir(path), "gone.wav") },
			wantErr: audio.ErrOpenFile,
			prefix:  "load ",
		},
		{
			name: "open fails",
			backend: func() *audiotest.MockBackend {
				b := audiotest.NewMockBackend("mock")
				b.OpenErr = errors.New("Device or resource busy")
				return b
			},
			prefix: "open: open hw:0,0: Device or resource busy",
		},
		{
			name: "drain fails",
			backend: func() *audiotest.MockBackend {
				b := audiotest.NewMockBackend("mock")
				b.Configure = func(d *audiotest.MockDevice) { d.DrainErr = errors.New("No such device") }
				return b
			},
			prefix: "play hw:0,0: drain: No such device",
		},
		{
			name: "close fails",
			backend: func() *audiotest.MockBackend {
				b := audiotest.NewMockBackend("mock")
				b.Configure = func(d *audiotest.MockDevice) { d.CloseErr = errors.New("Bad file descriptor") }
				return b
			},
			prefix: "close: Bad file descriptor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(path)
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			backend := audiotest.NewMockBackend("mock")
			if tt.backend != nil {
				backend = tt.backend()
			}

			_, err := wavplay.Play(context.Background(), cfg, wavplay.DefaultLoaders(), mockBackends(backend), nil)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.prefix)

			for _, d := range backend.Opened {
				assert.True(t, d.Closed, "device left open")
			}
		})
	}
}

func TestPlay_Cancelled(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "Noise.wav", stereoWAV(100))
	backend := audiotest.NewMockBackend("mock")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := wavplay.Play(ctx, testConfig(path), wavplay.DefaultLoaders(), mockBackends(backend), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, backend.Last().Closed)
}

func TestPlay_WavfileEndToEnd(t *testing.T) {
	t.Parallel()

	in := writeFile(t, "in.aiff", audiotest.AIFF(2, 22050, 24, []int{
		1, -1, 8388607, -8388608, 1000, -1000, 0, 42,
	}))
	out := filepath.Join(t.TempDir(), "out.wav")

	cfg := testConfig(in)
	cfg.Backend = "wavfile"
	cfg.Device = out
	cfg.Format = "S24_3LE"

	stats, err := wavplay.Play(context.Background(), cfg,
		wavplay.DefaultLoaders(), wavplay.DefaultBackends(wavplay.BackendOptions{}), nil)
	require.NoError(t, err)
	assert.Equal(t, 24, stats.BytesWritten)

	wantDesc, wantData, err := wavplay.LoadFile(in, wavplay.DefaultLoaders())
	require.NoError(t, err)

	gotDesc, gotData, err := wavplay.LoadFile(out, wavplay.DefaultLoaders())
	require.NoError(t, err)

	assert.Equal(t, wantDesc, gotDesc)
	assert.Equal(t, wantData, gotData)
}

func TestDefaultBackends(t *testing.T) {
	t.Parallel()

	reg := wavplay.DefaultBackends(wavplay.BackendOptions{PeriodSize: 256, PeriodCount: 2})
	assert.Equal(t, []string{"alsa", "oto", "wavfile"}, reg.Names())
}
