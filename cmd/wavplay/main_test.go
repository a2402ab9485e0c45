// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/wavplay/internal/audiotest"
)

func writeWAV(t *testing.T, tag uint16, bits int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	require.NoError(t, os.WriteFile(path, audiotest.WAV(audiotest.WAVSpec{
		FormatTag:     tag,
		Channels:      2,
		SampleRate:    44100,
		BitsPerSample: bits,
		Data:          audiotest.Ramp(400),
	}), 0o644))

	return path
}

func TestRun(t *testing.T) {
	t.Parallel()

	pcm := writeWAV(t, 1, 16)
	float := writeWAV(t, 3, 32)
	out := filepath.Join(t.TempDir(), "out.wav")

	tests := []struct {
		name string
		args []string
		code int
		diag string
	}{
		{
			name: "plays to a file",
			args: []string{"-backend", "wavfile", "-device", out, "-log-level", "error", pcm},
			code: exitOK,
		},
		{
			name: "float input",
			args: []string{"-backend", "wavfile", "-device", out, float},
			code: exitFailure,
			diag: "wavplay: load " + float + ": unsupported sample encoding: IEEE float",
		},
		{
			name: "missing file",
			args: []string{"-backend", "wavfile", "-device", out, filepath.Join(t.TempDir(), "x.wav")},
			code: exitFailure,
			diag: "cannot open audio file",
		},
		{
			name: "unknown backend",
			args: []string{"-backend", "jack", pcm},
			code: exitFailure,
			diag: "unknown output backend",
		},
		{
			name: "bad chunk size",
			args: []string{"-chunk-size", "0", pcm},
			code: exitFailure,
			diag: "wavplay: config: invalid configuration: chunk size 0",
		},
		{
			name: "bad log level",
			args: []string{"-log-level", "chatty", pcm},
			code: exitFailure,
			diag: "unknown log level",
		},
		{
			name: "two files",
			args: []string{pcm, pcm},
			code: exitFailure,
			diag: "only one file",
		},
		{
			name: "unknown flag",
			args: []string{"-volume", "11"},
			code: exitFailure,
			diag: "flag provided but not defined",
		},
		{
			name: "help",
			args: []string{"-h"},
			code: exitOK,
			diag: "usage: wavplay",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stderr)

			assert.Equal(t, tt.code, code, stderr.String())
			if tt.diag != "" {
				assert.Contains(t, stderr.String(), tt.diag)
			}
		})
	}
}

func TestRun_Interrupted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stderr bytes.Buffer
	out := filepath.Join(t.TempDir(), "out.wav")
	code := run(ctx, []string{"-backend", "wavfile", "-device", out, writeWAV(t, 1, 16)}, &stderr)

	assert.Equal(t, exitInterrupted, code)
	assert.Equal(t, "wavplay: interrupted", strings.TrimSpace(stderr.String()))
}
