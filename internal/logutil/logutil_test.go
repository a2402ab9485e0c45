// SPDX-License-Identifier: EPL-2.0

package logutil

import (
	"bytes"
	"testing"

	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]logging.LogLevel{
		"error":    logging.LogLevelError,
		"WARN":     logging.LogLevelWarn,
		" info ":   logging.LogLevelInfo,
		"debug":    logging.LogLevelDebug,
		"trace":    logging.LogLevelTrace,
		"disabled": logging.LogLevelDisabled,
	}

	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, "ParseLevel(%q)", in)
		assert.Equal(t, want, got, "ParseLevel(%q)", in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewFactory_FiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewFactory(&buf, logging.LogLevelWarn).NewLogger("playback")

	log.Info("hidden")
	log.Warnf("underrun on chunk %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "underrun on chunk 3")
	assert.Contains(t, out, "playback")
}

func TestLogger_NilFactory(t *testing.T) {
	t.Parallel()

	log := Logger(nil, "wavplay")
	require.NotNil(t, log)

	// must not panic
	log.Errorf("nothing to see: %d", 1)
}
