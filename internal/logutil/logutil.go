// SPDX-License-Identifier: EPL-2.0

// Package logutil builds the pion/logging factories shared by the packages
// of this module.
package logutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/pion/logging"
)

var levels = map[string]logging.LogLevel{
	"disabled": logging.LogLevelDisabled,
	"error":    logging.LogLevelError,
	"warn":     logging.LogLevelWarn,
	"info":     logging.LogLevelInfo,
	"debug":    logging.LogLevelDebug,
	"trace":    logging.LogLevelTrace,
}

// ParseLevel maps a level name ("error", "warn", "info", "debug", "trace"
// or "disabled") to a pion log level.
func ParseLevel(s string) (logging.LogLevel, error) {
	lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return logging.LogLevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// NewFactory returns a factory whose loggers write to w at level and above.
func NewFactory(w io.Writer, level logging.LogLevel) logging.LoggerFactory {
	return &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: level,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
}

// Logger returns a logger for scope from f, or a silent one when f is nil.
func Logger(f logging.LoggerFactory, scope string) logging.LeveledLogger {
	if f == nil {
		f = NewFactory(io.Discard, logging.LogLevelDisabled)
	}
	return f.NewLogger(scope)
}
