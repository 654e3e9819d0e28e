// Package logging holds the process-wide logr.Logger used by the highs
// packages. The logger is backed by zap through zapr; until SetLogger is
// called every message is discarded.
package logging

import (
	"fmt"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels passed to logr's V().
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

var current atomic.Pointer[logr.Logger]

func init() {
	discard := logr.Discard()
	current.Store(&discard)
}

// Log returns the current process-wide logger.
func Log() logr.Logger {
	return *current.Load()
}

// SetLogger replaces the process-wide logger.
func SetLogger(l logr.Logger) {
	current.Store(&l)
}

// NewLogger builds a zap-backed logr.Logger. level is a logr verbosity
// (INFO, DEBUG, TRACE); development switches to zap's console encoder.
func NewLogger(level int, development bool) (logr.Logger, error) {
	if level < INFO {
		return logr.Logger{}, fmt.Errorf("invalid log level %d", level)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	// logr verbosity v maps to zap level -v
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-level))

	zl, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// ParseLevel maps a level name to a logr verbosity.
func ParseLevel(name string) (int, error) {
	switch name {
	case "", "info":
		return INFO, nil
	case "debug":
		return DEBUG, nil
	case "trace":
		return TRACE, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// NewTestLogger installs a development logger at TRACE verbosity. Test
// suites call it once before running specs.
func NewTestLogger() {
	l, err := NewLogger(TRACE, true)
	if err != nil {
		panic(err)
	}
	SetLogger(l)
}
