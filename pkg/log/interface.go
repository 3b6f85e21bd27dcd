// Package log provides structured logging for stabsel's modeling pipeline.
//
// It defines a minimal, slog-compatible Logger interface with a
// zerolog-backed default implementation. Informational diagnostics such as
// dropped-row counts and failed-trial counts flow through this package;
// library code never writes to stdout directly.
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's
// log/slog field conventions. Fields are alternating key-value pairs.
type Logger interface {
	// Debug logs detailed diagnostic information, usually disabled outside
	// of development.
	Debug(msg string, fields ...any)

	// Info logs general operational information such as per-run summaries.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations that do not stop the
	// current run, e.g. a degenerate train/test split.
	Warn(msg string, fields ...any)

	// Error logs error conditions that should be investigated.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated on
	// every subsequent message.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level; values are compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
