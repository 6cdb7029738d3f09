// Package logging provides the structured diagnostic logger.
//
// Diagnostics go to stderr; stdout carries only received lines.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/allbin/serialtail/internal/config"
)

// Logger wraps slog.Logger so components share one configured handler.
//
// All methods are safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to w with the configured level and format.
// Format "json" selects the JSON handler, anything else the text handler.
func New(cfg config.LoggingConfig, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler).With(slog.String("service", "serialtail")),
	}
}

// parseLevel converts a string log level to slog.Level.
//
// Supported levels: debug, info, warn, error. Unrecognised values fall back
// to warn, which keeps a normal run silent.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// With returns a new Logger with additional default attributes.
//
//	portLogger := logger.With("device", "/dev/ttyACM0")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
