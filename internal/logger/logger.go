package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON-structured logger writing to w at the given level.
func New(level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps a config string to a slog level; unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default is the default logger instance.
var Default = New(slog.LevelInfo, os.Stderr)

// Discard drops everything.
var Discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Or returns l, or Default when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Default
	}
	return l
}
