// Package logger builds the process-wide slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup returns a logger writing to w at level. format "json" selects the
// JSON handler; anything else gets the human-readable text handler.
func Setup(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// SetupDefault builds a logger with Setup and installs it as slog's default,
// so package-level slog calls (writeJSON's encode failure) use it too.
// A nil w means os.Stdout.
func SetupDefault(w io.Writer, level slog.Level, format string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	l := Setup(w, level, format)
	slog.SetDefault(l)
	return l
}
