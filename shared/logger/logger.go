package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger

func init() {
	// Safe default for tests and tools; services call Initialize after loading config.
	Initialize("info", false)
}

// Initialize replaces the global logger. useJSON selects the JSON handler, otherwise text.
func Initialize(level string, useJSON bool) {
	initialize(os.Stdout, level, useJSON)
}

// Silence routes all log output to io.Discard. Used by tests that exercise failure paths.
func Silence() {
	initialize(io.Discard, "error", false)
}

func initialize(out io.Writer, level string, useJSON bool) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: true,
	}

	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
