package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initialises the global slog default logger. Every record carries the
// service name so api and statusd logs can be told apart in an aggregated
// stream. level may be "debug", "info", "warn", or "error" (default "info");
// format may be "json" or "text" (default "json").
func Setup(service, level, format string) {
	lvl := ParseLevel(level)

	opts := &slog.HandlerOptions{
		Level: lvl,
		// Source locations are only worth the log volume when debugging.
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if service != "" {
		logger = logger.With(slog.String("service", service))
	}
	slog.SetDefault(logger)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
