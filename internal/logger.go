package internal

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger: human-readable text in development,
// JSON everywhere else.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ComponentLogger tags a logger with the owning component so pipeline stages
// (intake, pdf, mail) are distinguishable in aggregated output.
func ComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}
