package bootstrap

import (
	"io"
	"log/slog"

	"github.com/abgdnv/stockmanager/pkg/logger"
)

// NewLogger creates a JSON slog.Logger writing to w at the specified log level.
// Records logged with a request context carry its request id.
// The console owns stdout, so callers normally pass os.Stderr.
func NewLogger(level string, w io.Writer) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	return slog.New(logger.NewContextHandler(slog.NewJSONHandler(w, loggerOpts)))
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
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
