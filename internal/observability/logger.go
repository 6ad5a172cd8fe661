package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig is the subset of configuration the logger needs.
type LoggerConfig interface {
	LoggingLevel() string
	LoggingFormat() string
}

// NewLogger builds a slog.Logger writing to stderr, honoring the configured
// level (debug, info, warn, error) and format (text or json).
func NewLogger(cfg LoggerConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg.LoggingLevel(), cfg.LoggingFormat())
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
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
