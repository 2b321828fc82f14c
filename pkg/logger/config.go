package logger

import (
	"log/slog"
	"strings"
)

// Config holds logger settings loadable from the environment via pkg/config.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`   // Level is one of debug, info, warn, error.
	Format Format `env:"LOG_FORMAT" envDefault:"text"`  // Format is json or text.
}

// NewFromConfig creates a logger from a Config. Explicit options are applied
// after the config and take precedence. Unknown level or format names fall
// back to info and text rather than failing, since the values typically come
// from the environment.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	format := cfg.Format
	switch format {
	case FormatJSON, FormatText:
	default:
		format = FormatText
	}

	base := []Option{
		WithLevel(parseLevel(cfg.Level)),
		WithFormat(format),
	}
	return New(append(base, opts...)...)
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
