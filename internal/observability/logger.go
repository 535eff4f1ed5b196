// Package observability builds the tracker's structured logger and
// Prometheus metrics.
package observability

import (
	"log/slog"
	"os"

	"github.com/rocklandwatch/firewatch-tracker/internal/config"
)

// NewLogger builds a slog.Logger honoring LOG_LEVEL and LOG_FORMAT.
// Unrecognized values fall back to info and json.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
