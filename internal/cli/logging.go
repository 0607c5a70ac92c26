package cli

import (
	"log/slog"
	"os"

	"github.com/forgedata/mlforge/internal/config"
)

// setupLogger builds a slog logger from the resolved logging settings and
// installs it as the process default.
func setupLogger(settings *config.Settings) *slog.Logger {
	level := slog.LevelInfo
	switch settings.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if settings.Debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if settings.Logging.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
