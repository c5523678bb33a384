package logging

import (
	"log/slog"
	"os"
)

// Setup installs the global slog logger, JSON to stdout.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
