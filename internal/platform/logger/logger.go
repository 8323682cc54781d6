package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger. Local environments get human-readable
// text output; everything else logs JSON for ingestion.
func New(env string) *slog.Logger {
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
