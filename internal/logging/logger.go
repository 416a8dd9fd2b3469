package logging

import (
	"log/slog"
	"os"
)

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(stdoutHandler()))
}

// Tee keeps stdout logging and also sends records to store.
func Tee(store slog.Handler) {
	slog.SetDefault(slog.New(NewMultiHandler(stdoutHandler(), store)))
}

func stdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
}
