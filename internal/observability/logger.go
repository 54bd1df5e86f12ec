package observability

import (
	"log/slog"
	"os"
)

func NewLogger(env string, debug bool) *slog.Logger {
	level := slog.LevelInfo

	if debug || env == "development" || env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewTraceHandler(handler))
}
