package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger configures the slog logger: colorful dev output locally, JSON
// for production-like environments.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	writer := os.Stdout

	if env == "dev" || env == "local" {
		handler := tint.NewHandler(writer, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
		return slog.New(handler)
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
