package main

import (
	"context"
	"log/slog"
	"os"

	_ "staybook/docs"
	"staybook/internal/app"
	"staybook/internal/config"
	"staybook/internal/obs"
)

// @title staybook API
// @version 1.0
// @description Property booking service: properties, guests, reservations and cancellations.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := obs.NewLogger(cfg.Env)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		logger.Error("application finished with error", "error", err)
		os.Exit(1)
	}
}
