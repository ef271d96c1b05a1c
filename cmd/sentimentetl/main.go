package main

import (
	"context"
	"os"

	"github.com/Viiraj7/financial-sentiment-etl/internal/app"
	"github.com/Viiraj7/financial-sentiment-etl/internal/config"
	"github.com/Viiraj7/financial-sentiment-etl/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("application startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
