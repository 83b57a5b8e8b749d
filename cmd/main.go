package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/musicdb/internal/services"
	"github.com/desertthunder/musicdb/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	if err := config.ApplyEnv(".env"); err != nil {
		logger.Fatalf("application error: %v", err)
	}
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	apiService := services.NewAPIService(config.API.BaseURL, nil)
	apiService.SetRateLimit(config.API.RequestsPerSecond)

	cache := services.NewRequestCache(config.Cache.MaxSize, config.Cache.TTLDuration())
	defer cache.Stop()

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Catalog: services.NewAlbumService(apiService, cache),
		API:     apiService,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "musicdb",
		Usage:    "Browse the album catalogue from the terminal or the browser",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
