package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/tubegrow/clipforge/internal/services"
	"github.com/tubegrow/clipforge/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	godotenv.Load()

	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	svc := services.NewTubeGrowService(config.API.BaseURL, config.API.Token, nil, config.API.RateLimit)
	apiService := services.NewAPIService(config.API.BaseURL, config.API.Token, nil)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    svc,
		API:        apiService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "clipforge",
		Usage:    "Trim and render AI-suggested clips from your channel's videos",
		Version:  "0.3.0",
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
