package main

import (
	"context"
	"time"

	"life-planner/internal/api"
	"life-planner/internal/cli"
	"life-planner/internal/config"
	"life-planner/internal/logging"
)

// openSession wires the logger, the configured store and the API for one
// command run
func openSession(ctx context.Context, cfg *config.Config) (*cli.Session, error) {
	level := logging.EffectiveLevel(cfg.Application.LogLevel, cfg.Application.Verbose)
	logger, closeLog, err := logging.New(level, cfg.Application.LogFile)
	if err != nil {
		return nil, &config.ConfigError{Field: "application.log_file", Message: err.Error()}
	}

	store, err := config.CreateStore(ctx, cfg, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	logger.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("path", cfg.GetStoragePath()).
		Msg("store opened")

	return &cli.Session{
		API:    api.New(store, cfg, time.Now, logger),
		Logger: logger,
		Close: func() error {
			defer closeLog()
			return store.Close()
		},
	}, nil
}
