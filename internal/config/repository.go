package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"life-planner/internal/errors"
	"life-planner/internal/repository"
	"life-planner/internal/repository/jsonfile"
	"life-planner/internal/repository/sqlite"
)

// CreateStore opens the store selected by the storage configuration
func CreateStore(ctx context.Context, config *Config, logger zerolog.Logger) (repository.Store, error) {
	path := config.GetStoragePath()

	switch config.Storage.Backend {
	case BackendJSON:
		return jsonfile.New(path, fs.FileMode(config.Storage.DirPermissions), logger), nil
	case BackendSQLite:
		if err := os.MkdirAll(config.Storage.Dir, fs.FileMode(config.Storage.DirPermissions)); err != nil {
			return nil, errors.NewStorageError("create data directory", err)
		}
		store, err := sqlite.New(ctx, path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return store, nil
	default:
		return nil, &ConfigError{Field: "storage.backend", Message: "unknown backend " + config.Storage.Backend}
	}
}

// CreateTestStore creates an in-memory store for testing
func CreateTestStore(ctx context.Context) (repository.Store, error) {
	store, err := sqlite.New(ctx, ":memory:", zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return store, nil
}
