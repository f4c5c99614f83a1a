package config

import (
	"context"
	"fmt"
	"os"

	"worktime/internal/repository"
	"worktime/internal/repository/memory"
	"worktime/internal/repository/sqlite"
)

// CreateRepository opens the storage backend selected by Application.Env
func CreateRepository(ctx context.Context, config *Config) (repository.Repository, error) {
	loc, err := config.GetLocation()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}

	opts := sqlite.Options{
		QueryTimeout: config.Database.QueryTimeout,
		WriteTimeout: config.Database.WriteTimeout,
		BusyTimeout:  config.Database.BusyTimeout,
		Location:     loc,
	}

	switch config.Application.Env {
	case EnvMemory:
		return memory.New(loc), nil
	case EnvTest:
		opts.Path = sqlite.MemoryPath
	default:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		opts.Path = config.GetDatabasePath()
	}

	repo, err := sqlite.NewWithOptions(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory SQLite repository for testing
func CreateTestRepository(ctx context.Context) (repository.Repository, error) {
	cfg := NewConfig()
	cfg.Application.Env = EnvTest
	return CreateRepository(ctx, cfg)
}
