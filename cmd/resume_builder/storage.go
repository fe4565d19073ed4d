package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/snapshot"
)

// openRepository connects the snapshot repository selected by cfg. The
// returned close func is never nil.
func openRepository(ctx context.Context, cfg config.StorageConfig) (snapshot.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return snapshot.NewMemoryRepository(), func() {}, nil

	case config.DriverSQLite:
		repo, err := snapshot.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[storage] sqlite snapshots at %s", cfg.SQLitePath)
		return repo, func() { _ = repo.Close() }, nil

	case config.DriverPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		log.Printf("[storage] postgres snapshots")
		return snapshot.NewPostgresRepository(database), database.Close, nil

	case config.DriverRedis:
		repo, err := snapshot.ConnectRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[storage] redis snapshots with prefix %q", cfg.RedisPrefix)
		return repo, func() { _ = repo.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
