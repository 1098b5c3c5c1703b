package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/stickerdiary/internal/card"
	"github.com/at-ishikawa/stickerdiary/internal/config"
	"github.com/at-ishikawa/stickerdiary/internal/database"
	"github.com/at-ishikawa/stickerdiary/internal/diary"
	"github.com/at-ishikawa/stickerdiary/internal/storage"
	"github.com/at-ishikawa/stickerdiary/internal/storage/sqlstore"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// app holds the repositories every command works on.
type app struct {
	cfg     *config.Config
	diaries diary.Repository
	cards   card.Repository
	close   func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:     cfg,
		diaries: diary.NewStoreRepository(store),
		cards:   card.NewStoreRepository(store),
		close:   closeStore,
	}

	seeded, err := card.SeedIfEmpty(ctx, a.cards, cfg.Catalog.SeedFile)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("card.SeedIfEmpty() > %w", err)
	}
	if seeded > 0 {
		slog.Info("seeded the card catalog", "file", cfg.Catalog.SeedFile, "cards", seeded)
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		slog.Warn("failed to close the store", "error", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	var store storage.Store
	closeStore := noop
	switch cfg.Storage.Driver {
	case "memory":
		store = storage.NewMemoryStore()
	case "file":
		fileStore, err := storage.NewFileStore(cfg.Storage.Directory)
		if err != nil {
			return nil, nil, fmt.Errorf("storage.NewFileStore(%s) > %w", cfg.Storage.Directory, err)
		}
		store = fileStore
	case "sql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.Ping(ctx, db, cfg.Database.ConnectAttempts); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Ping() > %w", err)
		}
		sqlStore, err := sqlstore.New(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("sqlstore.New() > %w", err)
		}
		store = sqlStore
		closeStore = db.Close
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Storage.Prefix != "" {
		store = storage.WithPrefix(store, cfg.Storage.Prefix)
	}
	return store, closeStore, nil
}
