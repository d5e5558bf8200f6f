package main

import (
	"context"

	"github.com/JonMunkholm/bankimport/internal/config"
	"github.com/JonMunkholm/bankimport/internal/core"
	"github.com/JonMunkholm/bankimport/internal/store/postgres"
	"github.com/JonMunkholm/bankimport/internal/store/sqlite"
)

// openSource connects the configured existing-transaction store. It returns a
// nil source when none is configured or duplicate checking is disabled.
func openSource(ctx context.Context, cfg *config.Config) (core.ExistingTransactionSource, func(), error) {
	if !cfg.Duplicates.Enabled || !cfg.HasStore() {
		return nil, func() {}, nil
	}

	if cfg.SQLite.Path != "" {
		store, err := sqlite.Open(cfg.SQLite.Path, cfg.SQLite.BusyTimeout)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}

	store, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}
