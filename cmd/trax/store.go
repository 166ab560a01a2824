package main

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trax/internal/config"
	"github.com/alexanderramin/trax/internal/rowstore"
	"github.com/alexanderramin/trax/internal/rowstore/bolt"
	"github.com/alexanderramin/trax/internal/rowstore/redis"
	"github.com/alexanderramin/trax/internal/rowstore/sheets"
	"github.com/alexanderramin/trax/internal/rowstore/sqlite"
	"github.com/rs/zerolog"
)

// openRowStore opens and authenticates the configured backend. Local file
// backends start empty, so the configured user is provisioned on open.
func openRowStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (rowstore.Store, error) {
	var (
		store rowstore.Store
		local bool
		err   error
	)

	switch cfg.Store.Backend {
	case config.BackendSheets:
		store, err = sheets.NewFromFile(ctx, cfg.Store.Sheets.SpreadsheetID, cfg.Store.Sheets.CredentialsFile)
	case config.BackendSQLite:
		store, err = sqlite.Open(cfg.Store.SQLite.Path)
		local = true
	case config.BackendBolt:
		store, err = bolt.Open(cfg.Store.Bolt.Path)
		local = true
	case config.BackendRedis:
		store, err = redis.Open(ctx, redis.Options{
			Addr:      cfg.Store.Redis.Addr,
			Password:  cfg.Store.Redis.Password,
			DB:        cfg.Store.Redis.DB,
			KeyPrefix: cfg.Store.Redis.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Authenticate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	if p, ok := store.(rowstore.Provisioner); ok && local {
		if err := p.AddUser(ctx, cfg.User); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	logger.Debug().
		Str("backend", cfg.Store.Backend).
		Str("user", cfg.User).
		Msg("row store ready")
	return store, nil
}
