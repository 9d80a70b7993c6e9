package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/pedidos/internal/config"
	"github.com/MrJamesThe3rd/pedidos/internal/database"
)

// Open connects the slot backend chosen by STORAGE_BACKEND. The returned func releases it.
func Open(ctx context.Context, cfg *config.Config) (*Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return New(NewMemoryKV()), func() {}, nil

	case config.BackendRedis:
		kv, err := NewRedisKV(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, nil, err
		}

		return New(kv), func() {
			if err := kv.Close(); err != nil {
				slog.Error("failed to close redis", "error", err)
			}
		}, nil

	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		kv := NewPostgresKV(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return New(kv), func() { db.Close() }, nil

	case config.BackendFile, "":
		return New(NewFileKV(cfg.Storage.Dir)), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
