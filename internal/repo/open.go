package repo

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/BuzzLyutic/checklist/internal/config"
)

// OpenBackend builds the backend selected by cfg.Store.
func OpenBackend(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemoryBackend(), nil
	case config.StoreFile:
		return NewFileBackend(cfg.StorePath)
	case config.StoreSQLite:
		return OpenSQLite(ctx, filepath.Join(cfg.StorePath, "checklist.db"))
	case config.StorePostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL)
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedisBackend(client, "checklist:"), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
