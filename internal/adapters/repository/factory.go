package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/okian/callbreak/internal/config"
)

// NewFromConfig builds the Store selected by cfg.Storage. The redis backend
// is pinged once so a bad address fails here rather than on the first save.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return NewMemoryStore(), nil
	case config.StorageRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Storage)
	}
}
