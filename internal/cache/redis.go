package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/meduzzen/company-directory-api/internal/config"
)

// Connect builds the Redis client shared read-only across requests. The
// handle currently backs only the connectivity probe.
func Connect(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
		DB:   cfg.RedisDB,
	})
}

// Ping verifies connectivity to the Redis server.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
