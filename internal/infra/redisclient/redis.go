// Package redisclient opens the optional Redis connection used for caching
// and shared rate-limit counters.
package redisclient

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salesledger/backend/config"
)

// Connect returns a ready client, or nil when Redis is not configured or not
// reachable. Callers treat nil as "run without Redis".
func Connect(cfg *config.RedisConfig) *redis.Client {
	if cfg.URL == "" {
		slog.Warn("REDIS_URL is not set, report caching is disabled")
		return nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Error("Invalid REDIS_URL, report caching is disabled", "error", err)
		return nil
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to Redis, report caching is disabled", "error", err)
		_ = client.Close()
		return nil
	}

	slog.Info("Redis connection established", "addr", opts.Addr)
	return client
}
