// Package cache holds Redis-backed caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salesledger/backend/internal/application/adapter"
	"github.com/salesledger/backend/internal/domain/entity"
	"github.com/salesledger/backend/internal/domain/valueobject"
)

const generationKey = "report:generation"

// reportCache keys entries by a generation counter. Invalidate bumps the
// counter so every previously written key becomes unreachable and expires on its own.
type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a Redis report cache. It returns nil when client is nil
// so callers fall back to uncached aggregation.
func NewReportCache(client *redis.Client, ttl time.Duration) adapter.ReportCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &reportCache{client: client, ttl: ttl}
}

func (c *reportCache) Get(ctx context.Context, dimension entity.ReportDimension, period valueobject.DateRange) (*entity.ReportTable, int64, error) {
	generation, err := c.generation(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, key(generation, dimension, period)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, generation, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read cached report: %w", err)
	}

	var table entity.ReportTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, 0, fmt.Errorf("decode cached report: %w", err)
	}
	return &table, generation, nil
}

func (c *reportCache) Set(ctx context.Context, generation int64, table *entity.ReportTable, period valueobject.DateRange) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return c.client.Set(ctx, key(generation, table.Dimension, period), data, c.ttl).Err()
}

func (c *reportCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func key(generation int64, dimension entity.ReportDimension, period valueobject.DateRange) string {
	return fmt.Sprintf("report:v%d:%s:%s:%s", generation, dimension, period.StartLabel(), period.EndLabel())
}

func (c *reportCache) generation(ctx context.Context) (int64, error) {
	value, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read report generation: %w", err)
	}
	return strconv.ParseInt(value, 10, 64)
}
