package mock

import (
	"context"
	"sync"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis returns a client bound to a process-wide miniredis instance that
// backs the report cache and the shared rate-limit counters.
func NewRedis() *redis.Client {
	redisOnce.Do(
		func() {
			server, err := miniredis.Run()
			if err != nil {
				panic(err)
			}
			redisServer = server
			redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
		},
	)

	return redisConn
}

// ClearRedis drops every cached report and counter, including the cache generation.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}

// ExpireRedis advances miniredis' clock so TTL-bound entries lapse.
func ExpireRedis(d time.Duration) {
	NewRedis()
	redisServer.FastForward(d)
}

// RedisKeys lists keys matching pattern, e.g. "report:v*".
func RedisKeys(pattern string) ([]string, error) {
	return NewRedis().Keys(context.Background(), pattern).Result()
}
