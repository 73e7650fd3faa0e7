package cache

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisFromURL parses a redis:// URL and pings the server. A failed ping is logged, not
// fatal, because the status overlay degrades to token claims without Redis.
func NewRedisFromURL(ctx context.Context, redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis ping failed: %v", err)
	}
	return rdb
}

func Close(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
