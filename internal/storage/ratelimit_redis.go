package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var rateLimitLua string

var rateLimitScript = redis.NewScript(rateLimitLua)

const rateLimitKeyPrefix = "ratelimit:"

var _ RateLimiter = (*RedisRateLimiter)(nil)

// RedisRateLimiter shares one sliding window per key across all gateway
// replicas.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(cfg RedisConfig, limit int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: cfg.Client,
		limit:  limit,
		window: time.Second,
	}
}

func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	result, err := rateLimitScript.Run(ctx, r.client,
		[]string{rateLimitKeyPrefix + key},
		r.window.Milliseconds(),
		r.limit,
		int((r.window + time.Second).Seconds()),
	).Int()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	return RateLimitResult{
		Allowed:    result == 1,
		RetryAfter: r.window,
	}, nil
}
