package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const ledgerKeyPrefix = "webhook:event:"

var _ ReplayLedger = (*RedisReplayLedger)(nil)

type RedisConfig struct {
	Client *redis.Client
}

type RedisReplayLedger struct {
	client *redis.Client
}

func NewRedisReplayLedger(cfg RedisConfig) *RedisReplayLedger {
	return &RedisReplayLedger{client: cfg.Client}
}

func (l *RedisReplayLedger) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	claimed, err := l.client.SetNX(ctx, ledgerKeyPrefix+eventID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim event %s: %w", eventID, err)
	}
	return claimed, nil
}
