package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/solvenote/solvenote/internal/service"
)

const statsKey = "stats:dashboard"

var _ StatsCache = (*RedisStatsCache)(nil)

type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatsCache(addr string, ttl time.Duration) *RedisStatsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &RedisStatsCache{client: client, ttl: ttl}
}

func (r *RedisStatsCache) GetStats(ctx context.Context) (*service.Stats, error) {
	res := r.client.Get(ctx, statsKey)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	stats := &service.Stats{}
	if err := json.Unmarshal(buf, stats); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *RedisStatsCache) SetStats(ctx context.Context, stats *service.Stats) error {
	marshal, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, statsKey, marshal, r.ttl).Err()
}

func (r *RedisStatsCache) InvalidateStats(ctx context.Context) error {
	return r.client.Del(ctx, statsKey).Err()
}
