package cache

import (
	"context"

	"github.com/solvenote/solvenote/internal/service"
)

// StatsCache caches the dashboard aggregate between recomputations.
// A miss returns (nil, nil); slight staleness is acceptable.
type StatsCache interface {
	// GetStats returns the cached aggregate, or nil when absent/expired.
	GetStats(ctx context.Context) (*service.Stats, error)
	// SetStats stores the aggregate for the cache's TTL.
	SetStats(ctx context.Context, stats *service.Stats) error
	// InvalidateStats drops the cached aggregate.
	InvalidateStats(ctx context.Context) error
}

// NopStatsCache satisfies StatsCache without caching anything, for
// deployments that run without redis.
type NopStatsCache struct{}

func NewNopStatsCache() *NopStatsCache {
	return &NopStatsCache{}
}

func (n *NopStatsCache) GetStats(ctx context.Context) (*service.Stats, error) {
	return nil, nil
}

func (n *NopStatsCache) SetStats(ctx context.Context, stats *service.Stats) error {
	return nil
}

func (n *NopStatsCache) InvalidateStats(ctx context.Context) error {
	return nil
}
