package jobs

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/solvenote/solvenote/internal/cache"
	"github.com/solvenote/solvenote/internal/service"
)

// StatsRefreshTask recomputes the dashboard aggregate and pushes it
// into the stats cache on a cron schedule, so dashboard reads stay
// warm without hitting the store.
type StatsRefreshTask struct {
	stats *service.StatsService
	cache cache.StatsCache
	cron  string
}

func NewStatsRefreshTask(interval string, stats *service.StatsService, cache cache.StatsCache) *StatsRefreshTask {
	return &StatsRefreshTask{
		stats: stats,
		cache: cache,
		cron:  interval,
	}
}

func (s *StatsRefreshTask) ID() string {
	return "stats_refresh"
}

func (s *StatsRefreshTask) Schedule() string {
	return s.cron
}

func (s *StatsRefreshTask) Run() {
	ctx := context.Background()

	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		logrus.Errorf("failed to recompute stats: %v", err)
		return
	}

	if err := s.cache.SetStats(ctx, stats); err != nil {
		logrus.Errorf("failed to cache stats: %v", err)
	}
}
