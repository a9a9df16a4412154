package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/store"
)

const (
	topTagsCount = 10
	trendMonths  = 6
	heatmapDays  = 364 // 52 weeks
)

// Stats is the dashboard aggregate derived from the full note set.
type Stats struct {
	TotalArticles          int                    `json:"totalArticles"`
	LeetcodeCount          int                    `json:"leetcodeCount"`
	DifficultyDistribution DifficultyDistribution `json:"difficultyDistribution"`
	TopTags                []TagCount             `json:"topTags"`
	TrendLast6Months       []TrendMonth           `json:"trendLast6Months"`
	ActivityByDay          map[string]int         `json:"activityByDay"`
}

type DifficultyDistribution struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type TrendMonth struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// NewStatsService creates a new StatsService.
func NewStatsService(store store.Store) *StatsService {
	return &StatsService{
		store: store,
		now:   time.Now,
	}
}

// StatsService derives read-only dashboard aggregates. Every call
// recomputes from the store; callers may cache the result since slight
// staleness is acceptable.
type StatsService struct {
	store store.Store
	now   func() time.Time
}

// SetClock replaces the time source, for tests.
func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}

// Dashboard computes the full aggregate over all notes. Buckets use the
// note's creation date; nothing here mutates state.
func (s *StatsService) Dashboard(ctx context.Context) (*Stats, error) {
	notes, err := s.store.ListNotes(ctx, nil)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalArticles: len(notes),
		// every note in this store is a solved-problem note
		LeetcodeCount:    len(notes),
		TopTags:          make([]TagCount, 0, topTagsCount),
		TrendLast6Months: make([]TrendMonth, 0, trendMonths),
		ActivityByDay:    make(map[string]int, heatmapDays),
	}

	tagCounts := make(map[string]int)
	for _, note := range notes {
		switch inferDifficulty(note) {
		case model.DifficultyEasy:
			stats.DifficultyDistribution.Easy++
		case model.DifficultyMedium:
			stats.DifficultyDistribution.Medium++
		case model.DifficultyHard:
			stats.DifficultyDistribution.Hard++
		}

		for _, tag := range note.Tags {
			tagCounts[tag.Name]++
		}
	}

	stats.TopTags = topTags(tagCounts, topTagsCount)

	now := s.now().UTC()

	monthKeys := make([]string, 0, trendMonths)
	trend := make(map[string]int, trendMonths)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := trendMonths - 1; i >= 0; i-- {
		key := monthKey(firstOfMonth.AddDate(0, -i, 0))
		monthKeys = append(monthKeys, key)
		trend[key] = 0
	}

	today := DateOnly(now)
	for i := 0; i < heatmapDays; i++ {
		stats.ActivityByDay[dayKey(today.AddDate(0, 0, -i))] = 0
	}

	for _, note := range notes {
		if key := monthKey(note.CreatedAt); hasKey(trend, key) {
			trend[key]++
		}
		if key := dayKey(note.CreatedAt); hasKey(stats.ActivityByDay, key) {
			stats.ActivityByDay[key]++
		}
	}

	for _, key := range monthKeys {
		stats.TrendLast6Months = append(stats.TrendLast6Months, TrendMonth{
			Month: key,
			Count: trend[key],
		})
	}

	return stats, nil
}

// inferDifficulty prefers the explicit meta field, then falls back to a
// tag literally named easy/medium/hard.
func inferDifficulty(note *model.Note) model.Difficulty {
	if note.Meta != nil && note.Meta.Difficulty.Valid() {
		return note.Meta.Difficulty
	}

	for _, tag := range note.Tags {
		switch strings.ToLower(tag.Name) {
		case "easy":
			return model.DifficultyEasy
		case "medium":
			return model.DifficultyMedium
		case "hard":
			return model.DifficultyHard
		}
	}

	return ""
}

// topTags sorts descending by count; equal counts break alphabetically
// so the result is deterministic.
func topTags(counts map[string]int, limit int) []TagCount {
	all := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		all = append(all, TagCount{Tag: tag, Count: count})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Tag < all[j].Tag
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

func monthKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

func dayKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func hasKey(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}
