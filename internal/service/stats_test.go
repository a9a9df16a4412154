package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/store"
	"github.com/solvenote/solvenote/internal/tester"
	"github.com/stretchr/testify/assert"
)

// seedStatsNote writes a note with a fixed creation date straight through
// the store, so aggregation buckets can be pinned down.
func seedStatsNote(t *testing.T, st store.Store, title string, createdAt time.Time, difficulty model.Difficulty, tagNames []string) {
	t.Helper()

	ctx := context.TODO()
	note := &model.Note{
		ID:    uuid.New().String(),
		Slug:  uuid.New().String(),
		Title: title,
	}
	note.CreatedAt = createdAt
	assert.NoError(t, st.CreateNote(ctx, note))

	if difficulty != "" {
		assert.NoError(t, st.UpdateNoteMeta(ctx, &model.NoteMeta{
			NoteID:     note.ID,
			Difficulty: difficulty,
		}))
	}

	tagIDs := make([]string, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := st.EnsureTag(ctx, name)
		assert.NoError(t, err)
		tagIDs = append(tagIDs, tag.ID)
	}
	assert.NoError(t, st.ReplaceNoteTags(ctx, note.ID, tagIDs))
}

func TestStatsService_Dashboard(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	stats := NewStatsService(st)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	stats.SetClock(func() time.Time { return now })

	seedStatsNote(t, st, "Two Sum", now, model.DifficultyEasy, []string{"arrays", "hashmap"})
	seedStatsNote(t, st, "Three Sum", time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC), model.DifficultyMedium, []string{"arrays"})
	seedStatsNote(t, st, "Word Ladder", time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), model.DifficultyHard, []string{"graph", "dp"})
	seedStatsNote(t, st, "Clone Graph", time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC), model.DifficultyMedium, []string{"arrays", "graph"})

	got, err := stats.Dashboard(context.TODO())
	assert.NoError(t, err)

	assert.Equal(t, 4, got.TotalArticles)
	assert.Equal(t, 4, got.LeetcodeCount)
	assert.Equal(t, DifficultyDistribution{Easy: 1, Medium: 2, Hard: 1}, got.DifficultyDistribution)

	// descending by count, ties broken alphabetically
	assert.Equal(t, []TagCount{
		{Tag: "arrays", Count: 3},
		{Tag: "graph", Count: 2},
		{Tag: "dp", Count: 1},
		{Tag: "hashmap", Count: 1},
	}, got.TopTags)

	// six months ending at the current one, zero-filled; the note from
	// December 2023 falls outside the window
	assert.Equal(t, []TrendMonth{
		{Month: "2024-01", Count: 1},
		{Month: "2024-02", Count: 0},
		{Month: "2024-03", Count: 0},
		{Month: "2024-04", Count: 0},
		{Month: "2024-05", Count: 1},
		{Month: "2024-06", Count: 1},
	}, got.TrendLast6Months)

	assert.Len(t, got.ActivityByDay, 364)
	assert.Equal(t, 1, got.ActivityByDay["2024-06-15"])
	assert.Equal(t, 1, got.ActivityByDay["2024-05-20"])
	assert.Equal(t, 1, got.ActivityByDay["2024-01-02"])
	// December 2023 is outside the trend window but inside the heatmap
	assert.Equal(t, 1, got.ActivityByDay["2023-12-31"])
	assert.Equal(t, 0, got.ActivityByDay["2024-06-14"])

	// oldest day of the window is present, anything past it is not
	assert.Contains(t, got.ActivityByDay, "2023-06-18")
	assert.NotContains(t, got.ActivityByDay, "2023-06-17")
	assert.NotContains(t, got.ActivityByDay, "2024-06-16")
}

func TestStatsService_DifficultyFallbackToTags(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	stats := NewStatsService(st)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	stats.SetClock(func() time.Time { return now })

	seedStatsNote(t, st, "No Meta Easy", now, "", []string{"Easy", "arrays"})
	seedStatsNote(t, st, "No Meta Hard", now, "", []string{"hard"})
	seedStatsNote(t, st, "No Meta Unknown", now, "", []string{"arrays"})

	got, err := stats.Dashboard(context.TODO())
	assert.NoError(t, err)

	assert.Equal(t, 3, got.TotalArticles)
	// notes with neither meta nor a difficulty tag count in no bucket
	assert.Equal(t, DifficultyDistribution{Easy: 1, Medium: 0, Hard: 1}, got.DifficultyDistribution)
}

func TestStatsService_TopTagsLimit(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	stats := NewStatsService(st)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	stats.SetClock(func() time.Time { return now })

	tagNames := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	seedStatsNote(t, st, "Many Tags", now, model.DifficultyEasy, tagNames)

	got, err := stats.Dashboard(context.TODO())
	assert.NoError(t, err)

	assert.Len(t, got.TopTags, 10)
	assert.Equal(t, TagCount{Tag: "a", Count: 1}, got.TopTags[0])
	assert.Equal(t, TagCount{Tag: "j", Count: 1}, got.TopTags[9])
}

func TestStatsService_EmptyStore(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	st := store.NewGormStore(tester.TestDB())
	stats := NewStatsService(st)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	stats.SetClock(func() time.Time { return now })

	got, err := stats.Dashboard(context.TODO())
	assert.NoError(t, err)

	assert.Equal(t, 0, got.TotalArticles)
	assert.Empty(t, got.TopTags)
	assert.Len(t, got.TrendLast6Months, 6)
	for _, month := range got.TrendLast6Months {
		assert.Equal(t, 0, month.Count)
	}
	assert.Len(t, got.ActivityByDay, 364)
}
