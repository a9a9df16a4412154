package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/solvenote/solvenote/internal/filter"
	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/tester"
	"github.com/stretchr/testify/assert"
)

func seedNotes(t *testing.T, client *NoteService) {
	t.Helper()

	seeds := []CreateNoteInput{
		{Title: "Two Sum", Tags: []string{"arrays", "hashmap"}, Difficulty: model.DifficultyEasy, Sources: []string{"LeetCode Top 100"}},
		{Title: "Three Sum", Tags: []string{"arrays", "two-pointers"}, Difficulty: model.DifficultyMedium, Sources: []string{"LeetCode Top 100", "NeetCode 150"}},
		{Title: "Merge Intervals", Tags: []string{"arrays", "sorting"}, Difficulty: model.DifficultyMedium, Sources: []string{"NeetCode 150"}},
		{Title: "Word Ladder", Tags: []string{"graph", "bfs"}, Difficulty: model.DifficultyHard, Sources: []string{"Blind 75"}},
	}
	for _, seed := range seeds {
		_, err := client.CreateNote(context.TODO(), seed)
		assert.NoError(t, err)
	}
}

func titles(list *NoteList) []string {
	out := make([]string, 0, len(list.Items))
	for _, note := range list.Items {
		out = append(out, note.Title)
	}
	return out
}

func TestNoteService_List_Filters(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()
	seedNotes(t, client)

	tests := []struct {
		name      string
		selection filter.Selection
		want      []string
	}{
		{
			name: "no filter returns all",
			want: []string{"Two Sum", "Three Sum", "Merge Intervals", "Word Ladder"},
		},
		{
			name:      "difficulty",
			selection: filter.Selection{Difficulty: model.DifficultyMedium},
			want:      []string{"Three Sum", "Merge Intervals"},
		},
		{
			name:      "tags and",
			selection: filter.Selection{Tags: []string{"arrays", "sorting"}, TagsMode: filter.ModeAnd},
			want:      []string{"Merge Intervals"},
		},
		{
			name:      "tags or",
			selection: filter.Selection{Tags: []string{"sorting", "bfs"}, TagsMode: filter.ModeOr},
			want:      []string{"Merge Intervals", "Word Ladder"},
		},
		{
			name:      "sources and",
			selection: filter.Selection{Sources: []string{"LeetCode Top 100", "NeetCode 150"}, SourcesMode: filter.ModeAnd},
			want:      []string{"Three Sum"},
		},
		{
			name:      "sources or",
			selection: filter.Selection{Sources: []string{"LeetCode Top 100", "Blind 75"}, SourcesMode: filter.ModeOr},
			want:      []string{"Two Sum", "Three Sum", "Word Ladder"},
		},
		{
			name: "groups combine with and across groups",
			selection: filter.Selection{
				Difficulty: model.DifficultyMedium,
				Tags:       []string{"arrays"},
				Sources:    []string{"NeetCode 150"},
			},
			want: []string{"Three Sum", "Merge Intervals"},
		},
		{
			name:      "unknown tag matches nothing",
			selection: filter.Selection{Tags: []string{"nonexistent"}},
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := client.List(context.TODO(), ListParams{Filter: tt.selection})
			assert.NoError(t, err)
			assert.ElementsMatch(t, tt.want, titles(list))
			assert.Equal(t, len(tt.want), list.Total)
		})
	}
}

func TestNoteService_List_Search(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()
	seedNotes(t, client)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "title substring", search: "sum", want: []string{"Two Sum", "Three Sum"}},
		{name: "case insensitive", search: "WORD", want: []string{"Word Ladder"}},
		{name: "slug substring", search: "merge-intervals", want: []string{"Merge Intervals"}},
		{name: "tag substring", search: "pointers", want: []string{"Three Sum"}},
		{name: "no match", search: "djikstra", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := client.List(context.TODO(), ListParams{Search: tt.search})
			assert.NoError(t, err)
			assert.ElementsMatch(t, tt.want, titles(list))
		})
	}
}

func TestNoteService_List_SortByTitle(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()
	seedNotes(t, client)

	asc, err := client.List(context.TODO(), ListParams{Sort: SortTitle, Order: OrderAsc})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Merge Intervals", "Three Sum", "Two Sum", "Word Ladder"}, titles(asc))

	desc, err := client.List(context.TODO(), ListParams{Sort: SortTitle, Order: OrderDesc})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Word Ladder", "Two Sum", "Three Sum", "Merge Intervals"}, titles(desc))
}

func TestNoteService_List_Pagination(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()
	for i := 1; i <= 7; i++ {
		_, err := client.CreateNote(context.TODO(), CreateNoteInput{
			Title:      fmt.Sprintf("Problem %02d", i),
			Difficulty: model.DifficultyEasy,
			Sources:    []string{"LeetCode Top 100"},
		})
		assert.NoError(t, err)
	}

	tests := []struct {
		name      string
		page      int
		pageSize  int
		wantItems int
		wantPage  int
		wantPages int
		wantTotal int
		wantSize  int
	}{
		{name: "first page", page: 1, pageSize: 3, wantItems: 3, wantPage: 1, wantPages: 3, wantTotal: 7, wantSize: 3},
		{name: "last partial page", page: 3, pageSize: 3, wantItems: 1, wantPage: 3, wantPages: 3, wantTotal: 7, wantSize: 3},
		{name: "page past the end is empty", page: 5, pageSize: 3, wantItems: 0, wantPage: 5, wantPages: 3, wantTotal: 7, wantSize: 3},
		{name: "page below one clamps to one", page: 0, pageSize: 3, wantItems: 3, wantPage: 1, wantPages: 3, wantTotal: 7, wantSize: 3},
		{name: "zero page size falls back to default", page: 1, pageSize: 0, wantItems: 7, wantPage: 1, wantPages: 1, wantTotal: 7, wantSize: DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := client.List(context.TODO(), ListParams{Page: tt.page, PageSize: tt.pageSize})
			assert.NoError(t, err)
			assert.Len(t, list.Items, tt.wantItems)
			assert.Equal(t, tt.wantPage, list.Page)
			assert.Equal(t, tt.wantPages, list.TotalPages)
			assert.Equal(t, tt.wantTotal, list.Total)
			assert.Equal(t, tt.wantSize, list.PageSize)
		})
	}
}

func TestNoteService_List_EmptyStore(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	list, err := client.List(context.TODO(), ListParams{})
	assert.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, 0, list.Total)
	assert.Equal(t, 1, list.TotalPages)
}

func TestNoteService_Facets(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()
	seedNotes(t, client)

	facets, err := client.Facets(context.TODO())
	assert.NoError(t, err)

	assert.Equal(t, []string{"arrays", "bfs", "graph", "hashmap", "sorting", "two-pointers"}, facets.Tags)
	assert.Equal(t, []string{"Blind 75", "LeetCode Top 100", "NeetCode 150"}, facets.Sources)
}
