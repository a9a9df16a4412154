package service

import (
	"context"
	"sort"
	"strings"

	"github.com/solvenote/solvenote/internal/filter"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const DefaultPageSize = 20

type SortKey string

const (
	SortUpdatedAt SortKey = "updatedAt"
	SortCreatedAt SortKey = "createdAt"
	SortTitle     SortKey = "title"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortKey returns the sort key named by s, defaulting to updatedAt.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortCreatedAt, SortTitle:
		return SortKey(s)
	}
	return SortUpdatedAt
}

// ParseSortOrder returns the order named by s, defaulting to descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// ListParams is one listing request: facet selection, free-text search,
// sort and pagination.
type ListParams struct {
	Filter   filter.Selection
	Search   string
	Sort     SortKey
	Order    SortOrder
	Page     int
	PageSize int
}

// NoteList is one page of results plus totals over the whole match set.
type NoteList struct {
	Items      []*Note `json:"items"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
}

// Facets is the universe of selectable facet values.
type Facets struct {
	Tags    []string `json:"tags"`
	Sources []string `json:"sources"`
}

// List answers a listing query: the facet predicates restrict the set in
// the store, the search text narrows it further by title, slug or tag
// name, and the rest is deterministic sort plus pagination. A page past
// the end yields empty items with totals intact, never an error.
func (n *NoteService) List(ctx context.Context, params ListParams) (*NoteList, error) {
	rows, err := n.store.ListNotes(ctx, filter.Build(params.Filter))
	if err != nil {
		return nil, err
	}

	notes := make([]*Note, 0, len(rows))
	for _, row := range rows {
		note, err := toNote(row, n.codec)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	notes = searchNotes(notes, params.Search)
	sortNotes(notes, params.Sort, params.Order)

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	total := len(notes)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &NoteList{
		Items:      notes[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// Facets returns the distinct tag and source names, sorted by name, for
// building filter controls.
func (n *NoteService) Facets(ctx context.Context) (*Facets, error) {
	tags, err := n.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := n.store.ListSources(ctx)
	if err != nil {
		return nil, err
	}

	facets := &Facets{
		Tags:    make([]string, 0, len(tags)),
		Sources: make([]string, 0, len(sources)),
	}
	for _, tag := range tags {
		facets.Tags = append(facets.Tags, tag.Name)
	}
	for _, source := range sources {
		facets.Sources = append(facets.Sources, source.Name)
	}

	return facets, nil
}

// searchNotes keeps notes whose title, slug or any tag name contains the
// search text as a case-insensitive substring.
func searchNotes(notes []*Note, search string) []*Note {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return notes
	}

	matched := make([]*Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Title), search) ||
			strings.Contains(strings.ToLower(note.Slug), search) {
			matched = append(matched, note)
			continue
		}
		for _, tag := range note.Tags {
			if strings.Contains(strings.ToLower(tag), search) {
				matched = append(matched, note)
				break
			}
		}
	}
	return matched
}

// sortNotes sorts in place. The sort is stable so equal keys keep a
// deterministic relative order across calls; order only inverts the
// comparison.
func sortNotes(notes []*Note, key SortKey, order SortOrder) {
	mult := 1
	if order == OrderDesc {
		mult = -1
	}

	var titleCollator *collate.Collator
	if key == SortTitle {
		titleCollator = collate.New(language.Und)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		var cmp int
		switch key {
		case SortTitle:
			cmp = titleCollator.CompareString(notes[i].Title, notes[j].Title)
		case SortCreatedAt:
			cmp = compareTimes(notes[i].CreatedAt.UnixNano(), notes[j].CreatedAt.UnixNano())
		default:
			cmp = compareTimes(notes[i].UpdatedAt.UnixNano(), notes[j].UpdatedAt.UnixNano())
		}
		return mult*cmp < 0
	})
}

func compareTimes(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
