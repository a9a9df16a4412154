package service

import (
	"encoding/json"
	"time"

	"github.com/solvenote/solvenote/internal/compress"
	"github.com/solvenote/solvenote/internal/model"
)

const dateLayout = "2006-01-02"

// Note is the wire shape of a note with its associations resolved.
type Note struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Content         json.RawMessage `json:"content"`
	Tags            []string        `json:"tags"`
	Sources         []string        `json:"sources"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	Meta            *Meta           `json:"meta"`
	Progress        *Progress       `json:"progress"`
	DisplayProgress DisplayProgress `json:"displayProgress"`
}

type Meta struct {
	Difficulty  model.Difficulty `json:"difficulty"`
	Independent bool             `json:"independent"`
	ProblemURL  *string          `json:"problemUrl"`
}

// Progress mirrors the stored check-in log. Nil when the note was never
// checked in.
type Progress struct {
	FirstDate  string `json:"firstDate"`
	LatestDate string `json:"latestDate"`
	Count      int64  `json:"count"`
}

// DisplayProgress folds the note's own creation in as attempt #1: the
// first date is the note's creation date, the count is one more than
// the stored check-in count.
type DisplayProgress struct {
	FirstDate  string `json:"firstDate"`
	LatestDate string `json:"latestDate"`
	Count      int64  `json:"count"`
}

func toNote(row *model.Note, codec compress.Compress) (*Note, error) {
	content := json.RawMessage("{}")
	if row.Content != "" {
		data, err := codec.Decode([]byte(row.Content))
		if err != nil {
			return nil, err
		}
		content = data
	}

	tagNames := make([]string, 0, len(row.Tags))
	for _, tag := range row.Tags {
		tagNames = append(tagNames, tag.Name)
	}
	sourceNames := make([]string, 0, len(row.Sources))
	for _, source := range row.Sources {
		sourceNames = append(sourceNames, source.Name)
	}

	var meta *Meta
	if row.Meta != nil {
		meta = &Meta{
			Difficulty:  row.Meta.Difficulty,
			Independent: row.Meta.Independent,
			ProblemURL:  row.Meta.ProblemURL,
		}
	}

	var progress *Progress
	if row.Progress != nil {
		progress = &Progress{
			FirstDate:  row.Progress.FirstDate.Format(dateLayout),
			LatestDate: row.Progress.LatestDate.Format(dateLayout),
			Count:      row.Progress.Count,
		}
	}

	return &Note{
		ID:              row.ID,
		Title:           row.Title,
		Slug:            row.Slug,
		Content:         content,
		Tags:            tagNames,
		Sources:         sourceNames,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		Meta:            meta,
		Progress:        progress,
		DisplayProgress: displayProgress(row.CreatedAt, progress),
	}, nil
}

func displayProgress(createdAt time.Time, progress *Progress) DisplayProgress {
	firstDate := createdAt.Format(dateLayout)
	display := DisplayProgress{
		FirstDate:  firstDate,
		LatestDate: firstDate,
		Count:      1,
	}
	if progress != nil {
		display.LatestDate = progress.LatestDate
		display.Count = 1 + progress.Count
	}
	return display
}
