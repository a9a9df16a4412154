package store

import (
	"context"
	"time"

	"github.com/solvenote/solvenote/internal/filter"
	"github.com/solvenote/solvenote/internal/model"
)

type Store interface {
	NoteStore
	FacetStore
	ProgressStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type NoteStore interface {
	// CreateNote creates a new note.
	CreateNote(ctx context.Context, note *model.Note) error
	// GetNote retrieves a note by ID with tags, sources, meta and progress attached.
	GetNote(ctx context.Context, id string) (*model.Note, error)
	// GetNoteBySlug retrieves a note by slug with associations attached.
	GetNoteBySlug(ctx context.Context, slug string) (*model.Note, error)
	// ListNotes retrieves the notes matching all predicates, associations attached.
	ListNotes(ctx context.Context, preds []filter.Predicate) ([]*model.Note, error)
	// UpdateNote saves the note's own fields.
	UpdateNote(ctx context.Context, note *model.Note) error
	// UpdateNoteMeta saves the note's meta record.
	UpdateNoteMeta(ctx context.Context, meta *model.NoteMeta) error
	// DeleteNote deletes a note by ID.
	DeleteNote(ctx context.Context, id string) error
	// ReplaceNoteTags reconciles the note's tag links against the desired set.
	ReplaceNoteTags(ctx context.Context, noteID string, tagIDs []string) error
	// ReplaceNoteSources reconciles the note's source links against the desired set.
	ReplaceNoteSources(ctx context.Context, noteID string, sourceIDs []string) error
}

type FacetStore interface {
	// EnsureTag returns the tag with the given name, creating it when missing.
	EnsureTag(ctx context.Context, name string) (*model.Tag, error)
	// EnsureSource returns the source with the given name, creating it when missing.
	EnsureSource(ctx context.Context, name string) (*model.Source, error)
	// ListTags retrieves all tags ordered by name.
	ListTags(ctx context.Context) ([]*model.Tag, error)
	// ListSources retrieves all sources ordered by name.
	ListSources(ctx context.Context) ([]*model.Source, error)
}

type ProgressStore interface {
	// GetProgress retrieves the progress row for a note, if any.
	GetProgress(ctx context.Context, noteID string) (*model.Progress, error)
	// CreateProgress creates the first progress row for a note.
	CreateProgress(ctx context.Context, progress *model.Progress) error
	// AdvanceProgress moves latest_date forward and increments count by one.
	AdvanceProgress(ctx context.Context, noteID string, date time.Time) error
}
