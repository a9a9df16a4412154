package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/solvenote/solvenote/internal/compress"
	"github.com/solvenote/solvenote/internal/filter"
	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/store"
	"github.com/solvenote/solvenote/internal/tags"
)

// NewNoteService creates a new NoteService.
func NewNoteService(codec compress.Compress, store store.Store) *NoteService {
	return &NoteService{
		codec: codec,
		store: store,
	}
}

// NoteService manages note records and answers listing queries.
type NoteService struct {
	codec compress.Compress
	store store.Store
}

// CreateNoteInput carries a new note. Tags may be empty; hashtags found
// in the content text are merged in. Sources must name at least one
// problem list.
type CreateNoteInput struct {
	Title       string
	Content     json.RawMessage
	Tags        []string
	Difficulty  model.Difficulty
	Sources     []string
	Independent bool
	ProblemURL  *string
}

// UpdateNoteInput carries a partial update; nil fields stay untouched.
type UpdateNoteInput struct {
	Title       *string
	Content     json.RawMessage
	Tags        []string
	Difficulty  *model.Difficulty
	Sources     []string
	Independent *bool
	ProblemURL  *string
}

// CreateNote validates the input, derives a unique slug from the title
// and creates the note, its meta record and its tag/source links in one
// transaction.
func (n *NoteService) CreateNote(ctx context.Context, input CreateNoteInput) (*Note, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !input.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	sourceNames := filter.NormalizeNames(input.Sources)
	if len(sourceNames) == 0 {
		return nil, ErrSourceRequired
	}

	content, err := normalizeContent(input.Content)
	if err != nil {
		return nil, err
	}
	encoded, err := n.codec.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}

	tagNames := mergeTagNames(filter.NormalizeNames(input.Tags), content)

	slug, err := n.findAvailableSlug(ctx, slugify(title), "")
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:          uuid.New().String(),
		Slug:        slug,
		Title:       title,
		Content:     string(encoded),
		Compression: n.codec.Name(),
	}

	err = n.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateNote(ctx, note); err != nil {
			return err
		}

		meta := &model.NoteMeta{
			NoteID:      note.ID,
			Difficulty:  input.Difficulty,
			Independent: input.Independent,
			ProblemURL:  normalizeURL(input.ProblemURL),
		}
		if err := tx.UpdateNoteMeta(ctx, meta); err != nil {
			return err
		}

		tagIDs, err := ensureTagIDs(ctx, tx, tagNames)
		if err != nil {
			return err
		}
		if err := tx.ReplaceNoteTags(ctx, note.ID, tagIDs); err != nil {
			return err
		}

		sourceIDs, err := ensureSourceIDs(ctx, tx, sourceNames)
		if err != nil {
			return err
		}
		return tx.ReplaceNoteSources(ctx, note.ID, sourceIDs)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("note created with id: %s slug: %s", note.ID, note.Slug)

	return n.GetNote(ctx, note.ID)
}

// UpdateNote applies a partial update inside one transaction, so a
// failure cannot leave the note with half-replaced links.
func (n *NoteService) UpdateNote(ctx context.Context, id string, input UpdateNoteInput) (*Note, error) {
	var content []byte
	if input.Content != nil {
		var err error
		content, err = normalizeContent(input.Content)
		if err != nil {
			return nil, err
		}
	}
	if input.Difficulty != nil && !input.Difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}
	if input.Sources != nil && len(filter.NormalizeNames(input.Sources)) == 0 {
		return nil, ErrSourceRequired
	}

	err := n.store.Transaction(ctx, func(tx store.Store) error {
		note, err := tx.GetNote(ctx, id)
		if err != nil {
			if isRecordNotFound(err) {
				return ErrNoteNotFound
			}
			return err
		}

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if title == "" {
				return ErrTitleRequired
			}
			if title != note.Title {
				slug, err := n.findAvailableSlug(ctx, slugify(title), note.ID)
				if err != nil {
					return err
				}
				note.Title = title
				note.Slug = slug
			}
		}

		if content != nil {
			encoded, err := n.codec.Encode(content)
			if err != nil {
				return fmt.Errorf("encode content: %w", err)
			}
			note.Content = string(encoded)
			note.Compression = n.codec.Name()
		}

		if err := tx.UpdateNote(ctx, note); err != nil {
			return err
		}

		if input.Difficulty != nil || input.Independent != nil || input.ProblemURL != nil {
			meta := note.Meta
			if meta == nil {
				meta = &model.NoteMeta{NoteID: note.ID, Difficulty: model.DifficultyMedium}
			}
			if input.Difficulty != nil {
				meta.Difficulty = *input.Difficulty
			}
			if input.Independent != nil {
				meta.Independent = *input.Independent
			}
			if input.ProblemURL != nil {
				meta.ProblemURL = normalizeURL(input.ProblemURL)
			}
			if err := tx.UpdateNoteMeta(ctx, meta); err != nil {
				return err
			}
		}

		if input.Tags != nil || content != nil {
			tagNames := filter.NormalizeNames(input.Tags)
			if input.Tags == nil {
				tagNames = make([]string, 0, len(note.Tags))
				for _, tag := range note.Tags {
					tagNames = append(tagNames, tag.Name)
				}
			}
			if content != nil {
				tagNames = mergeTagNames(tagNames, content)
			}

			tagIDs, err := ensureTagIDs(ctx, tx, tagNames)
			if err != nil {
				return err
			}
			if err := tx.ReplaceNoteTags(ctx, note.ID, tagIDs); err != nil {
				return err
			}
		}

		if input.Sources != nil {
			sourceIDs, err := ensureSourceIDs(ctx, tx, filter.NormalizeNames(input.Sources))
			if err != nil {
				return err
			}
			if err := tx.ReplaceNoteSources(ctx, note.ID, sourceIDs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return n.GetNote(ctx, id)
}

// DeleteNote deletes a note; the missing-note case is reported apart
// from store failures.
func (n *NoteService) DeleteNote(ctx context.Context, id string) error {
	_, err := n.store.GetNote(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return ErrNoteNotFound
		}
		return err
	}

	return n.store.DeleteNote(ctx, id)
}

// GetNote retrieves a note by ID.
func (n *NoteService) GetNote(ctx context.Context, id string) (*Note, error) {
	note, err := n.store.GetNote(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return toNote(note, n.codec)
}

// GetNoteBySlug retrieves a note by its slug.
func (n *NoteService) GetNoteBySlug(ctx context.Context, slug string) (*Note, error) {
	note, err := n.store.GetNoteBySlug(ctx, slug)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return toNote(note, n.codec)
}

func ensureTagIDs(ctx context.Context, tx store.Store, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		tag, err := tx.EnsureTag(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

func ensureSourceIDs(ctx context.Context, tx store.Store, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		source, err := tx.EnsureSource(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, source.ID)
	}
	return ids, nil
}

// mergeTagNames unions the explicit tag names with hashtags extracted
// from the content text, keeping explicit names first. The union is
// case-insensitive like the extractor's own dedup.
func mergeTagNames(names []string, content []byte) []string {
	merged := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		lower := strings.ToLower(name)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		merged = append(merged, name)
	}

	for _, name := range tags.Extract(PlainText(content)) {
		lower := strings.ToLower(name)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		merged = append(merged, name)
	}

	return merged
}

func normalizeContent(content json.RawMessage) ([]byte, error) {
	if len(content) == 0 || strings.TrimSpace(string(content)) == "" {
		return []byte("{}"), nil
	}
	if !json.Valid(content) {
		return nil, ErrInvalidContent
	}
	return content, nil
}

func normalizeURL(url *string) *string {
	if url == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
var dashRuns = regexp.MustCompile(`-+`)

// slugify lowercases the title and reduces it to [a-z0-9-].
func slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "note"
	}
	return s
}

// findAvailableSlug probes base, base-2, base-3, ... until a slug is
// free or owned by excludeID.
func (n *NoteService) findAvailableSlug(ctx context.Context, base string, excludeID string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		existing, err := n.store.GetNoteBySlug(ctx, slug)
		if err != nil {
			if isRecordNotFound(err) {
				return slug, nil
			}
			return "", err
		}
		if existing.ID == excludeID {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
