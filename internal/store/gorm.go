package store

import (
	"context"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/solvenote/solvenote/internal/filter"
	"github.com/solvenote/solvenote/internal/model"
	"gorm.io/gorm"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) withAssociations(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx).
		Preload("Meta").
		Preload("Progress").
		Preload("Tags").
		Preload("Sources")
}

func (g *GormStore) CreateNote(ctx context.Context, note *model.Note) error {
	return g.db.WithContext(ctx).Create(note).Error
}

func (g *GormStore) GetNote(ctx context.Context, id string) (*model.Note, error) {
	var note model.Note
	err := g.withAssociations(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (g *GormStore) GetNoteBySlug(ctx context.Context, slug string) (*model.Note, error) {
	var note model.Note
	err := g.withAssociations(ctx).Where("slug = ?", slug).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (g *GormStore) ListNotes(ctx context.Context, preds []filter.Predicate) ([]*model.Note, error) {
	var notes []*model.Note
	db := g.withAssociations(ctx).Model(&model.Note{})
	for _, pred := range preds {
		db = pred.Apply(db)
	}
	err := db.Find(&notes).Error
	return notes, err
}

// UpdateNote saves the note's own columns. Associations are reconciled
// separately via ReplaceNoteTags / ReplaceNoteSources.
func (g *GormStore) UpdateNote(ctx context.Context, note *model.Note) error {
	return g.db.WithContext(ctx).Omit("Meta", "Progress", "Tags", "Sources").Save(note).Error
}

func (g *GormStore) UpdateNoteMeta(ctx context.Context, meta *model.NoteMeta) error {
	return g.db.WithContext(ctx).Save(meta).Error
}

func (g *GormStore) DeleteNote(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Note{}).Error
}

// ReplaceNoteTags diffs the desired tag set against the current links,
// inserting only the missing rows and deleting only the extra ones.
func (g *GormStore) ReplaceNoteTags(ctx context.Context, noteID string, tagIDs []string) error {
	var current []model.NoteTag
	err := g.db.WithContext(ctx).Where("note_id = ?", noteID).Find(&current).Error
	if err != nil {
		return err
	}

	currentSet := mapset.NewSet[string]()
	for _, link := range current {
		currentSet.Add(link.TagID)
	}
	desiredSet := mapset.NewSet[string](tagIDs...)

	missing := desiredSet.Difference(currentSet).ToSlice()
	if len(missing) > 0 {
		links := make([]model.NoteTag, 0, len(missing))
		for _, tagID := range missing {
			links = append(links, model.NoteTag{NoteID: noteID, TagID: tagID})
		}
		if err := g.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}

	extra := currentSet.Difference(desiredSet).ToSlice()
	if len(extra) > 0 {
		err := g.db.WithContext(ctx).
			Where("note_id = ? AND tag_id IN (?)", noteID, extra).
			Delete(&model.NoteTag{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// ReplaceNoteSources mirrors ReplaceNoteTags for source links.
func (g *GormStore) ReplaceNoteSources(ctx context.Context, noteID string, sourceIDs []string) error {
	var current []model.NoteSource
	err := g.db.WithContext(ctx).Where("note_id = ?", noteID).Find(&current).Error
	if err != nil {
		return err
	}

	currentSet := mapset.NewSet[string]()
	for _, link := range current {
		currentSet.Add(link.SourceID)
	}
	desiredSet := mapset.NewSet[string](sourceIDs...)

	missing := desiredSet.Difference(currentSet).ToSlice()
	if len(missing) > 0 {
		links := make([]model.NoteSource, 0, len(missing))
		for _, sourceID := range missing {
			links = append(links, model.NoteSource{NoteID: noteID, SourceID: sourceID})
		}
		if err := g.db.WithContext(ctx).Create(&links).Error; err != nil {
			return err
		}
	}

	extra := currentSet.Difference(desiredSet).ToSlice()
	if len(extra) > 0 {
		err := g.db.WithContext(ctx).
			Where("note_id = ? AND source_id IN (?)", noteID, extra).
			Delete(&model.NoteSource{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func (g *GormStore) EnsureTag(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	err := g.db.WithContext(ctx).
		Where("name = ?", name).
		Attrs(model.Tag{ID: uuid.New().String(), Name: name}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (g *GormStore) EnsureSource(ctx context.Context, name string) (*model.Source, error) {
	var source model.Source
	err := g.db.WithContext(ctx).
		Where("name = ?", name).
		Attrs(model.Source{ID: uuid.New().String(), Name: name}).
		FirstOrCreate(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (g *GormStore) ListTags(ctx context.Context) ([]*model.Tag, error) {
	return model.ListTags(g.db.WithContext(ctx))
}

func (g *GormStore) ListSources(ctx context.Context) ([]*model.Source, error) {
	return model.ListSources(g.db.WithContext(ctx))
}

func (g *GormStore) GetProgress(ctx context.Context, noteID string) (*model.Progress, error) {
	var progress model.Progress
	err := g.db.WithContext(ctx).Where("note_id = ?", noteID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (g *GormStore) CreateProgress(ctx context.Context, progress *model.Progress) error {
	return g.db.WithContext(ctx).Create(progress).Error
}

// AdvanceProgress increments the counter in SQL so concurrent check-ins
// on the same note cannot lose an update.
func (g *GormStore) AdvanceProgress(ctx context.Context, noteID string, date time.Time) error {
	return g.db.WithContext(ctx).Model(&model.Progress{}).
		Where("note_id = ?", noteID).
		Updates(map[string]interface{}{
			"latest_date": date,
			"count":       gorm.Expr("count + 1"),
		}).Error
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
