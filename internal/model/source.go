package model

import "gorm.io/gorm"

// Source is a problem list the note came from, unique by name.
type Source struct {
	gorm.Model
	ID   string `gorm:"primaryKey;uuid;not null;"`
	Name string `gorm:"uniqueIndex;not null"`
}

// NoteSource is the note<->source join row.
type NoteSource struct {
	NoteID   string `gorm:"primaryKey;uuid;not null;index:note_source_note_index"`
	SourceID string `gorm:"primaryKey;uuid;not null;index:note_source_source_index"`
}

func (NoteSource) TableName() string {
	return "note_sources"
}

func ListSources(db *gorm.DB) ([]*Source, error) {
	sources := make([]*Source, 0)
	err := db.Order("name asc").Find(&sources).Error
	if err != nil {
		return nil, err
	}

	return sources, nil
}
