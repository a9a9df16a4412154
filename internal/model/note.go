package model

import (
	"gorm.io/gorm"
)

// Difficulty of the problem a note solves.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Valid reports whether d is one of the known difficulty values.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Note struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null;"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Title       string `gorm:"not null"`
	Content     string // encoded through the configured codec
	Compression string // codec used to encode the content

	Meta     *NoteMeta `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
	Progress *Progress `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
	Tags     []*Tag    `gorm:"many2many:note_tags;"`
	Sources  []*Source `gorm:"many2many:note_sources;"`
}
