package model

import "time"

// NoteMeta holds the per-note problem record. Every note has exactly one.
type NoteMeta struct {
	NoteID      string     `gorm:"primaryKey;uuid;not null"`
	Difficulty  Difficulty `gorm:"not null"`
	Independent bool       `gorm:"not null;default:false"`
	ProblemURL  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
