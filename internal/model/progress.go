package model

import "time"

// Progress records repeat attempts of a note. At most one row per note;
// absence means the note was never checked in. FirstDate is immutable
// once set and Count only ever grows by one per check-in.
type Progress struct {
	NoteID     string    `gorm:"primaryKey;uuid;not null"`
	FirstDate  time.Time `gorm:"not null"`
	LatestDate time.Time `gorm:"not null"`
	Count      int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
