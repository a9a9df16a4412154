package model

import "gorm.io/gorm"

// Tag names are unique and case-sensitive. Tags are created lazily the
// first time a note references them.
type Tag struct {
	gorm.Model
	ID   string `gorm:"primaryKey;uuid;not null;"`
	Name string `gorm:"uniqueIndex;not null"`
}

// NoteTag is the note<->tag join row.
type NoteTag struct {
	NoteID string `gorm:"primaryKey;uuid;not null;index:note_tag_note_index"`
	TagID  string `gorm:"primaryKey;uuid;not null;index:note_tag_tag_index"`
}

func (NoteTag) TableName() string {
	return "note_tags"
}

func ListTags(db *gorm.DB) ([]*Tag, error) {
	tags := make([]*Tag, 0)
	err := db.Order("name asc").Find(&tags).Error
	if err != nil {
		return nil, err
	}

	return tags, nil
}
