package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Note{}, "Tags", &NoteTag{}); err != nil {
		return err
	}

	if err := db.SetupJoinTable(&Note{}, "Sources", &NoteSource{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Note{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&NoteMeta{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Tag{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Source{}); err != nil {
		return err
	}

	return db.AutoMigrate(&Progress{})
}
