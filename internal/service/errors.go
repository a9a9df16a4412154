package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNoteNotFound is returned when the targeted note does not exist.
	ErrNoteNotFound = errors.New("note not found")
	// ErrTitleRequired is returned when a create request carries no title.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidDifficulty is returned when difficulty is missing or not one of EASY, MEDIUM, HARD.
	ErrInvalidDifficulty = errors.New("difficulty must be one of EASY, MEDIUM, HARD")
	// ErrSourceRequired is returned when a note would end up with no sources.
	ErrSourceRequired = errors.New("at least one source is required")
	// ErrInvalidContent is returned when the content payload is not valid JSON.
	ErrInvalidContent = errors.New("content must be a valid JSON document")
	// ErrCheckInRateLimited is returned when a note was checked in too recently.
	ErrCheckInRateLimited = errors.New("checked in too recently, try again later")
)

// IsValidation reports whether err is one of the user-input errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrInvalidDifficulty) ||
		errors.Is(err, ErrSourceRequired) ||
		errors.Is(err, ErrInvalidContent)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
