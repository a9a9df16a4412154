package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/ratelimit"
	"github.com/solvenote/solvenote/internal/store"
)

const (
	// CheckInCooldown is the minimum gap between accepted check-ins on
	// the same note.
	CheckInCooldown = 15 * time.Second
	// cooldownRetention bounds how long rejected-window entries stay in
	// memory.
	cooldownRetention = 60 * time.Second
)

// NewProgressService creates a new ProgressService.
func NewProgressService(store store.Store) *ProgressService {
	return &ProgressService{
		store:    store,
		cooldown: ratelimit.NewCooldown(CheckInCooldown, cooldownRetention),
	}
}

// ProgressService records repeat attempts of notes. The cooldown map is
// process-local; it only guards against accidental double submission.
type ProgressService struct {
	store    store.Store
	cooldown *ratelimit.Cooldown
}

// Cooldown exposes the limiter, for tests.
func (p *ProgressService) Cooldown() *ratelimit.Cooldown {
	return p.cooldown
}

// CheckIn records an attempt of the note on the given calendar date.
// The first check-in creates the progress row; later ones move the
// latest date forward and increment the count by one inside a single
// transaction. A check-in inside the cooldown window is rejected
// without touching the store.
func (p *ProgressService) CheckIn(ctx context.Context, noteID string, date time.Time) error {
	if !p.cooldown.Allow(noteID) {
		logrus.Warnf("check-in rate limited for note %s", noteID)
		return ErrCheckInRateLimited
	}

	day := DateOnly(date)

	err := p.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetNote(ctx, noteID); err != nil {
			if isRecordNotFound(err) {
				return ErrNoteNotFound
			}
			return err
		}

		_, err := tx.GetProgress(ctx, noteID)
		if err != nil {
			if isRecordNotFound(err) {
				return tx.CreateProgress(ctx, &model.Progress{
					NoteID:     noteID,
					FirstDate:  day,
					LatestDate: day,
					Count:      1,
				})
			}
			return err
		}

		return tx.AdvanceProgress(ctx, noteID, day)
	})
	if err != nil {
		return err
	}

	p.cooldown.Record(noteID)

	return nil
}

// DateOnly truncates a timestamp to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
