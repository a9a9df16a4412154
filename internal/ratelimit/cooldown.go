package ratelimit

import (
	"sync"
	"time"
)

// Cooldown rejects repeat actions on the same key inside a fixed window.
// It is process-local and best-effort: it guards against accidental
// rapid double-submission, not determined abuse, and losing its state
// only weakens the cooldown, never any persisted counter.
type Cooldown struct {
	mu        sync.Mutex
	last      map[string]time.Time
	window    time.Duration
	retention time.Duration
	now       func() time.Time
}

func NewCooldown(window, retention time.Duration) *Cooldown {
	return &Cooldown{
		last:      make(map[string]time.Time),
		window:    window,
		retention: retention,
		now:       time.Now,
	}
}

// Allow reports whether an action on key is currently permitted.
func (c *Cooldown) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.last[key]
	if !ok {
		return true
	}
	return c.now().Sub(last) >= c.window
}

// Record marks an accepted action on key and prunes entries older than
// the retention window to bound memory.
func (c *Cooldown) Record(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.last[key] = now

	cutoff := now.Add(-c.retention)
	for k, ts := range c.last {
		if ts.Before(cutoff) {
			delete(c.last, k)
		}
	}
}

// Len returns the number of tracked keys.
func (c *Cooldown) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

// SetClock replaces the time source, for tests.
func (c *Cooldown) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
