// Package testutil provides shared helpers for tests.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe clock pinned to an explicit instant, so
// addition records get deterministic (date, time) keys in tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to at.
func NewFixedClock(at time.Time) *FixedClock {
	return &FixedClock{now: at}
}

// Now returns the pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to a new instant.
func (c *FixedClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = at
}
