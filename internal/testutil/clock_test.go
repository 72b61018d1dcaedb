package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2026, 2, 3, 14, 2, 11, 0, time.UTC)
	clock := NewFixedClock(at)

	assert.Equal(t, at, clock.Now())
	assert.Equal(t, at, clock.Now(), "repeated reads must not drift")

	clock.Advance(90 * time.Second)
	assert.Equal(t, at.Add(90*time.Second), clock.Now())

	later := at.AddDate(0, 0, 1)
	clock.Set(later)
	assert.Equal(t, later, clock.Now())
}
