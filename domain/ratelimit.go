package domain

import (
	"math"
	"time"
)

// RateLimitEntry is the per-client record of the fixed-window limiter.
// Count never exceeds the configured ceiling: a request arriving at the
// ceiling is rejected before anything is incremented.
type RateLimitEntry struct {
	ClientKey     string
	Count         int
	WindowResetAt time.Time
}

func NewRateLimitEntry(clientKey string, now time.Time, window time.Duration) RateLimitEntry {
	return RateLimitEntry{ClientKey: clientKey, Count: 1, WindowResetAt: now.Add(window)}
}

// Expired reports whether now is strictly past the window reset time.
func (e RateLimitEntry) Expired(now time.Time) bool {
	return now.After(e.WindowResetAt)
}

// RetryAfter is the number of whole seconds until the window resets, at least 1.
func (e RateLimitEntry) RetryAfter(now time.Time) int {
	remaining := e.WindowResetAt.Sub(now).Seconds()
	return max(int(math.Ceil(remaining)), 1)
}

type RateLimitDecision struct {
	Allowed           bool
	Count             int
	ResetAt           time.Time
	RetryAfterSeconds int
}
