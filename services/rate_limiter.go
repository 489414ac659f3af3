package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"
	"folio-gate/repositories"

	"github.com/cespare/xxhash/v2"
)

const lockStripes = 256

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// RateLimiter is a fixed-window limiter keyed by client.
// Windows expire lazily on the next request from the same key.
type RateLimiter struct {
	repository repositories.IRateLimitRepository
	config     RateLimitConfig
	now        func() time.Time
	locks      [lockStripes]sync.Mutex
}

func NewRateLimiter(repository repositories.IRateLimitRepository, config RateLimitConfig, now func() time.Time) (*RateLimiter, error) {
	if repository == nil {
		return nil, fmt.Errorf("rate limit repository is required")
	}
	if config.MaxRequests <= 0 || config.Window <= 0 {
		return nil, fmt.Errorf("rate limit must have positive values, got %d per %s", config.MaxRequests, config.Window)
	}
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{repository: repository, config: config, now: now}, nil
}

// Allow records one request for clientKey and says whether it may proceed.
func (l *RateLimiter) Allow(ctx context.Context, clientKey string) (domain.RateLimitDecision, error) {
	now := l.now()
	if taker, ok := l.repository.(repositories.WindowTaker); ok {
		return taker.Take(ctx, clientKey, l.config.MaxRequests, l.config.Window, now)
	}

	// Get, check and increment must not interleave for the same key.
	lock := &l.locks[xxhash.Sum64String(clientKey)%lockStripes]
	lock.Lock()
	defer lock.Unlock()

	entry, found, err := l.repository.Get(ctx, clientKey)
	if err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("reading rate limit of %q: %w", clientKey, err)
	}

	if !found || entry.Expired(now) {
		return l.openWindow(ctx, clientKey, now)
	}

	if entry.Count >= l.config.MaxRequests {
		return domain.RateLimitDecision{
			Allowed:           false,
			Count:             entry.Count,
			ResetAt:           entry.WindowResetAt,
			RetryAfterSeconds: entry.RetryAfter(now),
		}, nil
	}

	count, err := l.repository.Increment(ctx, clientKey)
	if errors.Is(err, errors.ErrEntryNotFound) {
		// Swept by the store between Get and Increment: the window had run out.
		return l.openWindow(ctx, clientKey, now)
	}
	if err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("incrementing rate limit of %q: %w", clientKey, err)
	}
	return domain.RateLimitDecision{Allowed: true, Count: count, ResetAt: entry.WindowResetAt}, nil
}

func (l *RateLimiter) openWindow(ctx context.Context, clientKey string, now time.Time) (domain.RateLimitDecision, error) {
	entry := domain.NewRateLimitEntry(clientKey, now, l.config.Window)
	if err := l.repository.Set(ctx, entry); err != nil {
		return domain.RateLimitDecision{}, fmt.Errorf("opening window of %q: %w", clientKey, err)
	}
	return domain.RateLimitDecision{Allowed: true, Count: entry.Count, ResetAt: entry.WindowResetAt}, nil
}
