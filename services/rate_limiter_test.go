package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"
	"folio-gate/mocks"
	"folio-gate/repositories"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, clock *fakeClock, max int) *RateLimiter {
	t.Helper()
	limiter, err := NewRateLimiter(
		repositories.NewMemoryRateLimitRepository(clock.Now),
		RateLimitConfig{MaxRequests: max, Window: time.Hour},
		clock.Now)
	require.NoError(t, err)
	return limiter
}

func TestRateLimiter_Allow(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	clock := newFakeClock()
	limiter := newTestLimiter(t, clock, 10)

	for i := 1; i <= 10; i++ {
		decision, err := limiter.Allow(ctx, "client-a")
		req.NoError(err)
		req.True(decision.Allowed, "request %d should pass", i)
		req.Equal(i, decision.Count)
	}

	clock.Advance(15 * time.Minute)
	decision, err := limiter.Allow(ctx, "client-a")
	req.NoError(err)
	req.False(decision.Allowed)
	req.Equal(10, decision.Count)
	req.Equal(45*60, decision.RetryAfterSeconds)

	// Another client has its own window
	decision, err = limiter.Allow(ctx, "client-b")
	req.NoError(err)
	req.True(decision.Allowed)
	req.Equal(1, decision.Count)
}

func TestRateLimiter_WindowReset(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	clock := newFakeClock()
	limiter := newTestLimiter(t, clock, 2)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "client")
		req.NoError(err)
	}

	// Exactly at the reset instant the window is still closed
	clock.Advance(time.Hour)
	decision, err := limiter.Allow(ctx, "client")
	req.NoError(err)
	req.False(decision.Allowed)
	req.Equal(1, decision.RetryAfterSeconds)

	clock.Advance(time.Millisecond)
	decision, err = limiter.Allow(ctx, "client")
	req.NoError(err)
	req.True(decision.Allowed)
	req.Equal(1, decision.Count)
	req.Equal(clock.Now().Add(time.Hour), decision.ResetAt)
}

func TestRateLimiter_DeniedRequestsDoNotCount(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	clock := newFakeClock()
	repo := repositories.NewMemoryRateLimitRepository(clock.Now)
	limiter, err := NewRateLimiter(repo, RateLimitConfig{MaxRequests: 1, Window: time.Minute}, clock.Now)
	req.NoError(err)

	for i := 0; i < 5; i++ {
		_, err = limiter.Allow(ctx, "client")
		req.NoError(err)
	}
	entry, found, err := repo.Get(ctx, "client")
	req.NoError(err)
	req.True(found)
	req.Equal(1, entry.Count)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	clock := newFakeClock()
	limiter := newTestLimiter(t, clock, 10)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			decision, err := limiter.Allow(ctx, "same-client")
			if err == nil && decision.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	req.Equal(int32(10), allowed.Load())
}

func TestRateLimiter_StoreFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock := newFakeClock()
	repo := mocks.NewMockIRateLimitRepository(ctrl)
	limiter, err := NewRateLimiter(repo, RateLimitConfig{MaxRequests: 10, Window: time.Hour}, clock.Now)
	req.NoError(err)

	t.Run("Get failure", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "client").Return(domain.RateLimitEntry{}, false, fmt.Errorf("boom"))
		_, err := limiter.Allow(context.Background(), "client")
		require.ErrorContains(t, err, "boom")
	})

	t.Run("Increment failure", func(t *testing.T) {
		entry := domain.NewRateLimitEntry("client", clock.Now(), time.Hour)
		repo.EXPECT().Get(gomock.Any(), "client").Return(entry, true, nil)
		repo.EXPECT().Increment(gomock.Any(), "client").Return(0, fmt.Errorf("disk full"))
		_, err := limiter.Allow(context.Background(), "client")
		require.ErrorContains(t, err, "disk full")
	})

	t.Run("Entry swept before increment opens a fresh window", func(t *testing.T) {
		entry := domain.NewRateLimitEntry("client", clock.Now().Add(-30*time.Minute), time.Hour)
		entry.Count = 4
		repo.EXPECT().Get(gomock.Any(), "client").Return(entry, true, nil)
		repo.EXPECT().Increment(gomock.Any(), "client").
			Return(0, fmt.Errorf("increment %q: %w", "client", errors.ErrEntryNotFound))
		repo.EXPECT().Set(gomock.Any(), domain.NewRateLimitEntry("client", clock.Now(), time.Hour)).Return(nil)

		decision, err := limiter.Allow(context.Background(), "client")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
		require.Equal(t, 1, decision.Count)
		require.Equal(t, clock.Now().Add(time.Hour), decision.ResetAt)
	})

	t.Run("Fresh window is written", func(t *testing.T) {
		repo.EXPECT().Get(gomock.Any(), "client").Return(domain.RateLimitEntry{}, false, nil)
		repo.EXPECT().Set(gomock.Any(), domain.NewRateLimitEntry("client", clock.Now(), time.Hour)).Return(nil)
		decision, err := limiter.Allow(context.Background(), "client")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	})
}

func TestNewRateLimiter_InvalidConfig(t *testing.T) {
	repo := repositories.NewMemoryRateLimitRepository(nil)
	_, err := NewRateLimiter(repo, RateLimitConfig{MaxRequests: 0, Window: time.Hour}, nil)
	require.Error(t, err)
	_, err = NewRateLimiter(repo, RateLimitConfig{MaxRequests: 1}, nil)
	require.Error(t, err)
	_, err = NewRateLimiter(nil, RateLimitConfig{MaxRequests: 1, Window: time.Hour}, nil)
	require.Error(t, err)
}
