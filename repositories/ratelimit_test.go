package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"

	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimitRepository_GetSetIncrement(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRateLimitRepository(func() time.Time { return now })

	_, found, err := repo.Get(ctx, "alice")
	req.NoError(err)
	req.False(found)

	_, err = repo.Increment(ctx, "alice")
	req.ErrorIs(err, errors.ErrEntryNotFound)

	req.NoError(repo.Set(ctx, domain.NewRateLimitEntry("alice", now, time.Hour)))
	count, err := repo.Increment(ctx, "alice")
	req.NoError(err)
	req.Equal(2, count)

	entry, found, err := repo.Get(ctx, "alice")
	req.NoError(err)
	req.True(found)
	req.Equal(2, entry.Count)
	req.Equal(now.Add(time.Hour), entry.WindowResetAt)
}

func TestMemoryRateLimitRepository_SweepsExpiredEntries(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	start := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	now := start
	repo := NewMemoryRateLimitRepository(func() time.Time { return now })

	for i := 0; i < sweepThreshold; i++ {
		req.NoError(repo.Set(ctx, domain.NewRateLimitEntry(fmt.Sprintf("client-%d", i), start, time.Minute)))
	}
	req.Equal(sweepThreshold, repo.Len())

	now = start.Add(2 * time.Minute)
	req.NoError(repo.Set(ctx, domain.NewRateLimitEntry("fresh", now, time.Minute)))
	req.Equal(1, repo.Len())
}
