//go:generate go run go.uber.org/mock/mockgen -source=ratelimit.go -destination=../mocks/mock_ratelimit_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"folio-gate/domain"
	"folio-gate/errors"
)

// IRateLimitRepository owns the rate-limit table. The limiter serializes
// Get/Set/Increment per key; implementations only need each call to be safe
// for concurrent use.
type IRateLimitRepository interface {
	Get(ctx context.Context, key string) (domain.RateLimitEntry, bool, error)
	Set(ctx context.Context, entry domain.RateLimitEntry) error
	Increment(ctx context.Context, key string) (int, error)
}

// WindowTaker is implemented by stores able to run the whole fixed-window
// decision atomically on their side, which a per-process lock cannot give
// when several instances share the table.
type WindowTaker interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (domain.RateLimitDecision, error)
}

// sweepThreshold is the table size above which Set drops expired entries.
const sweepThreshold = 10_000

type MemoryRateLimitRepository struct {
	mu      sync.RWMutex
	entries map[string]domain.RateLimitEntry
	now     func() time.Time
}

func NewMemoryRateLimitRepository(now func() time.Time) *MemoryRateLimitRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryRateLimitRepository{entries: make(map[string]domain.RateLimitEntry), now: now}
}

func (m *MemoryRateLimitRepository) Get(_ context.Context, key string) (domain.RateLimitEntry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	return entry, ok, nil
}

func (m *MemoryRateLimitRepository) Set(_ context.Context, entry domain.RateLimitEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) >= sweepThreshold {
		m.sweep()
	}
	m.entries[entry.ClientKey] = entry
	return nil
}

func (m *MemoryRateLimitRepository) Increment(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return 0, fmt.Errorf("increment %q: %w", key, errors.ErrEntryNotFound)
	}
	entry.Count++
	m.entries[key] = entry
	return entry.Count, nil
}

func (m *MemoryRateLimitRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// sweep must be called with the write lock held.
func (m *MemoryRateLimitRepository) sweep() {
	now := m.now()
	for key, entry := range m.entries {
		if entry.Expired(now) {
			delete(m.entries, key)
		}
	}
}
