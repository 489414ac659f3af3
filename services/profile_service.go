//go:generate go run go.uber.org/mock/mockgen -source=profile_service.go -destination=../mocks/mock_profile_sources.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"folio-gate/domain"

	"github.com/dgraph-io/ristretto/v2"
)

type IContributionSource interface {
	Contributions(ctx context.Context) (domain.ContributionCalendar, error)
}

type IMediaSource interface {
	Media(ctx context.Context) ([]domain.MediaPost, error)
}

type IProfileService interface {
	Contributions(ctx context.Context) (domain.ContributionCalendar, error)
	Media(ctx context.Context) ([]domain.MediaPost, error)
}

const (
	contributionsCacheKey = "github:contributions"
	mediaCacheKey         = "instagram:media"
)

// ProfileService fronts the GitHub and Instagram proxies with a short lived cache,
// so a page load does not cost one upstream call per visitor.
type ProfileService struct {
	log           *slog.Logger
	contributions IContributionSource
	media         IMediaSource
	cache         *ristretto.Cache[string, any]
	ttl           time.Duration
}

// NewProfileService builds the service; a zero ttl disables caching.
func NewProfileService(log *slog.Logger, contributions IContributionSource, media IMediaSource, ttl time.Duration) (*ProfileService, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 100,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating profile cache: %w", err)
	}
	return &ProfileService{log: log, contributions: contributions, media: media, cache: cache, ttl: ttl}, nil
}

func (s *ProfileService) Contributions(ctx context.Context) (domain.ContributionCalendar, error) {
	return cached(s, contributionsCacheKey, func() (domain.ContributionCalendar, error) {
		return s.contributions.Contributions(ctx)
	})
}

func (s *ProfileService) Media(ctx context.Context) ([]domain.MediaPost, error) {
	return cached(s, mediaCacheKey, func() ([]domain.MediaPost, error) {
		return s.media.Media(ctx)
	})
}

func (s *ProfileService) Close() {
	s.cache.Close()
}

// cached returns the cached value for key or loads and caches it. Errors are never cached.
func cached[T any](s *ProfileService, key string, load func() (T, error)) (T, error) {
	if s.ttl > 0 {
		if v, ok := s.cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	if s.ttl > 0 {
		s.cache.SetWithTTL(key, value, 1, s.ttl)
		s.cache.Wait()
		s.log.Debug("Profile cache refreshed", "key", key, "ttl", s.ttl)
	}
	return value, nil
}
