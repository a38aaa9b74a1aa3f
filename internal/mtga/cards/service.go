package cards

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// CatalogCache persists whole sets between runs.
type CatalogCache interface {
	// GetSetCards returns the cached cards of a set and when they were cached.
	// A nil slice with a nil error means the set is not cached.
	GetSetCards(ctx context.Context, setCode string) ([]Card, time.Time, error)

	// SaveSetCards replaces the cached cards of a set.
	SaveSetCards(ctx context.Context, setCode string, cards []Card) error
}

// ServiceConfig holds configuration for the card service.
type ServiceConfig struct {
	// CacheTTL is how long a cached set is served before refetching.
	// Zero means cached sets never expire.
	CacheTTL time.Duration

	// Refresh forces a fetch from the source even when a fresh copy is cached.
	Refresh bool

	Logger *slog.Logger
}

// DefaultServiceConfig returns a ServiceConfig with sensible defaults.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		CacheTTL: 7 * 24 * time.Hour,
	}
}

// Service is a Catalog that consults a cache before its source.
type Service struct {
	source Catalog
	cache  CatalogCache
	config *ServiceConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a caching catalog. cache may be nil.
func NewService(source Catalog, cache CatalogCache, config *ServiceConfig) *Service {
	if config == nil {
		config = DefaultServiceConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source: source,
		cache:  cache,
		config: config,
		logger: logger,
		now:    time.Now,
	}
}

// FetchAll returns the cached set when fresh, otherwise fetches and caches it.
// A stale cache entry is still served if the source is unreachable.
func (s *Service) FetchAll(ctx context.Context, setCode string) ([]Card, error) {
	var cached []Card
	if s.cache != nil {
		cards, cachedAt, err := s.cache.GetSetCards(ctx, setCode)
		if err != nil {
			s.logger.Warn("catalog cache lookup failed", "set", setCode, "error", err)
		} else if len(cards) > 0 {
			cached = cards
			fresh := s.config.CacheTTL == 0 || s.now().Sub(cachedAt) < s.config.CacheTTL
			if fresh && !s.config.Refresh {
				s.logger.Debug("catalog served from cache", "set", setCode, "cards", len(cards), "cached_at", cachedAt)
				return cards, nil
			}
		}
	}

	cards, err := s.source.FetchAll(ctx, setCode)
	if err != nil {
		if len(cached) > 0 {
			s.logger.Warn("catalog source failed, using stale cache", "set", setCode, "error", err)
			return cached, nil
		}
		return nil, fmt.Errorf("fetch set %s: %w", setCode, err)
	}

	if s.cache != nil {
		if err := s.cache.SaveSetCards(ctx, setCode, cards); err != nil {
			s.logger.Warn("failed to cache catalog", "set", setCode, "error", err)
		}
	}

	s.logger.Info("catalog loaded", "set", setCode, "cards", len(cards))
	return cards, nil
}
