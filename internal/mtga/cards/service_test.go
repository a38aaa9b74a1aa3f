package cards

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memoryCache struct {
	cards    map[string][]Card
	cachedAt map[string]time.Time
	saves    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{cards: map[string][]Card{}, cachedAt: map[string]time.Time{}}
}

func (m *memoryCache) GetSetCards(_ context.Context, setCode string) ([]Card, time.Time, error) {
	return m.cards[setCode], m.cachedAt[setCode], nil
}

func (m *memoryCache) SaveSetCards(_ context.Context, setCode string, cards []Card) error {
	m.saves++
	m.cards[setCode] = cards
	m.cachedAt[setCode] = time.Now()
	return nil
}

func countingSource(calls *int, cards []Card, err error) Catalog {
	return CatalogFunc(func(ctx context.Context, setCode string) ([]Card, error) {
		*calls++
		return cards, err
	})
}

func TestService_FetchesAndCaches(t *testing.T) {
	calls := 0
	cache := newMemoryCache()
	svc := NewService(countingSource(&calls, []Card{{Name: "Shock"}}, nil), cache, nil)

	for i := 0; i < 2; i++ {
		got, err := svc.FetchAll(context.Background(), "tdm")
		if err != nil {
			t.Fatalf("FetchAll failed: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 card, got %d", len(got))
		}
	}

	if calls != 1 {
		t.Errorf("expected source to be called once, got %d", calls)
	}
	if cache.saves != 1 {
		t.Errorf("expected one cache save, got %d", cache.saves)
	}
}

func TestService_StaleCacheRefetches(t *testing.T) {
	calls := 0
	cache := newMemoryCache()
	cache.cards["tdm"] = []Card{{Name: "Old"}}
	cache.cachedAt["tdm"] = time.Now().Add(-48 * time.Hour)

	svc := NewService(countingSource(&calls, []Card{{Name: "New"}}, nil), cache, &ServiceConfig{CacheTTL: 24 * time.Hour})
	got, err := svc.FetchAll(context.Background(), "tdm")
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if calls != 1 || got[0].Name != "New" {
		t.Errorf("expected refetch, calls=%d got=%v", calls, got)
	}
}

func TestService_StaleCacheServedWhenSourceFails(t *testing.T) {
	calls := 0
	cache := newMemoryCache()
	cache.cards["tdm"] = []Card{{Name: "Old"}}
	cache.cachedAt["tdm"] = time.Now().Add(-48 * time.Hour)

	svc := NewService(countingSource(&calls, nil, ErrCatalogUnavailable), cache, &ServiceConfig{CacheTTL: time.Hour})
	got, err := svc.FetchAll(context.Background(), "tdm")
	if err != nil {
		t.Fatalf("expected stale cache fallback, got error %v", err)
	}
	if got[0].Name != "Old" {
		t.Errorf("expected stale card, got %v", got)
	}
}

func TestService_SourceErrorWithoutCache(t *testing.T) {
	calls := 0
	svc := NewService(countingSource(&calls, nil, ErrCatalogUnavailable), nil, nil)
	_, err := svc.FetchAll(context.Background(), "tdm")
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestService_RefreshBypassesCache(t *testing.T) {
	calls := 0
	cache := newMemoryCache()
	cache.cards["tdm"] = []Card{{Name: "Cached"}}
	cache.cachedAt["tdm"] = time.Now()

	svc := NewService(countingSource(&calls, []Card{{Name: "Fresh"}}, nil), cache, &ServiceConfig{Refresh: true})
	got, err := svc.FetchAll(context.Background(), "tdm")
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if calls != 1 || got[0].Name != "Fresh" {
		t.Errorf("expected refresh to hit source, calls=%d got=%v", calls, got)
	}
}
