package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/models"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/repository"
)

// ErrBatchNotFound is returned when a batch ID does not exist.
var ErrBatchNotFound = errors.New("batch not found")

// Service provides the storage operations used by the commands and the API.
type Service struct {
	db      *DB
	catalog repository.CatalogRepository
	batches repository.BatchRepository
}

// NewService creates a new storage service.
func NewService(db *DB) *Service {
	return &Service{
		db:      db,
		catalog: repository.NewCatalogRepository(db.Conn()),
		batches: repository.NewBatchRepository(db.Conn()),
	}
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

// GetSetCards returns the cached cards of a set and when they were cached.
// A set that was never cached yields no cards and a zero time.
func (s *Service) GetSetCards(ctx context.Context, setCode string) ([]cards.Card, time.Time, error) {
	setCode = strings.ToLower(setCode)

	cached, err := s.catalog.GetSet(ctx, setCode)
	if err != nil {
		return nil, time.Time{}, err
	}
	if cached == nil {
		return nil, time.Time{}, nil
	}

	list, err := s.catalog.GetCards(ctx, setCode)
	if err != nil {
		return nil, time.Time{}, err
	}
	return list, cached.CachedAt, nil
}

// SaveSetCards replaces the cached cards of a set.
func (s *Service) SaveSetCards(ctx context.Context, setCode string, list []cards.Card) error {
	setCode = strings.ToLower(setCode)
	return s.inCatalogTx(ctx, func(repo repository.CatalogRepository) error {
		return repo.ReplaceSet(ctx, setCode, list, time.Now())
	})
}

// ListCachedSets returns every set held in the catalog cache.
func (s *Service) ListCachedSets(ctx context.Context) ([]*models.CachedSet, error) {
	return s.catalog.ListSets(ctx)
}

// BatchResult is everything a simulation batch produces.
type BatchResult struct {
	Batch     *draft.Batch
	Records   []analytics.Record
	Summary   analytics.Summary
	DeckStats []analytics.DeckStat
}

// NewBatchResult analyzes a batch into a result ready to save.
func NewBatchResult(batch *draft.Batch) *BatchResult {
	records, summary := analytics.Analyze(batch)
	return &BatchResult{
		Batch:     batch,
		Records:   records,
		Summary:   summary,
		DeckStats: analytics.DeckStats(batch),
	}
}

// SaveBatch stores a batch with its records, summary and deck statistics
// in a single transaction.
func (s *Service) SaveBatch(ctx context.Context, result *BatchResult) error {
	if result == nil || result.Batch == nil {
		return fmt.Errorf("batch result cannot be nil")
	}
	b := result.Batch

	header := &models.Batch{
		ID:        b.ID,
		SetCode:   strings.ToLower(b.SetCode),
		Seed:      b.Seed,
		Selector:  b.Selector,
		Runs:      len(b.Decks),
		CreatedAt: b.CreatedAt,
	}

	return s.inBatchTx(ctx, func(repo repository.BatchRepository) error {
		if err := repo.Create(ctx, header); err != nil {
			return err
		}
		if err := repo.AddRecords(ctx, b.ID, result.Records); err != nil {
			return err
		}
		if err := repo.AddSummary(ctx, b.ID, result.Summary); err != nil {
			return err
		}
		return repo.AddDeckStats(ctx, b.ID, result.DeckStats)
	})
}

// ListBatches returns stored batch headers, newest first.
// An empty setCode lists every set; limit <= 0 lists everything.
func (s *Service) ListBatches(ctx context.Context, setCode string, limit int) ([]*models.Batch, error) {
	return s.batches.List(ctx, strings.ToLower(setCode), limit)
}

// GetBatch returns a batch header or ErrBatchNotFound.
func (s *Service) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	batch, err := s.batches.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
	}
	return batch, nil
}

// GetBatchSummary returns the stored summary of a batch.
func (s *Service) GetBatchSummary(ctx context.Context, id string) (analytics.Summary, error) {
	if _, err := s.GetBatch(ctx, id); err != nil {
		return nil, err
	}
	return s.batches.GetSummary(ctx, id)
}

// GetBatchRecords returns the stored card records of a batch.
func (s *Service) GetBatchRecords(ctx context.Context, id string) ([]analytics.Record, error) {
	if _, err := s.GetBatch(ctx, id); err != nil {
		return nil, err
	}
	return s.batches.GetRecords(ctx, id)
}

// GetBatchDecks returns the stored per-deck statistics of a batch.
func (s *Service) GetBatchDecks(ctx context.Context, id string) ([]analytics.DeckStat, error) {
	if _, err := s.GetBatch(ctx, id); err != nil {
		return nil, err
	}
	return s.batches.GetDeckStats(ctx, id)
}

// DeleteBatch removes a batch and its derived data.
func (s *Service) DeleteBatch(ctx context.Context, id string) error {
	if _, err := s.GetBatch(ctx, id); err != nil {
		return err
	}
	return s.inBatchTx(ctx, func(repo repository.BatchRepository) error {
		return repo.Delete(ctx, id)
	})
}
