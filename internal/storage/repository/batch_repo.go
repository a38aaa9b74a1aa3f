package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/models"
)

// BatchRepository handles simulation batches and their derived data.
type BatchRepository interface {
	// Create inserts a batch header.
	Create(ctx context.Context, batch *models.Batch) error

	// AddRecords inserts the flat card records of a batch.
	AddRecords(ctx context.Context, batchID string, records []analytics.Record) error

	// AddSummary inserts every metric of a summary.
	AddSummary(ctx context.Context, batchID string, summary analytics.Summary) error

	// AddDeckStats inserts per-deck statistics.
	AddDeckStats(ctx context.Context, batchID string, stats []analytics.DeckStat) error

	// GetByID retrieves a batch header, or nil if it does not exist.
	GetByID(ctx context.Context, id string) (*models.Batch, error)

	// List retrieves batch headers, newest first. limit <= 0 means no limit.
	List(ctx context.Context, setCode string, limit int) ([]*models.Batch, error)

	// GetRecords retrieves the records of a batch in insertion order.
	GetRecords(ctx context.Context, batchID string) ([]analytics.Record, error)

	// GetSummary rebuilds the summary of a batch.
	GetSummary(ctx context.Context, batchID string) (analytics.Summary, error)

	// GetDeckStats retrieves per-deck statistics ordered by deck.
	GetDeckStats(ctx context.Context, batchID string) ([]analytics.DeckStat, error)

	// Delete removes a batch and everything derived from it.
	Delete(ctx context.Context, id string) error
}

type batchRepository struct {
	db DBTX
}

// NewBatchRepository creates a new batch repository.
func NewBatchRepository(db DBTX) BatchRepository {
	return &batchRepository{db: db}
}

// Create inserts a batch header.
func (r *batchRepository) Create(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO simulation_batches (id, set_code, seed, selector, runs, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		batch.ID,
		batch.SetCode,
		int64(batch.Seed), // stored bit-for-bit; SQLite integers are signed
		batch.Selector,
		batch.Runs,
		batch.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}

	return nil
}

// AddRecords inserts the flat card records of a batch.
func (r *batchRepository) AddRecords(ctx context.Context, batchID string, records []analytics.Record) error {
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO batch_records (
			batch_id, deck_id, card_name, type_line, archetype, draft_number,
			colors, color_count, cmc, rarity, score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			batchID, rec.DeckID, rec.CardName, rec.TypeLine, rec.Archetype, rec.RunIndex,
			rec.Colors, rec.ColorCount, rec.CMC, rec.Rarity, rec.Score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record for %s: %w", rec.CardName, err)
		}
	}

	return nil
}

// AddSummary inserts every metric of a summary.
func (r *batchRepository) AddSummary(ctx context.Context, batchID string, summary analytics.Summary) error {
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO batch_summaries (batch_id, metric, label, count) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare summary insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for metric, counts := range summary {
		for label, count := range counts {
			if _, err := stmt.ExecContext(ctx, batchID, metric, label, count); err != nil {
				return fmt.Errorf("failed to insert %s/%s: %w", metric, label, err)
			}
		}
	}

	return nil
}

// AddDeckStats inserts per-deck statistics.
func (r *batchRepository) AddDeckStats(ctx context.Context, batchID string, stats []analytics.DeckStat) error {
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO batch_decks (
			batch_id, deck_id, archetype, colors, color_pair, creatures, instants,
			sorceries, spells, mean_cmc, median_cmc, stddev_cmc, land_split
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare deck insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, s := range stats {
		split, err := json.Marshal(s.LandSplit)
		if err != nil {
			return fmt.Errorf("failed to encode land split: %w", err)
		}
		_, err = stmt.ExecContext(ctx,
			batchID, s.DeckID, s.Archetype, s.Colors, s.ColorPair, s.Creatures, s.Instants,
			s.Sorceries, s.Spells, s.MeanCMC, s.MedianCMC, s.StdDevCMC, string(split),
		)
		if err != nil {
			return fmt.Errorf("failed to insert deck %d: %w", s.DeckID, err)
		}
	}

	return nil
}

// GetByID retrieves a batch header, or nil if it does not exist.
func (r *batchRepository) GetByID(ctx context.Context, id string) (*models.Batch, error) {
	query := `
		SELECT id, set_code, seed, selector, runs, created_at
		FROM simulation_batches
		WHERE id = ?
	`

	batch, err := scanBatch(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	return batch, nil
}

// List retrieves batch headers, newest first.
func (r *batchRepository) List(ctx context.Context, setCode string, limit int) ([]*models.Batch, error) {
	query := `
		SELECT id, set_code, seed, selector, runs, created_at
		FROM simulation_batches
		WHERE (? = '' OR set_code = ?)
		ORDER BY created_at DESC, id
	`
	args := []any{setCode, setCode}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var batches []*models.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, batch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batches: %w", err)
	}

	return batches, nil
}

// GetRecords retrieves the records of a batch in insertion order.
func (r *batchRepository) GetRecords(ctx context.Context, batchID string) ([]analytics.Record, error) {
	query := `
		SELECT deck_id, card_name, type_line, archetype, draft_number,
		       colors, color_count, cmc, rarity, score
		FROM batch_records
		WHERE batch_id = ?
		ORDER BY rowid
	`

	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []analytics.Record
	for rows.Next() {
		var rec analytics.Record
		err := rows.Scan(
			&rec.DeckID, &rec.CardName, &rec.TypeLine, &rec.Archetype, &rec.RunIndex,
			&rec.Colors, &rec.ColorCount, &rec.CMC, &rec.Rarity, &rec.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// GetSummary rebuilds the summary of a batch.
func (r *batchRepository) GetSummary(ctx context.Context, batchID string) (analytics.Summary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT metric, label, count FROM batch_summaries WHERE batch_id = ?`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := analytics.Summary{}
	for rows.Next() {
		var metric, label string
		var count int
		if err := rows.Scan(&metric, &label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		if summary[metric] == nil {
			summary[metric] = make(map[string]int)
		}
		summary[metric][label] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary: %w", err)
	}

	return summary, nil
}

// GetDeckStats retrieves per-deck statistics ordered by deck.
func (r *batchRepository) GetDeckStats(ctx context.Context, batchID string) ([]analytics.DeckStat, error) {
	query := `
		SELECT deck_id, archetype, colors, color_pair, creatures, instants, sorceries,
		       spells, mean_cmc, median_cmc, stddev_cmc, land_split
		FROM batch_decks
		WHERE batch_id = ?
		ORDER BY deck_id
	`

	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []analytics.DeckStat
	for rows.Next() {
		var s analytics.DeckStat
		var split string
		err := rows.Scan(
			&s.DeckID, &s.Archetype, &s.Colors, &s.ColorPair, &s.Creatures, &s.Instants, &s.Sorceries,
			&s.Spells, &s.MeanCMC, &s.MedianCMC, &s.StdDevCMC, &split,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deck stats: %w", err)
		}
		if err := json.Unmarshal([]byte(split), &s.LandSplit); err != nil {
			return nil, fmt.Errorf("failed to decode land split: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deck stats: %w", err)
	}

	return stats, nil
}

// Delete removes a batch and everything derived from it.
func (r *batchRepository) Delete(ctx context.Context, id string) error {
	for _, table := range []string{"batch_decks", "batch_summaries", "batch_records"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE batch_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM simulation_batches WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete batch: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*models.Batch, error) {
	var b models.Batch
	var seed int64
	if err := row.Scan(&b.ID, &b.SetCode, &seed, &b.Selector, &b.Runs, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Seed = uint64(seed)
	return &b, nil
}
