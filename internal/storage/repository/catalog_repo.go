package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/models"
)

// CatalogRepository handles the cached card catalog.
type CatalogRepository interface {
	// ReplaceSet stores the cards of a set, replacing any previous copy.
	ReplaceSet(ctx context.Context, setCode string, cards []cards.Card, cachedAt time.Time) error

	// GetSet returns the cached set header, or nil if the set is not cached.
	GetSet(ctx context.Context, setCode string) (*models.CachedSet, error)

	// GetCards returns the cards of a set in catalog order.
	GetCards(ctx context.Context, setCode string) ([]cards.Card, error)

	// ListSets returns every cached set.
	ListSets(ctx context.Context) ([]*models.CachedSet, error)
}

type catalogRepository struct {
	db DBTX
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db DBTX) CatalogRepository {
	return &catalogRepository{db: db}
}

// ReplaceSet stores the cards of a set, replacing any previous copy.
// Callers should run it inside a transaction.
func (r *catalogRepository) ReplaceSet(ctx context.Context, setCode string, list []cards.Card, cachedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM catalog_cards WHERE set_code = ?`, setCode); err != nil {
		return fmt.Errorf("failed to clear cached cards: %w", err)
	}

	query := `
		INSERT INTO catalog_sets (set_code, card_count, cached_at)
		VALUES (?, ?, ?)
		ON CONFLICT(set_code) DO UPDATE SET
			card_count = excluded.card_count,
			cached_at = excluded.cached_at
	`
	if _, err := r.db.ExecContext(ctx, query, setCode, len(list), cachedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save cached set: %w", err)
	}

	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO catalog_cards (
			set_code, position, name, mana_cost, type_line, colors, rarity, cmc, oracle_text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare card insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range list {
		_, err := stmt.ExecContext(ctx,
			setCode, i, c.Name, c.ManaCost, c.TypeLine, strings.Join(c.Colors, ","), c.Rarity, c.CMC, c.OracleText,
		)
		if err != nil {
			return fmt.Errorf("failed to cache card %s: %w", c.Name, err)
		}
	}

	return nil
}

// GetSet returns the cached set header, or nil if the set is not cached.
func (r *catalogRepository) GetSet(ctx context.Context, setCode string) (*models.CachedSet, error) {
	var set models.CachedSet
	err := r.db.QueryRowContext(ctx,
		`SELECT set_code, card_count, cached_at FROM catalog_sets WHERE set_code = ?`, setCode,
	).Scan(&set.SetCode, &set.CardCount, &set.CachedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached set: %w", err)
	}

	return &set, nil
}

// GetCards returns the cards of a set in catalog order.
func (r *catalogRepository) GetCards(ctx context.Context, setCode string) ([]cards.Card, error) {
	query := `
		SELECT name, mana_cost, type_line, colors, rarity, cmc, oracle_text
		FROM catalog_cards
		WHERE set_code = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, setCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get cached cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []cards.Card
	for rows.Next() {
		c := cards.Card{SetCode: setCode}
		var colors string
		if err := rows.Scan(&c.Name, &c.ManaCost, &c.TypeLine, &colors, &c.Rarity, &c.CMC, &c.OracleText); err != nil {
			return nil, fmt.Errorf("failed to scan cached card: %w", err)
		}
		if colors != "" {
			c.Colors = strings.Split(colors, ",")
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cached cards: %w", err)
	}

	return result, nil
}

// ListSets returns every cached set, most recently cached first.
func (r *catalogRepository) ListSets(ctx context.Context) ([]*models.CachedSet, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT set_code, card_count, cached_at FROM catalog_sets ORDER BY cached_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached sets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sets []*models.CachedSet
	for rows.Next() {
		var set models.CachedSet
		if err := rows.Scan(&set.SetCode, &set.CardCount, &set.CachedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cached set: %w", err)
		}
		sets = append(sets, &set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cached sets: %w", err)
	}

	return sets, nil
}
