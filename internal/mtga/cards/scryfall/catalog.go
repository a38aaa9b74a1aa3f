package scryfall

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// BoosterQuery returns the search query for every booster-eligible card of a set.
func BoosterQuery(setCode string) string {
	return fmt.Sprintf("set:%s is:booster", strings.ToLower(setCode))
}

// FetchAll implements cards.Catalog. Unknown sets and transport failures are
// reported as cards.ErrCatalogUnavailable.
func (c *Client) FetchAll(ctx context.Context, setCode string) ([]cards.Card, error) {
	if strings.TrimSpace(setCode) == "" {
		return nil, fmt.Errorf("%w: empty set code", cards.ErrCatalogUnavailable)
	}

	results, err := c.SearchAll(ctx, BoosterQuery(setCode))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", cards.ErrCatalogUnavailable, err)
	}

	records := make([]cards.Card, 0, len(results))
	for i := range results {
		records = append(records, results[i].ToRecord())
	}

	return cards.Dedupe(records), nil
}

// ToRecord converts a Scryfall card to the simulator's card record.
// Multi-faced cards without top-level cost, text or colors take them from the front face.
func (sc *Card) ToRecord() cards.Card {
	record := cards.Card{
		Name:       sc.Name,
		SetCode:    sc.SetCode,
		ManaCost:   sc.ManaCost,
		TypeLine:   sc.TypeLine,
		Colors:     append([]string{}, sc.Colors...),
		Rarity:     sc.Rarity,
		CMC:        sc.CMC,
		OracleText: sc.OracleText,
	}

	if len(sc.CardFaces) > 0 {
		front := sc.CardFaces[0]
		if record.ManaCost == "" {
			record.ManaCost = front.ManaCost
		}
		if record.OracleText == "" {
			record.OracleText = front.OracleText
		}
		if len(record.Colors) == 0 && len(front.Colors) > 0 {
			record.Colors = append([]string{}, front.Colors...)
		}
		if record.TypeLine == "" {
			record.TypeLine = front.TypeLine
		}
	}

	return record
}
