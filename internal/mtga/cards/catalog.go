package cards

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrCatalogUnavailable is returned when the card source cannot be reached
// or does not know the requested set.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Catalog supplies every card of a set, in a stable order.
type Catalog interface {
	FetchAll(ctx context.Context, setCode string) ([]Card, error)
}

// CatalogFunc adapts a function to the Catalog interface.
type CatalogFunc func(ctx context.Context, setCode string) ([]Card, error)

// FetchAll calls f.
func (f CatalogFunc) FetchAll(ctx context.Context, setCode string) ([]Card, error) {
	return f(ctx, setCode)
}

// FileCatalog reads a set from a JSON file holding an array of cards.
// Cards whose set field is empty are treated as belonging to every set.
type FileCatalog struct {
	Path string
}

// NewFileCatalog creates a catalog backed by a JSON file.
func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{Path: path}
}

// FetchAll loads the file and returns the cards of setCode.
func (f *FileCatalog) FetchAll(ctx context.Context, setCode string) ([]Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCatalogUnavailable, f.Path, err)
	}

	var all []Card
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCatalogUnavailable, f.Path, err)
	}

	var result []Card
	for _, c := range all {
		if c.SetCode == "" || strings.EqualFold(c.SetCode, setCode) {
			result = append(result, c)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: set %q not found in %s", ErrCatalogUnavailable, setCode, f.Path)
	}

	return Dedupe(result), nil
}

// SaveFile writes cards as a JSON array, the format FileCatalog reads.
func SaveFile(path string, cards []Card) error {
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cards: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cards file: %w", err)
	}
	return nil
}

// Dedupe drops cards whose name was already seen, keeping the first.
func Dedupe(cards []Card) []Card {
	seen := make(map[string]bool, len(cards))
	result := make([]Card, 0, len(cards))
	for _, c := range cards {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		result = append(result, c)
	}
	return result
}
