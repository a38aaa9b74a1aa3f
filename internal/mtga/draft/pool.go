package draft

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// Booster composition.
const (
	PacksPerPool     = 6
	CommonsPerPack   = 10
	UncommonsPerPack = 3
	RaresPerPack     = 1
	BonusPerPack     = 1
	PackSize         = CommonsPerPack + UncommonsPerPack + RaresPerPack + BonusPerPack
	PoolSize         = PacksPerPool * PackSize
)

var (
	// ErrEmptyCatalog is returned when pools are requested from an empty catalog.
	ErrEmptyCatalog = errors.New("card catalog is empty")

	// ErrInsufficientRarityStock is returned when a rarity tier cannot fill one pack.
	ErrInsufficientRarityStock = errors.New("not enough cards of a rarity to fill a pack")
)

// PoolGenerator builds sealed pools from a read-only catalog.
type PoolGenerator struct {
	catalog   []cards.Card
	commons   []cards.Card
	uncommons []cards.Card
	rares     []cards.Card // rare and mythic
}

// NewPoolGenerator indexes the catalog by rarity and checks that every tier
// can fill a pack.
func NewPoolGenerator(catalog []cards.Card) (*PoolGenerator, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	g := &PoolGenerator{catalog: catalog}
	for _, c := range catalog {
		switch c.Rarity {
		case cards.RarityCommon:
			g.commons = append(g.commons, c)
		case cards.RarityUncommon:
			g.uncommons = append(g.uncommons, c)
		case cards.RarityRare, cards.RarityMythic:
			g.rares = append(g.rares, c)
		}
	}

	tiers := []struct {
		name string
		have int
		want int
	}{
		{"common", len(g.commons), CommonsPerPack},
		{"uncommon", len(g.uncommons), UncommonsPerPack},
		{"rare/mythic", len(g.rares), RaresPerPack},
	}
	for _, tier := range tiers {
		if tier.have < tier.want {
			return nil, fmt.Errorf("%w: %s has %d, need %d", ErrInsufficientRarityStock, tier.name, tier.have, tier.want)
		}
	}

	return g, nil
}

// CatalogSize returns the number of cards the generator samples from.
func (g *PoolGenerator) CatalogSize() int {
	return len(g.catalog)
}

// Generate returns a fresh 90-card pool: six packs of 10 commons, 3 uncommons
// and 1 rare or mythic sampled without replacement, plus one card drawn from
// the whole catalog.
func (g *PoolGenerator) Generate(rng *rand.Rand) []cards.Card {
	pool := make([]cards.Card, 0, PoolSize)
	for range PacksPerPool {
		pool = sample(rng, g.commons, CommonsPerPack, pool)
		pool = sample(rng, g.uncommons, UncommonsPerPack, pool)
		pool = sample(rng, g.rares, RaresPerPack, pool)
		pool = append(pool, g.catalog[rng.IntN(len(g.catalog))])
	}
	return pool
}

// sample appends k distinct elements of src to dst using a partial
// Fisher-Yates shuffle over an index slice. src is not modified.
func sample(rng *rand.Rand, src []cards.Card, k int, dst []cards.Card) []cards.Card {
	idx := make([]int, len(src))
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		dst = append(dst, src[idx[i]])
	}
	return dst
}
