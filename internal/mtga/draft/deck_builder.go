package draft

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// Deck shape.
const (
	DeckSize    = 40
	SpellTarget = 23
	LandTarget  = DeckSize - SpellTarget
)

var (
	// ErrEmptyPool is returned when a deck is built from an empty pool.
	ErrEmptyPool = errors.New("sealed pool is empty")

	// ErrDegenerateArchetype is returned when an archetype resolves to no colors.
	ErrDegenerateArchetype = errors.New("archetype resolved to no colors")
)

// Deck is a 40-card sealed deck: the selected spells plus basic lands.
type Deck struct {
	Archetype string         `json:"archetype"`
	RunIndex  int            `json:"run_index"`
	Colors    []string       `json:"colors"`
	Spells    []ScoredCard   `json:"spells"`
	Lands     []cards.Card   `json:"lands"`
	LandSplit map[string]int `json:"land_split"` // color -> basic land count
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.Spells) + len(d.Lands)
}

// Cards returns spells followed by lands. Lands carry a zero score.
func (d *Deck) Cards() []ScoredCard {
	result := make([]ScoredCard, 0, d.Size())
	result = append(result, d.Spells...)
	for _, land := range d.Lands {
		result = append(result, ScoredCard{Card: land})
	}
	return result
}

// CreatureCount returns the number of creature spells in the deck.
func (d *Deck) CreatureCount() int {
	return countCreatures(d.Spells)
}

// BuilderConfig configures a DeckBuilder.
type BuilderConfig struct {
	// Archetypes is the profile table. Defaults to DefaultArchetypes().
	Archetypes *ArchetypeTable

	Logger *slog.Logger
}

// DeckBuilder turns sealed pools into decks. It holds no mutable state and
// is safe for concurrent use.
type DeckBuilder struct {
	archetypes *ArchetypeTable
	logger     *slog.Logger
}

// NewDeckBuilder creates a deck builder. config may be nil.
func NewDeckBuilder(config *BuilderConfig) *DeckBuilder {
	if config == nil {
		config = &BuilderConfig{}
	}
	archetypes := config.Archetypes
	if archetypes == nil {
		archetypes = DefaultArchetypes()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckBuilder{archetypes: archetypes, logger: logger}
}

// Archetypes returns the builder's profile table.
func (b *DeckBuilder) Archetypes() *ArchetypeTable {
	return b.archetypes
}

// Build assembles a 40-card deck from pool for the given archetype code.
// The result depends only on pool, archetype and the profile table.
func (b *DeckBuilder) Build(pool []cards.Card, archetype string) (*Deck, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	colors := b.archetypes.Resolve(archetype, pool)
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateArchetype, archetype)
	}

	var profile *Profile
	if p, ok := b.archetypes.Profile(archetype); ok {
		profile = &p
	}

	candidates := rankPlayable(pool, colors, profile)

	n := min(SpellTarget, len(candidates))
	selected := append([]ScoredCard(nil), candidates[:n]...)
	selected = enforceCreatures(selected, candidates[n:], b.archetypes.MinCreatures(archetype))

	split := landSplit(selected, colors, DeckSize-len(selected))
	lands := make([]cards.Card, 0, DeckSize-len(selected))
	for _, color := range colors {
		for i := 0; i < split[color]; i++ {
			lands = append(lands, cards.NewBasicLand(color))
		}
	}

	deck := &Deck{
		Archetype: archetype,
		Colors:    colors,
		Spells:    selected,
		Lands:     lands,
		LandSplit: split,
	}

	b.logger.Debug("deck built",
		"archetype", archetype,
		"name", b.archetypes.Name(archetype),
		"colors", strings.Join(colors, ""),
		"spells", len(selected),
		"creatures", deck.CreatureCount(),
		"lands", split)

	return deck, nil
}

// rankPlayable scores the playable non-land cards of a pool and sorts them
// by score, highest first, keeping pool order among equal scores.
func rankPlayable(pool []cards.Card, colors []string, profile *Profile) []ScoredCard {
	ranked := make([]ScoredCard, 0, len(pool))
	for _, card := range pool {
		if card.IsLand() || !IsPlayable(card, colors) {
			continue
		}
		ranked = append(ranked, ScoredCard{Card: card, Score: Score(card, colors, profile)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// enforceCreatures swaps the weakest non-creatures of selected for the best
// creatures of rest until minCreatures is met or either side runs out.
func enforceCreatures(selected, rest []ScoredCard, minCreatures int) []ScoredCard {
	have := countCreatures(selected)
	if have >= minCreatures {
		return selected
	}
	needed := minCreatures - have

	var extra []ScoredCard
	for _, c := range rest {
		if len(extra) == needed {
			break
		}
		if c.IsCreature() {
			extra = append(extra, c)
		}
	}

	var nonCreatures []int
	for i, c := range selected {
		if !c.IsCreature() {
			nonCreatures = append(nonCreatures, i)
		}
	}
	sort.SliceStable(nonCreatures, func(i, j int) bool {
		return selected[nonCreatures[i]].Score < selected[nonCreatures[j]].Score
	})

	evict := make(map[int]bool)
	for _, idx := range nonCreatures[:min(len(extra), len(nonCreatures))] {
		evict[idx] = true
	}

	result := make([]ScoredCard, 0, len(selected)+len(extra))
	for i, c := range selected {
		if !evict[i] {
			result = append(result, c)
		}
	}
	result = append(result, extra...)

	if len(result) > SpellTarget {
		result = result[:SpellTarget]
	}
	return result
}

// landSplit distributes needed basic lands over colors in proportion to the
// colored mana symbols in the spells' costs. Counts always sum to needed.
func landSplit(spells []ScoredCard, colors []string, needed int) map[string]int {
	symbols := make(map[string]int, len(colors))
	total := 0
	for _, spell := range spells {
		for _, color := range colors {
			n := strings.Count(spell.ManaCost, color)
			symbols[color] += n
			total += n
		}
	}

	split := make(map[string]int, len(colors))
	assigned := 0
	for _, color := range colors {
		var count int
		switch {
		case total > 0:
			count = needed * symbols[color] / total
		case len(colors) == 1:
			count = needed
		default:
			count = needed / len(colors)
		}
		split[color] = count
		assigned += count
	}

	for ; assigned < needed; assigned++ {
		split[mostDemanding(colors, symbols)]++
	}
	for ; assigned > needed; assigned-- {
		split[leastDemanding(colors, symbols, split)]--
	}

	return split
}

// mostDemanding returns the color with the most symbols, first on ties.
func mostDemanding(colors []string, symbols map[string]int) string {
	best := colors[0]
	for _, c := range colors[1:] {
		if symbols[c] > symbols[best] {
			best = c
		}
	}
	return best
}

// leastDemanding returns the color with the fewest symbols that still has
// lands to give up, first on ties.
func leastDemanding(colors []string, symbols, split map[string]int) string {
	best := ""
	for _, c := range colors {
		if split[c] == 0 {
			continue
		}
		if best == "" || symbols[c] < symbols[best] {
			best = c
		}
	}
	return best
}

func countCreatures(spells []ScoredCard) int {
	n := 0
	for _, c := range spells {
		if c.IsCreature() {
			n++
		}
	}
	return n
}
