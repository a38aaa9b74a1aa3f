package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
)

// DeckStat summarizes the composition of one simulated deck.
type DeckStat struct {
	DeckID    int            `json:"deck_id"`
	Archetype string         `json:"archetype"`
	Colors    string         `json:"colors"`     // primary colors, in archetype order
	ColorPair string         `json:"color_pair"` // two most played spell colors, sorted; empty if fewer than two
	Creatures int            `json:"creatures"`
	Instants  int            `json:"instants"`
	Sorceries int            `json:"sorceries"`
	Spells    int            `json:"spells"`
	MeanCMC   float64        `json:"mean_cmc"`
	MedianCMC float64        `json:"median_cmc"`
	StdDevCMC float64        `json:"stddev_cmc"`
	LandSplit map[string]int `json:"land_split"`
}

// DeckStats computes per-deck statistics for a batch.
func DeckStats(batch *draft.Batch) []DeckStat {
	return lo.Map(batch.Decks, func(deck *draft.Deck, i int) DeckStat {
		cmcs := lo.Map(deck.Spells, func(s draft.ScoredCard, _ int) float64 { return s.CMC })

		return DeckStat{
			DeckID:    i,
			Archetype: deck.Archetype,
			Colors:    strings.Join(deck.Colors, ""),
			ColorPair: colorPair(deck.Spells),
			Creatures: deck.CreatureCount(),
			Instants:  lo.CountBy(deck.Spells, func(s draft.ScoredCard) bool { return strings.Contains(s.TypeLine, "Instant") }),
			Sorceries: lo.CountBy(deck.Spells, func(s draft.ScoredCard) bool { return strings.Contains(s.TypeLine, "Sorcery") }),
			Spells:    len(deck.Spells),
			MeanCMC:   mean(cmcs),
			MedianCMC: median(cmcs),
			StdDevCMC: stddev(cmcs),
			LandSplit: deck.LandSplit,
		}
	})
}

// ColorPairDistribution counts decks per two-color pair.
func ColorPairDistribution(stats []DeckStat) map[string]int {
	withPair := lo.Filter(stats, func(s DeckStat, _ int) bool { return s.ColorPair != "" })
	return lo.CountValuesBy(withPair, func(s DeckStat) string { return s.ColorPair })
}

// AverageCreatures returns the mean creature count per archetype.
func AverageCreatures(stats []DeckStat) map[string]float64 {
	byArchetype := lo.GroupBy(stats, func(s DeckStat) string { return s.Archetype })
	return lo.MapValues(byArchetype, func(group []DeckStat, _ string) float64 {
		return float64(lo.SumBy(group, func(s DeckStat) int { return s.Creatures })) / float64(len(group))
	})
}

// colorPair returns the two colors with the most non-land spells, sorted.
func colorPair(spells []draft.ScoredCard) string {
	counts := make(map[string]int)
	for _, s := range spells {
		for _, c := range s.Colors {
			counts[c]++
		}
	}
	if len(counts) < 2 {
		return ""
	}

	ranked := lo.Filter(cards.AllColors, func(c string, _ int) bool { return counts[c] > 0 })
	sort.SliceStable(ranked, func(i, j int) bool { return counts[ranked[i]] > counts[ranked[j]] })

	pair := []string{ranked[0], ranked[1]}
	sort.Strings(pair)
	return strings.Join(pair, "")
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return lo.Sum(xs) / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(xs)))
}
