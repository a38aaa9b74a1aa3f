// Package analytics flattens simulated decks into per-card records and
// aggregates them into summary statistics.
package analytics

import (
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
)

// Summary metric names.
const (
	MetricMostCommonCards       = "most_common_cards"
	MetricColorDistribution     = "color_distribution"
	MetricTypeDistribution      = "type_distribution"
	MetricManaCurve             = "mana_curve"
	MetricRarityDistribution    = "rarity_distribution"
	MetricArchetypeDistribution = "archetype_distribution"
)

// Top-N limits for card frequency metrics.
const (
	TopCards             = 20
	TopCardsPerArchetype = 10
)

// Record is one non-basic-land card of one simulated deck.
type Record struct {
	DeckID     int     `json:"deck_id" csv:"deck_id"`
	CardName   string  `json:"card_name" csv:"card_name"`
	TypeLine   string  `json:"type_line" csv:"type_line"`
	Archetype  string  `json:"archetype" csv:"archetype"`
	RunIndex   int     `json:"draft_number" csv:"draft_number"`
	Colors     string  `json:"colors" csv:"colors"`
	ColorCount int     `json:"color_count" csv:"color_count"`
	CMC        float64 `json:"cmc" csv:"cmc"`
	Rarity     string  `json:"rarity" csv:"rarity"`
	Score      float64 `json:"score" csv:"score"`
}

// Count is one label of a metric with its tally.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary maps a metric name to label counts.
type Summary map[string]map[string]int

// Metrics returns the metric names in sorted order.
func (s Summary) Metrics() []string {
	names := lo.Keys(s)
	sort.Strings(names)
	return names
}

// Sorted returns the counts of a metric, highest first, ties by label.
func (s Summary) Sorted(metric string) []Count {
	counts := lo.MapToSlice(s[metric], func(label string, n int) Count {
		return Count{Label: label, Count: n}
	})
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// ByManaValue returns the counts of a mana curve metric ordered by mana value.
func (s Summary) ByManaValue(metric string) []Count {
	counts := lo.MapToSlice(s[metric], func(label string, n int) Count {
		return Count{Label: label, Count: n}
	})
	sort.Slice(counts, func(i, j int) bool {
		a, _ := strconv.ParseFloat(counts[i].Label, 64)
		b, _ := strconv.ParseFloat(counts[j].Label, 64)
		return a < b
	})
	return counts
}

// TopCardsMetric returns the per-archetype card frequency metric name.
func TopCardsMetric(archetype string) string {
	return MetricMostCommonCards + "_" + archetype
}

// ManaCurveMetric returns the per-archetype mana curve metric name.
func ManaCurveMetric(archetype string) string {
	return MetricManaCurve + "_" + archetype
}

// Flatten turns a batch into per-card records. Basic lands are skipped.
func Flatten(batch *draft.Batch) []Record {
	var records []Record
	for deckID, deck := range batch.Decks {
		for _, c := range deck.Cards() {
			if cards.IsBasicLandName(c.Name) {
				continue
			}
			records = append(records, Record{
				DeckID:     deckID,
				CardName:   c.Name,
				TypeLine:   c.TypeLine,
				Archetype:  deck.Archetype,
				RunIndex:   deck.RunIndex,
				Colors:     c.ColorLabel(),
				ColorCount: len(c.Colors),
				CMC:        c.CMC,
				Rarity:     c.Rarity,
				Score:      c.Score,
			})
		}
	}
	return records
}

// Analyze flattens a batch and derives its summary. Per-archetype metrics
// are only added when the batch has at least two archetypes.
func Analyze(batch *draft.Batch) ([]Record, Summary) {
	records := Flatten(batch)
	return records, Summarize(records)
}

// Summarize derives summary metrics from flat records.
func Summarize(records []Record) Summary {
	summary := Summary{
		MetricMostCommonCards:    topN(records, func(r Record) string { return r.CardName }, TopCards),
		MetricColorDistribution:  countBy(records, func(r Record) string { return r.Colors }),
		MetricTypeDistribution:   countBy(records, func(r Record) string { return cards.MainTypeOf(r.TypeLine) }),
		MetricManaCurve:          countBy(records, manaValueLabel),
		MetricRarityDistribution: countBy(records, func(r Record) string { return r.Rarity }),
	}

	archetypes := lo.Uniq(lo.Map(records, func(r Record, _ int) string { return r.Archetype }))
	if len(archetypes) < 2 {
		return summary
	}

	decks := lo.UniqBy(records, func(r Record) int { return r.DeckID })
	summary[MetricArchetypeDistribution] = countBy(decks, func(r Record) string { return r.Archetype })

	byArchetype := lo.GroupBy(records, func(r Record) string { return r.Archetype })
	for _, archetype := range archetypes {
		group := byArchetype[archetype]
		summary[TopCardsMetric(archetype)] = topN(group, func(r Record) string { return r.CardName }, TopCardsPerArchetype)
		summary[ManaCurveMetric(archetype)] = countBy(group, manaValueLabel)
	}

	return summary
}

// ManaValueLabel formats a mana value the way curve metrics key it: 2 -> "2", 2.5 -> "2.5".
func ManaValueLabel(cmc float64) string {
	return strconv.FormatFloat(cmc, 'f', -1, 64)
}

func manaValueLabel(r Record) string {
	return ManaValueLabel(r.CMC)
}

func countBy(records []Record, key func(Record) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return counts
}

// topN keeps the n most frequent keys. Equal counts keep first-seen order.
func topN(records []Record, key func(Record) string, n int) map[string]int {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		k := key(r)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := make(map[string]int, min(n, len(order)))
	for _, k := range order[:min(n, len(order))] {
		top[k] = counts[k]
	}
	return top
}
