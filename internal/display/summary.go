// Package display renders simulation results for the terminal.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/draft/analytics"
	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/models"
)

// ConsoleTopCards is how many cards the console summary lists.
const ConsoleTopCards = 10

// SummaryDisplayer writes batch summaries in a readable format.
type SummaryDisplayer struct {
	out   io.Writer
	table *draft.ArchetypeTable
}

// NewSummaryDisplayer creates a displayer writing to out. table may be nil.
func NewSummaryDisplayer(out io.Writer, table *draft.ArchetypeTable) *SummaryDisplayer {
	if table == nil {
		table = draft.DefaultArchetypes()
	}
	return &SummaryDisplayer{out: out, table: table}
}

// DisplaySummary prints the top cards, color distribution, average curve
// per deck and, when present, the archetype distribution.
func (d *SummaryDisplayer) DisplaySummary(summary analytics.Summary, runs int) {
	if len(summary) == 0 {
		fmt.Fprintln(d.out, "No summary data.")
		return
	}

	fmt.Fprintf(d.out, "\nSimulation Summary (%d decks)\n", runs)
	fmt.Fprintf(d.out, "══════════════════\n\n")

	fmt.Fprintf(d.out, "Top %d Cards:\n", ConsoleTopCards)
	fmt.Fprintf(d.out, "%-4s %-30s %-6s\n", "#", "Card", "Decks")
	fmt.Fprintf(d.out, "%s\n", strings.Repeat("─", 42))
	top := summary.Sorted(analytics.MetricMostCommonCards)
	if len(top) > ConsoleTopCards {
		top = top[:ConsoleTopCards]
	}
	for i, c := range top {
		fmt.Fprintf(d.out, "%-4d %-30s %-6d\n", i+1, truncateString(c.Label, 28), c.Count)
	}

	fmt.Fprintf(d.out, "\nColor Distribution:\n")
	d.displayShares(summary.Sorted(analytics.MetricColorDistribution))

	fmt.Fprintf(d.out, "\nAverage Curve per Deck:\n")
	for _, c := range summary.ByManaValue(analytics.MetricManaCurve) {
		avg := 0.0
		if runs > 0 {
			avg = float64(c.Count) / float64(runs)
		}
		fmt.Fprintf(d.out, "  %-3s %5.2f\n", c.Label, avg)
	}

	if _, ok := summary[analytics.MetricArchetypeDistribution]; ok {
		fmt.Fprintf(d.out, "\nArchetype Distribution:\n")
		counts := summary.Sorted(analytics.MetricArchetypeDistribution)
		for i := range counts {
			counts[i].Label = d.table.Name(counts[i].Label)
		}
		d.displayShares(counts)
	}

	fmt.Fprintln(d.out)
}

func (d *SummaryDisplayer) displayShares(counts []analytics.Count) {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	for _, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = 100 * float64(c.Count) / float64(total)
		}
		fmt.Fprintf(d.out, "  %-28s %6d  %5.1f%%\n", truncateString(c.Label, 28), c.Count, pct)
	}
}

// DisplayBatches prints stored batches in a compact table.
func (d *SummaryDisplayer) DisplayBatches(batches []*models.Batch) {
	if len(batches) == 0 {
		fmt.Fprintln(d.out, "No stored batches.")
		return
	}

	fmt.Fprintf(d.out, "%-36s %-6s %-6s %-14s %-20s %s\n", "ID", "Set", "Runs", "Selector", "Seed", "Created")
	fmt.Fprintf(d.out, "%s\n", strings.Repeat("─", 110))
	for _, b := range batches {
		fmt.Fprintf(d.out, "%-36s %-6s %-6d %-14s %-20d %s\n",
			b.ID,
			b.SetCode,
			b.Runs,
			truncateString(b.Selector, 14),
			b.Seed,
			b.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		)
	}
}

// DisplayBatch prints a batch header and its per-deck statistics.
func (d *SummaryDisplayer) DisplayBatch(batch *models.Batch, decks []analytics.DeckStat) {
	fmt.Fprintf(d.out, "Batch %s\n", batch.ID)
	fmt.Fprintf(d.out, "├─ Set:      %s\n", batch.SetCode)
	fmt.Fprintf(d.out, "├─ Runs:     %d\n", batch.Runs)
	fmt.Fprintf(d.out, "├─ Selector: %s\n", batch.Selector)
	fmt.Fprintf(d.out, "├─ Seed:     %d\n", batch.Seed)
	fmt.Fprintf(d.out, "└─ Created:  %s\n\n", batch.CreatedAt.Local().Format("2006-01-02 15:04:05"))

	if len(decks) == 0 {
		return
	}

	fmt.Fprintf(d.out, "%-5s %-8s %-6s %-5s %-9s %-7s %-8s %s\n",
		"Deck", "Arch", "Pair", "Crt", "Non-crt", "Avg MV", "Std MV", "Lands")
	fmt.Fprintf(d.out, "%s\n", strings.Repeat("─", 70))
	for _, s := range decks {
		fmt.Fprintf(d.out, "%-5d %-8s %-6s %-5d %-9d %-7.2f %-8.2f %s\n",
			s.DeckID,
			s.Archetype,
			s.ColorPair,
			s.Creatures,
			s.Spells-s.Creatures,
			s.MeanCMC,
			s.StdDevCMC,
			formatLandSplit(s.LandSplit),
		)
	}

	fmt.Fprintf(d.out, "\nAverage creatures by archetype:\n")
	avg := analytics.AverageCreatures(decks)
	codes := make([]string, 0, len(avg))
	for code := range avg {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(d.out, "  %-28s %5.1f\n", d.table.Name(code), avg[code])
	}
}

// DisplayArchetypes lists the archetype table.
func (d *SummaryDisplayer) DisplayArchetypes(profiles []draft.Profile) {
	fmt.Fprintf(d.out, "%-8s %-28s %-8s %-8s %s\n", "Code", "Name", "Crt wt", "Min crt", "Keywords")
	fmt.Fprintf(d.out, "%s\n", strings.Repeat("─", 80))
	for _, p := range profiles {
		fmt.Fprintf(d.out, "%-8s %-28s %-8.1f %-8d %s\n",
			p.Code,
			truncateString(d.table.Name(p.Code), 28),
			p.CreatureWeight,
			d.table.MinCreatures(p.Code),
			truncateString(strings.Join(p.Keywords, ", "), 40),
		)
	}
}

func formatLandSplit(split map[string]int) string {
	var parts []string
	for _, color := range []string{"W", "U", "B", "R", "G", "C"} {
		if n := split[color]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, color))
		}
	}
	return strings.Join(parts, " ")
}

// truncateString truncates a string to the specified length, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
