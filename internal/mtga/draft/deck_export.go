package draft

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// ExportDeckToArena formats a deck as an MTGA import list.
// Spells are listed by name, then basic lands in WUBRG order.
func ExportDeckToArena(deck *Deck) string {
	if deck == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Deck\n")

	counts := make(map[string]int)
	for _, sc := range deck.Spells {
		counts[sc.Name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "%d %s\n", counts[name], name)
	}

	for _, color := range cards.AllColors {
		if n := deck.LandSplit[color]; n > 0 {
			fmt.Fprintf(&sb, "%d %s\n", n, cards.BasicLandName(color))
		}
	}

	return sb.String()
}

// ExportDeckToFile writes a deck in MTGA import format.
func ExportDeckToFile(deck *Deck, filename string) error {
	deckString := ExportDeckToArena(deck)
	if deckString == "" {
		return fmt.Errorf("no deck data to export")
	}

	return os.WriteFile(filename, []byte(deckString), 0o644)
}

// FormatDeckSummary returns a human-readable summary of the deck.
// table may be nil.
func FormatDeckSummary(deck *Deck, table *ArchetypeTable) string {
	if deck == nil {
		return "No deck"
	}
	if table == nil {
		table = DefaultArchetypes()
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "=== Run %d: %s ===\n", deck.RunIndex, table.Name(deck.Archetype))
	fmt.Fprintf(&sb, "Main Deck: %d spells + %d lands\n", len(deck.Spells), len(deck.Lands))

	creatures := deck.CreatureCount()
	var totalCMC float64
	for _, sc := range deck.Spells {
		totalCMC += sc.CMC
	}
	avg := 0.0
	if len(deck.Spells) > 0 {
		avg = totalCMC / float64(len(deck.Spells))
	}
	fmt.Fprintf(&sb, "Curve: %.1f avg CMC (%d creatures, %d non-creatures)\n",
		avg, creatures, len(deck.Spells)-creatures)

	sb.WriteString("Lands:\n")
	for _, color := range cards.AllColors {
		if n := deck.LandSplit[color]; n > 0 {
			fmt.Fprintf(&sb, "  %s: %d\n", cards.BasicLandName(color), n)
		}
	}

	return sb.String()
}
