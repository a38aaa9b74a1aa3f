package draft

import (
	"fmt"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// testCatalog returns a small but complete set: every color has creatures
// and spells at each rarity, plus colorless artifacts and a multicolor card.
func testCatalog() []cards.Card {
	var catalog []cards.Card
	for _, color := range cards.AllColors {
		for i := 0; i < 8; i++ {
			catalog = append(catalog, cards.Card{
				Name:     fmt.Sprintf("%s Common Creature %d", color, i),
				ManaCost: fmt.Sprintf("{%d}{%s}", i%4, color),
				TypeLine: "Creature — Soldier",
				Colors:   []string{color},
				Rarity:   cards.RarityCommon,
				CMC:      float64(i%4 + 1),
			})
		}
		for i := 0; i < 4; i++ {
			catalog = append(catalog, cards.Card{
				Name:       fmt.Sprintf("%s Common Spell %d", color, i),
				ManaCost:   fmt.Sprintf("{%d}{%s}", i, color),
				TypeLine:   "Instant",
				Colors:     []string{color},
				Rarity:     cards.RarityCommon,
				CMC:        float64(i + 1),
				OracleText: "Draw a card.",
			})
		}
		for i := 0; i < 3; i++ {
			catalog = append(catalog, cards.Card{
				Name:     fmt.Sprintf("%s Uncommon Creature %d", color, i),
				ManaCost: fmt.Sprintf("{2}{%s}{%s}", color, color),
				TypeLine: "Creature — Knight",
				Colors:   []string{color},
				Rarity:   cards.RarityUncommon,
				CMC:      4,
			})
		}
		catalog = append(catalog,
			cards.Card{
				Name:       color + " Rare Removal",
				ManaCost:   "{1}{" + color + "}",
				TypeLine:   "Sorcery",
				Colors:     []string{color},
				Rarity:     cards.RarityRare,
				CMC:        2,
				OracleText: "Destroy target creature.",
			},
			cards.Card{
				Name:     color + " Mythic Dragon",
				ManaCost: "{4}{" + color + "}{" + color + "}",
				TypeLine: "Creature — Dragon",
				Colors:   []string{color},
				Rarity:   cards.RarityMythic,
				CMC:      6,
			},
		)
	}

	for i := 0; i < 3; i++ {
		catalog = append(catalog, cards.Card{
			Name:     fmt.Sprintf("Colorless Relic %d", i),
			ManaCost: "{3}",
			TypeLine: "Artifact",
			Rarity:   cards.RarityCommon,
			CMC:      3,
		})
	}
	catalog = append(catalog,
		cards.Card{
			Name:     "Orzhov Envoy",
			ManaCost: "{W}{B}",
			TypeLine: "Creature — Cleric",
			Colors:   []string{"W", "B"},
			Rarity:   cards.RarityUncommon,
			CMC:      2,
		},
		cards.Card{
			Name:     "Scoured Barrens",
			TypeLine: "Land",
			Rarity:   cards.RarityCommon,
		},
	)

	return catalog
}

func creature(name, color, rarity string, cmc float64) cards.Card {
	return cards.Card{
		Name:     name,
		ManaCost: fmt.Sprintf("{%d}{%s}", int(cmc)-1, color),
		TypeLine: "Creature — Beast",
		Colors:   []string{color},
		Rarity:   rarity,
		CMC:      cmc,
	}
}

func spell(name, color, rarity string, cmc float64) cards.Card {
	return cards.Card{
		Name:     name,
		ManaCost: fmt.Sprintf("{%d}{%s}", int(cmc)-1, color),
		TypeLine: "Instant",
		Colors:   []string{color},
		Rarity:   rarity,
		CMC:      cmc,
	}
}
