package draft

import (
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// Score weights.
const (
	sharedColorBonus = 5
	exactColorBonus  = 3
	colorlessBonus   = 3
	cheapBonus       = 2 // mana value <= 3
	midBonus         = 1 // mana value <= 5
	creatureBonus    = 1
	removalBonus     = 2
	keywordBonus     = 1
)

// removalTerms mark a card as removal when found in its lowercased rules text.
var removalTerms = []string{"destroy", "exile", "damage", "-", "fight"}

// ScoredCard is a card with the score it received in one deck build.
type ScoredCard struct {
	cards.Card
	Score float64 `json:"score"`
}

// Score rates a card for a deck with the given primary colors.
// profile may be nil, in which case no keyword bonus or weight is applied.
func Score(card cards.Card, colors []string, profile *Profile) float64 {
	score := 0.0

	if card.SharesColor(colors) {
		score += sharedColorBonus
	}
	if card.ColorsEqual(colors) {
		score += exactColorBonus
	}
	if card.IsColorless() && !card.IsLand() {
		score += colorlessBonus
	}

	score += float64(cards.RarityBonus(card.Rarity))

	switch {
	case card.CMC <= 3:
		score += cheapBonus
	case card.CMC <= 5:
		score += midBonus
	}

	if card.IsCreature() {
		score += creatureBonus
	}

	text := strings.ToLower(card.OracleText)
	if isRemoval(card.TypeLine, text) {
		score += removalBonus
	}

	if profile != nil {
		for _, keyword := range profile.Keywords {
			if strings.Contains(text, keyword) {
				score += keywordBonus
			}
		}
		if card.IsCreature() {
			score *= profile.CreatureWeight
		} else {
			score *= profile.NoncreatureWeight
		}
	}

	return score
}

func isRemoval(typeLine, lowerText string) bool {
	if strings.Contains(typeLine, "Removal") {
		return true
	}
	for _, term := range removalTerms {
		if strings.Contains(lowerText, term) {
			return true
		}
	}
	return false
}

// IsPlayable reports whether a card may be considered for a deck in the
// given colors: lands and colorless cards always, colored cards when they
// share a color with the deck or fit inside it.
func IsPlayable(card cards.Card, colors []string) bool {
	if card.IsLand() || card.IsColorless() {
		return true
	}
	return card.SharesColor(colors) || card.ColorsWithin(colors)
}
