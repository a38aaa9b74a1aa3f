package cards

import (
	"sort"
	"strings"
)

// Color constants for WUBRG
const (
	ColorWhite = "W"
	ColorBlue  = "U"
	ColorBlack = "B"
	ColorRed   = "R"
	ColorGreen = "G"
)

// AllColors lists all five colors in WUBRG order.
var AllColors = []string{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

// Rarity values as reported by Scryfall.
const (
	RarityCommon   = "common"
	RarityUncommon = "uncommon"
	RarityRare     = "rare"
	RarityMythic   = "mythic"
)

// Card is the immutable record of one card in a set.
// Name is the unique key within a catalog.
type Card struct {
	Name       string   `json:"name"`
	SetCode    string   `json:"set,omitempty"`
	ManaCost   string   `json:"mana_cost"`
	TypeLine   string   `json:"type_line"`
	Colors     []string `json:"colors"`
	Rarity     string   `json:"rarity"`
	CMC        float64  `json:"cmc"`
	OracleText string   `json:"oracle_text"`
}

// IsLand reports whether the type line contains "Land".
func (c *Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

// IsCreature reports whether the type line contains "Creature".
func (c *Card) IsCreature() bool {
	return strings.Contains(c.TypeLine, "Creature")
}

// IsColorless reports whether the card has no colors.
func (c *Card) IsColorless() bool {
	return len(c.Colors) == 0
}

// IsBasicLand reports whether the card name is one of the basic land names.
func (c *Card) IsBasicLand() bool {
	return IsBasicLandName(c.Name)
}

// MainType returns the part of the type line before the long dash, trimmed.
// "Creature — Human Soldier" -> "Creature"
func (c *Card) MainType() string {
	return MainTypeOf(c.TypeLine)
}

// MainTypeOf returns the part of a type line before the long dash, trimmed.
func MainTypeOf(typeLine string) string {
	main, _, _ := strings.Cut(typeLine, "—")
	return strings.TrimSpace(main)
}

// ColorLabel returns the comma-joined sorted colors, "Colorless" for a
// colorless card, or "Basic Land" for a colorless basic land type line.
func (c *Card) ColorLabel() string {
	if len(c.Colors) == 0 {
		if strings.Contains(c.TypeLine, "Basic") && c.IsLand() {
			return "Basic Land"
		}
		return "Colorless"
	}
	colors := append([]string(nil), c.Colors...)
	sort.Strings(colors)
	return strings.Join(colors, ",")
}

// SharesColor reports whether the card has at least one of the given colors.
func (c *Card) SharesColor(colors []string) bool {
	for _, cc := range c.Colors {
		for _, pc := range colors {
			if cc == pc {
				return true
			}
		}
	}
	return false
}

// ColorsEqual reports whether the card's color set equals the given set.
func (c *Card) ColorsEqual(colors []string) bool {
	return isSubsetOf(c.Colors, colors) && isSubsetOf(colors, c.Colors)
}

// ColorsWithin reports whether every card color is in the given set.
// A colorless card is trivially within any set.
func (c *Card) ColorsWithin(colors []string) bool {
	return isSubsetOf(c.Colors, colors)
}

// isSubsetOf checks if slice a is a subset of slice b.
func isSubsetOf(a, b []string) bool {
	bMap := make(map[string]bool, len(b))
	for _, item := range b {
		bMap[item] = true
	}

	for _, item := range a {
		if !bMap[item] {
			return false
		}
	}

	return true
}

// IsColor reports whether s is one of W, U, B, R, G.
func IsColor(s string) bool {
	for _, c := range AllColors {
		if c == s {
			return true
		}
	}
	return false
}

// RarityBonus returns the scoring bonus for a rarity. Unknown rarities score as common.
func RarityBonus(rarity string) int {
	switch rarity {
	case RarityUncommon:
		return 1
	case RarityRare:
		return 2
	case RarityMythic:
		return 3
	default:
		return 0
	}
}
