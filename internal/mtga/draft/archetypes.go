package draft

import (
	"sort"
	"strings"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

// Special archetype codes.
const (
	ArchetypeAuto      = "auto"
	ArchetypeFiveColor = "5C"
	monoPrefix         = "MONO_"
)

// DefaultMinCreatures is used when an archetype has no profile.
const DefaultMinCreatures = 14

// Profile is the scoring profile of an archetype.
type Profile struct {
	Code              string   `json:"code" toml:"code"`
	Name              string   `json:"name" toml:"name"`
	Keywords          []string `json:"keywords" toml:"keywords"`
	CreatureWeight    float64  `json:"creature_weight" toml:"creature_weight"`
	NoncreatureWeight float64  `json:"noncreature_weight" toml:"noncreature_weight"`
	MinCreatures      int      `json:"min_creatures" toml:"min_creatures"`
}

// Colors returns the primary colors encoded by the profile's code.
// Returns nil for "auto" and unrecognized codes.
func (p Profile) Colors() []string {
	return CodeColors(p.Code)
}

// archetypeNames holds display names for every code the simulator understands,
// including color pairs that ship without a scoring profile.
var archetypeNames = map[string]string{
	ArchetypeAuto:      "Automatic",
	"WU":               "Azorius (White-Blue)",
	"UB":               "Dimir (Blue-Black)",
	"BR":               "Rakdos (Black-Red)",
	"RG":               "Gruul (Red-Green)",
	"GW":               "Selesnya (Green-White)",
	"WB":               "Orzhov (White-Black)",
	"UR":               "Izzet (Blue-Red)",
	"BG":               "Golgari (Black-Green)",
	"RW":               "Boros (Red-White)",
	"GU":               "Simic (Green-Blue)",
	"WUB":              "Esper (White-Blue-Black)",
	"UBR":              "Grixis (Blue-Black-Red)",
	"BRG":              "Jund (Black-Red-Green)",
	"RGW":              "Naya (Red-Green-White)",
	"GWU":              "Bant (Green-White-Blue)",
	"WBG":              "Abzan (White-Black-Green)",
	"URW":              "Jeskai (Blue-Red-White)",
	"BGU":              "Sultai (Black-Green-Blue)",
	"RWB":              "Mardu (Red-White-Black)",
	"GUR":              "Temur (Green-Blue-Red)",
	"MONO_W":           "Mono White",
	"MONO_U":           "Mono Blue",
	"MONO_B":           "Mono Black",
	"MONO_R":           "Mono Red",
	"MONO_G":           "Mono Green",
	ArchetypeFiveColor: "Five Color",
}

// defaultProfiles is the built-in archetype table.
var defaultProfiles = []Profile{
	// Guilds
	{Code: "WB", Keywords: []string{"drain", "lifegain", "sacrifice", "afterlife", "cleric", "vampire", "knight", "extort", "token"}, CreatureWeight: 1.0, NoncreatureWeight: 1.0, MinCreatures: 15},
	{Code: "UR", Keywords: []string{"instant", "sorcery", "prowess", "draw", "wizard", "phoenix", "elemental", "flash", "copy"}, CreatureWeight: 0.6, NoncreatureWeight: 1.4, MinCreatures: 12},
	{Code: "BG", Keywords: []string{"graveyard", "deathtouch", "dredge", "scavenge", "insect", "fungus", "elf", "sacrifice", "undergrowth"}, CreatureWeight: 1.1, NoncreatureWeight: 0.9, MinCreatures: 16},
	{Code: "RW", Keywords: []string{"mentor", "attack", "equipment", "first strike", "double strike", "soldier", "warrior", "samurai", "haste"}, CreatureWeight: 1.3, NoncreatureWeight: 0.7, MinCreatures: 18},
	{Code: "GU", Keywords: []string{"adapt", "evolve", "counter", "flash", "mutate", "crab", "merfolk", "draw", "clone"}, CreatureWeight: 1.1, NoncreatureWeight: 0.9, MinCreatures: 16},

	// Wedges
	{Code: "WBG", Keywords: []string{"outlast", "abzan", "lifelink", "deathtouch", "vigilance", "counter", "toughness", "spirit", "value"}, CreatureWeight: 1.1, NoncreatureWeight: 0.9, MinCreatures: 16},
	{Code: "URW", Keywords: []string{"prowess", "jeskai", "monk", "flying", "first strike", "noncreature", "instant", "sorcery", "trigger"}, CreatureWeight: 0.8, NoncreatureWeight: 1.2, MinCreatures: 13},
	{Code: "BGU", Keywords: []string{"delve", "sultai", "zombie", "snake", "naga", "self-mill", "graveyard", "deathtouch", "value"}, CreatureWeight: 0.9, NoncreatureWeight: 1.1, MinCreatures: 14},
	{Code: "RWB", Keywords: []string{"dash", "mardu", "warrior", "knight", "goblin", "haste", "first strike", "lifelink", "raid"}, CreatureWeight: 1.2, NoncreatureWeight: 0.8, MinCreatures: 17},
	{Code: "GUR", Keywords: []string{"ferocious", "temur", "flash", "elemental", "shaman", "draw", "power", "trample", "instants"}, CreatureWeight: 1.0, NoncreatureWeight: 1.0, MinCreatures: 15},

	// Mono
	{Code: "MONO_W", Keywords: []string{"vigilance", "lifelink", "enchantment", "soldier", "knight", "cleric", "human", "angel", "equipment"}, CreatureWeight: 1.2, NoncreatureWeight: 0.8, MinCreatures: 18},
	{Code: "MONO_U", Keywords: []string{"counter", "draw", "flash", "flying", "bounce", "wizard", "merfolk", "illusion", "artifact"}, CreatureWeight: 0.7, NoncreatureWeight: 1.3, MinCreatures: 12},
	{Code: "MONO_B", Keywords: []string{"destroy", "sacrifice", "discard", "zombie", "vampire", "demon", "deathtouch", "drain", "removal"}, CreatureWeight: 1.0, NoncreatureWeight: 1.0, MinCreatures: 15},
	{Code: "MONO_R", Keywords: []string{"damage", "haste", "goblin", "elemental", "dragon", "devil", "burn", "sacrifice", "attack"}, CreatureWeight: 1.3, NoncreatureWeight: 0.7, MinCreatures: 19},
	{Code: "MONO_G", Keywords: []string{"trample", "reach", "elf", "beast", "hydra", "wolf", "mana", "ramp", "+1/+1"}, CreatureWeight: 1.4, NoncreatureWeight: 0.6, MinCreatures: 20},

	{Code: ArchetypeFiveColor, Keywords: []string{"domain", "converge", "gate", "fixng", "ramp", "multicolor", "draw", "removal", "value"}, CreatureWeight: 1.0, NoncreatureWeight: 1.0, MinCreatures: 14},
}

// ArchetypeTable is an immutable set of archetype profiles keyed by code.
type ArchetypeTable struct {
	profiles map[string]Profile
	order    []string
}

// NewArchetypeTable builds a table from profiles. Later profiles replace
// earlier ones with the same code. Missing names are filled from the
// built-in name list.
func NewArchetypeTable(profiles []Profile) *ArchetypeTable {
	t := &ArchetypeTable{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if p.Name == "" {
			p.Name = archetypeNames[p.Code]
		}
		p.Keywords = append([]string(nil), p.Keywords...)
		if _, exists := t.profiles[p.Code]; !exists {
			t.order = append(t.order, p.Code)
		}
		t.profiles[p.Code] = p
	}
	return t
}

// DefaultArchetypes returns the built-in archetype table.
func DefaultArchetypes() *ArchetypeTable {
	return NewArchetypeTable(defaultProfiles)
}

// With returns a copy of the table with the given profiles added or replaced.
func (t *ArchetypeTable) With(overrides ...Profile) *ArchetypeTable {
	merged := make([]Profile, 0, len(t.order)+len(overrides))
	for _, code := range t.order {
		merged = append(merged, t.profiles[code])
	}
	return NewArchetypeTable(append(merged, overrides...))
}

// Profile returns the scoring profile for a code.
func (t *ArchetypeTable) Profile(code string) (Profile, bool) {
	if t == nil {
		return Profile{}, false
	}
	p, ok := t.profiles[code]
	return p, ok
}

// Profiles returns every profile in table order.
func (t *ArchetypeTable) Profiles() []Profile {
	result := make([]Profile, 0, len(t.order))
	for _, code := range t.order {
		result = append(result, t.profiles[code])
	}
	return result
}

// Name returns the display name of a code, or "Unknown".
func (t *ArchetypeTable) Name(code string) string {
	if p, ok := t.Profile(code); ok && p.Name != "" {
		return p.Name
	}
	if name, ok := archetypeNames[code]; ok {
		return name
	}
	return "Unknown"
}

// MinCreatures returns the creature floor for a code.
func (t *ArchetypeTable) MinCreatures(code string) int {
	if p, ok := t.Profile(code); ok && p.MinCreatures > 0 {
		return p.MinCreatures
	}
	return DefaultMinCreatures
}

// Resolve returns the primary colors for an archetype code.
// "auto" and unrecognized codes pick the two most represented colors of the pool.
func (t *ArchetypeTable) Resolve(code string, pool []cards.Card) []string {
	if colors := CodeColors(code); colors != nil {
		return colors
	}
	return AutoColors(pool)
}

// CodeColors parses an archetype code into its ordered primary colors.
// Two- and three-letter codes must use distinct WUBRG letters.
// Returns nil for "auto" and anything it does not recognize.
func CodeColors(code string) []string {
	switch {
	case code == ArchetypeFiveColor:
		return append([]string(nil), cards.AllColors...)

	case strings.HasPrefix(code, monoPrefix):
		color := strings.TrimPrefix(code, monoPrefix)
		if cards.IsColor(color) {
			return []string{color}
		}
		return nil

	case len(code) == 2 || len(code) == 3:
		colors := make([]string, 0, len(code))
		seen := make(map[string]bool, len(code))
		for _, r := range code {
			c := string(r)
			if !cards.IsColor(c) || seen[c] {
				return nil
			}
			seen[c] = true
			colors = append(colors, c)
		}
		return colors
	}

	return nil
}

// AutoColors returns the two colors with the most cards in the pool.
// Multicolor cards count toward each of their colors. Ties keep WUBRG
// order, so a pool with one color or none still yields two colors.
func AutoColors(pool []cards.Card) []string {
	counts := make(map[string]int, len(cards.AllColors))
	for _, c := range pool {
		for _, color := range c.Colors {
			counts[color]++
		}
	}

	ranked := append([]string(nil), cards.AllColors...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	return ranked[:2]
}
