package draft

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

func TestBuild_DeckShape(t *testing.T) {
	gen, err := NewPoolGenerator(testCatalog())
	if err != nil {
		t.Fatalf("NewPoolGenerator failed: %v", err)
	}
	builder := NewDeckBuilder(nil)

	archetypes := []string{"auto", "WB", "UR", "GUR", "MONO_R", "MONO_G", "5C", "unknown"}
	for _, archetype := range archetypes {
		for seed := uint64(1); seed <= 20; seed++ {
			pool := gen.Generate(NewRand(seed))
			deck, err := builder.Build(pool, archetype)
			if err != nil {
				t.Fatalf("%s seed %d: Build failed: %v", archetype, seed, err)
			}

			if deck.Size() != DeckSize {
				t.Errorf("%s seed %d: deck has %d cards, want %d", archetype, seed, deck.Size(), DeckSize)
			}
			if len(deck.Spells) > SpellTarget {
				t.Errorf("%s seed %d: %d spells, want <= %d", archetype, seed, len(deck.Spells), SpellTarget)
			}
			if len(deck.Lands) != DeckSize-len(deck.Spells) {
				t.Errorf("%s seed %d: %d lands for %d spells", archetype, seed, len(deck.Lands), len(deck.Spells))
			}

			splitTotal := 0
			for _, n := range deck.LandSplit {
				splitTotal += n
			}
			if splitTotal != len(deck.Lands) {
				t.Errorf("%s seed %d: land split sums to %d, have %d lands", archetype, seed, splitTotal, len(deck.Lands))
			}

			for _, land := range deck.Lands {
				if !cards.IsBasicLandName(land.Name) {
					t.Errorf("%s seed %d: non-basic land %q", archetype, seed, land.Name)
				}
			}
			for _, s := range deck.Spells {
				if s.IsLand() {
					t.Errorf("%s seed %d: land %q selected as spell", archetype, seed, s.Name)
				}
			}
			if n := len(deck.Colors); n != 1 && n != 2 && n != 3 && n != 5 {
				t.Errorf("%s seed %d: %d primary colors", archetype, seed, n)
			}
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	gen, err := NewPoolGenerator(testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	pool := gen.Generate(NewRand(7))
	builder := NewDeckBuilder(nil)

	a, err := builder.Build(pool, "BG")
	if err != nil {
		t.Fatal(err)
	}
	b, err := builder.Build(pool, "BG")
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Spells {
		if a.Spells[i].Name != b.Spells[i].Name || a.Spells[i].Score != b.Spells[i].Score {
			t.Fatalf("spell %d differs: %v vs %v", i, a.Spells[i], b.Spells[i])
		}
	}
}

func TestBuild_CreatureMinimum(t *testing.T) {
	// 23 strong red spells crowd out 25 weaker red creatures.
	var pool []cards.Card
	for i := 0; i < 23; i++ {
		pool = append(pool, spell(fmt.Sprintf("Bolt %d", i), "R", cards.RarityMythic, 1))
	}
	for i := 0; i < 25; i++ {
		pool = append(pool, creature(fmt.Sprintf("Ogre %d", i), "R", cards.RarityCommon, 6))
	}

	builder := NewDeckBuilder(&BuilderConfig{
		Archetypes: NewArchetypeTable([]Profile{
			{Code: "MONO_R", CreatureWeight: 1, NoncreatureWeight: 1, MinCreatures: 16},
		}),
	})

	deck, err := builder.Build(pool, "MONO_R")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := deck.CreatureCount(); got != 16 {
		t.Errorf("expected exactly 16 creatures after enforcement, got %d", got)
	}
	if len(deck.Spells) != SpellTarget {
		t.Errorf("expected %d spells, got %d", SpellTarget, len(deck.Spells))
	}
}

func TestBuild_CreatureMinimumUsesDefaultWithoutProfile(t *testing.T) {
	var pool []cards.Card
	for i := 0; i < 23; i++ {
		pool = append(pool, spell(fmt.Sprintf("Bolt %d", i), "R", cards.RarityMythic, 1))
	}
	for i := 0; i < 20; i++ {
		pool = append(pool, creature(fmt.Sprintf("Ogre %d", i), "R", cards.RarityCommon, 6))
	}

	deck, err := NewDeckBuilder(&BuilderConfig{Archetypes: NewArchetypeTable(nil)}).Build(pool, "MONO_R")
	if err != nil {
		t.Fatal(err)
	}
	if got := deck.CreatureCount(); got != DefaultMinCreatures {
		t.Errorf("expected %d creatures, got %d", DefaultMinCreatures, got)
	}
}

func TestEnforceCreatures_EvictsLowestNonCreatures(t *testing.T) {
	selected := []ScoredCard{
		{Card: cards.Card{Name: "A", TypeLine: "Instant"}, Score: 9},
		{Card: cards.Card{Name: "B", TypeLine: "Creature — Elf"}, Score: 8},
		{Card: cards.Card{Name: "C", TypeLine: "Instant"}, Score: 3},
		{Card: cards.Card{Name: "D", TypeLine: "Instant"}, Score: 3},
		{Card: cards.Card{Name: "E", TypeLine: "Sorcery"}, Score: 5},
	}
	rest := []ScoredCard{
		{Card: cards.Card{Name: "F", TypeLine: "Instant"}, Score: 2},
		{Card: cards.Card{Name: "G", TypeLine: "Creature — Elf"}, Score: 2},
		{Card: cards.Card{Name: "H", TypeLine: "Creature — Elf"}, Score: 1},
		{Card: cards.Card{Name: "I", TypeLine: "Creature — Elf"}, Score: 1},
	}

	got := enforceCreatures(selected, rest, 3)

	var names []string
	for _, c := range got {
		names = append(names, c.Name)
	}
	want := "A,B,E,G,H"
	if strings.Join(names, ",") != want {
		t.Errorf("enforceCreatures() = %s, want %s", strings.Join(names, ","), want)
	}
}

func TestEnforceCreatures_NotEnoughCreaturesAvailable(t *testing.T) {
	selected := []ScoredCard{
		{Card: cards.Card{Name: "A", TypeLine: "Instant"}, Score: 9},
		{Card: cards.Card{Name: "B", TypeLine: "Instant"}, Score: 8},
	}
	rest := []ScoredCard{{Card: cards.Card{Name: "C", TypeLine: "Creature — Elf"}, Score: 1}}

	got := enforceCreatures(selected, rest, 5)
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestLandSplit_Proportional(t *testing.T) {
	tests := []struct {
		name   string
		costs  []string
		colors []string
		want   map[string]int
	}{
		{"even", []string{"{W}", "{B}"}, []string{"W", "B"}, map[string]int{"W": 9, "B": 8}},
		{"skewed", []string{"{W}{W}{W}", "{B}"}, []string{"W", "B"}, map[string]int{"W": 13, "B": 4}},
		{"no symbols two colors", []string{"{3}"}, []string{"U", "R"}, map[string]int{"U": 9, "R": 8}},
		{"no symbols mono", []string{"{3}"}, []string{"G"}, map[string]int{"G": 17}},
		{"no symbols five colors", nil, cards.AllColors, map[string]int{"W": 5, "U": 3, "B": 3, "R": 3, "G": 3}},
		{"one color unused", []string{"{R}{R}"}, []string{"U", "R"}, map[string]int{"U": 0, "R": 17}},
		{"rounding goes to most demanding", []string{"{W}", "{U}", "{B}{B}"}, []string{"W", "U", "B"}, map[string]int{"W": 4, "U": 4, "B": 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spells []ScoredCard
			for _, cost := range tt.costs {
				spells = append(spells, ScoredCard{Card: cards.Card{ManaCost: cost}})
			}
			got := landSplit(spells, tt.colors, LandTarget)
			for color, n := range tt.want {
				if got[color] != n {
					t.Errorf("landSplit()[%s] = %d, want %d (got %v)", color, got[color], n, got)
				}
			}
		})
	}
}

func TestBuild_TwoColorLandRatio(t *testing.T) {
	gen, err := NewPoolGenerator(testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	builder := NewDeckBuilder(nil)

	for seed := uint64(1); seed <= 50; seed++ {
		deck, err := builder.Build(gen.Generate(NewRand(seed)), "UR")
		if err != nil {
			t.Fatal(err)
		}

		a, b := 0, 0
		for _, s := range deck.Spells {
			a += strings.Count(s.ManaCost, "U")
			b += strings.Count(s.ManaCost, "R")
		}
		if a+b == 0 {
			continue
		}
		lands := float64(len(deck.Lands))
		expected := math.Round(lands * float64(a) / float64(a+b))
		if diff := math.Abs(float64(deck.LandSplit["U"]) - expected); diff > 1 {
			t.Errorf("seed %d: %d Islands for symbols %d:%d, expected about %v", seed, deck.LandSplit["U"], a, b, expected)
		}
	}
}

func TestBuild_SmallPoolFillsWithLands(t *testing.T) {
	pool := []cards.Card{
		creature("Lone Goblin", "R", cards.RarityCommon, 2),
		{Name: "Mind Stone", TypeLine: "Artifact", Rarity: cards.RarityUncommon, CMC: 2},
		spell("Counterspell", "U", cards.RarityCommon, 2),
	}

	deck, err := NewDeckBuilder(nil).Build(pool, "MONO_R")
	if err != nil {
		t.Fatal(err)
	}
	if len(deck.Spells) != 2 {
		t.Errorf("expected 2 playable spells, got %d", len(deck.Spells))
	}
	if len(deck.Lands) != 38 || deck.LandSplit["R"] != 38 {
		t.Errorf("expected 38 Mountains, got %v", deck.LandSplit)
	}
	if deck.Size() != DeckSize {
		t.Errorf("deck size %d", deck.Size())
	}
}

func TestBuild_Errors(t *testing.T) {
	builder := NewDeckBuilder(nil)

	if _, err := builder.Build(nil, "WB"); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}

	colorless := []cards.Card{{Name: "Relic", TypeLine: "Artifact"}, {Name: "Wastes", TypeLine: "Basic Land"}}
	auto, err := builder.Build(colorless, "auto")
	if err != nil {
		t.Fatalf("auto on colorless pool failed: %v", err)
	}
	if !reflect.DeepEqual(auto.Colors, []string{"W", "U"}) {
		t.Errorf("auto colors on colorless pool = %v, want [W U]", auto.Colors)
	}

	deck, err := builder.Build(colorless, "MONO_W")
	if err != nil {
		t.Fatalf("MONO_W on colorless pool failed: %v", err)
	}
	if deck.Size() != DeckSize {
		t.Errorf("deck size %d", deck.Size())
	}
}

func TestDeck_Cards(t *testing.T) {
	deck := &Deck{
		Spells: []ScoredCard{{Card: cards.Card{Name: "Shock"}, Score: 4}},
		Lands:  []cards.Card{cards.NewBasicLand("R")},
	}
	all := deck.Cards()
	if len(all) != 2 || all[0].Score != 4 || all[1].Name != cards.Mountain || all[1].Score != 0 {
		t.Errorf("unexpected cards %+v", all)
	}
}
