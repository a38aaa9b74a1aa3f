package cards

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBasicLandName(t *testing.T) {
	tests := []struct {
		color string
		want  string
	}{
		{ColorWhite, Plains},
		{ColorBlue, Island},
		{ColorBlack, Swamp},
		{ColorRed, Mountain},
		{ColorGreen, Forest},
		{"", Wastes},
		{"C", Wastes},
	}

	for _, tt := range tests {
		if got := BasicLandName(tt.color); got != tt.want {
			t.Errorf("BasicLandName(%q) = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestBasicLandName_OnlyBasicNames(t *testing.T) {
	for _, color := range append(append([]string{}, AllColors...), "", "X") {
		name := BasicLandName(color)
		if !IsBasicLandName(name) {
			t.Errorf("BasicLandName(%q) = %q, not a basic land name", color, name)
		}
	}
}

func TestNewBasicLand(t *testing.T) {
	land := NewBasicLand(ColorRed)
	if land.Name != Mountain {
		t.Errorf("expected Mountain, got %s", land.Name)
	}
	if !land.IsLand() || !land.IsBasicLand() {
		t.Errorf("expected basic land, got type line %q", land.TypeLine)
	}
	if land.IsCreature() {
		t.Error("land should not be a creature")
	}
}

func TestCard_ColorLabel(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want string
	}{
		{"mono", Card{Colors: []string{"R"}}, "R"},
		{"sorted", Card{Colors: []string{"W", "B"}}, "B,W"},
		{"colorless artifact", Card{TypeLine: "Artifact"}, "Colorless"},
		{"basic land", Card{TypeLine: "Basic Land — Forest"}, "Basic Land"},
		{"nonbasic land", Card{TypeLine: "Land"}, "Colorless"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.ColorLabel(); got != tt.want {
				t.Errorf("ColorLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCard_ColorLabelDoesNotMutate(t *testing.T) {
	card := Card{Colors: []string{"W", "B"}}
	_ = card.ColorLabel()
	if card.Colors[0] != "W" {
		t.Errorf("ColorLabel reordered the card's colors: %v", card.Colors)
	}
}

func TestCard_MainType(t *testing.T) {
	tests := []struct {
		typeLine string
		want     string
	}{
		{"Creature — Human Soldier", "Creature"},
		{"Legendary Creature — Dragon", "Legendary Creature"},
		{"Instant", "Instant"},
		{"", ""},
	}

	for _, tt := range tests {
		c := Card{TypeLine: tt.typeLine}
		if got := c.MainType(); got != tt.want {
			t.Errorf("MainType(%q) = %q, want %q", tt.typeLine, got, tt.want)
		}
	}
}

func TestCard_ColorRelations(t *testing.T) {
	wb := []string{"W", "B"}

	white := Card{Colors: []string{"W"}}
	if !white.SharesColor(wb) || white.ColorsEqual(wb) || !white.ColorsWithin(wb) {
		t.Error("mono white vs WB: want shares, not equal, within")
	}

	orzhov := Card{Colors: []string{"B", "W"}}
	if !orzhov.SharesColor(wb) || !orzhov.ColorsEqual(wb) || !orzhov.ColorsWithin(wb) {
		t.Error("BW vs WB: want shares, equal, within")
	}

	red := Card{Colors: []string{"R"}}
	if red.SharesColor(wb) || red.ColorsWithin(wb) {
		t.Error("red vs WB: want no relation")
	}

	colorless := Card{}
	if colorless.SharesColor(wb) || !colorless.ColorsWithin(wb) {
		t.Error("colorless vs WB: want within, not sharing")
	}
}

func TestRarityBonus(t *testing.T) {
	want := map[string]int{RarityCommon: 0, RarityUncommon: 1, RarityRare: 2, RarityMythic: 3, "special": 0}
	for rarity, bonus := range want {
		if got := RarityBonus(rarity); got != bonus {
			t.Errorf("RarityBonus(%q) = %d, want %d", rarity, got, bonus)
		}
	}
}

func TestDedupe(t *testing.T) {
	in := []Card{{Name: "A", Rarity: "common"}, {Name: "B"}, {Name: "A", Rarity: "rare"}}
	out := Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(out))
	}
	if out[0].Rarity != "common" {
		t.Errorf("expected first occurrence to win, got rarity %q", out[0].Rarity)
	}
}

func TestFileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	in := []Card{
		{Name: "Shock", SetCode: "tdm", Colors: []string{"R"}, Rarity: RarityCommon, CMC: 1},
		{Name: "Opt", SetCode: "xln", Colors: []string{"U"}, Rarity: RarityCommon, CMC: 1},
	}
	if err := SaveFile(path, in); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	catalog := NewFileCatalog(path)
	got, err := catalog.FetchAll(context.Background(), "TDM")
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Shock" {
		t.Errorf("expected only Shock, got %+v", got)
	}

	_, err = catalog.FetchAll(context.Background(), "one")
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable for unknown set, got %v", err)
	}
}

func TestFileCatalog_MissingFile(t *testing.T) {
	catalog := NewFileCatalog(filepath.Join(t.TempDir(), "missing.json"))
	_, err := catalog.FetchAll(context.Background(), "tdm")
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestFileCatalog_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileCatalog(path).FetchAll(context.Background(), "tdm")
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}
