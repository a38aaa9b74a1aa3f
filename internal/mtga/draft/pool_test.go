package draft

import (
	"errors"
	"testing"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

func TestPoolGenerator_Generate(t *testing.T) {
	gen, err := NewPoolGenerator(testCatalog())
	if err != nil {
		t.Fatalf("NewPoolGenerator failed: %v", err)
	}

	pool := gen.Generate(NewRand(42))
	if len(pool) != PoolSize {
		t.Fatalf("pool has %d cards, want %d", len(pool), PoolSize)
	}

	for p := 0; p < PacksPerPool; p++ {
		pack := pool[p*PackSize : (p+1)*PackSize]

		seen := make(map[string]bool)
		for i, c := range pack[:PackSize-BonusPerPack] {
			want := cards.RarityCommon
			switch {
			case i >= CommonsPerPack+UncommonsPerPack:
				if c.Rarity != cards.RarityRare && c.Rarity != cards.RarityMythic {
					t.Errorf("pack %d slot %d: expected rare or mythic, got %s", p, i, c.Rarity)
				}
				continue
			case i >= CommonsPerPack:
				want = cards.RarityUncommon
			}
			if c.Rarity != want {
				t.Errorf("pack %d slot %d: expected %s, got %s", p, i, want, c.Rarity)
			}
			if seen[c.Name] {
				t.Errorf("pack %d: %q sampled twice", p, c.Name)
			}
			seen[c.Name] = true
		}
	}
}

func TestPoolGenerator_SeedReproducible(t *testing.T) {
	gen, err := NewPoolGenerator(testCatalog())
	if err != nil {
		t.Fatal(err)
	}

	a := gen.Generate(NewRand(9))
	b := gen.Generate(NewRand(9))
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Fatalf("card %d differs for the same seed: %s vs %s", i, a[i].Name, b[i].Name)
		}
	}

	rng := NewRand(9)
	first := gen.Generate(rng)
	second := gen.Generate(rng)
	same := true
	for i := range first {
		if first[i].Name != second[i].Name {
			same = false
			break
		}
	}
	if same {
		t.Error("consecutive pools from one stream are identical")
	}
}

func TestPoolGenerator_DoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.Name
	}

	gen, err := NewPoolGenerator(catalog)
	if err != nil {
		t.Fatal(err)
	}
	for seed := uint64(1); seed < 5; seed++ {
		gen.Generate(NewRand(seed))
	}

	for i, c := range catalog {
		if c.Name != names[i] {
			t.Fatalf("catalog reordered at %d", i)
		}
	}
}

func TestNewPoolGenerator_Errors(t *testing.T) {
	if _, err := NewPoolGenerator(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog, got %v", err)
	}

	var noRares []cards.Card
	for _, c := range testCatalog() {
		if c.Rarity != cards.RarityRare && c.Rarity != cards.RarityMythic {
			noRares = append(noRares, c)
		}
	}
	if _, err := NewPoolGenerator(noRares); !errors.Is(err, ErrInsufficientRarityStock) {
		t.Errorf("expected ErrInsufficientRarityStock, got %v", err)
	}

	fewCommons := []cards.Card{
		{Name: "C1", Rarity: cards.RarityCommon},
		{Name: "U1", Rarity: cards.RarityUncommon},
		{Name: "U2", Rarity: cards.RarityUncommon},
		{Name: "U3", Rarity: cards.RarityUncommon},
		{Name: "R1", Rarity: cards.RarityRare},
	}
	if _, err := NewPoolGenerator(fewCommons); !errors.Is(err, ErrInsufficientRarityStock) {
		t.Errorf("expected ErrInsufficientRarityStock, got %v", err)
	}
}
