package draft

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/mtga/cards"
)

type recordingObserver struct {
	mu     sync.Mutex
	pools  int
	builds int
	errs   int
}

func (o *recordingObserver) ObservePool(time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pools++
}

func (o *recordingObserver) ObserveBuild(_ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.builds++
	if err != nil {
		o.errs++
	}
}

func newTestRunner(t *testing.T, seed uint64, observer Observer) *Runner {
	t.Helper()
	gen, err := NewPoolGenerator(testCatalog())
	require.NoError(t, err)
	return NewRunner(gen, NewDeckBuilder(nil), &RunnerConfig{SetCode: "tst", Seed: seed, Observer: observer})
}

func deckNames(d *Deck) []string {
	names := make([]string, 0, len(d.Spells))
	for _, s := range d.Spells {
		names = append(names, s.Name)
	}
	return names
}

func TestRunner_Run(t *testing.T) {
	obs := &recordingObserver{}
	runner := newTestRunner(t, 11, obs)

	batch, err := runner.Run(5, Fixed("WB"))
	require.NoError(t, err)

	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "tst", batch.SetCode)
	assert.Equal(t, uint64(11), batch.Seed)
	assert.Equal(t, "WB", batch.Selector)
	require.Len(t, batch.Decks, 5)

	for i, deck := range batch.Decks {
		assert.Equal(t, i, deck.RunIndex)
		assert.Equal(t, "WB", deck.Archetype)
		assert.Equal(t, DeckSize, deck.Size())
	}

	assert.Equal(t, 5, obs.pools)
	assert.Equal(t, 5, obs.builds)
	assert.Equal(t, 0, obs.errs)
}

func TestRunner_StreamAdvancesAcrossRuns(t *testing.T) {
	batch, err := newTestRunner(t, 3, nil).Run(2, Fixed("auto"))
	require.NoError(t, err)

	assert.NotEqual(t, deckNames(batch.Decks[0]), deckNames(batch.Decks[1]),
		"runs drawn from one stream should produce different decks")
}

func TestRunner_SameSeedSameBatch(t *testing.T) {
	dist, err := NewDistribution(map[string]float64{"WB": 0.5, "UR": 0.5}, nil)
	require.NoError(t, err)

	a, err := newTestRunner(t, 99, nil).Run(8, dist)
	require.NoError(t, err)
	b, err := newTestRunner(t, 99, nil).Run(8, dist)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	for i := range a.Decks {
		assert.Equal(t, a.Decks[i].Archetype, b.Decks[i].Archetype)
		assert.Equal(t, deckNames(a.Decks[i]), deckNames(b.Decks[i]))
	}
}

func TestRunner_RunParallelIndependentOfWorkers(t *testing.T) {
	dist, err := NewDistribution(map[string]float64{"WB": 0.5, "UR": 0.3, "MONO_G": 0.2}, nil)
	require.NoError(t, err)

	obs := &recordingObserver{}
	one, err := newTestRunner(t, 5, obs).RunParallel(context.Background(), 12, dist, 1)
	require.NoError(t, err)
	many, err := newTestRunner(t, 5, nil).RunParallel(context.Background(), 12, dist, 4)
	require.NoError(t, err)

	require.Len(t, many.Decks, 12)
	for i := range one.Decks {
		assert.Equal(t, i, many.Decks[i].RunIndex)
		assert.Equal(t, one.Decks[i].Archetype, many.Decks[i].Archetype)
		assert.Equal(t, deckNames(one.Decks[i]), deckNames(many.Decks[i]))
	}
	assert.Equal(t, 12, obs.builds)
}

func TestRunner_RunParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner(t, 1, nil).RunParallel(ctx, 4, Fixed("WB"), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_ColorlessCatalogFallsBackToWhiteBlue(t *testing.T) {
	var colorless []cards.Card
	for i := 0; i < 12; i++ {
		colorless = append(colorless,
			cards.Card{Name: "Common Relic " + string(rune('A'+i)), TypeLine: "Artifact", Rarity: cards.RarityCommon},
			cards.Card{Name: "Uncommon Relic " + string(rune('A'+i)), TypeLine: "Artifact", Rarity: cards.RarityUncommon},
			cards.Card{Name: "Rare Relic " + string(rune('A'+i)), TypeLine: "Artifact", Rarity: cards.RarityRare},
		)
	}
	gen, err := NewPoolGenerator(colorless)
	require.NoError(t, err)

	obs := &recordingObserver{}
	runner := NewRunner(gen, NewDeckBuilder(nil), &RunnerConfig{Seed: 1, Observer: obs})

	batch, err := runner.Run(3, Fixed("auto"))
	require.NoError(t, err)
	require.Len(t, batch.Decks, 3)
	for _, deck := range batch.Decks {
		assert.Equal(t, []string{"W", "U"}, deck.Colors)
		assert.Equal(t, DeckSize, deck.Size())
	}
	assert.Equal(t, 0, obs.errs)
	assert.Equal(t, 3, obs.builds)
}

func TestRunner_InvalidArguments(t *testing.T) {
	runner := newTestRunner(t, 1, nil)

	_, err := runner.Run(0, Fixed("WB"))
	assert.Error(t, err)

	_, err = runner.Run(1, nil)
	assert.Error(t, err)
}

func TestRunner_ZeroSeedIsRecorded(t *testing.T) {
	batch, err := newTestRunner(t, 0, nil).Run(1, Fixed("WB"))
	require.NoError(t, err)
	assert.NotZero(t, batch.Seed)
}

func TestBatch_Archetypes(t *testing.T) {
	batch := &Batch{Decks: []*Deck{{Archetype: "UR"}, {Archetype: "WB"}, {Archetype: "UR"}}}
	assert.Equal(t, []string{"UR", "WB"}, batch.Archetypes())
}

func TestRunSeed(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		s := RunSeed(42, i)
		assert.False(t, seen[s], "duplicate seed at run %d", i)
		seen[s] = true
	}
	assert.Equal(t, RunSeed(42, 7), RunSeed(42, 7))
	assert.NotEqual(t, RunSeed(42, 7), RunSeed(43, 7))
}
