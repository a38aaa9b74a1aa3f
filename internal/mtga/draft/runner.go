package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Batch is the ordered result of one simulation.
type Batch struct {
	ID        string    `json:"id"`
	SetCode   string    `json:"set_code"`
	Seed      uint64    `json:"seed"`
	Selector  string    `json:"selector"`
	CreatedAt time.Time `json:"created_at"`
	Decks     []*Deck   `json:"decks"`
}

// Archetypes returns the distinct archetype codes of the batch in first-seen order.
func (b *Batch) Archetypes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, d := range b.Decks {
		if !seen[d.Archetype] {
			seen[d.Archetype] = true
			codes = append(codes, d.Archetype)
		}
	}
	return codes
}

// Observer receives timings from a Runner.
type Observer interface {
	ObservePool(d time.Duration)
	ObserveBuild(d time.Duration, err error)
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	SetCode string

	// Seed fixes the random stream. Zero picks a seed from the clock;
	// the seed actually used is recorded on the batch.
	Seed uint64

	// Observer is optional.
	Observer Observer

	Logger *slog.Logger
}

// Runner runs simulated sealed drafts.
type Runner struct {
	pools   *PoolGenerator
	builder *DeckBuilder
	config  *RunnerConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewRunner creates a runner. config may be nil.
func NewRunner(pools *PoolGenerator, builder *DeckBuilder, config *RunnerConfig) *Runner {
	if config == nil {
		config = &RunnerConfig{}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		pools:   pools,
		builder: builder,
		config:  config,
		logger:  logger,
		now:     time.Now,
	}
}

// Run simulates n drafts sequentially. Every run draws its pool and, for a
// distribution, its archetype from one random stream that is never reset.
// Any failing run aborts the batch.
func (r *Runner) Run(n int, selector Selector) (*Batch, error) {
	batch, err := r.newBatch(n, selector)
	if err != nil {
		return nil, err
	}

	rng := NewRand(batch.Seed)
	for i := range n {
		deck, err := r.runOnce(rng, i, selector)
		if err != nil {
			return nil, err
		}
		batch.Decks[i] = deck
	}

	r.logger.Info("simulation complete", "batch", batch.ID, "runs", n, "seed", batch.Seed)
	return batch, nil
}

// RunParallel simulates n drafts on up to workers goroutines. Run i uses its
// own stream seeded by RunSeed(seed, i), so the batch is the same for any
// worker count.
func (r *Runner) RunParallel(ctx context.Context, n int, selector Selector, workers int) (*Batch, error) {
	batch, err := r.newBatch(n, selector)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			deck, err := r.runOnce(NewRand(RunSeed(batch.Seed, i)), i, selector)
			if err != nil {
				return err
			}
			batch.Decks[i] = deck
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("simulation complete", "batch", batch.ID, "runs", n, "workers", workers, "seed", batch.Seed)
	return batch, nil
}

func (r *Runner) newBatch(n int, selector Selector) (*Batch, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of runs must be positive, got %d", n)
	}
	if selector == nil {
		return nil, errors.New("archetype selector is required")
	}
	return &Batch{
		ID:        uuid.NewString(),
		SetCode:   r.config.SetCode,
		Seed:      ResolveSeed(r.config.Seed),
		Selector:  selector.String(),
		CreatedAt: r.now().UTC(),
		Decks:     make([]*Deck, n),
	}, nil
}

func (r *Runner) runOnce(rng *rand.Rand, index int, selector Selector) (*Deck, error) {
	start := time.Now()
	pool := r.pools.Generate(rng)
	if obs := r.config.Observer; obs != nil {
		obs.ObservePool(time.Since(start))
	}

	archetype := selector.Select(rng)

	start = time.Now()
	deck, err := r.builder.Build(pool, archetype)
	if obs := r.config.Observer; obs != nil {
		obs.ObserveBuild(time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("run %d (%s): %w", index, archetype, err)
	}

	deck.RunIndex = index
	return deck, nil
}
