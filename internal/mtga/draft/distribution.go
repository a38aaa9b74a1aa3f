package draft

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
)

var (
	// ErrInvalidDistribution is returned for empty or non-positive weights.
	ErrInvalidDistribution = errors.New("invalid archetype distribution")

	// ErrUnnormalizedDistribution is logged, never returned, when weights
	// had to be rescaled to sum to 1.
	ErrUnnormalizedDistribution = errors.New("archetype distribution does not sum to 1")
)

// normalizationTolerance is how far the weight sum may drift from 1 before
// the distribution is rescaled.
const normalizationTolerance = 0.01

// Selector picks the archetype code of one run.
type Selector interface {
	Select(rng *rand.Rand) string
	String() string
}

// Fixed always selects the same archetype.
type Fixed string

// Select returns the fixed code without consuming randomness.
func (f Fixed) Select(*rand.Rand) string { return string(f) }

func (f Fixed) String() string { return string(f) }

// Distribution selects archetypes from a weighted categorical distribution.
type Distribution struct {
	codes      []string
	weights    []float64
	cumulative []float64
	normalized bool
}

// NewDistribution validates weights and rescales them to sum to 1 when they
// are off by more than 1%. Codes are sampled in sorted order.
func NewDistribution(weights map[string]float64, logger *slog.Logger) (*Distribution, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no archetypes", ErrInvalidDistribution)
	}
	if logger == nil {
		logger = slog.Default()
	}

	codes := make([]string, 0, len(weights))
	total := 0.0
	for code, w := range weights {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight for %s is %v", ErrInvalidDistribution, code, w)
		}
		codes = append(codes, code)
		total += w
	}
	sort.Strings(codes)

	d := &Distribution{codes: codes}
	if math.Abs(total-1) > normalizationTolerance {
		d.normalized = true
		logger.Warn("normalizing archetype distribution", "error", ErrUnnormalizedDistribution, "sum", total)
	}

	cum := 0.0
	for _, code := range codes {
		w := weights[code] / total
		cum += w
		d.weights = append(d.weights, w)
		d.cumulative = append(d.cumulative, cum)
	}

	return d, nil
}

// DefaultDistributionWeights returns the built-in archetype mix: 0.04 per
// guild, 0.03 per wedge and mono color, 0.02 for five color. It sums to 0.52
// and is normalized on use.
func DefaultDistributionWeights() map[string]float64 {
	weights := make(map[string]float64)
	for _, p := range defaultProfiles {
		switch {
		case p.Code == ArchetypeFiveColor:
			weights[p.Code] = 0.02
		case len(p.Code) == 2:
			weights[p.Code] = 0.04
		default:
			weights[p.Code] = 0.03
		}
	}
	return weights
}

// Select draws one archetype code.
func (d *Distribution) Select(rng *rand.Rand) string {
	r := rng.Float64()
	for i, c := range d.cumulative {
		if r < c {
			return d.codes[i]
		}
	}
	return d.codes[len(d.codes)-1]
}

// Codes returns the archetype codes in sampling order.
func (d *Distribution) Codes() []string {
	return append([]string(nil), d.codes...)
}

// Weight returns the normalized weight of a code.
func (d *Distribution) Weight(code string) float64 {
	for i, c := range d.codes {
		if c == code {
			return d.weights[i]
		}
	}
	return 0
}

// Normalized reports whether the input weights had to be rescaled.
func (d *Distribution) Normalized() bool {
	return d.normalized
}

// String renders the distribution as "code=weight" pairs.
func (d *Distribution) String() string {
	parts := make([]string, len(d.codes))
	for i, code := range d.codes {
		parts[i] = fmt.Sprintf("%s=%.3f", code, d.weights[i])
	}
	return strings.Join(parts, ",")
}
