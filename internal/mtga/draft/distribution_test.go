package draft

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestDistribution_SamplesOnlyListedCodes(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	dist, err := NewDistribution(map[string]float64{"WB": 0.5, "UR": 0.3}, logger)
	if err != nil {
		t.Fatalf("NewDistribution failed: %v", err)
	}
	if !dist.Normalized() {
		t.Error("expected weights summing to 0.8 to be normalized")
	}
	if !strings.Contains(logs.String(), "normalizing archetype distribution") {
		t.Errorf("expected a normalization warning, got %q", logs.String())
	}

	rng := NewRand(2024)
	counts := map[string]int{}
	const runs = 10000
	for i := 0; i < runs; i++ {
		counts[dist.Select(rng)]++
	}

	if len(counts) != 2 || counts["WB"]+counts["UR"] != runs {
		t.Fatalf("unexpected codes sampled: %v", counts)
	}

	ratio := float64(counts["WB"]) / float64(counts["UR"])
	if math.Abs(ratio-5.0/3.0) > 0.15 {
		t.Errorf("WB:UR ratio = %.3f, want about %.3f (%v)", ratio, 5.0/3.0, counts)
	}
}

func TestDistribution_NoWarningWhenNormalized(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	dist, err := NewDistribution(map[string]float64{"WB": 0.25, "UR": 0.25, "GU": 0.495}, logger)
	if err != nil {
		t.Fatal(err)
	}
	if dist.Normalized() {
		t.Error("sum within 1% should not be flagged")
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log output %q", logs.String())
	}
	if got := dist.Codes(); strings.Join(got, ",") != "GU,UR,WB" {
		t.Errorf("Codes() = %v", got)
	}
}

func TestDistribution_Invalid(t *testing.T) {
	tests := []map[string]float64{
		nil,
		{},
		{"WB": 0},
		{"WB": 1, "UR": -0.5},
		{"WB": math.NaN()},
	}
	for _, weights := range tests {
		if _, err := NewDistribution(weights, nil); !errors.Is(err, ErrInvalidDistribution) {
			t.Errorf("NewDistribution(%v): expected ErrInvalidDistribution, got %v", weights, err)
		}
	}
}

func TestDefaultDistributionWeights(t *testing.T) {
	weights := DefaultDistributionWeights()
	if len(weights) != 16 {
		t.Errorf("expected 16 archetypes, got %d", len(weights))
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-0.52) > 1e-9 {
		t.Errorf("default weights sum to %v, want 0.52", total)
	}

	dist, err := NewDistribution(weights, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(dist.Weight("WB")-0.04/0.52) > 1e-9 {
		t.Errorf("WB weight = %v", dist.Weight("WB"))
	}
}

func TestFixed(t *testing.T) {
	f := Fixed("MONO_B")
	if got := f.Select(NewRand(1)); got != "MONO_B" {
		t.Errorf("Select() = %q", got)
	}
	if f.String() != "MONO_B" {
		t.Errorf("String() = %q", f.String())
	}
}
