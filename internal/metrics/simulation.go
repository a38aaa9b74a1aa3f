package metrics

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// SimulationMetrics tracks pool generation and deck building across a batch.
// It is safe for concurrent use by parallel runners.
type SimulationMetrics struct {
	PoolLatency  *Histogram
	BuildLatency *Histogram

	PoolsGenerated atomic.Uint64
	DecksBuilt     atomic.Uint64
	FailedBuilds   atomic.Uint64

	mu        sync.RWMutex
	startTime time.Time
}

// NewSimulationMetrics creates a new metrics collector.
func NewSimulationMetrics() *SimulationMetrics {
	return &SimulationMetrics{
		PoolLatency:  NewHistogram(defaultHistogramSize),
		BuildLatency: NewHistogram(defaultHistogramSize),
		startTime:    time.Now(),
	}
}

// ObservePool records one generated pool.
func (m *SimulationMetrics) ObservePool(d time.Duration) {
	m.PoolLatency.Record(d)
	m.PoolsGenerated.Add(1)
}

// ObserveBuild records one deck build attempt.
func (m *SimulationMetrics) ObserveBuild(d time.Duration, err error) {
	m.BuildLatency.Record(d)
	if err != nil {
		m.FailedBuilds.Add(1)
		return
	}
	m.DecksBuilt.Add(1)
}

// LatencyStats summarizes a histogram in milliseconds.
type LatencyStats struct {
	Mean  float64 `json:"mean"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	PoolLatency    LatencyStats  `json:"pool_latency"`
	BuildLatency   LatencyStats  `json:"build_latency"`
	PoolsGenerated uint64        `json:"pools_generated"`
	DecksBuilt     uint64        `json:"decks_built"`
	FailedBuilds   uint64        `json:"failed_builds"`
	Elapsed        time.Duration `json:"elapsed"`
	DecksPerSecond float64       `json:"decks_per_second"`
}

// Snapshot returns the current statistics.
func (m *SimulationMetrics) Snapshot() *Snapshot {
	m.mu.RLock()
	elapsed := time.Since(m.startTime)
	m.mu.RUnlock()

	built := m.DecksBuilt.Load()
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(built) / secs
	}

	return &Snapshot{
		PoolLatency:    latencyStats(m.PoolLatency),
		BuildLatency:   latencyStats(m.BuildLatency),
		PoolsGenerated: m.PoolsGenerated.Load(),
		DecksBuilt:     built,
		FailedBuilds:   m.FailedBuilds.Load(),
		Elapsed:        elapsed,
		DecksPerSecond: rate,
	}
}

// LogValue lets a snapshot be logged as a structured group.
func (s *Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("pools", s.PoolsGenerated),
		slog.Uint64("decks", s.DecksBuilt),
		slog.Uint64("failed", s.FailedBuilds),
		slog.Float64("build_p50_ms", s.BuildLatency.P50),
		slog.Float64("build_p95_ms", s.BuildLatency.P95),
		slog.Float64("pool_mean_ms", s.PoolLatency.Mean),
		slog.Duration("elapsed", s.Elapsed),
	)
}

func latencyStats(h *Histogram) LatencyStats {
	return LatencyStats{
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
		Min:   h.Min(),
		Max:   h.Max(),
		Count: h.Count(),
	}
}

// Reset clears all metrics and restarts the clock.
func (m *SimulationMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PoolLatency.Reset()
	m.BuildLatency.Reset()
	m.PoolsGenerated.Store(0)
	m.DecksBuilt.Store(0)
	m.FailedBuilds.Store(0)
	m.startTime = time.Now()
}
