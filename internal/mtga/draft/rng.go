package draft

import (
	"math/rand/v2"
	"time"
)

// ResolveSeed returns seed, or a clock-derived seed when seed is zero.
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RunSeed derives the seed of one run from a batch seed (splitmix64), so
// parallel runs draw from independent streams regardless of scheduling.
func RunSeed(batchSeed uint64, runIndex int) uint64 {
	x := batchSeed + uint64(runIndex) + 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
