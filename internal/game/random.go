package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// SeededRNG builds the deterministic random source for a run. Every random
// draw in the simulation comes from one of these, in a fixed per-day call
// order, so a seed reproduces a whole journey.
func SeededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "lo"), seedWord(seed, "hi")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// rollBetween draws a uniform integer in [min, max].
func rollBetween(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.IntN(max-min+1)
}

// rollPercent draws 1..100.
func rollPercent(rng *rand.Rand) int {
	return 1 + rng.IntN(100)
}

// weightedIndex performs a cumulative weighted draw over weights and
// returns the chosen index, or -1 when no weight is positive.
func weightedIndex(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := 1 + rng.IntN(total)
	running := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		running += w
		if roll <= running {
			return i
		}
	}
	return -1
}

func clamp(number, min, max int) int {
	if number < min {
		return min
	}
	if number > max {
		return max
	}
	return number
}

func clampFloat(number, min, max float64) float64 {
	if number < min {
		return min
	}
	if number > max {
		return max
	}
	return number
}
