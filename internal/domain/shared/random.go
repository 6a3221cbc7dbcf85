package shared

import "math/rand/v2"

// Random is the turn-scoped pseudo-random source. One instance is shared by
// every phase of a turn; reproducing a turn needs the same seed and the same
// iteration order.
type Random interface {
	// IntN returns a uniform integer in [0, n). n <= 0 returns 0.
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	// Shuffle permutes n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

type seededRandom struct {
	rng *rand.Rand
}

// NewSeededRandom creates a reproducible Random from a seed
func NewSeededRandom(seed uint64) Random {
	return &seededRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *seededRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

func (r *seededRandom) Float64() float64 {
	return r.rng.Float64()
}

func (r *seededRandom) Shuffle(n int, swap func(i, j int)) {
	r.rng.Shuffle(n, swap)
}

// RandBetween draws a value in [low, high] discretised to 0.01.
func RandBetween(rng Random, low, high float64) float64 {
	steps := int((high-low)*100 + 0.5)
	if steps < 0 {
		steps = 0
	}
	return low + float64(rng.IntN(steps+1))/100
}

// RandIntBetween draws an integer in [low, high] inclusive.
func RandIntBetween(rng Random, low, high int) int {
	if high < low {
		return low
	}
	return low + rng.IntN(high-low+1)
}

// Chance reports true with the given percentage (0..100).
func Chance(rng Random, percent int) bool {
	return rng.IntN(100) < percent
}
