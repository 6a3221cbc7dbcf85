package helpers

import "sync"

// ScriptedRandom replays a fixed list of IntN results. Each value is clamped
// into [0, n). Once the script runs out every draw returns Default.
type ScriptedRandom struct {
	mu      sync.Mutex
	ints    []int
	Default int
	// Draws counts IntN calls
	Draws int
}

// NewScriptedRandom creates a ScriptedRandom
func NewScriptedRandom(ints ...int) *ScriptedRandom {
	return &ScriptedRandom{ints: ints}
}

// HighRandom always draws the top of the range
func HighRandom() *ScriptedRandom {
	return &ScriptedRandom{Default: int(^uint(0) >> 1)}
}

func (r *ScriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Draws++
	if n <= 0 {
		return 0
	}
	v := r.Default
	if len(r.ints) > 0 {
		v = r.ints[0]
		r.ints = r.ints[1:]
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (r *ScriptedRandom) Float64() float64 {
	return float64(r.IntN(1000)) / 1000
}

// Shuffle keeps the input order
func (r *ScriptedRandom) Shuffle(n int, swap func(i, j int)) {}
