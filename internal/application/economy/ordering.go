package economy

import (
	"math"
	"sort"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// tieBreakRange bounds the random keys used to break distance ties
const tieBreakRange = 1 << 30

// payOrder sorts entities so that Europe units closest to a trade city pay
// first, ties broken randomly, followed by colonial units in random order.
// Keys are drawn over the id-sorted list, so the order only depends on the
// random stream.
func payOrder[T any](items []T, id func(T) int, pos func(T) shared.Position, cities []*trade.City, rng shared.Random) []T {
	type keyed struct {
		item     T
		europe   bool
		distance int
		key      int
	}

	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return id(sorted[i]) < id(sorted[j]) })

	entries := make([]keyed, len(sorted))
	for i, item := range sorted {
		p := pos(item)
		entries[i] = keyed{
			item:     item,
			europe:   p.Region.IsEurope(),
			distance: tradeDistance(p, cities),
			key:      rng.IntN(tieBreakRange),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.europe != b.europe {
			return a.europe
		}
		if a.europe && a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.key < b.key
	})

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out
}

// tradeDistance is the distance to the nearest trade city of the same region
func tradeDistance(p shared.Position, cities []*trade.City) int {
	best := math.MaxInt32
	for _, c := range cities {
		if d := p.Distance(c.Position); d >= 0 && d < best {
			best = d
		}
	}
	return best
}

func byID[T any](items []T, id func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
