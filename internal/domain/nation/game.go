package nation

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

// Duration classes of a custom game
const (
	DurationShort  = 1
	DurationNormal = 2
	DurationLong   = 3
)

// Game carries the custom-game flags read by the economy.
type Game struct {
	ID                   shared.GameID
	Turn                 int
	StartYear            int
	StartMonth           int // 0 = January
	DoubleCosts          bool
	BoostedProduction    bool
	BoostedTaxation      bool
	FastPopulationGrowth bool
	FastAppointment      bool
	Duration             int
}

// Month returns the calendar month (0 = January) of the game's current turn.
// One turn is one month.
func (g *Game) Month() int {
	return (g.StartMonth + g.Turn) % 12
}

// Year returns the calendar year of the current turn.
func (g *Game) Year() int {
	return g.StartYear + (g.StartMonth+g.Turn)/12
}

// CostModifier is 2 for double-cost games, 1 otherwise.
func (g *Game) CostModifier() int {
	if g.DoubleCosts {
		return 2
	}
	return 1
}

// ProductionModifier is the boosted-production multiplier.
func (g *Game) ProductionModifier() float64 {
	if g.BoostedProduction {
		return 1.25
	}
	return 1.0
}
