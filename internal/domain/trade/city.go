package trade

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Trade levels range from 1 (scarce, expensive) to 9 (glut, cheap)
const (
	LevelMin     = 1
	LevelMax     = 9
	LevelDefault = 5
)

// City is a trade city where nations buy and sell goods
type City struct {
	ID       int
	GameID   shared.GameID
	Name     string
	Position shared.Position
	Owner    shared.NationID
	Levels   map[goods.Good]int
}

// Level returns the trade level of a good, clamped into [LevelMin, LevelMax]
func (c *City) Level(g goods.Good) int {
	level, ok := c.Levels[g]
	if !ok {
		return LevelDefault
	}
	if level < LevelMin {
		return LevelMin
	}
	if level > LevelMax {
		return LevelMax
	}
	return level
}

// CityRepository loads trade cities
type CityRepository interface {
	FindByID(ctx context.Context, game shared.GameID, id int) (*City, error)
	FindByGame(ctx context.Context, game shared.GameID) ([]*City, error)
}
