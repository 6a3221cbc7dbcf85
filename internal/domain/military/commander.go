package military

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

// Commander leads an army or corps
type Commander struct {
	ID       int
	GameID   shared.GameID
	Nation   shared.NationID
	Name     string
	Position shared.Position
	Rank     int
	Strength int
	Command  int
	Sick     int // turns of sickness left
	Dead     bool
	ArmyID   int
	CorpID   int
	Unpaid   bool
}

// Recover decrements the sickness counter. When the counter reaches zero
// this turn the ratings are restored (×3, at least 1) and true is returned.
func (c *Commander) Recover() bool {
	if c.Sick <= 0 {
		return false
	}
	c.Sick--
	if c.Sick > 0 {
		return false
	}
	c.Strength = restoreRating(c.Strength)
	c.Command = restoreRating(c.Command)
	return true
}

// Desert removes the commander from its command and marks it dead
func (c *Commander) Desert() {
	c.Dead = true
	c.ArmyID = 0
	c.CorpID = 0
}

func restoreRating(v int) int {
	v *= 3
	if v < 1 {
		v = 1
	}
	return v
}
