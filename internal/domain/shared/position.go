package shared

import "fmt"

// Position is a map coordinate inside one region.
type Position struct {
	Region RegionID
	X      int
	Y      int
}

// NewPosition creates a Position
func NewPosition(region RegionID, x, y int) Position {
	return Position{Region: region, X: x, Y: y}
}

// SameRegion reports whether both positions lie in the same region.
func (p Position) SameRegion(other Position) bool {
	return p.Region == other.Region
}

// Equals checks if two positions are the same map tile
func (p Position) Equals(other Position) bool {
	return p.Region == other.Region && p.X == other.X && p.Y == other.Y
}

// Distance returns the Chebyshev distance between two tiles of the same region.
// Positions in different regions are unreachable and return -1.
func (p Position) Distance(other Position) int {
	if p.Region != other.Region {
		return -1
	}
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func (p Position) String() string {
	return fmt.Sprintf("%s/%d/%d", p.Region, p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
