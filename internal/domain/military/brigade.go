package military

import (
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Battalion is one unit of a brigade
type Battalion struct {
	ID          int
	TypeID      int
	Headcount   int
	Order       int // position inside the brigade, 1-based
	Experience  int
	NotSupplied bool
}

// Brigade groups up to BattalionCap battalions at one position
type Brigade struct {
	ID         int
	GameID     shared.GameID
	Nation     shared.NationID
	Name       string
	Position   shared.Position
	CorpID     int
	Battalions []*Battalion
}

// Soldiers returns the total headcount of the brigade
func (b *Brigade) Soldiers() int {
	total := 0
	for _, bat := range b.Battalions {
		total += bat.Headcount
	}
	return total
}

// AddBattalion appends a battalion with the next free order number
func (b *Brigade) AddBattalion(bat *Battalion) {
	maxOrder := 0
	for _, existing := range b.Battalions {
		if existing.Order > maxOrder {
			maxOrder = existing.Order
		}
	}
	bat.Order = maxOrder + 1
	b.Battalions = append(b.Battalions, bat)
}

// Battalion finds a battalion by id
func (b *Brigade) Battalion(id int) *Battalion {
	for _, bat := range b.Battalions {
		if bat.ID == id {
			return bat
		}
	}
	return nil
}

// RemoveBattalion detaches a battalion by id and returns it
func (b *Brigade) RemoveBattalion(id int) *Battalion {
	for i, bat := range b.Battalions {
		if bat.ID == id {
			b.Battalions = append(b.Battalions[:i], b.Battalions[i+1:]...)
			return bat
		}
	}
	return nil
}

// ReduceHeadcount removes a percentage of the battalion's soldiers, clamped at
// zero. It returns the number of soldiers lost.
func (bat *Battalion) ReduceHeadcount(percent int) int {
	lost := bat.Headcount * percent / 100
	if lost > bat.Headcount {
		lost = bat.Headcount
	}
	bat.Headcount -= lost
	return lost
}
