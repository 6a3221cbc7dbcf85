package military

import (
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Cargo is the goods loaded on a ship or baggage train
type Cargo map[goods.Good]int

// Load returns the total quantity loaded
func (c Cargo) Load() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// Ship is a naval unit, optionally carrying cargo
type Ship struct {
	ID        int
	GameID    shared.GameID
	Nation    shared.NationID
	Name      string
	TypeID    int
	Position  shared.Position
	Marines   int
	Condition int
	Capacity  int
	Unpaid    bool
	Cargo     Cargo
}

// BaggageTrain is a land transport unit
type BaggageTrain struct {
	ID        int
	GameID    shared.GameID
	Nation    shared.NationID
	Name      string
	Position  shared.Position
	Condition int
	Capacity  int
	Cargo     Cargo
}

// Carrier abstracts ships and baggage trains for goods transfers
type Carrier interface {
	Owner() shared.NationID
	Location() shared.Position
	Stored(g goods.Good) int
	FreeSpace() int
	Unload(g goods.Good, qty int)
	Store(g goods.Good, qty int)
}

func (s *Ship) Owner() shared.NationID    { return s.Nation }
func (s *Ship) Location() shared.Position { return s.Position }
func (s *Ship) Stored(g goods.Good) int   { return s.Cargo[g] }
func (s *Ship) FreeSpace() int            { return freeSpace(s.Capacity, s.Cargo) }
func (s *Ship) Unload(g goods.Good, qty int) {
	unload(s.Cargo, g, qty)
}
func (s *Ship) Store(g goods.Good, qty int) {
	if s.Cargo == nil {
		s.Cargo = make(Cargo)
	}
	s.Cargo[g] += qty
}

func (t *BaggageTrain) Owner() shared.NationID    { return t.Nation }
func (t *BaggageTrain) Location() shared.Position { return t.Position }
func (t *BaggageTrain) Stored(g goods.Good) int   { return t.Cargo[g] }
func (t *BaggageTrain) FreeSpace() int            { return freeSpace(t.Capacity, t.Cargo) }
func (t *BaggageTrain) Unload(g goods.Good, qty int) {
	unload(t.Cargo, g, qty)
}
func (t *BaggageTrain) Store(g goods.Good, qty int) {
	if t.Cargo == nil {
		t.Cargo = make(Cargo)
	}
	t.Cargo[g] += qty
}

func freeSpace(capacity int, cargo Cargo) int {
	free := capacity - cargo.Load()
	if free < 0 {
		return 0
	}
	return free
}

func unload(cargo Cargo, g goods.Good, qty int) {
	cargo[g] -= qty
	if cargo[g] <= 0 {
		delete(cargo, g)
	}
}
