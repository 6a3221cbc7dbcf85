package helpers

import (
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// AddSector places an owned sector
func (w *World) AddSector(id int, owner shared.NationID, pos shared.Position, level int, site sector.SiteType) *sector.Sector {
	s := &sector.Sector{
		ID:              id,
		GameID:          w.Game.ID,
		Position:        pos,
		Owner:           owner,
		PopulationLevel: level,
		ProductionSite:  site,
	}
	if n, ok := w.Nations[owner]; ok {
		s.PoliticalSphere = n.Code
	}
	w.Sectors[id] = s
	return s
}

// AddBrigade places a brigade of full battalions of one type
func (w *World) AddBrigade(id int, owner shared.NationID, pos shared.Position, typeID int, headcounts ...int) *military.Brigade {
	b := &military.Brigade{ID: id, GameID: w.Game.ID, Nation: owner, Name: "brigade", Position: pos}
	for i, hc := range headcounts {
		b.AddBattalion(&military.Battalion{ID: id*100 + i + 1, TypeID: typeID, Headcount: hc})
	}
	w.Brigades[id] = b
	return b
}

// AddShip places a ship
func (w *World) AddShip(id int, owner shared.NationID, pos shared.Position, typeID, marines, capacity int) *military.Ship {
	s := &military.Ship{
		ID:        id,
		GameID:    w.Game.ID,
		Nation:    owner,
		Name:      "ship",
		TypeID:    typeID,
		Position:  pos,
		Marines:   marines,
		Condition: 100,
		Capacity:  capacity,
		Cargo:     make(military.Cargo),
	}
	w.Ships[id] = s
	return s
}

// AddTrain places a baggage train
func (w *World) AddTrain(id int, owner shared.NationID, pos shared.Position, capacity int) *military.BaggageTrain {
	t := &military.BaggageTrain{
		ID:        id,
		GameID:    w.Game.ID,
		Nation:    owner,
		Name:      "train",
		Position:  pos,
		Condition: 100,
		Capacity:  capacity,
		Cargo:     make(military.Cargo),
	}
	w.Trains[id] = t
	return t
}

// AddCity places a trade city
func (w *World) AddCity(id int, owner shared.NationID, pos shared.Position) *trade.City {
	c := &trade.City{ID: id, GameID: w.Game.ID, Name: "city", Position: pos, Owner: owner, Levels: make(map[goods.Good]int)}
	w.Cities[id] = c
	return c
}

// AddOrder queues a pending order for the current turn
func (w *World) AddOrder(id int, n shared.NationID, typ order.Type, position int, params ...string) *order.Order {
	o := &order.Order{ID: id, GameID: w.Game.ID, Nation: n, Turn: w.Game.Turn, Type: typ, Position: position}
	copy(o.Params[:], params)
	w.Orders[id] = o
	return o
}

// Europe returns a Europe position
func Europe(x, y int) shared.Position {
	return shared.NewPosition(shared.RegionEurope, x, y)
}
