package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// unlimited is the room of a warehouse
const unlimited = -1

// endpoint is one side of a goods transfer
type endpoint interface {
	kind() int
	owner() shared.NationID
	location() shared.Position
	available(g goods.Good) int
	room() int
	take(g goods.Good, qty int)
	put(g goods.Good, qty int)
	save(ctx context.Context) error
	String() string
}

type warehouseEnd struct {
	ledger *goods.Ledger
	nation shared.NationID
	region shared.RegionID
}

func (w *warehouseEnd) kind() int                      { return order.EntityWarehouse }
func (w *warehouseEnd) owner() shared.NationID         { return w.nation }
func (w *warehouseEnd) location() shared.Position      { return shared.NewPosition(w.region, 0, 0) }
func (w *warehouseEnd) available(g goods.Good) int     { return max(w.ledger.Get(w.nation, w.region, g), 0) }
func (w *warehouseEnd) room() int                      { return unlimited }
func (w *warehouseEnd) take(g goods.Good, qty int)     { w.ledger.Dec(w.nation, w.region, g, qty) }
func (w *warehouseEnd) put(g goods.Good, qty int)      { w.ledger.Inc(w.nation, w.region, g, qty) }
func (w *warehouseEnd) save(ctx context.Context) error { return nil }
func (w *warehouseEnd) String() string                 { return fmt.Sprintf("the %s warehouse of %s", w.region, w.nation) }

type carrierEnd struct {
	carrier military.Carrier
	entity  int
	name    string
	persist func(ctx context.Context) error
}

func (c *carrierEnd) kind() int                      { return c.entity }
func (c *carrierEnd) owner() shared.NationID         { return c.carrier.Owner() }
func (c *carrierEnd) location() shared.Position      { return c.carrier.Location() }
func (c *carrierEnd) available(g goods.Good) int     { return max(c.carrier.Stored(g), 0) }
func (c *carrierEnd) room() int                      { return c.carrier.FreeSpace() }
func (c *carrierEnd) take(g goods.Good, qty int)     { c.carrier.Unload(g, qty) }
func (c *carrierEnd) put(g goods.Good, qty int)      { c.carrier.Store(g, qty) }
func (c *carrierEnd) save(ctx context.Context) error { return c.persist(ctx) }
func (c *carrierEnd) String() string                 { return c.name }

type cityEnd struct {
	city *trade.City
}

func (c *cityEnd) kind() int                      { return order.EntityTradeCity }
func (c *cityEnd) owner() shared.NationID         { return c.city.Owner }
func (c *cityEnd) location() shared.Position      { return c.city.Position }
func (c *cityEnd) available(goods.Good) int       { return 0 }
func (c *cityEnd) room() int                      { return unlimited }
func (c *cityEnd) take(goods.Good, int)           {}
func (c *cityEnd) put(goods.Good, int)            {}
func (c *cityEnd) save(ctx context.Context) error { return nil }
func (c *cityEnd) String() string                 { return c.city.Name }

// resolveEndpoint loads a transfer endpoint. Warehouse ids are regions and
// belong to nation. A nil endpoint with a nil error means it does not exist.
func resolveEndpoint(ctx context.Context, deps *economy.Dependencies, turn *economy.Turn, kind, id int, nation shared.NationID) (endpoint, error) {
	game := turn.Game.ID
	switch kind {
	case order.EntityWarehouse:
		region := shared.RegionID(id)
		if !region.IsValid() {
			return nil, nil
		}
		return &warehouseEnd{ledger: turn.Ledger, nation: nation, region: region}, nil
	case order.EntityTradeCity:
		city, err := deps.TradeCities.FindByID(ctx, game, id)
		if shared.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &cityEnd{city: city}, nil
	case order.EntityShip:
		ship, err := deps.Ships.FindByID(ctx, game, id)
		if shared.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &carrierEnd{
			carrier: ship,
			entity:  kind,
			name:    "the ship " + ship.Name,
			persist: func(ctx context.Context) error { return deps.Ships.Update(ctx, ship) },
		}, nil
	case order.EntityBaggageTrain:
		train, err := deps.Trains.FindByID(ctx, game, id)
		if shared.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &carrierEnd{
			carrier: train,
			entity:  kind,
			name:    "the baggage train " + train.Name,
			persist: func(ctx context.Context) error { return deps.Trains.Update(ctx, train) },
		}, nil
	default:
		return nil, nil
	}
}

// colocated reports whether goods can pass between the two endpoints.
// Warehouses reach everything in their region, units and cities must share a
// map tile.
func colocated(a, b endpoint) bool {
	if a.kind() == order.EntityWarehouse || b.kind() == order.EntityWarehouse {
		return a.location().Region == b.location().Region
	}
	return a.location().Equals(b.location())
}
