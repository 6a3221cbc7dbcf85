package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func shipyardWorld() (*helpers.World, *sector.Sector) {
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationAustria)
	w.AddNation(shared.NationFrance)
	s := w.AddSector(40, shared.NationAustria, helpers.Europe(7, 7), 4, sector.SiteBarrackShipyard)
	fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney:  75000,
		goods.GoodInpt:   40,
		goods.GoodPeople: 60,
		goods.GoodWood:   200,
		goods.GoodFabric: 50,
	})
	return w, s
}

func TestBuildShip_Success(t *testing.T) {
	// Arrange
	w, s := shipyardWorld()
	h := orders.NewBuildShipHandler(w.Dependencies(), loadBatch(t, w))

	// Act
	out := handle(t, h, orderBy(shared.NationAustria, 3), &order.BuildShipCommand{SectorID: 40, ShipType: 1})

	// Assert
	assert.Equal(t, 1, out.Result)
	assert.Equal(t, map[goods.Good]int{
		goods.GoodMoney:  75000,
		goods.GoodInpt:   40,
		goods.GoodPeople: 60,
		goods.GoodWood:   200,
		goods.GoodFabric: 50,
	}, out.UsedGoods)
	require.Len(t, w.Ships, 1)
	ship := w.Ships[1001]
	require.NotNil(t, ship)
	assert.Equal(t, "Sloop 3", ship.Name)
	assert.Equal(t, 60, ship.Marines)
	assert.Equal(t, 100, ship.Condition)
	assert.True(t, ship.Position.Equals(s.Position))
	assert.NotNil(t, ship.Cargo)
	assert.Empty(t, w.Ledger.NegativeCells())
}

func TestBuildShip_Failures(t *testing.T) {
	tests := []struct {
		name    string
		arrange func(w *helpers.World, s *sector.Sector)
		cmd     order.BuildShipCommand
		code    int
	}{
		{name: "missing sector", cmd: order.BuildShipCommand{SectorID: 99, ShipType: 1}, code: -1},
		{
			name:    "foreign sector",
			arrange: func(w *helpers.World, s *sector.Sector) { s.Owner = shared.NationFrance },
			code:    -2,
		},
		{
			name:    "barrack without shipyard",
			arrange: func(w *helpers.World, s *sector.Sector) { s.ProductionSite = sector.SiteBarrack },
			code:    -3,
		},
		{
			name: "enemy troops",
			arrange: func(w *helpers.World, s *sector.Sector) {
				w.AddBrigade(50, shared.NationFrance, s.Position, 1, 800)
				w.SetRelation(shared.NationAustria, shared.NationFrance, nation.RelationWar)
			},
			code: -4,
		},
		{name: "unknown type", cmd: order.BuildShipCommand{SectorID: 40, ShipType: 42}, code: -5},
		{
			name: "money",
			arrange: func(w *helpers.World, s *sector.Sector) {
				w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 74999)
			},
			code: -6,
		},
		{
			name: "marines",
			arrange: func(w *helpers.World, s *sector.Sector) {
				w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodPeople, 59)
			},
			code: -8,
		},
		{
			name: "fabric",
			arrange: func(w *helpers.World, s *sector.Sector) {
				w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodFabric, 49)
			},
			code: -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s := shipyardWorld()
			if tt.arrange != nil {
				tt.arrange(w, s)
			}
			h := orders.NewBuildShipHandler(w.Dependencies(), loadBatch(t, w))

			cmd := tt.cmd
			if cmd.SectorID == 0 {
				cmd = order.BuildShipCommand{SectorID: 40, ShipType: 1}
			}
			out := handle(t, h, orderBy(shared.NationAustria, 1), &cmd)

			assert.Equal(t, tt.code, out.Result)
			assert.Empty(t, w.Ships)
		})
	}
}

func TestBuildShip_MerchantCapacity(t *testing.T) {
	w, _ := shipyardWorld()
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodWood, 250)
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodFabric, 60)
	h := orders.NewBuildShipHandler(w.Dependencies(), loadBatch(t, w))

	out := handle(t, h, orderBy(shared.NationAustria, 1), &order.BuildShipCommand{SectorID: 40, ShipType: 5, Name: "Hoffnung"})

	assert.Equal(t, 1, out.Result)
	assert.Equal(t, 500, w.Ships[1001].Capacity)
	assert.Equal(t, "Hoffnung", w.Ships[1001].Name)
	assert.Equal(t, 15000, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
}

func TestBuildBaggageTrain(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationAustria)
	w.AddNation(shared.NationFrance)
	s := w.AddSector(20, shared.NationAustria, barrackPosition, 3, sector.SiteBarrack)
	w.AddSector(21, shared.NationAustria, helpers.Europe(6, 5), 3, sector.SiteEstate)
	fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney: 30000,
		goods.GoodInpt:  50,
		goods.GoodWood:  200,
		goods.GoodHorse: 1999,
	})
	h := orders.NewBuildBaggageTrainHandler(w.Dependencies(), loadBatch(t, w))
	austria := orderBy(shared.NationAustria, 1)
	cmd := &order.BuildBaggageTrainCommand{SectorID: 20, Name: "Supply"}

	// Act & Assert
	assert.Equal(t, -7, handle(t, h, austria, cmd).Result)
	assert.Equal(t, -3, handle(t, h, austria, &order.BuildBaggageTrainCommand{SectorID: 21}).Result)
	assert.Equal(t, -1, handle(t, h, austria, &order.BuildBaggageTrainCommand{SectorID: 99}).Result)
	assert.Equal(t, -2, handle(t, h, orderBy(shared.NationFrance, 2), cmd).Result)
	assert.Empty(t, w.Trains)

	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodHorse, 2000)
	out := handle(t, h, austria, cmd)
	assert.Equal(t, 1, out.Result)
	require.Contains(t, w.Trains, 1001)
	train := w.Trains[1001]
	assert.Equal(t, "Supply", train.Name)
	assert.Equal(t, 1500, train.Capacity)
	assert.True(t, train.Position.Equals(s.Position))
	assert.Equal(t, 0, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodHorse))

	w.AddBrigade(50, shared.NationFrance, s.Position, 1, 800)
	w.SetRelation(shared.NationAustria, shared.NationFrance, nation.RelationColonialWar)
	assert.Equal(t, -4, handle(t, h, austria, cmd).Result)
}
