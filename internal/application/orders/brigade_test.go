package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

var barrackPosition = helpers.Europe(5, 5)

// barrackWorld gives Austria a barrack sector and a two battalion brigade on it
func barrackWorld() (*helpers.World, *sector.Sector, *military.Brigade) {
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationAustria)
	w.AddNation(shared.NationFrance)
	s := w.AddSector(20, shared.NationAustria, barrackPosition, 3, sector.SiteBarrack)
	b := w.AddBrigade(30, shared.NationAustria, barrackPosition, 1, 800, 800)
	return w, s, b
}

func TestBuildBrigade_Success(t *testing.T) {
	// Arrange
	w, _, _ := barrackWorld()
	delete(w.Brigades, 30)
	fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney:  60000,
		goods.GoodInpt:   40,
		goods.GoodPeople: 1600,
	})
	h := orders.NewBuildBrigadeHandler(w.Dependencies(), loadBatch(t, w))

	// Act
	out := handle(t, h, orderBy(shared.NationAustria, 7), &order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1, 1}})

	// Assert
	assert.Equal(t, 2, out.Result)
	assert.Equal(t, map[goods.Good]int{goods.GoodMoney: 60000, goods.GoodInpt: 40, goods.GoodPeople: 1600}, out.UsedGoods)
	require.Len(t, w.Brigades, 1)
	var raised *military.Brigade
	for _, b := range w.Brigades {
		raised = b
	}
	assert.Equal(t, "Brigade 7", raised.Name)
	assert.True(t, raised.Position.Equals(barrackPosition))
	require.Len(t, raised.Battalions, 2)
	for i, bat := range raised.Battalions {
		assert.Equal(t, 800, bat.Headcount)
		assert.Equal(t, 1, bat.Experience)
		assert.Equal(t, i+1, bat.Order)
		assert.NotZero(t, bat.ID)
	}
	assert.Equal(t, 0, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodPeople))
}

func TestBuildBrigade_LargerBattalionsCostMorePeople(t *testing.T) {
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationOttoman)
	w.AddSector(20, shared.NationOttoman, barrackPosition, 3, sector.SiteBarrack)
	fund(w, shared.NationOttoman, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney:  40000,
		goods.GoodInpt:   25,
		goods.GoodPeople: 999,
	})
	h := orders.NewBuildBrigadeHandler(w.Dependencies(), loadBatch(t, w))
	janissaries := &order.BuildBrigadeCommand{SectorID: 20, Name: "Orta", BattalionTypes: []int{9}}

	assert.Equal(t, -11, handle(t, h, orderBy(shared.NationOttoman, 1), janissaries).Result)

	w.Ledger.Set(shared.NationOttoman, shared.RegionEurope, goods.GoodPeople, 1000)
	out := handle(t, h, orderBy(shared.NationOttoman, 2), janissaries)
	assert.Equal(t, 1, out.Result)
	assert.Equal(t, 1000, w.Brigades[1001].Battalions[0].Headcount)
	assert.Equal(t, "Orta", w.Brigades[1001].Name)
}

func TestBuildBrigade_Failures(t *testing.T) {
	tests := []struct {
		name    string
		arrange func(w *helpers.World, s *sector.Sector)
		cmd     order.BuildBrigadeCommand
		code    int
	}{
		{name: "missing sector", cmd: order.BuildBrigadeCommand{SectorID: 99, BattalionTypes: []int{1}}, code: -1},
		{
			name:    "foreign sector",
			arrange: func(w *helpers.World, s *sector.Sector) { s.Owner = shared.NationFrance },
			cmd:     order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1}},
			code:    -2,
		},
		{
			name:    "no barrack",
			arrange: func(w *helpers.World, s *sector.Sector) { s.ProductionSite = sector.SiteEstate },
			cmd:     order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1}},
			code:    -3,
		},
		{
			name: "enemy troops",
			arrange: func(w *helpers.World, s *sector.Sector) {
				w.AddBrigade(50, shared.NationFrance, s.Position, 4, 500)
				w.SetRelation(shared.NationAustria, shared.NationFrance, nation.RelationWar)
			},
			cmd:  order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1}},
			code: -4,
		},
		{name: "too many battalions", cmd: order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1, 1, 1, 1, 1, 1, 1, 1}}, code: -5},
		{name: "other nation's type", cmd: order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1, 9}}, code: -6},
		{name: "elite", cmd: order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{3}}, code: -7},
		{name: "colonial type in europe", cmd: order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{7}}, code: -8},
		{name: "money", cmd: order.BuildBrigadeCommand{SectorID: 20, BattalionTypes: []int{1, 1, 1}}, code: -9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s, _ := barrackWorld()
			fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
				goods.GoodMoney:  60000,
				goods.GoodInpt:   100,
				goods.GoodPeople: 5000,
			})
			if tt.arrange != nil {
				tt.arrange(w, s)
			}
			brigades := len(w.Brigades)
			h := orders.NewBuildBrigadeHandler(w.Dependencies(), loadBatch(t, w))

			cmd := tt.cmd
			out := handle(t, h, orderBy(shared.NationAustria, 1), &cmd)

			assert.Equal(t, tt.code, out.Result)
			assert.Len(t, w.Brigades, brigades)
		})
	}
}

func TestAdditionalBattalions_Success(t *testing.T) {
	w, _, b := barrackWorld()
	fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney:  60000,
		goods.GoodInpt:   30,
		goods.GoodPeople: 800,
	})
	h := orders.NewAdditionalBattalionsHandler(w.Dependencies(), loadBatch(t, w))

	out := handle(t, h, orderBy(shared.NationAustria, 1), &order.AdditionalBattalionsCommand{BrigadeID: 30, BattalionType: 1})

	assert.Equal(t, 1, out.Result)
	require.Len(t, b.Battalions, 3)
	added := b.Battalions[2]
	assert.Equal(t, 3, added.Order)
	assert.Equal(t, 800, added.Headcount)
	assert.NotZero(t, added.ID)
	assert.Equal(t, 30000, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 10, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodInpt))
	assert.Equal(t, 0, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodPeople))
}

func TestAdditionalBattalions_Failures(t *testing.T) {
	europe := shared.RegionEurope
	tests := []struct {
		name    string
		arrange func(w *helpers.World, s *sector.Sector, b *military.Brigade)
		cmd     order.AdditionalBattalionsCommand
		code    int
	}{
		{name: "missing brigade", cmd: order.AdditionalBattalionsCommand{BrigadeID: 99, BattalionType: 1}, code: -1},
		{
			name:    "foreign brigade",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) { b.Nation = shared.NationFrance },
			code:    -1,
		},
		{
			name:    "no sector under the brigade",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) { b.Position = helpers.Europe(9, 9) },
			code:    -2,
		},
		{
			name:    "foreign sector",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) { s.Owner = shared.NationFrance },
			code:    -2,
		},
		{
			name:    "no barrack",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) { s.ProductionSite = sector.SiteNone },
			code:    -3,
		},
		{
			name: "enemy troops",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) {
				w.AddBrigade(50, shared.NationFrance, s.Position, 1, 300)
				w.SetRelation(shared.NationAustria, shared.NationFrance, nation.RelationColonialWar)
			},
			code: -4,
		},
		{
			name: "brigade full",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) {
				for len(b.Battalions) < 7 {
					b.AddBattalion(&military.Battalion{ID: 300 + len(b.Battalions), TypeID: 1, Headcount: 800})
				}
			},
			code: -5,
		},
		{name: "other nation's type", cmd: order.AdditionalBattalionsCommand{BrigadeID: 30, BattalionType: 9}, code: -6},
		{name: "elite", cmd: order.AdditionalBattalionsCommand{BrigadeID: 30, BattalionType: 5}, code: -7},
		{name: "colonial type in europe", cmd: order.AdditionalBattalionsCommand{BrigadeID: 30, BattalionType: 8}, code: -8},
		{
			name: "money",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) {
				w.Ledger.Set(shared.NationAustria, europe, goods.GoodMoney, 29999)
			},
			code: -9,
		},
		{
			name: "industrial points",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) {
				w.Ledger.Set(shared.NationAustria, europe, goods.GoodInpt, 19)
			},
			code: -10,
		},
		{
			name: "people",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) {
				w.Ledger.Set(shared.NationAustria, europe, goods.GoodPeople, 799)
			},
			code: -11,
		},
		{
			name: "horses",
			arrange: func(w *helpers.World, s *sector.Sector, b *military.Brigade) {
				w.Ledger.Set(shared.NationAustria, europe, goods.GoodHorse, 799)
			},
			cmd:  order.AdditionalBattalionsCommand{BrigadeID: 30, BattalionType: 4},
			code: -12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s, b := barrackWorld()
			fund(w, shared.NationAustria, europe, map[goods.Good]int{
				goods.GoodMoney:  60000,
				goods.GoodInpt:   30,
				goods.GoodPeople: 800,
				goods.GoodHorse:  800,
			})
			if tt.arrange != nil {
				tt.arrange(w, s, b)
			}
			battalions := len(b.Battalions)
			before := w.Ledger.Digest()
			h := orders.NewAdditionalBattalionsHandler(w.Dependencies(), loadBatch(t, w))

			cmd := tt.cmd
			if cmd.BrigadeID == 0 {
				cmd = order.AdditionalBattalionsCommand{BrigadeID: 30, BattalionType: 1}
			}
			out := handle(t, h, orderBy(shared.NationAustria, 1), &cmd)

			assert.Equal(t, tt.code, out.Result)
			assert.Len(t, b.Battalions, battalions)
			assert.Equal(t, before, w.Ledger.Digest())
		})
	}
}

func TestIncreaseHeadcount(t *testing.T) {
	// Arrange: 200 soldiers missing out of 800 is a quarter of the cost
	w, _, b := barrackWorld()
	b.Battalions[0].Headcount = 600
	fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney:  7499,
		goods.GoodInpt:   5,
		goods.GoodPeople: 200,
	})
	batch := loadBatch(t, w)
	h := orders.NewIncreaseHeadcountHandler(w.Dependencies(), batch)
	cmd := &order.IncreaseHeadcountCommand{BrigadeID: 30}

	// Act & Assert
	assert.Equal(t, -6, handle(t, h, orderBy(shared.NationAustria, 1), cmd).Result)
	assert.Equal(t, 600, b.Battalions[0].Headcount)

	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 7500)
	out := handle(t, h, orderBy(shared.NationAustria, 2), cmd)
	assert.Equal(t, 200, out.Result)
	assert.Equal(t, map[goods.Good]int{goods.GoodMoney: 7500, goods.GoodInpt: 5, goods.GoodPeople: 200}, out.UsedGoods)
	assert.Equal(t, 800, b.Battalions[0].Headcount)
	assert.Equal(t, 800, b.Battalions[1].Headcount)

	assert.Equal(t, -5, handle(t, h, orderBy(shared.NationAustria, 3), cmd).Result)
	assert.Equal(t, -1, handle(t, h, orderBy(shared.NationFrance, 4), cmd).Result)
}

func TestIncreaseHeadcount_UnknownBattalionTypeIsNotRefilled(t *testing.T) {
	// Arrange: the second battalion has a type missing from the catalog
	w, _, b := barrackWorld()
	b.Battalions[0].Headcount = 600
	b.Battalions[1].Headcount = 100
	b.Battalions[1].TypeID = 999
	fund(w, shared.NationAustria, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney:  100000,
		goods.GoodInpt:   100,
		goods.GoodPeople: 1000,
	})
	batch := loadBatch(t, w)
	h := orders.NewIncreaseHeadcountHandler(w.Dependencies(), batch)

	// Act
	out := handle(t, h, orderBy(shared.NationAustria, 1), &order.IncreaseHeadcountCommand{BrigadeID: 30})

	// Assert
	assert.Equal(t, -10, out.Result)
	assert.Equal(t, 600, b.Battalions[0].Headcount)
	assert.Equal(t, 100, b.Battalions[1].Headcount)
	assert.Equal(t, 100000, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 1000, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodPeople))
}

func TestExchangeBattalions(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationAustria)
	pos := helpers.Europe(1, 1)
	first := w.AddBrigade(1, shared.NationAustria, pos, 1, 800, 800)
	second := w.AddBrigade(2, shared.NationAustria, pos, 4, 700)
	w.AddBrigade(3, shared.NationAustria, helpers.Europe(2, 1), 1, 800)
	h := orders.NewExchangeBattalionsHandler(w.Dependencies(), loadBatch(t, w))
	austria := orderBy(shared.NationAustria, 1)

	// Act
	out := handle(t, h, austria, &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 101, SecondBrigade: 2, SecondBattalion: 201})

	// Assert
	assert.Equal(t, 1, out.Result)
	require.NotNil(t, first.Battalion(201))
	require.NotNil(t, second.Battalion(101))
	assert.Nil(t, first.Battalion(101))
	assert.Len(t, first.Battalions, 2)
	assert.Equal(t, 1500, first.Soldiers())

	// a battalion moves at most once per turn
	again := handle(t, h, austria, &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 102, SecondBrigade: 2, SecondBattalion: 101})
	assert.Equal(t, -6, again.Result)
	assert.NotNil(t, first.Battalion(102))

	assert.Equal(t, -2, handle(t, h, austria, &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 102, SecondBrigade: 9, SecondBattalion: 1}).Result)
	assert.Equal(t, -3, handle(t, h, austria, &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 102, SecondBrigade: 3, SecondBattalion: 301}).Result)
	assert.Equal(t, -4, handle(t, h, austria, &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 101, SecondBrigade: 2, SecondBattalion: 101}).Result)
	assert.Equal(t, -5, handle(t, h, austria, &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 102, SecondBrigade: 2, SecondBattalion: 201}).Result)
	assert.Equal(t, -1, handle(t, h, orderBy(shared.NationFrance, 2), &order.ExchangeBattalionsCommand{FirstBrigade: 1, FirstBattalion: 102, SecondBrigade: 2, SecondBattalion: 101}).Result)
}
