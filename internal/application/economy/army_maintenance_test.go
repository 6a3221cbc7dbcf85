package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func TestArmyMaintenance_UnpaidBattalionLosesFiveToFifteenPercent(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		// Arrange
		w := helpers.NewWorld(1, 5)
		w.AddNation(shared.NationPrussia)
		b := w.AddBrigade(1, shared.NationPrussia, helpers.Europe(10, 20), 1, 800)
		w.Ledger.Set(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, 1000)
		turn := loadTurn(t, w, shared.NewSeededRandom(seed))

		// Act
		err := economy.NewArmyMaintenance(w.Dependencies()).Run(context.Background(), turn)

		// Assert
		require.NoError(t, err)
		hc := b.Battalions[0].Headcount
		assert.GreaterOrEqual(t, hc, 680, "seed %d", seed)
		assert.LessOrEqual(t, hc, 760, "seed %d", seed)
		assert.Equal(t, 0, w.Ledger.Get(shared.NationPrussia, shared.RegionEurope, goods.GoodMoney))
		assert.Equal(t, "1", reportValue(t, w, shared.NationPrussia, report.KeyArmyUnpaid))
	}
}

func TestArmyMaintenance_FranceInEuropeDesertsLess(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		w := helpers.NewWorld(1, 5)
		w.AddNation(shared.NationFrance)
		b := w.AddBrigade(1, shared.NationFrance, helpers.Europe(10, 20), 1, 800)
		w.Ledger.Set(shared.NationFrance, shared.RegionEurope, goods.GoodFood, 1000)
		turn := loadTurn(t, w, shared.NewSeededRandom(seed))

		require.NoError(t, economy.NewArmyMaintenance(w.Dependencies()).Run(context.Background(), turn))

		hc := b.Battalions[0].Headcount
		assert.GreaterOrEqual(t, hc, 760)
		assert.LessOrEqual(t, hc, 792)
	}
}

func TestArmyMaintenance_PaysScaledByHeadcount(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationPrussia)
	w.AddNation(shared.NationOttoman)
	w.AddBrigade(1, shared.NationPrussia, helpers.Europe(1, 1), 1, 800, 400)
	w.AddBrigade(2, shared.NationOttoman, helpers.Europe(2, 2), 1, 500)
	w.Ledger.Set(shared.NationPrussia, shared.RegionEurope, goods.GoodMoney, 10000)
	w.Ledger.Set(shared.NationOttoman, shared.RegionEurope, goods.GoodMoney, 10000)
	w.Ledger.Set(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, 12)
	w.Ledger.Set(shared.NationOttoman, shared.RegionEurope, goods.GoodFood, 5)
	w.SetReport(shared.NationNeutral, 5, report.EventKey(string(events.CorruptedEconomy)), "9")
	turn := loadTurn(t, w, shared.NewSeededRandom(1))

	// Act
	require.NoError(t, economy.NewArmyMaintenance(w.Dependencies()).Run(context.Background(), turn))

	// Assert: line infantry 3000 per full battalion; Ottoman battalions hold
	// 1000 men and pay 25% more under a corrupted economy
	assert.Equal(t, 10000-3000-1500, w.Ledger.Get(shared.NationPrussia, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 10000-1875, w.Ledger.Get(shared.NationOttoman, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 0, w.Ledger.Get(shared.NationPrussia, shared.RegionEurope, goods.GoodFood))
	assert.Equal(t, 0, w.Ledger.Get(shared.NationOttoman, shared.RegionEurope, goods.GoodFood))
	assert.Equal(t, "4500", reportValue(t, w, shared.NationPrussia, report.KeyArmyMaintenance))
}

func TestArmyMaintenance_FoodShortfallStarvesBattalions(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationPrussia)
	b := w.AddBrigade(1, shared.NationPrussia, helpers.Europe(10, 20), 1, 800, 800)
	w.Ledger.Set(shared.NationPrussia, shared.RegionEurope, goods.GoodMoney, 1000000)
	w.Ledger.Set(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, 3)
	turn := loadTurn(t, w, shared.NewSeededRandom(9))

	// Act
	require.NoError(t, economy.NewArmyMaintenance(w.Dependencies()).Run(context.Background(), turn))

	// Assert
	assert.Equal(t, 0, w.Ledger.Get(shared.NationPrussia, shared.RegionEurope, goods.GoodFood))
	for _, bat := range b.Battalions {
		assert.True(t, bat.NotSupplied)
		assert.GreaterOrEqual(t, bat.Headcount, 640)
		assert.LessOrEqual(t, bat.Headcount, 760)
	}
	assert.Equal(t, "3", reportValue(t, w, shared.NationPrussia, report.KeyArmyFood))
	assert.NotEqual(t, "0", reportValue(t, w, shared.NationPrussia, report.KeyArmyStarved))
	assert.Len(t, w.News, 1)
}

func TestAttritionBand(t *testing.T) {
	low, high := economy.AttritionBand(shared.NationRussia, shared.RegionEurope, true)
	assert.Equal(t, [2]int{1, 5}, [2]int{low, high})
	low, high = economy.AttritionBand(shared.NationRussia, shared.RegionIndies, true)
	assert.Equal(t, [2]int{10, 20}, [2]int{low, high})
	low, high = economy.AttritionBand(shared.NationSpain, shared.RegionEurope, false)
	assert.Equal(t, [2]int{5, 20}, [2]int{low, high})
}

func TestArmyMaintenance_HeadcountNeverNegative(t *testing.T) {
	bat := &military.Battalion{Headcount: 3}
	bat.ReduceHeadcount(100)
	assert.Equal(t, 0, bat.Headcount)
}
