package goods_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

func TestLedger_IncDecAndGet(t *testing.T) {
	// Arrange
	l := goods.NewLedger(1)

	// Act
	l.Set(shared.NationFrance, shared.RegionEurope, goods.GoodMoney, 1000)
	l.Inc(shared.NationFrance, shared.RegionEurope, goods.GoodMoney, 250)
	l.Dec(shared.NationFrance, shared.RegionEurope, goods.GoodMoney, 100)

	// Assert
	assert.Equal(t, 1150, l.Get(shared.NationFrance, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 0, l.Get(shared.NationFrance, shared.RegionIndies, goods.GoodMoney))
	assert.Equal(t, 0, l.Produced(shared.NationFrance, shared.RegionEurope, goods.GoodMoney))
}

func TestLedger_ProductionShadowTable(t *testing.T) {
	l := goods.NewLedger(1)
	l.Set(shared.NationSpain, shared.RegionCaribbean, goods.GoodOre, 40)

	l.IncProd(shared.NationSpain, shared.RegionCaribbean, goods.GoodInpt, 300)
	l.DecProd(shared.NationSpain, shared.RegionCaribbean, goods.GoodOre, 3)

	assert.Equal(t, 300, l.Get(shared.NationSpain, shared.RegionCaribbean, goods.GoodInpt))
	assert.Equal(t, 300, l.Produced(shared.NationSpain, shared.RegionCaribbean, goods.GoodInpt))
	assert.Equal(t, 37, l.Get(shared.NationSpain, shared.RegionCaribbean, goods.GoodOre))
	assert.Equal(t, -3, l.Produced(shared.NationSpain, shared.RegionCaribbean, goods.GoodOre))

	l.ResetProduction()
	assert.Equal(t, 0, l.Produced(shared.NationSpain, shared.RegionCaribbean, goods.GoodInpt))
	assert.Equal(t, 300, l.Get(shared.NationSpain, shared.RegionCaribbean, goods.GoodInpt))
}

func TestLedger_WithdrawClampsToAvailable(t *testing.T) {
	l := goods.NewLedger(1)
	l.Set(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, 30)

	taken := l.Withdraw(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, 50)

	assert.Equal(t, 30, taken)
	assert.Equal(t, 0, l.Get(shared.NationPrussia, shared.RegionEurope, goods.GoodFood))
	assert.Equal(t, 0, l.Withdraw(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, 10))
	assert.Equal(t, 0, l.Withdraw(shared.NationPrussia, shared.RegionEurope, goods.GoodFood, -5))
	assert.Empty(t, l.NegativeCells())
}

func TestLedger_WarehouseRoundTrip(t *testing.T) {
	l := goods.NewLedger(3)
	stored := map[goods.Good]int{goods.GoodWood: 12, goods.GoodStone: 7}

	require.NoError(t, l.LoadWarehouse(shared.NationRussia, shared.RegionEurope, stored))

	assert.Equal(t, stored, l.Warehouse(shared.NationRussia, shared.RegionEurope))
	assert.Equal(t, 12, l.Total(shared.NationRussia, goods.GoodWood))
}

func TestLedger_LoadWarehouseRejectsUnknownCells(t *testing.T) {
	l := goods.NewLedger(3)

	err := l.LoadWarehouse(shared.NationID(99), shared.RegionEurope, nil)
	var cellErr *goods.ErrInvalidCell
	assert.ErrorAs(t, err, &cellErr)

	err = l.LoadWarehouse(shared.NationRussia, shared.RegionEurope, map[goods.Good]int{goods.Good(40): 1})
	assert.ErrorAs(t, err, &cellErr)
}

func TestLedger_DigestTracksQuantities(t *testing.T) {
	a := goods.NewLedger(1)
	b := goods.NewLedger(1)
	a.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 10)
	b.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 10)
	assert.Equal(t, a.Digest(), b.Digest())

	b.Inc(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 1)
	assert.NotEqual(t, a.Digest(), b.Digest())
}

func TestParseGood(t *testing.T) {
	g, err := goods.ParseGood("Fabric")
	require.NoError(t, err)
	assert.Equal(t, goods.GoodFabric, g)

	g, err = goods.ParseGood("7")
	require.NoError(t, err)
	assert.Equal(t, goods.GoodOre, g)

	_, err = goods.ParseGood("spice")
	assert.Error(t, err)
	assert.False(t, goods.GoodPeople.IsTradable())
	assert.True(t, goods.GoodWine.IsTradable())
}
