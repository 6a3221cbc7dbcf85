package orders_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func transferWorld() *helpers.World {
	w := helpers.NewWorld(1, 5)
	w.AddNation(shared.NationAustria)
	w.AddNation(shared.NationFrance)
	w.AddNation(shared.NationRussia)
	return w
}

func transfer(sourceKind, sourceID, targetKind, targetID int, g goods.Good, qty int) *order.TransferFirstCommand {
	return &order.TransferFirstCommand{TransferCommand: order.TransferCommand{
		SourceKind: sourceKind,
		SourceID:   sourceID,
		TargetKind: targetKind,
		TargetID:   targetID,
		Good:       int(g),
		Quantity:   qty,
	}}
}

func TestTransfer_ClampsToRoom(t *testing.T) {
	// Arrange
	w := transferWorld()
	train := w.AddTrain(60, shared.NationAustria, helpers.Europe(2, 2), 1500)
	train.Cargo[goods.GoodWood] = 1400
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodWood, 500)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))
	cmd := transfer(order.EntityWarehouse, int(shared.RegionEurope), order.EntityBaggageTrain, 60, goods.GoodWood, 500)

	// Act
	out := handle(t, h, orderBy(shared.NationAustria, 1), cmd)

	// Assert
	assert.Equal(t, 100, out.Result)
	assert.Equal(t, map[goods.Good]int{goods.GoodWood: 100}, out.UsedGoods)
	assert.Equal(t, 400, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodWood))
	assert.Equal(t, 1500, train.Cargo[goods.GoodWood])

	full := handle(t, h, orderBy(shared.NationAustria, 2), cmd)
	assert.Equal(t, -8, full.Result)
	assert.Equal(t, 400, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodWood))
}

func TestTransfer_ClampsToStock(t *testing.T) {
	w := transferWorld()
	ship := w.AddShip(61, shared.NationAustria, helpers.Europe(2, 2), 5, 20, 500)
	ship.Cargo[goods.GoodWine] = 30
	train := w.AddTrain(60, shared.NationAustria, helpers.Europe(2, 2), 1500)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))

	out := handle(t, h, orderBy(shared.NationAustria, 1), transfer(order.EntityShip, 61, order.EntityBaggageTrain, 60, goods.GoodWine, 100))

	assert.Equal(t, 30, out.Result)
	assert.Equal(t, 0, ship.Cargo[goods.GoodWine])
	assert.Equal(t, 30, train.Cargo[goods.GoodWine])

	empty := handle(t, h, orderBy(shared.NationAustria, 2), transfer(order.EntityShip, 61, order.EntityBaggageTrain, 60, goods.GoodWine, 100))
	assert.Equal(t, -7, empty.Result)
}

func TestTransfer_Failures(t *testing.T) {
	w := transferWorld()
	w.AddTrain(60, shared.NationAustria, helpers.Europe(2, 2), 1500).Cargo[goods.GoodWood] = 100
	w.AddShip(61, shared.NationAustria, helpers.Europe(2, 3), 5, 20, 500)
	w.AddTrain(62, shared.NationFrance, helpers.Europe(2, 2), 1500).Cargo[goods.GoodWood] = 100
	w.AddCity(70, shared.NationNeutral, helpers.Europe(4, 4))
	w.AddCity(71, shared.NationNeutral, helpers.Europe(4, 5))
	w.Nations[shared.NationRussia].Alive = false
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodWood, 100)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))

	gift := transfer(order.EntityWarehouse, 1, order.EntityWarehouse, 1, goods.GoodWood, 10)
	gift.TargetNation = int(shared.NationRussia)

	tests := []struct {
		name string
		cmd  *order.TransferFirstCommand
		code int
	}{
		{"missing source", transfer(order.EntityShip, 99, order.EntityBaggageTrain, 60, goods.GoodWood, 10), -1},
		{"foreign source", transfer(order.EntityBaggageTrain, 62, order.EntityBaggageTrain, 60, goods.GoodWood, 10), -2},
		{"missing target", transfer(order.EntityBaggageTrain, 60, order.EntityShip, 99, goods.GoodWood, 10), -3},
		{"dead receiver", gift, -3},
		{"apart", transfer(order.EntityBaggageTrain, 60, order.EntityShip, 61, goods.GoodWood, 10), -4},
		{"other region", transfer(order.EntityWarehouse, int(shared.RegionCaribbean), order.EntityBaggageTrain, 60, goods.GoodWood, 10), -4},
		{"not traded", transfer(order.EntityWarehouse, 1, order.EntityTradeCity, 70, goods.GoodAP, 10), -5},
		{"city to city", transfer(order.EntityTradeCity, 70, order.EntityTradeCity, 71, goods.GoodWood, 10), -9},
		{"same endpoint", transfer(order.EntityWarehouse, 1, order.EntityWarehouse, 1, goods.GoodWood, 10), -10},
	}

	before := w.Ledger.Digest()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := handle(t, h, orderBy(shared.NationAustria, 1), tt.cmd)

			assert.Equal(t, tt.code, out.Result)
		})
	}
	assert.Equal(t, before, w.Ledger.Digest())
	assert.Equal(t, 100, w.Trains[60].Cargo[goods.GoodWood])
}

func TestTransfer_ForeignWarehousePaysRelationFee(t *testing.T) {
	// Arrange: passage costs 25 per mille of the goods sent
	w := transferWorld()
	w.SetRelation(shared.NationAustria, shared.NationFrance, nation.RelationPassage)
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodWood, 1000)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))
	cmd := transfer(order.EntityWarehouse, 1, order.EntityWarehouse, 1, goods.GoodWood, 400)
	cmd.TargetNation = int(shared.NationFrance)

	// Act
	out := handle(t, h, orderBy(shared.NationAustria, 1), cmd)

	// Assert
	assert.Equal(t, 400, out.Result)
	assert.Equal(t, 600, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodWood))
	assert.Equal(t, 390, w.Ledger.Get(shared.NationFrance, shared.RegionEurope, goods.GoodWood))
	require.Len(t, w.News, 1)
	assert.Equal(t, shared.NationFrance, w.News[0].Nation)
	assert.Equal(t, shared.NationAustria, w.News[0].Subject)
	assert.Equal(t, report.NewsTrade, w.News[0].Type)
}

func TestTransfer_SellAtForeignCity(t *testing.T) {
	// Arrange: level 4 sells food at its base price of 12; another nation
	// already traded there, so no first trader bonus
	w := transferWorld()
	city := w.AddCity(70, shared.NationFrance, helpers.Europe(4, 4))
	city.Levels[goods.GoodFood] = 4
	w.SetRelation(shared.NationFrance, shared.NationAustria, nation.RelationTrade)
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodFood, 100)
	batch := loadBatch(t, w)
	batch.State.ClaimTrade(70, shared.NationRussia)
	h := orders.NewTransferHandler(w.Dependencies(), batch)

	// Act
	out := handle(t, h, orderBy(shared.NationAustria, 1), transfer(order.EntityWarehouse, 1, order.EntityTradeCity, 70, goods.GoodFood, 100))

	// Assert: the city owner keeps 5 percent
	assert.Equal(t, 100, out.Result)
	assert.Equal(t, 0, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodFood))
	assert.Equal(t, 1140, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 60, w.Ledger.Get(shared.NationFrance, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 1200, w.Profile(shared.NationAustria, profile.KeyTradeVolume))
}

func TestTransfer_FirstTraderKeepsBonus(t *testing.T) {
	w := transferWorld()
	w.AddCity(71, shared.NationNeutral, helpers.Europe(4, 4)).Levels[goods.GoodFood] = 4
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodFood, 200)
	w.Ledger.Set(shared.NationFrance, shared.RegionEurope, goods.GoodFood, 100)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))
	sell := transfer(order.EntityWarehouse, 1, order.EntityTradeCity, 71, goods.GoodFood, 100)

	handle(t, h, orderBy(shared.NationAustria, 1), sell)
	handle(t, h, orderBy(shared.NationFrance, 2), sell)
	handle(t, h, orderBy(shared.NationAustria, 3), sell)

	// 12 * 1.05 per unit for the first trader of the turn
	assert.Equal(t, 2520, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 1200, w.Ledger.Get(shared.NationFrance, shared.RegionEurope, goods.GoodMoney))
}

func TestTransfer_Buy(t *testing.T) {
	// Arrange
	w := transferWorld()
	w.AddCity(71, shared.NationNeutral, helpers.Europe(4, 4)).Levels[goods.GoodFood] = 6
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 1000)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))
	buy := transfer(order.EntityTradeCity, 71, order.EntityWarehouse, 1, goods.GoodFood, 100)

	// Act & Assert: 12 * 0.95 * 100 = 1140
	assert.Equal(t, -6, handle(t, h, orderBy(shared.NationAustria, 1), buy).Result)

	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 2000)
	out := handle(t, h, orderBy(shared.NationAustria, 2), buy)
	assert.Equal(t, 100, out.Result)
	assert.Equal(t, map[goods.Good]int{goods.GoodMoney: 1140, goods.GoodFood: 100}, out.UsedGoods)
	assert.Equal(t, 860, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
	assert.Equal(t, 100, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodFood))

	foreign := transfer(order.EntityTradeCity, 71, order.EntityWarehouse, 1, goods.GoodFood, 10)
	foreign.TargetNation = int(shared.NationFrance)
	assert.Equal(t, -11, handle(t, h, orderBy(shared.NationAustria, 3), foreign).Result)
	assert.Empty(t, w.Ledger.NegativeCells())
}

func TestTransfer_HugeBuyIsRejected(t *testing.T) {
	// Arrange
	w := transferWorld()
	w.AddCity(71, shared.NationNeutral, helpers.Europe(4, 4)).Levels[goods.GoodFood] = 6
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 1000)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))

	for i, qty := range []int{order.MaxQuantity + 1, math.MaxInt, 809068608404564650} {
		// Act
		out := handle(t, h, orderBy(shared.NationAustria, i+1), transfer(order.EntityTradeCity, 71, order.EntityWarehouse, 1, goods.GoodFood, qty))

		// Assert
		assert.LessOrEqual(t, out.Result, 0, "quantity %d", qty)
		assert.Equal(t, 1000, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney), "quantity %d", qty)
		assert.Equal(t, 0, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodFood), "quantity %d", qty)
	}
	assert.Empty(t, w.Ledger.NegativeCells())
}

func TestTransfer_SellIntoFullTreasuryIsRejected(t *testing.T) {
	w := transferWorld()
	w.AddCity(71, shared.NationNeutral, helpers.Europe(4, 4)).Levels[goods.GoodFood] = 4
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, math.MaxInt-10)
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodFood, 100)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))

	out := handle(t, h, orderBy(shared.NationAustria, 1), transfer(order.EntityWarehouse, 1, order.EntityTradeCity, 71, goods.GoodFood, 100))

	assert.Equal(t, -12, out.Result)
	assert.Equal(t, 100, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodFood))
	assert.Equal(t, math.MaxInt-10, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodMoney))
	assert.Empty(t, w.Ledger.NegativeCells())
}

func TestTransfer_MoveIntoFullWarehouseIsRejected(t *testing.T) {
	w := transferWorld()
	w.SetRelation(shared.NationAustria, shared.NationFrance, nation.RelationPassage)
	w.Ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodWood, 100)
	w.Ledger.Set(shared.NationFrance, shared.RegionEurope, goods.GoodWood, math.MaxInt)
	h := orders.NewTransferHandler(w.Dependencies(), loadBatch(t, w))
	cmd := transfer(order.EntityWarehouse, 1, order.EntityWarehouse, 1, goods.GoodWood, 100)
	cmd.TargetNation = int(shared.NationFrance)

	out := handle(t, h, orderBy(shared.NationAustria, 1), cmd)

	assert.Equal(t, -8, out.Result)
	assert.Equal(t, 100, w.Ledger.Get(shared.NationAustria, shared.RegionEurope, goods.GoodWood))
	assert.Equal(t, math.MaxInt, w.Ledger.Get(shared.NationFrance, shared.RegionEurope, goods.GoodWood))
}
