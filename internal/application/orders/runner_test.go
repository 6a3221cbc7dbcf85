package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/application/setup"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func newRunner(w *helpers.World) *orders.Runner {
	return orders.NewRunner(w.OrderRepository(), w.LedgerStore(), setup.NewHandlerRegistry(w.Dependencies()), nil)
}

func TestSort_SequenceThenPositionThenID(t *testing.T) {
	batch := []*order.Order{
		{ID: 5, Type: order.TypeTransferFirst, Position: 1},
		{ID: 4, Type: order.TypeChangeTaxation, Position: 2},
		{ID: 3, Type: order.TypeChangeTaxation, Position: 1},
		{ID: 2, Type: order.TypeChangeTaxation, Position: 1},
		{ID: 1, Type: order.TypeBuildBrigade, Position: 0},
	}

	orders.Sort(batch)

	ids := make([]int, len(batch))
	for i, o := range batch {
		ids[i] = o.ID
	}
	assert.Equal(t, []int{2, 3, 4, 1, 5}, ids)
}

func TestRunner_Process(t *testing.T) {
	// Arrange
	w := helpers.NewWorld(1, 5)
	austria := w.AddNation(shared.NationAustria)
	france := w.AddNation(shared.NationFrance)
	france.Alive = false
	w.AddOrder(1, austria.ID, order.TypeChangeTaxation, 1, "1")
	w.AddOrder(2, austria.ID, order.TypeChangeTaxation, 2, "abc")
	w.AddOrder(3, france.ID, order.TypeChangeTaxation, 1, "2")
	w.AddOrder(4, austria.ID, order.TypeDemolishProductionSite, 1, "99")
	stale := w.AddOrder(5, austria.ID, order.TypeChangeTaxation, 1, "3")
	stale.Turn = 4
	turn := loadBatch(t, w).Turn

	// Act
	summary, err := newRunner(w).Process(context.Background(), turn)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &orders.Summary{Processed: 4, Succeeded: 1, Failed: 1, Invalid: 2}, summary)

	assert.True(t, w.Orders[1].Processed)
	assert.Equal(t, 1, w.Orders[1].Result)
	assert.Equal(t, order.ResultInvalid, w.Orders[2].Result)
	assert.True(t, w.Orders[2].Processed)
	assert.Equal(t, order.ResultInvalid, w.Orders[3].Result)
	assert.Equal(t, -1, w.Orders[4].Result)
	assert.NotEmpty(t, w.Orders[4].Explanation)
	assert.False(t, stale.Processed)

	policy, ok := w.Report(austria.ID, 5, report.KeyTaxationPolicy)
	require.True(t, ok)
	assert.Equal(t, "1", policy)
	assert.Equal(t, 1, w.Saves)
}

func TestRunner_TransfersSeeEarlierOrders(t *testing.T) {
	// a train built earlier in the batch can be loaded by a transfer
	w := helpers.NewWorld(1, 5)
	austria := w.AddNation(shared.NationAustria)
	w.AddSector(20, austria.ID, helpers.Europe(5, 5), 3, 12)
	fund(w, austria.ID, shared.RegionEurope, map[goods.Good]int{
		goods.GoodMoney: 30000,
		goods.GoodInpt:  50,
		goods.GoodWood:  700,
		goods.GoodHorse: 2000,
	})
	w.AddOrder(1, austria.ID, order.TypeTransferFirst, 1, "1", "1", "4", "1001", "5", "800")
	w.AddOrder(2, austria.ID, order.TypeBuildBaggageTrain, 1, "20", "Supply")
	turn := loadBatch(t, w).Turn

	summary, err := newRunner(w).Process(context.Background(), turn)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	require.Contains(t, w.Trains, 1001)
	assert.Equal(t, 500, w.Trains[1001].Cargo[goods.GoodWood])
	assert.Equal(t, 500, w.Orders[1].Result)
	assert.Equal(t, 0, w.Ledger.Get(austria.ID, shared.RegionEurope, goods.GoodWood))
	assert.Empty(t, w.Ledger.NegativeCells())
}

func TestEnvelope_CommandName(t *testing.T) {
	env := &orders.Envelope[*order.BuildShipCommand]{Command: &order.BuildShipCommand{}}

	assert.Equal(t, "BuildShipCommand", env.CommandName())

	_, err := orders.Wrap(&order.Order{}, nil)
	assert.Error(t, err)
}

func TestTurnState(t *testing.T) {
	s := orders.NewTurnState()

	assert.True(t, s.IsFirstTrader(7, shared.NationSpain))
	s.ClaimTrade(7, shared.NationSpain)
	s.ClaimTrade(7, shared.NationFrance)
	assert.True(t, s.IsFirstTrader(7, shared.NationSpain))
	assert.False(t, s.IsFirstTrader(7, shared.NationFrance))
	assert.True(t, s.IsFirstTrader(8, shared.NationFrance))

	s.MarkSwapped(101, 201)
	assert.True(t, s.Swapped(101))
	assert.False(t, s.Swapped(102))
}
