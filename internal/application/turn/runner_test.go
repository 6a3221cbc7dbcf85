package turn_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/application/setup"
	"github.com/ShakaofCarthage/empire-engine/internal/application/turn"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/tuning"
	"github.com/ShakaofCarthage/empire-engine/pkg/utils"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func gameWorld() *helpers.World {
	w := helpers.NewWorld(1, 5)
	for _, id := range []shared.NationID{shared.NationAustria, shared.NationFrance} {
		w.AddNation(id)
		base := int(id) * 10
		w.AddSector(base+1, id, helpers.Europe(base, 1), 5, sector.SiteEstate)
		w.AddSector(base+2, id, helpers.Europe(base, 2), 4, sector.SiteFactory)
		w.AddSector(base+3, id, helpers.Europe(base, 3), 6, sector.SiteNone)
		w.AddBrigade(base+1, id, helpers.Europe(base, 1), 1, 800, 700)
		w.AddTrain(base+1, id, helpers.Europe(base, 2), 1500)
		w.Ledger.Set(id, shared.RegionEurope, goods.GoodMoney, 500000)
		w.Ledger.Set(id, shared.RegionEurope, goods.GoodFood, 300)
		w.Ledger.Set(id, shared.RegionEurope, goods.GoodWool, 80)
	}
	w.AddOrder(1, shared.NationAustria, order.TypeChangeTaxation, 1, "2")
	return w
}

func newRunner(w *helpers.World, opts turn.Options) *turn.Runner {
	deps := w.Dependencies()
	return turn.NewRunner(deps, w.LedgerStore(), w.OrderRepository(), tuning.MustDefault(), setup.NewHandlerRegistry(deps), opts)
}

type capturingLogger struct {
	mu      sync.Mutex
	entries []map[string]interface{}
}

func (l *capturingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, metadata)
}

func TestRunner_RunTurn(t *testing.T) {
	// Arrange
	w := gameWorld()
	logger := &capturingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	res, err := newRunner(w, turn.Options{}).RunTurn(ctx, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, res.Turn)
	assert.Equal(t, turn.DeriveSeed(1, 5), res.Seed)
	assert.Len(t, res.Phases, 8)
	require.NotNil(t, res.Orders)
	assert.Equal(t, 1, res.Orders.Succeeded)
	assert.Equal(t, w.Ledger.Digest(), res.Digest)
	assert.Equal(t, "turn", utils.RunOperation(res.RunID))
	assert.Equal(t, 9, w.Saves, "one commit per phase and one after the orders")
	assert.True(t, w.Orders[1].Processed)
	assert.Empty(t, w.Ledger.NegativeCells())

	require.NotEmpty(t, logger.entries)
	for _, entry := range logger.entries {
		assert.Equal(t, res.RunID, entry["run"])
	}
}

func TestRunner_SameSeedSameLedger(t *testing.T) {
	first, err := newRunner(gameWorld(), turn.Options{Seed: 42}).RunTurn(context.Background(), 1)
	require.NoError(t, err)
	second, err := newRunner(gameWorld(), turn.Options{Seed: 42}).RunTurn(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), first.Seed)
	assert.Equal(t, first.Digest, second.Digest)
}

func TestRunner_PartialRuns(t *testing.T) {
	w := gameWorld()
	r := newRunner(w, turn.Options{})

	res, err := r.RunOrders(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, res.Phases)
	assert.Equal(t, "orders", utils.RunOperation(res.RunID))
	assert.Equal(t, 1, res.Orders.Processed)
	assert.Equal(t, 1, w.Saves)

	res, err = r.RunEconomy(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, res.Orders)
	assert.Equal(t, "economy", utils.RunOperation(res.RunID))
	assert.Equal(t, 9, w.Saves)
}

func TestRunner_UnknownGame(t *testing.T) {
	res, err := newRunner(gameWorld(), turn.Options{}).RunTurn(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Empty(t, res.Digest)
}

func TestRunner_SerializesOneGame(t *testing.T) {
	// Arrange: concurrent callers on the same game must not interleave
	w := gameWorld()
	r := newRunner(w, turn.Options{})

	// Act
	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.RunEconomy(context.Background(), 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Assert
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 32, w.Saves)
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, turn.DeriveSeed(3, 10), turn.DeriveSeed(3, 10))
	assert.NotEqual(t, turn.DeriveSeed(3, 10), turn.DeriveSeed(3, 11))
	assert.NotEqual(t, turn.DeriveSeed(3, 10), turn.DeriveSeed(4, 10))
}
