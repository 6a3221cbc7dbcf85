package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/tuning"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func loadBatch(t *testing.T, w *helpers.World) *orders.Batch {
	t.Helper()
	turn, err := economy.LoadTurn(context.Background(), w.Dependencies(), w.LedgerStore(), tuning.MustDefault(), w.Game.ID, helpers.NewScriptedRandom())
	require.NoError(t, err)
	return orders.NewBatch(turn)
}

// handle wraps the command like the runner does and returns the outcome
func handle(t *testing.T, h mediator.RequestHandler, o *order.Order, cmd order.Command) *order.Outcome {
	t.Helper()
	request, err := orders.Wrap(o, cmd)
	require.NoError(t, err)
	resp, err := h.Handle(context.Background(), request)
	require.NoError(t, err)
	out, ok := resp.(*order.Outcome)
	require.True(t, ok, "handler returned %T", resp)
	return out
}

func orderBy(n shared.NationID, id int) *order.Order {
	return &order.Order{ID: id, GameID: 1, Nation: n, Turn: 5}
}

func fund(w *helpers.World, n shared.NationID, region shared.RegionID, amounts map[goods.Good]int) {
	for g, qty := range amounts {
		w.Ledger.Set(n, region, g, qty)
	}
}
