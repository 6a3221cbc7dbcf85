// Package orders resolves the player orders of a turn. Every order is decoded
// into its typed command and dispatched through a mediator built for the
// batch, so handlers share the turn's ledger and turn-scoped state but nothing
// outlives the batch.
package orders

import (
	"context"
	"fmt"
	"sort"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
)

// Registrar registers the order handlers of one batch
type Registrar interface {
	RegisterOrderHandlers(m mediator.Mediator, batch *Batch) error
}

// Batch is what the handlers of one turn share
type Batch struct {
	Turn  *economy.Turn
	State *TurnState
}

// NewBatch creates the batch of a turn with fresh turn-scoped state
func NewBatch(turn *economy.Turn) *Batch {
	return &Batch{Turn: turn, State: NewTurnState()}
}

// Summary counts the outcomes of a batch
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
	Invalid   int
}

// Runner processes the pending orders of a turn one at a time
type Runner struct {
	orders    order.Repository
	ledgers   goods.LedgerStore
	registrar Registrar
	commands  *metrics.CommandMetricsCollector
}

// NewRunner creates an order batch runner. commands may be nil.
func NewRunner(orders order.Repository, ledgers goods.LedgerStore, registrar Registrar, commands *metrics.CommandMetricsCollector) *Runner {
	return &Runner{
		orders:    orders,
		ledgers:   ledgers,
		registrar: registrar,
		commands:  commands,
	}
}

// Process runs every pending order of the turn in processing sequence, then
// position, then id, and commits the ledger once the batch is done.
func (r *Runner) Process(ctx context.Context, turn *economy.Turn) (*Summary, error) {
	logger := common.LoggerFromContext(ctx)

	pending, err := r.orders.FindPending(ctx, turn.Game.ID, turn.Number())
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	Sort(pending)

	batch := NewBatch(turn)
	m := mediator.NewMediator()
	m.RegisterMiddleware(metrics.PrometheusMiddleware(r.commands))
	if err := r.registrar.RegisterOrderHandlers(m, batch); err != nil {
		return nil, fmt.Errorf("register order handlers: %w", err)
	}

	summary := &Summary{}
	for _, o := range pending {
		outcome, err := r.resolve(ctx, m, batch, o)
		if err != nil {
			logger.Log(common.LevelError, "order failed", map[string]interface{}{
				"order": o.ID,
				"type":  o.Type.String(),
				"error": err.Error(),
			})
			return summary, fmt.Errorf("order %d: %w", o.ID, err)
		}

		o.Apply(outcome)
		if err := r.orders.Update(ctx, o); err != nil {
			return summary, fmt.Errorf("save order %d: %w", o.ID, err)
		}
		metrics.RecordOrder(o.Type.String(), outcome.Succeeded())

		summary.Processed++
		switch {
		case outcome.Succeeded():
			summary.Succeeded++
		case outcome.Result == order.ResultInvalid:
			summary.Invalid++
		default:
			summary.Failed++
		}
		logger.Log(common.LevelDebug, "order processed", map[string]interface{}{
			"order":  o.ID,
			"nation": o.Nation,
			"type":   o.Type.String(),
			"result": outcome.Result,
		})
	}

	if err := r.ledgers.SaveLedger(ctx, turn.Ledger); err != nil {
		return summary, fmt.Errorf("save ledger: %w", err)
	}
	logger.Log(common.LevelInfo, "orders processed", map[string]interface{}{
		"game":      turn.Game.ID,
		"turn":      turn.Number(),
		"processed": summary.Processed,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"invalid":   summary.Invalid,
	})
	return summary, nil
}

func (r *Runner) resolve(ctx context.Context, m mediator.Mediator, batch *Batch, o *order.Order) (*order.Outcome, error) {
	n, ok := batch.Turn.Nations[o.Nation]
	if !ok || !n.Alive {
		return order.Invalid("The nation giving this order is no longer in the game."), nil
	}
	cmd, err := order.Decode(o)
	if err != nil {
		return order.Invalid(fmt.Sprintf("Order could not be read: %v", err)), nil
	}

	request, err := Wrap(o, cmd)
	if err != nil {
		return nil, err
	}
	resp, err := m.Send(ctx, request)
	if err != nil {
		return nil, err
	}
	outcome, ok := resp.(*order.Outcome)
	if !ok || outcome == nil {
		return nil, fmt.Errorf("handler for %s returned %T", o.Type, resp)
	}
	return outcome, nil
}

// Sort puts orders in processing sequence, then position, then id
func Sort(orders []*order.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if a.Type.Sequence() != b.Type.Sequence() {
			return a.Type.Sequence() < b.Type.Sequence()
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}
