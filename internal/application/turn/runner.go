// Package turn runs a complete game turn: the economy phases followed by the
// order batch, against one ledger and one random source.
package turn

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"lukechampine.com/blake3"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/orders"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/pkg/utils"
)

// Options tune a Runner
type Options struct {
	// Seed fixes the random source. Zero derives one from game and turn.
	Seed uint64

	// FailFast aborts the turn on a negative ledger cell
	FailFast bool

	// Commands receives per-order metrics, may be nil
	Commands *metrics.CommandMetricsCollector
}

// Result describes one run
type Result struct {
	RunID    string
	Game     shared.GameID
	Turn     int
	Seed     uint64
	Phases   []string
	Orders   *orders.Summary
	Digest   string
	Duration time.Duration
}

// Runner owns one lock per game: different games may run concurrently, the
// phases and orders of one game never interleave.
type Runner struct {
	deps      *economy.Dependencies
	ledgers   goods.LedgerStore
	orders    order.Repository
	rules     *rules.Rules
	registrar orders.Registrar
	opts      Options

	mu    sync.Mutex
	locks map[shared.GameID]*sync.Mutex
}

// NewRunner creates a turn runner
func NewRunner(deps *economy.Dependencies, ledgers goods.LedgerStore, orderRepo order.Repository, r *rules.Rules, registrar orders.Registrar, opts Options) *Runner {
	return &Runner{
		deps:      deps,
		ledgers:   ledgers,
		orders:    orderRepo,
		rules:     r,
		registrar: registrar,
		opts:      opts,
		locks:     make(map[shared.GameID]*sync.Mutex),
	}
}

// RunTurn runs the economy phases and then the pending orders of the game's
// current turn.
func (r *Runner) RunTurn(ctx context.Context, game shared.GameID) (*Result, error) {
	return r.run(ctx, game, true, true)
}

// RunEconomy runs only the economy phases
func (r *Runner) RunEconomy(ctx context.Context, game shared.GameID) (*Result, error) {
	return r.run(ctx, game, true, false)
}

// RunOrders runs only the pending order batch
func (r *Runner) RunOrders(ctx context.Context, game shared.GameID) (*Result, error) {
	return r.run(ctx, game, false, true)
}

func (r *Runner) run(ctx context.Context, game shared.GameID, economyPhases, orderBatch bool) (res *Result, err error) {
	lock := r.lockFor(game)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	res = &Result{RunID: utils.GenerateRunID(operation(economyPhases, orderBatch), int(game)), Game: game}
	logger := &runLogger{inner: common.LoggerFromContext(ctx), runID: res.RunID}
	ctx = common.WithLogger(ctx, logger)
	defer func() {
		res.Duration = time.Since(start)
		metrics.RecordTurn(int(game), res.Duration.Seconds(), err == nil)
	}()

	g, err := r.deps.Games.FindByID(ctx, game)
	if err != nil {
		return res, fmt.Errorf("load game %d: %w", game, err)
	}
	res.Turn = g.Turn
	res.Seed = r.seed(game, g.Turn)

	turn, err := economy.LoadTurn(ctx, r.deps, r.ledgers, r.rules, game, shared.NewSeededRandom(res.Seed))
	if err != nil {
		return res, err
	}
	logger.Log(common.LevelInfo, "turn started", map[string]interface{}{
		"game": game,
		"turn": res.Turn,
		"seed": res.Seed,
	})

	if economyPhases {
		processor := economy.NewProcessor(r.deps, r.ledgers)
		processor.SetFailFast(r.opts.FailFast)
		res.Phases = processor.Phases()
		if err := processor.Process(ctx, turn); err != nil {
			return res, err
		}
	}
	if orderBatch {
		runner := orders.NewRunner(r.orders, r.ledgers, r.registrar, r.opts.Commands)
		summary, err := runner.Process(ctx, turn)
		res.Orders = summary
		if err != nil {
			return res, err
		}
	}

	res.Digest = turn.Ledger.Digest()
	logger.Log(common.LevelInfo, "turn finished", map[string]interface{}{
		"game":   game,
		"turn":   res.Turn,
		"digest": res.Digest,
	})
	return res, nil
}

func operation(economyPhases, orderBatch bool) string {
	switch {
	case economyPhases && orderBatch:
		return "turn"
	case economyPhases:
		return "economy"
	default:
		return "orders"
	}
}

func (r *Runner) lockFor(game shared.GameID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[game]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[game] = lock
	}
	return lock
}

func (r *Runner) seed(game shared.GameID, turn int) uint64 {
	if r.opts.Seed != 0 {
		return r.opts.Seed
	}
	return DeriveSeed(game, turn)
}

// DeriveSeed hashes game and turn into a seed, so replaying a turn draws the
// same numbers without any stored state.
func DeriveSeed(game shared.GameID, turn int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(game))
	binary.LittleEndian.PutUint64(buf[8:], uint64(turn))
	sum := blake3.Sum256(buf[:])
	return binary.LittleEndian.Uint64(sum[:8])
}

// runLogger tags every entry of a run with its id
type runLogger struct {
	inner common.Logger
	runID string
}

func (l *runLogger) Log(level, message string, metadata map[string]interface{}) {
	tagged := make(map[string]interface{}, len(metadata)+1)
	for k, v := range metadata {
		tagged[k] = v
	}
	tagged["run"] = l.runID
	l.inner.Log(level, message, tagged)
}
