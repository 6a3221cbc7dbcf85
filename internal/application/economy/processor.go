package economy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// LoadTurn assembles the shared state of a game turn: custom game flags,
// nations, the ledger, the active random events and the trade cities.
func LoadTurn(ctx context.Context, deps *Dependencies, ledgers goods.LedgerStore, r *rules.Rules, game shared.GameID, rng shared.Random) (*Turn, error) {
	g, err := deps.Games.FindByID(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", game, err)
	}
	nations, err := deps.Nations.FindAll(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("load nations: %w", err)
	}
	ledger, err := ledgers.LoadLedger(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	registry, err := events.Load(ctx, deps.Reports, game, g.Turn)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	cities, err := deps.TradeCities.FindByGame(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("load trade cities: %w", err)
	}

	byNation := make(map[shared.NationID]*nation.Nation, len(nations))
	for _, n := range nations {
		byNation[n.ID] = n
	}
	return &Turn{
		Game:        g,
		Nations:     byNation,
		Ledger:      ledger,
		Rules:       r,
		Events:      registry,
		Random:      rng,
		TradeCities: cities,
	}, nil
}

// Processor runs the economy phases of a turn in their fixed order and
// commits the ledger after each phase.
type Processor struct {
	deps     *Dependencies
	ledgers  goods.LedgerStore
	phases   []Phase
	failFast bool
}

// NewProcessor creates a Processor with the standard phase order
func NewProcessor(deps *Dependencies, ledgers goods.LedgerStore) *Processor {
	return &Processor{
		deps:    deps,
		ledgers: ledgers,
		phases: []Phase{
			NewSectorAdvancer(deps),
			NewCommanderMaintenance(deps),
			NewArmyMaintenance(deps),
			NewNavyMaintenance(deps),
			NewTrainMaintenance(deps),
			NewProductionPipeline(deps, nil),
			NewSectorMaintenance(deps),
			NewPrisonerMaintenance(deps),
		},
	}
}

// SetFailFast makes a negative ledger cell after a phase fatal for the turn
func (p *Processor) SetFailFast(failFast bool) {
	p.failFast = failFast
}

// Phases returns the phase names in execution order
func (p *Processor) Phases() []string {
	names := make([]string, len(p.phases))
	for i, phase := range p.phases {
		names[i] = phase.Name()
	}
	return names
}

// Process runs every phase against the turn. A phase error stops the turn;
// ledger changes of earlier phases are already committed.
func (p *Processor) Process(ctx context.Context, turn *Turn) error {
	logger := common.LoggerFromContext(ctx)
	turn.Ledger.ResetProduction()

	for _, phase := range p.phases {
		start := time.Now()
		err := phase.Run(ctx, turn)
		if err == nil {
			err = p.commit(ctx, turn)
		}
		metrics.RecordPhase(phase.Name(), time.Since(start).Seconds(), err == nil)
		if err != nil {
			logger.Log(common.LevelError, "economy phase failed", map[string]interface{}{
				"phase": phase.Name(),
				"game":  turn.Game.ID,
				"turn":  turn.Number(),
				"error": err.Error(),
			})
			return &PhaseError{Phase: phase.Name(), Err: err}
		}
		if cells := turn.Ledger.NegativeCells(); len(cells) > 0 {
			logger.Log(common.LevelError, "negative ledger cells after phase", map[string]interface{}{
				"phase": phase.Name(),
				"cells": len(cells),
			})
			if p.failFast {
				return &PhaseError{Phase: phase.Name(), Err: &goods.ErrNegativeStock{Cells: cells}}
			}
		}
	}
	return nil
}

// commit flushes the ledger and the nations' victory points
func (p *Processor) commit(ctx context.Context, turn *Turn) error {
	if err := p.ledgers.SaveLedger(ctx, turn.Ledger); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	rep := newReporter(p.deps, turn)
	for _, n := range turn.AliveNations() {
		if err := p.deps.Nations.Update(ctx, n); err != nil {
			return fmt.Errorf("update nation %d: %w", n.ID, err)
		}
		if err := rep.put(ctx, n.ID, report.KeyVictoryPoints, n.VP); err != nil {
			return err
		}
	}
	return nil
}

// IsPhaseFailure reports whether err came from a failed phase
func IsPhaseFailure(err error) bool {
	return errors.Is(err, ErrPhaseFailed)
}
