// Package economy runs the per-turn economic phases of a game: taxation and
// population growth, production, and the upkeep of armies, fleets,
// commanders, baggage trains, civilians and prisoners.
//
// Every phase receives the turn's ledger explicitly and mutates it in place.
// Phases of one game run strictly one after another.
package economy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// ErrPhaseFailed marks an unrecoverable phase error. The whole turn is
// considered failed.
var ErrPhaseFailed = errors.New("economy phase failed")

// PhaseError wraps the error of a named phase
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPhaseFailed, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() []error {
	return []error{ErrPhaseFailed, e.Err}
}

// Dependencies are the stores the phases read and write
type Dependencies struct {
	Games       nation.GameRepository
	Nations     nation.Repository
	Relations   nation.RelationRepository
	Sectors     sector.Repository
	Brigades    military.BrigadeRepository
	Commanders  military.CommanderRepository
	Ships       military.ShipRepository
	Trains      military.BaggageTrainRepository
	Prisoners   military.PrisonerRepository
	TradeCities trade.CityRepository
	Reports     report.Store
	News        report.NewsStore
	Profiles    profile.Recorder
	Clock       shared.Clock
}

// Turn is the state shared by every phase of one turn
type Turn struct {
	Game        *nation.Game
	Nations     map[shared.NationID]*nation.Nation
	Ledger      *goods.Ledger
	Rules       *rules.Rules
	Events      events.Checker
	Random      shared.Random
	TradeCities []*trade.City

	// conquest counters of sectors as they stood before this turn aged them
	conquests map[int]int
}

// NoteConquest remembers the conquest counter a sector carried into the turn
func (t *Turn) NoteConquest(sectorID, counter int) {
	if t.conquests == nil {
		t.conquests = make(map[int]int)
	}
	t.conquests[sectorID] = counter
}

// ConquestCounter returns the counter noted for a sector this turn, or
// current when the sector was not aged yet
func (t *Turn) ConquestCounter(sectorID, current int) int {
	if c, ok := t.conquests[sectorID]; ok {
		return c
	}
	return current
}

// Number is the turn being processed
func (t *Turn) Number() int {
	return t.Game.Turn
}

// AliveNations returns the alive nations in ascending id order
func (t *Turn) AliveNations() []*nation.Nation {
	alive := make([]*nation.Nation, 0, len(t.Nations))
	for _, n := range t.Nations {
		if n.Alive {
			alive = append(alive, n)
		}
	}
	sort.Slice(alive, func(i, j int) bool { return alive[i].ID < alive[j].ID })
	return alive
}

// Phase is one step of the economy
type Phase interface {
	Name() string
	Run(ctx context.Context, turn *Turn) error
}

// money helpers: all upkeep is paid from the Europe warehouse

func europeMoney(turn *Turn, n shared.NationID) int {
	return turn.Ledger.Get(n, shared.RegionEurope, goods.GoodMoney)
}

// pay deducts cost from the Europe money of a nation if it is fully available
func pay(turn *Turn, n shared.NationID, cost int) bool {
	if cost <= 0 {
		return true
	}
	if !turn.Ledger.Has(n, shared.RegionEurope, goods.GoodMoney, cost) {
		return false
	}
	turn.Ledger.Dec(n, shared.RegionEurope, goods.GoodMoney, cost)
	return true
}
