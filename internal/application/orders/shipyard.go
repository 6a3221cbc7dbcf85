package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// BuildShip failure codes
const (
	shipNoSector   = -1
	shipNotOwner   = -2
	shipNoShipyard = -3
	shipEnemy      = -4
	shipUnknown    = -5
	shipMoney      = -6
	shipInpt       = -7
	shipPeople     = -8
	shipWood       = -9
	shipFabric     = -10
)

// BuildShipHandler launches a new ship at a shipyard. Its marines are drawn
// from the regional population.
type BuildShipHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewBuildShipHandler creates a new build ship handler
func NewBuildShipHandler(deps *economy.Dependencies, batch *Batch) *BuildShipHandler {
	return &BuildShipHandler{deps: deps, batch: batch}
}

// Handle executes the build ship command
func (h *BuildShipHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.BuildShipCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	turn := h.batch.Turn

	s, err := h.deps.Sectors.FindByID(ctx, turn.Game.ID, cmd.SectorID)
	if shared.IsNotFound(err) {
		return order.Failure(shipNoSector, "Sector not found."), nil
	}
	if err != nil {
		return nil, err
	}
	if s.Owner != o.Nation {
		return order.Failure(shipNotOwner, fmt.Sprintf("We do not own the sector at %s.", s.Position)), nil
	}
	if !s.HasShipyard() {
		return order.Failure(shipNoShipyard, fmt.Sprintf("There is no shipyard at %s.", s.Position)), nil
	}
	enemy, err := enemyPresent(ctx, h.deps, turn, o.Nation, s.Position)
	if err != nil {
		return nil, err
	}
	if enemy {
		return order.Failure(shipEnemy, fmt.Sprintf("Enemy troops occupy %s.", s.Position)), nil
	}
	st, ok := turn.Rules.Ship(cmd.ShipType)
	if !ok {
		return order.Failure(shipUnknown, fmt.Sprintf("Unknown ship type %d.", cmd.ShipType)), nil
	}

	cost := st.Cost
	cost.People += st.Marines
	reqs := costRequirements(turn, cost, 1, s.Position.Region, map[goods.Good]int{
		goods.GoodMoney:  shipMoney,
		goods.GoodInpt:   shipInpt,
		goods.GoodPeople: shipPeople,
		goods.GoodWood:   shipWood,
		goods.GoodFabric: shipFabric,
	})
	if failure := check(turn.Ledger, o.Nation, reqs); failure != nil {
		return failure, nil
	}
	used := spend(turn.Ledger, o.Nation, reqs)

	name := cmd.Name
	if name == "" {
		name = fmt.Sprintf("%s %d", st.Name, o.ID)
	}
	ship := &military.Ship{
		GameID:    turn.Game.ID,
		Nation:    o.Nation,
		Name:      name,
		TypeID:    st.ID,
		Position:  s.Position,
		Marines:   st.Marines,
		Condition: 100,
		Capacity:  st.Capacity,
		Cargo:     make(military.Cargo),
	}
	if err := h.deps.Ships.Add(ctx, ship); err != nil {
		return nil, fmt.Errorf("add ship: %w", err)
	}
	return order.Success(1, fmt.Sprintf("The %s %s was launched at %s.", st.Name, name, s.Position), used), nil
}

// BuildBaggageTrain failure codes
const (
	trainNoSector  = -1
	trainNotOwner  = -2
	trainNoBarrack = -3
	trainEnemy     = -4
	trainMoney     = -5
	trainInpt      = -6
	trainHorses    = -7
	trainWood      = -8
)

// BuildBaggageTrainHandler builds a baggage train at a barrack
type BuildBaggageTrainHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewBuildBaggageTrainHandler creates a new build baggage train handler
func NewBuildBaggageTrainHandler(deps *economy.Dependencies, batch *Batch) *BuildBaggageTrainHandler {
	return &BuildBaggageTrainHandler{deps: deps, batch: batch}
}

// Handle executes the build baggage train command
func (h *BuildBaggageTrainHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.BuildBaggageTrainCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	turn := h.batch.Turn

	s, err := h.deps.Sectors.FindByID(ctx, turn.Game.ID, cmd.SectorID)
	if shared.IsNotFound(err) {
		return order.Failure(trainNoSector, "Sector not found."), nil
	}
	if err != nil {
		return nil, err
	}
	if s.Owner != o.Nation {
		return order.Failure(trainNotOwner, fmt.Sprintf("We do not own the sector at %s.", s.Position)), nil
	}
	if !s.HasBarrack() {
		return order.Failure(trainNoBarrack, fmt.Sprintf("There is no barrack at %s.", s.Position)), nil
	}
	enemy, err := enemyPresent(ctx, h.deps, turn, o.Nation, s.Position)
	if err != nil {
		return nil, err
	}
	if enemy {
		return order.Failure(trainEnemy, fmt.Sprintf("Enemy troops occupy %s.", s.Position)), nil
	}

	spec := turn.Rules.BaggageTrain
	reqs := costRequirements(turn, spec.Cost, 1, s.Position.Region, map[goods.Good]int{
		goods.GoodMoney: trainMoney,
		goods.GoodInpt:  trainInpt,
		goods.GoodHorse: trainHorses,
		goods.GoodWood:  trainWood,
	})
	if failure := check(turn.Ledger, o.Nation, reqs); failure != nil {
		return failure, nil
	}
	used := spend(turn.Ledger, o.Nation, reqs)

	name := cmd.Name
	if name == "" {
		name = fmt.Sprintf("Baggage train %d", o.ID)
	}
	train := &military.BaggageTrain{
		GameID:    turn.Game.ID,
		Nation:    o.Nation,
		Name:      name,
		Position:  s.Position,
		Condition: 100,
		Capacity:  spec.Capacity,
		Cargo:     make(military.Cargo),
	}
	if err := h.deps.Trains.Add(ctx, train); err != nil {
		return nil, fmt.Errorf("add baggage train: %w", err)
	}
	return order.Success(1, fmt.Sprintf("%s was assembled at %s.", name, s.Position), used), nil
}
