package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Unit raising failure codes shared by BuildBrigade and AdditionalBattalions
const (
	raiseNoSector  = -1
	raiseNotOwner  = -2
	raiseNoBarrack = -3
	raiseEnemy     = -4
	raiseCap       = -5
	raiseUnknown   = -6
	raiseElite     = -7
	raiseRegion    = -8
	raiseMoney     = -9
	raiseInpt      = -10
	raisePeople    = -11
	raiseHorses    = -12
)

var raiseCodes = map[goods.Good]int{
	goods.GoodMoney:  raiseMoney,
	goods.GoodInpt:   raiseInpt,
	goods.GoodPeople: raisePeople,
	goods.GoodHorse:  raiseHorses,
}

// AdditionalBattalions reports a missing or foreign brigade with this code
const raiseNoBrigade = -1

// recruitmentSector loads the sector a unit is raised in and checks it is
// owned, has a barrack and is free of enemies. A nil outcome means it passed.
// missingCode is returned when there is no sector at all.
func recruitmentSector(ctx context.Context, deps *economy.Dependencies, turn *economy.Turn, n shared.NationID, missingCode int, find func() (*sector.Sector, error)) (*sector.Sector, *order.Outcome, error) {
	s, err := find()
	if shared.IsNotFound(err) {
		return nil, order.Failure(missingCode, "Sector not found."), nil
	}
	if err != nil {
		return nil, nil, err
	}
	if s.Owner != n {
		return nil, order.Failure(raiseNotOwner, fmt.Sprintf("We do not own the sector at %s.", s.Position)), nil
	}
	if !s.HasBarrack() {
		return nil, order.Failure(raiseNoBarrack, fmt.Sprintf("There is no barrack at %s.", s.Position)), nil
	}
	enemy, err := enemyPresent(ctx, deps, turn, n, s.Position)
	if err != nil {
		return nil, nil, err
	}
	if enemy {
		return nil, order.Failure(raiseEnemy, fmt.Sprintf("Enemy troops occupy %s.", s.Position)), nil
	}
	return s, nil, nil
}

// battalionType validates a battalion type for a nation and region and
// returns its cost for one full strength battalion
func battalionType(turn *economy.Turn, n shared.NationID, region shared.RegionID, typeID int) (rules.BattalionType, *order.Outcome) {
	bt, ok := turn.Rules.Battalion(typeID)
	if !ok || !bt.AvailableTo(n) {
		return bt, order.Failure(raiseUnknown, fmt.Sprintf("Battalion type %d is not available to us.", typeID))
	}
	if bt.Elite {
		return bt, order.Failure(raiseElite, fmt.Sprintf("%s cannot be recruited, they must earn their rank.", bt.Name))
	}
	if !bt.AllowedIn(region) {
		return bt, order.Failure(raiseRegion, fmt.Sprintf("%s cannot be recruited in %s.", bt.Name, region))
	}
	bt.Cost.People += nation.MaxHeadcount(n)
	return bt, nil
}

// BuildBrigadeHandler raises a new brigade at a barrack
type BuildBrigadeHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewBuildBrigadeHandler creates a new build brigade handler
func NewBuildBrigadeHandler(deps *economy.Dependencies, batch *Batch) *BuildBrigadeHandler {
	return &BuildBrigadeHandler{deps: deps, batch: batch}
}

// Handle executes the build brigade command
func (h *BuildBrigadeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.BuildBrigadeCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	turn := h.batch.Turn

	s, failure, err := recruitmentSector(ctx, h.deps, turn, o.Nation, raiseNoSector, func() (*sector.Sector, error) {
		return h.deps.Sectors.FindByID(ctx, turn.Game.ID, cmd.SectorID)
	})
	if err != nil || failure != nil {
		return failure, err
	}
	if len(cmd.BattalionTypes) > turn.Rules.Rates.BattalionCap {
		return order.Failure(raiseCap, fmt.Sprintf("A brigade holds at most %d battalions.", turn.Rules.Rates.BattalionCap)), nil
	}

	var total rules.Cost
	for _, typeID := range cmd.BattalionTypes {
		bt, failure := battalionType(turn, o.Nation, s.Position.Region, typeID)
		if failure != nil {
			return failure, nil
		}
		total = addCost(total, bt.Cost)
	}
	reqs := costRequirements(turn, total, 1, s.Position.Region, raiseCodes)
	if failure := check(turn.Ledger, o.Nation, reqs); failure != nil {
		return failure, nil
	}
	used := spend(turn.Ledger, o.Nation, reqs)

	name := cmd.Name
	if name == "" {
		name = fmt.Sprintf("Brigade %d", o.ID)
	}
	b := &military.Brigade{GameID: turn.Game.ID, Nation: o.Nation, Name: name, Position: s.Position}
	for _, typeID := range cmd.BattalionTypes {
		b.AddBattalion(&military.Battalion{TypeID: typeID, Headcount: nation.MaxHeadcount(o.Nation), Experience: 1})
	}
	if err := h.deps.Brigades.Add(ctx, b); err != nil {
		return nil, fmt.Errorf("add brigade: %w", err)
	}
	return order.Success(len(b.Battalions), fmt.Sprintf("Raised %s with %d battalions at %s.", name, len(b.Battalions), s.Position), used), nil
}

// AdditionalBattalionsHandler adds one new battalion to a brigade standing at
// a barrack
type AdditionalBattalionsHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewAdditionalBattalionsHandler creates a new additional battalions handler
func NewAdditionalBattalionsHandler(deps *economy.Dependencies, batch *Batch) *AdditionalBattalionsHandler {
	return &AdditionalBattalionsHandler{deps: deps, batch: batch}
}

// Handle executes the additional battalions command
func (h *AdditionalBattalionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.AdditionalBattalionsCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	turn := h.batch.Turn

	b, err := h.deps.Brigades.FindByID(ctx, turn.Game.ID, cmd.BrigadeID)
	if shared.IsNotFound(err) || (err == nil && b.Nation != o.Nation) {
		return order.Failure(raiseNoBrigade, "We have no such brigade."), nil
	}
	if err != nil {
		return nil, err
	}
	s, failure, err := recruitmentSector(ctx, h.deps, turn, o.Nation, raiseNotOwner, func() (*sector.Sector, error) {
		return h.deps.Sectors.FindByPosition(ctx, turn.Game.ID, b.Position)
	})
	if err != nil || failure != nil {
		return failure, err
	}
	if len(b.Battalions) >= turn.Rules.Rates.BattalionCap {
		return order.Failure(raiseCap, fmt.Sprintf("%s already has %d battalions.", b.Name, len(b.Battalions))), nil
	}
	bt, failure := battalionType(turn, o.Nation, s.Position.Region, cmd.BattalionType)
	if failure != nil {
		return failure, nil
	}

	reqs := costRequirements(turn, bt.Cost, 1, s.Position.Region, raiseCodes)
	if failure := check(turn.Ledger, o.Nation, reqs); failure != nil {
		return failure, nil
	}
	used := spend(turn.Ledger, o.Nation, reqs)

	b.AddBattalion(&military.Battalion{TypeID: bt.ID, Headcount: nation.MaxHeadcount(o.Nation), Experience: 1})
	if err := h.deps.Brigades.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update brigade %d: %w", b.ID, err)
	}
	return order.Success(1, fmt.Sprintf("A battalion of %s joined %s.", bt.Name, b.Name), used), nil
}

// IncreaseHeadcount failure codes after the shared brigade and sector checks
const (
	refillFull   = -5
	refillMoney  = -6
	refillInpt   = -7
	refillPeople = -8
	refillHorses = -9
	refillType   = -10
)

// IncreaseHeadcountHandler brings every battalion of a brigade standing at a
// barrack back to full strength, paying the pro rata recruitment cost
type IncreaseHeadcountHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewIncreaseHeadcountHandler creates a new increase headcount handler
func NewIncreaseHeadcountHandler(deps *economy.Dependencies, batch *Batch) *IncreaseHeadcountHandler {
	return &IncreaseHeadcountHandler{deps: deps, batch: batch}
}

// Handle executes the increase headcount command
func (h *IncreaseHeadcountHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.IncreaseHeadcountCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	turn := h.batch.Turn

	b, err := h.deps.Brigades.FindByID(ctx, turn.Game.ID, cmd.BrigadeID)
	if shared.IsNotFound(err) || (err == nil && b.Nation != o.Nation) {
		return order.Failure(raiseNoBrigade, "We have no such brigade."), nil
	}
	if err != nil {
		return nil, err
	}
	s, failure, err := recruitmentSector(ctx, h.deps, turn, o.Nation, raiseNotOwner, func() (*sector.Sector, error) {
		return h.deps.Sectors.FindByPosition(ctx, turn.Game.ID, b.Position)
	})
	if err != nil || failure != nil {
		return failure, err
	}

	full := nation.MaxHeadcount(o.Nation)
	var total rules.Cost
	missing := 0
	for _, bat := range b.Battalions {
		gap := full - bat.Headcount
		if gap <= 0 {
			continue
		}
		bt, ok := turn.Rules.Battalion(bat.TypeID)
		if !ok {
			return order.Failure(refillType, fmt.Sprintf("Battalion %d of %s has an unknown type %d and cannot be refilled.", bat.Order, b.Name, bat.TypeID)), nil
		}
		missing += gap
		total = addCost(total, rules.Cost{
			Money:  ceilShare(bt.Cost.Money, gap, full),
			Inpt:   ceilShare(bt.Cost.Inpt, gap, full),
			Horses: ceilShare(bt.Cost.Horses, gap, full),
			People: gap,
		})
	}
	if missing == 0 {
		return order.Failure(refillFull, fmt.Sprintf("%s is already at full strength.", b.Name)), nil
	}

	reqs := costRequirements(turn, total, 1, s.Position.Region, map[goods.Good]int{
		goods.GoodMoney:  refillMoney,
		goods.GoodInpt:   refillInpt,
		goods.GoodPeople: refillPeople,
		goods.GoodHorse:  refillHorses,
	})
	if failure := check(turn.Ledger, o.Nation, reqs); failure != nil {
		return failure, nil
	}
	used := spend(turn.Ledger, o.Nation, reqs)

	for _, bat := range b.Battalions {
		if bat.Headcount < full {
			bat.Headcount = full
		}
	}
	if err := h.deps.Brigades.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update brigade %d: %w", b.ID, err)
	}
	return order.Success(missing, fmt.Sprintf("%d recruits brought %s to full strength.", missing, b.Name), used), nil
}

// ExchangeBattalions failure codes
const (
	exchangeFirstBrigade    = -1
	exchangeSecondBrigade   = -2
	exchangeApart           = -3
	exchangeFirstBattalion  = -4
	exchangeSecondBattalion = -5
	exchangeAlreadySwapped  = -6
)

// ExchangeBattalionsHandler swaps two battalions between brigades at the same
// position. A battalion takes part in at most one exchange per turn.
type ExchangeBattalionsHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewExchangeBattalionsHandler creates a new exchange battalions handler
func NewExchangeBattalionsHandler(deps *economy.Dependencies, batch *Batch) *ExchangeBattalionsHandler {
	return &ExchangeBattalionsHandler{deps: deps, batch: batch}
}

// Handle executes the exchange battalions command
func (h *ExchangeBattalionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.ExchangeBattalionsCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	game := h.batch.Turn.Game.ID

	first, err := h.deps.Brigades.FindByID(ctx, game, cmd.FirstBrigade)
	if shared.IsNotFound(err) || (err == nil && first.Nation != o.Nation) {
		return order.Failure(exchangeFirstBrigade, "We have no such first brigade."), nil
	}
	if err != nil {
		return nil, err
	}
	second, err := h.deps.Brigades.FindByID(ctx, game, cmd.SecondBrigade)
	if shared.IsNotFound(err) || (err == nil && (second.Nation != o.Nation || second.ID == first.ID)) {
		return order.Failure(exchangeSecondBrigade, "We have no such second brigade."), nil
	}
	if err != nil {
		return nil, err
	}
	if !first.Position.Equals(second.Position) {
		return order.Failure(exchangeApart, fmt.Sprintf("%s and %s are not at the same position.", first.Name, second.Name)), nil
	}
	a := first.Battalion(cmd.FirstBattalion)
	if a == nil {
		return order.Failure(exchangeFirstBattalion, fmt.Sprintf("%s has no such battalion.", first.Name)), nil
	}
	b := second.Battalion(cmd.SecondBattalion)
	if b == nil {
		return order.Failure(exchangeSecondBattalion, fmt.Sprintf("%s has no such battalion.", second.Name)), nil
	}
	if h.batch.State.Swapped(a.ID) || h.batch.State.Swapped(b.ID) {
		return order.Failure(exchangeAlreadySwapped, "One of the battalions was already exchanged this turn."), nil
	}

	first.RemoveBattalion(a.ID)
	second.RemoveBattalion(b.ID)
	a.Order, b.Order = b.Order, a.Order
	first.Battalions = append(first.Battalions, b)
	second.Battalions = append(second.Battalions, a)
	h.batch.State.MarkSwapped(a.ID, b.ID)

	if err := h.deps.Brigades.Update(ctx, first); err != nil {
		return nil, fmt.Errorf("update brigade %d: %w", first.ID, err)
	}
	if err := h.deps.Brigades.Update(ctx, second); err != nil {
		return nil, fmt.Errorf("update brigade %d: %w", second.ID, err)
	}
	return order.Success(1, fmt.Sprintf("Exchanged battalions between %s and %s.", first.Name, second.Name), nil), nil
}
