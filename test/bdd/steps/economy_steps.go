package steps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/ShakaofCarthage/empire-engine/internal/application/setup"
	"github.com/ShakaofCarthage/empire-engine/internal/application/turn"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/tuning"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

// economyContext holds state for order batch scenarios run against the
// shared sqlite database
type economyContext struct {
	repos  *helpers.TestRepositories
	game   *nation.Game
	ledger *goods.Ledger

	// totals of each good before the batch, warehouses and carriers summed
	before map[goods.Good]int

	orderIDs []int
	result   *turn.Result
	err      error
}

func (ec *economyContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	ec.repos = helpers.NewTestRepositories(shared.NewFixedClock(time.Date(1805, 5, 1, 0, 0, 0, 0, time.UTC)))
	ec.game = nil
	ec.ledger = nil
	ec.before = nil
	ec.orderIDs = nil
	ec.result = nil
	ec.err = nil
	return nil
}

func parseNation(name string) (shared.NationID, error) {
	for _, n := range shared.AllNations() {
		if n.String() == name {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown nation %q", name)
}

func parseRegion(name string) (shared.RegionID, error) {
	for _, r := range shared.AllRegions() {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown region %q", name)
}

func endpointKind(name string) (int, error) {
	switch name {
	case "warehouse":
		return order.EntityWarehouse, nil
	case "trade city":
		return order.EntityTradeCity, nil
	case "ship":
		return order.EntityShip, nil
	case "baggage train":
		return order.EntityBaggageTrain, nil
	}
	return 0, fmt.Errorf("unknown endpoint %q", name)
}

// ============================================================================
// Setup Steps
// ============================================================================

func (ec *economyContext) gameAtTurn(id, turnNumber int) error {
	ec.game = &nation.Game{ID: shared.GameID(id), Turn: turnNumber, StartYear: 1805, Duration: 100}
	ec.ledger = goods.NewLedger(ec.game.ID)
	return ec.repos.Repos.Games.Add(context.Background(), ec.game)
}

func (ec *economyContext) nationIsInTheGame(name string) error {
	n, err := parseNation(name)
	if err != nil {
		return err
	}
	return ec.repos.Repos.Nations.Update(context.Background(), &nation.Nation{
		ID:      n,
		GameID:  ec.game.ID,
		Code:    name[:1],
		Name:    name,
		TaxRate: 2,
		Alive:   true,
	})
}

// holds seeds the ledger before the batch runs and checks it afterwards,
// so the same sentence reads as a Given and as a Then
func (ec *economyContext) holds(name string, qty int, goodName, regionName string) error {
	if ec.result != nil {
		return ec.nationShouldHold(name, qty, goodName, regionName)
	}
	return ec.nationHolds(name, qty, goodName, regionName)
}

func (ec *economyContext) carries(id, qty int, goodName string) error {
	if ec.result != nil {
		return ec.trainShouldCarry(id, qty, goodName)
	}
	return ec.trainCarries(id, qty, goodName)
}

func (ec *economyContext) nationHolds(name string, qty int, goodName, regionName string) error {
	n, err := parseNation(name)
	if err != nil {
		return err
	}
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	r, err := parseRegion(regionName)
	if err != nil {
		return err
	}
	ec.ledger.Set(n, r, g, qty)
	return nil
}

func (ec *economyContext) setRelation(from string, rel nation.Relation, to string) error {
	a, err := parseNation(from)
	if err != nil {
		return err
	}
	b, err := parseNation(to)
	if err != nil {
		return err
	}
	return ec.repos.Repos.Relations.SetRelation(context.Background(), ec.game.ID, a, b, rel)
}

func (ec *economyContext) grantsPassage(from, to string) error {
	return ec.setRelation(from, nation.RelationPassage, to)
}

func (ec *economyContext) tradesWith(from, to string) error {
	return ec.setRelation(from, nation.RelationTrade, to)
}

func (ec *economyContext) hasBaggageTrain(name string, id, x, y, capacity int) error {
	n, err := parseNation(name)
	if err != nil {
		return err
	}
	return ec.repos.Repos.Trains.Add(context.Background(), &military.BaggageTrain{
		ID:        id,
		GameID:    ec.game.ID,
		Nation:    n,
		Name:      "train " + strconv.Itoa(id),
		Position:  shared.NewPosition(shared.RegionEurope, x, y),
		Condition: 100,
		Capacity:  capacity,
		Cargo:     make(military.Cargo),
	})
}

func (ec *economyContext) trainCarries(id, qty int, goodName string) error {
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	ctx := context.Background()
	t, err := ec.repos.Repos.Trains.FindByID(ctx, ec.game.ID, id)
	if err != nil {
		return err
	}
	t.Cargo[g] = qty
	return ec.repos.Repos.Trains.Update(ctx, t)
}

func (ec *economyContext) tradeCity(id int, owner string, x, y int, goodName string, level int) error {
	n := shared.NationNeutral
	if owner != "nobody" {
		var err error
		if n, err = parseNation(owner); err != nil {
			return err
		}
	}
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	return ec.repos.Repos.TradeCities.Save(context.Background(), &trade.City{
		ID:       id,
		GameID:   ec.game.ID,
		Name:     "city " + strconv.Itoa(id),
		Position: shared.NewPosition(shared.RegionEurope, x, y),
		Owner:    n,
		Levels:   map[goods.Good]int{g: level},
	})
}

// ============================================================================
// Order Steps
// ============================================================================

func (ec *economyContext) addTransfer(name string, qty int, goodName string, sourceKind, sourceID, targetKind, targetID, targetNation int) error {
	n, err := parseNation(name)
	if err != nil {
		return err
	}
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	o := &order.Order{
		GameID:   ec.game.ID,
		Nation:   n,
		Turn:     ec.game.Turn,
		Type:     order.TypeTransferFirst,
		Position: len(ec.orderIDs) + 1,
	}
	for i, v := range []int{sourceKind, sourceID, targetKind, targetID, int(g), qty, targetNation} {
		if v != 0 {
			o.Params[i] = strconv.Itoa(v)
		}
	}
	if err := ec.repos.Repos.Orders.Add(context.Background(), o); err != nil {
		return err
	}
	ec.orderIDs = append(ec.orderIDs, o.ID)
	return nil
}

func (ec *economyContext) ordersMoving(name string, qty int, goodName, sourceName string, sourceID int, targetName string, targetID int) error {
	sourceKind, err := endpointKind(sourceName)
	if err != nil {
		return err
	}
	targetKind, err := endpointKind(targetName)
	if err != nil {
		return err
	}
	return ec.addTransfer(name, qty, goodName, sourceKind, sourceID, targetKind, targetID, 0)
}

func (ec *economyContext) ordersMovingToForeignWarehouse(name string, qty int, goodName string, sourceID int, receiver string, region int) error {
	n, err := parseNation(receiver)
	if err != nil {
		return err
	}
	return ec.addTransfer(name, qty, goodName, order.EntityWarehouse, sourceID, order.EntityWarehouse, region, int(n))
}

func (ec *economyContext) theOrderBatchRuns() error {
	ctx := context.Background()
	if err := ec.repos.Repos.Ledgers.SaveLedger(ctx, ec.ledger); err != nil {
		return err
	}
	before, err := ec.goodsTotals(ctx)
	if err != nil {
		return err
	}
	ec.before = before

	deps := ec.repos.Dependencies
	runner := turn.NewRunner(deps, ec.repos.Repos.Ledgers, ec.repos.Repos.Orders, tuning.MustDefault(),
		setup.NewHandlerRegistry(deps), turn.Options{Seed: 1})
	ec.result, ec.err = runner.RunOrders(ctx, ec.game.ID)
	return ec.err
}

// goodsTotals sums every good over all warehouses, ships and trains
func (ec *economyContext) goodsTotals(ctx context.Context) (map[goods.Good]int, error) {
	ledger, err := ec.repos.Repos.Ledgers.LoadLedger(ctx, ec.game.ID)
	if err != nil {
		return nil, err
	}
	totals := make(map[goods.Good]int)
	for _, n := range shared.AllNations() {
		for _, g := range goods.AllGoods() {
			totals[g] += ledger.Total(n, g)
		}
	}
	trains, err := ec.repos.Repos.Trains.FindByGame(ctx, ec.game.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range trains {
		for g, qty := range t.Cargo {
			totals[g] += qty
		}
	}
	ships, err := ec.repos.Repos.Ships.FindByGame(ctx, ec.game.ID)
	if err != nil {
		return nil, err
	}
	for _, s := range ships {
		for g, qty := range s.Cargo {
			totals[g] += qty
		}
	}
	return totals, nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (ec *economyContext) orderHasResult(index, want int) error {
	if index < 1 || index > len(ec.orderIDs) {
		return fmt.Errorf("scenario has no order %d", index)
	}
	orders, err := ec.repos.Repos.Orders.FindByTurn(context.Background(), ec.game.ID, ec.game.Turn)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.ID != ec.orderIDs[index-1] {
			continue
		}
		if !o.Processed {
			return fmt.Errorf("order %d was not processed", index)
		}
		if o.Result != want {
			return fmt.Errorf("order %d: expected result %d, got %d (%s)", index, want, o.Result, o.Explanation)
		}
		return nil
	}
	return fmt.Errorf("order %d not found", index)
}

func (ec *economyContext) nationShouldHold(name string, want int, goodName, regionName string) error {
	n, err := parseNation(name)
	if err != nil {
		return err
	}
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	r, err := parseRegion(regionName)
	if err != nil {
		return err
	}
	ledger, err := ec.repos.Repos.Ledgers.LoadLedger(context.Background(), ec.game.ID)
	if err != nil {
		return err
	}
	if got := ledger.Get(n, r, g); got != want {
		return fmt.Errorf("%s should hold %d %s in %s, holds %d", name, want, goodName, regionName, got)
	}
	return nil
}

func (ec *economyContext) trainShouldCarry(id, want int, goodName string) error {
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	t, err := ec.repos.Repos.Trains.FindByID(context.Background(), ec.game.ID, id)
	if err != nil {
		return err
	}
	if got := t.Cargo[g]; got != want {
		return fmt.Errorf("baggage train %d should carry %d %s, carries %d", id, want, goodName, got)
	}
	return nil
}

func (ec *economyContext) goodIsConserved(goodName string) error {
	g, err := goods.ParseGood(goodName)
	if err != nil {
		return err
	}
	after, err := ec.goodsTotals(context.Background())
	if err != nil {
		return err
	}
	if ec.before[g] != after[g] {
		return fmt.Errorf("%s total changed from %d to %d", goodName, ec.before[g], after[g])
	}
	return nil
}

// InitializeEconomyScenario registers the order batch steps
func InitializeEconomyScenario(sc *godog.ScenarioContext) {
	ec := &economyContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, ec.reset()
	})

	// Setup
	sc.Step(`^game (\d+) at turn (\d+)$`, ec.gameAtTurn)
	sc.Step(`^"([^"]*)" is in the game$`, ec.nationIsInTheGame)
	sc.Step(`^"([^"]*)" holds (-?\d+) "([^"]*)" in "([^"]*)"$`, ec.holds)
	sc.Step(`^"([^"]*)" grants passage to "([^"]*)"$`, ec.grantsPassage)
	sc.Step(`^"([^"]*)" trades with "([^"]*)"$`, ec.tradesWith)
	sc.Step(`^"([^"]*)" has baggage train (\d+) in Europe at (\d+),(\d+) with capacity (\d+)$`, ec.hasBaggageTrain)
	sc.Step(`^baggage train (\d+) carries (\d+) "([^"]*)"$`, ec.carries)
	sc.Step(`^trade city (\d+) owned by "?([^"]*?)"? in Europe at (\d+),(\d+) trades "([^"]*)" at level (\d+)$`, ec.tradeCity)

	// Orders
	sc.Step(`^"([^"]*)" orders moving (\d+) "([^"]*)" from (warehouse|trade city|ship|baggage train) (\d+) to (warehouse|trade city|ship|baggage train) (\d+)$`, ec.ordersMoving)
	sc.Step(`^"([^"]*)" orders moving (\d+) "([^"]*)" from warehouse (\d+) to the warehouse of "([^"]*)" in region (\d+)$`, ec.ordersMovingToForeignWarehouse)
	sc.Step(`^the order batch runs$`, ec.theOrderBatchRuns)

	// Assertions
	sc.Step(`^order (\d+) has result (-?\d+)$`, ec.orderHasResult)
	sc.Step(`^"([^"]*)" is conserved across warehouses and carriers$`, ec.goodIsConserved)
}
