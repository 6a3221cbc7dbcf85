package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// ArmyMaintenance pays and feeds every brigade
type ArmyMaintenance struct {
	deps *Dependencies
}

// NewArmyMaintenance creates the army upkeep phase
func NewArmyMaintenance(deps *Dependencies) *ArmyMaintenance {
	return &ArmyMaintenance{deps: deps}
}

func (a *ArmyMaintenance) Name() string { return "army_maintenance" }

// AttritionBand is the percentage range of soldiers lost by an unpaid or
// unfed battalion of the nation in the region.
func AttritionBand(id shared.NationID, region shared.RegionID, unpaid bool) (low, high int) {
	switch {
	case nation.HasReducedDesertion(id, region):
		return 1, 5
	case !region.IsEurope():
		return 10, 20
	case unpaid:
		return 5, 15
	default:
		return 5, 20
	}
}

// BattalionUpkeep is the monthly cost of a battalion scaled by its headcount
func BattalionUpkeep(turn *Turn, owner shared.NationID, bat *military.Battalion) int {
	bt, ok := turn.Rules.Battalion(bat.TypeID)
	if !ok {
		return 0
	}
	cost := float64(bt.Maintenance*turn.Game.CostModifier()) * float64(bat.Headcount) / float64(nation.MaxHeadcount(owner))
	if turn.Events.Active(events.CorruptedEconomy, owner) {
		cost *= 1.25
	}
	return int(cost)
}

func (a *ArmyMaintenance) Run(ctx context.Context, turn *Turn) error {
	logger := common.LoggerFromContext(ctx)
	rep := newReporter(a.deps, turn)

	all, err := a.deps.Brigades.FindByGame(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load brigades: %w", err)
	}
	var brigades []*military.Brigade
	for _, b := range all {
		if n, ok := turn.Nations[b.Nation]; ok && n.Alive {
			brigades = append(brigades, b)
		}
	}
	brigades = payOrder(brigades,
		func(b *military.Brigade) int { return b.ID },
		func(b *military.Brigade) shared.Position { return b.Position },
		turn.TradeCities, turn.Random)

	stats := make(tally)

	// pay
	for _, b := range brigades {
		for _, bat := range b.Battalions {
			bat.NotSupplied = false
			cost := BattalionUpkeep(turn, b.Nation, bat)
			if pay(turn, b.Nation, cost) {
				stats.add(b.Nation, report.KeyArmyMaintenance, cost)
				continue
			}
			low, high := AttritionBand(b.Nation, b.Position.Region, true)
			lost := bat.ReduceHeadcount(shared.RandIntBetween(turn.Random, low, high))
			stats.add(b.Nation, report.KeyArmyUnpaid, 1)
			stats.add(b.Nation, report.KeyArmyDeserted, lost)
			logger.Log(common.LevelDebug, "unpaid battalion deserted", map[string]interface{}{
				"brigade":   b.ID,
				"battalion": bat.ID,
				"lost":      lost,
			})
		}
	}

	// food, per nation and region
	type cell struct {
		nation shared.NationID
		region shared.RegionID
	}
	soldiers := make(map[cell]int)
	var cells []cell
	for _, b := range brigades {
		c := cell{b.Nation, b.Position.Region}
		if _, seen := soldiers[c]; !seen {
			cells = append(cells, c)
		}
		soldiers[c] += b.Soldiers()
	}

	rate := turn.Rules.Rates.FoodRateSoldier
	for _, c := range cells {
		required := ceilDiv(soldiers[c], rate)
		if turn.Ledger.Has(c.nation, c.region, goods.GoodFood, required) {
			turn.Ledger.Dec(c.nation, c.region, goods.GoodFood, required)
			stats.add(c.nation, report.KeyArmyFood, required)
			continue
		}
		eaten := turn.Ledger.Withdraw(c.nation, c.region, goods.GoodFood, required)
		stats.add(c.nation, report.KeyArmyFood, eaten)

		unfed := (required - eaten) * rate
		for _, b := range brigades {
			if unfed <= 0 {
				break
			}
			if b.Nation != c.nation || b.Position.Region != c.region {
				continue
			}
			for _, bat := range b.Battalions {
				if unfed <= 0 {
					break
				}
				unfed -= bat.Headcount
				low, high := AttritionBand(b.Nation, c.region, false)
				lost := bat.ReduceHeadcount(shared.RandIntBetween(turn.Random, low, high))
				bat.NotSupplied = true
				stats.add(b.Nation, report.KeyArmyStarved, lost)
			}
		}
	}

	for _, b := range brigades {
		if err := a.deps.Brigades.Update(ctx, b); err != nil {
			return fmt.Errorf("update brigade %d: %w", b.ID, err)
		}
	}

	for _, n := range turn.AliveNations() {
		deserted := stats.get(n.ID, report.KeyArmyDeserted)
		starved := stats.get(n.ID, report.KeyArmyStarved)
		metrics.RecordAttrition("soldiers", n.ID.String(), deserted+starved)
		if deserted+starved == 0 {
			continue
		}
		text := fmt.Sprintf("Our army lost %d soldiers to desertion over unpaid wages and %d to lack of food.", deserted, starved)
		if err := rep.announce(ctx, n.ID, n.ID, report.NewsMilitary, false, text); err != nil {
			return err
		}
	}

	return stats.flush(ctx, rep, turn,
		report.KeyArmyMaintenance,
		report.KeyArmyUnpaid,
		report.KeyArmyDeserted,
		report.KeyArmyFood,
		report.KeyArmyStarved,
	)
}

func ceilDiv(a, b int) int {
	if b <= 0 || a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
