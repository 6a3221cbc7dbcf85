package economy

import (
	"context"
	"fmt"
	"math"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// shipDesertionChance is the percent chance an unpaid ship deserts
const shipDesertionChance = 15

// NavyMaintenance pays the fleet and supplies its marines with wine
type NavyMaintenance struct {
	deps *Dependencies
}

// NewNavyMaintenance creates the navy upkeep phase
func NewNavyMaintenance(deps *Dependencies) *NavyMaintenance {
	return &NavyMaintenance{deps: deps}
}

func (m *NavyMaintenance) Name() string { return "navy_maintenance" }

func (m *NavyMaintenance) Run(ctx context.Context, turn *Turn) error {
	logger := common.LoggerFromContext(ctx)
	rep := newReporter(m.deps, turn)

	all, err := m.deps.Ships.FindByGame(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load ships: %w", err)
	}
	var ships []*military.Ship
	for _, s := range all {
		if n, ok := turn.Nations[s.Nation]; ok && n.Alive {
			ships = append(ships, s)
		}
	}
	ships = payOrder(ships,
		func(s *military.Ship) int { return s.ID },
		func(s *military.Ship) shared.Position { return s.Position },
		turn.TradeCities, turn.Random)

	stats := make(tally)
	var remaining []*military.Ship

	for _, s := range ships {
		cost := 0
		if st, ok := turn.Rules.Ship(s.TypeID); ok {
			cost = st.Maintenance * turn.Game.CostModifier()
		}
		if pay(turn, s.Nation, cost) {
			s.Unpaid = false
			stats.add(s.Nation, report.KeyNavyMaintenance, cost)
			remaining = append(remaining, s)
			continue
		}
		stats.add(s.Nation, report.KeyNavyUnpaid, 1)
		if shared.Chance(turn.Random, shipDesertionChance) {
			stats.add(s.Nation, report.KeyNavyDeserted, 1)
			logger.Log(common.LevelInfo, "unpaid ship deserted", map[string]interface{}{
				"ship":   s.ID,
				"nation": s.Nation,
			})
			text := fmt.Sprintf("The crew of our ship %s mutinied over unpaid wages and deserted.", s.Name)
			if err := rep.announce(ctx, s.Nation, s.Nation, report.NewsNavy, false, text); err != nil {
				return err
			}
			if err := m.deps.Ships.Delete(ctx, s); err != nil {
				return fmt.Errorf("delete ship %d: %w", s.ID, err)
			}
			continue
		}
		s.Unpaid = true
		remaining = append(remaining, s)
	}

	if err := m.supplyWine(turn, remaining, stats); err != nil {
		return err
	}

	for _, s := range remaining {
		if err := m.deps.Ships.Update(ctx, s); err != nil {
			return fmt.Errorf("update ship %d: %w", s.ID, err)
		}
	}
	for _, n := range turn.AliveNations() {
		metrics.RecordAttrition("ships", n.ID.String(), stats.get(n.ID, report.KeyNavyDeserted))
	}

	return stats.flush(ctx, rep, turn,
		report.KeyNavyMaintenance,
		report.KeyNavyUnpaid,
		report.KeyNavyDeserted,
		report.KeyNavyWine,
		report.KeyNavyStarvingCost,
	)
}

// supplyWine feeds marines from the regional stock first, then from other
// regions at a penalty. Marines left without wine cost money instead.
func (m *NavyMaintenance) supplyWine(turn *Turn, ships []*military.Ship, stats tally) error {
	type cell struct {
		nation shared.NationID
		region shared.RegionID
	}
	marines := make(map[cell]int)
	var cells []cell
	for _, s := range ships {
		c := cell{s.Nation, s.Position.Region}
		if _, seen := marines[c]; !seen {
			cells = append(cells, c)
		}
		marines[c] += s.Marines
	}

	rates := turn.Rules.Rates
	for _, c := range cells {
		if rates.WineRate <= 0 {
			break
		}
		required := int(math.Ceil(float64(marines[c]) * rates.WineRate))
		drunk := turn.Ledger.Withdraw(c.nation, c.region, goods.GoodWine, required)
		stats.add(c.nation, report.KeyNavyWine, drunk)
		missing := required - drunk

		for _, other := range shared.AllRegions() {
			if missing <= 0 {
				break
			}
			if other == c.region {
				continue
			}
			need := int(math.Ceil(float64(missing) * rates.CrossRegionWine))
			taken := turn.Ledger.Withdraw(c.nation, other, goods.GoodWine, need)
			stats.add(c.nation, report.KeyNavyWine, taken)
			missing -= int(float64(taken) / rates.CrossRegionWine)
			if taken == need {
				missing = 0
			}
		}

		if missing > 0 {
			thirsty := int(math.Ceil(float64(missing) / rates.WineRate))
			if thirsty > marines[c] {
				thirsty = marines[c]
			}
			penalty := turn.Ledger.Withdraw(c.nation, shared.RegionEurope, goods.GoodMoney, thirsty*rates.StarvingCost)
			stats.add(c.nation, report.KeyNavyStarvingCost, penalty)
		}
	}
	return nil
}
