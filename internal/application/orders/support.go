package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// requirement is one good an order must pay, with the failure code used when
// it is missing
type requirement struct {
	good   goods.Good
	region shared.RegionID
	qty    int
	code   int
}

// costRequirements expands a catalog cost, scaled by count, into the
// requirements money, industrial points, people, horses, stone, wood, fabric.
// Money is paid from Europe and scaled by the game's cost modifier; the rest
// comes from the region. codes maps each good to its failure code.
func costRequirements(turn *economy.Turn, cost rules.Cost, count int, region shared.RegionID, codes map[goods.Good]int) []requirement {
	sequence := []struct {
		good goods.Good
		qty  int
	}{
		{goods.GoodMoney, cost.Money * turn.Game.CostModifier()},
		{goods.GoodInpt, cost.Inpt},
		{goods.GoodPeople, cost.People},
		{goods.GoodHorse, cost.Horses},
		{goods.GoodStone, cost.Stone},
		{goods.GoodWood, cost.Wood},
		{goods.GoodFabric, cost.Fabric},
	}
	var reqs []requirement
	for _, s := range sequence {
		if s.qty <= 0 {
			continue
		}
		r := requirement{good: s.good, region: region, qty: s.qty * count, code: codes[s.good]}
		if s.good == goods.GoodMoney {
			r.region = shared.RegionEurope
		}
		reqs = append(reqs, r)
	}
	return reqs
}

// check returns the failure of the first requirement the ledger cannot cover,
// nil when all are covered.
func check(ledger *goods.Ledger, n shared.NationID, reqs []requirement) *order.Outcome {
	for _, r := range reqs {
		if ledger.Has(n, r.region, r.good, r.qty) {
			continue
		}
		have := ledger.Get(n, r.region, r.good)
		return order.Failure(r.code, fmt.Sprintf("Not enough %s in the %s warehouse: %d needed, %d available.", r.good, r.region, r.qty, have))
	}
	return nil
}

// spend deducts checked requirements and returns the goods used
func spend(ledger *goods.Ledger, n shared.NationID, reqs []requirement) map[goods.Good]int {
	used := make(map[goods.Good]int)
	for _, r := range reqs {
		ledger.Dec(n, r.region, r.good, r.qty)
		used[r.good] += r.qty
	}
	return used
}

// enemyPresent reports whether a brigade of a nation at war with n stands at pos
func enemyPresent(ctx context.Context, deps *economy.Dependencies, turn *economy.Turn, n shared.NationID, pos shared.Position) (bool, error) {
	brigades, err := deps.Brigades.FindByPosition(ctx, turn.Game.ID, pos)
	if err != nil {
		return false, fmt.Errorf("load brigades at %s: %w", pos, err)
	}
	for _, b := range brigades {
		if b.Nation == n || b.Soldiers() == 0 {
			continue
		}
		rel, err := deps.Relations.Relation(ctx, turn.Game.ID, n, b.Nation)
		if err != nil {
			return false, fmt.Errorf("load relation: %w", err)
		}
		if rel.IsWar() {
			return true, nil
		}
	}
	return false, nil
}

// addCost sums two catalog costs
func addCost(a, b rules.Cost) rules.Cost {
	return rules.Cost{
		Money:  a.Money + b.Money,
		Inpt:   a.Inpt + b.Inpt,
		Stone:  a.Stone + b.Stone,
		Wood:   a.Wood + b.Wood,
		Fabric: a.Fabric + b.Fabric,
		Horses: a.Horses + b.Horses,
		People: a.People + b.People,
	}
}

// ceilShare is ceil(total * part / whole)
func ceilShare(total, part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return (total*part + whole - 1) / whole
}
