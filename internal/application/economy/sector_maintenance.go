package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// famineChance is the percent chance a starving sector loses a population level
const famineChance = 50

// SectorMaintenance feeds the civilian population of every sector
type SectorMaintenance struct {
	deps *Dependencies
}

// NewSectorMaintenance creates the civilian food phase
func NewSectorMaintenance(deps *Dependencies) *SectorMaintenance {
	return &SectorMaintenance{deps: deps}
}

func (m *SectorMaintenance) Name() string { return "sector_maintenance" }

func (m *SectorMaintenance) Run(ctx context.Context, turn *Turn) error {
	rep := newReporter(m.deps, turn)

	sectors, err := m.deps.Sectors.FindOwned(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load sectors: %w", err)
	}
	byID(sectors, func(s *sector.Sector) int { return s.ID })

	stats := make(tally)
	unaffected := make(map[shared.NationID]int)
	rate := turn.Rules.Rates.FoodRateCivilian

	for _, s := range sectors {
		owner, ok := turn.Nations[s.Owner]
		if !ok || !owner.Alive || rate <= 0 {
			continue
		}
		region := s.Position.Region
		required := s.Population() / rate
		if turn.Ledger.Has(owner.ID, region, goods.GoodFood, required) {
			turn.Ledger.Dec(owner.ID, region, goods.GoodFood, required)
			stats.add(owner.ID, report.KeyCivilianFood, required)
			continue
		}

		stats.add(owner.ID, report.KeyCivilianFood, turn.Ledger.Withdraw(owner.ID, region, goods.GoodFood, required))
		if shared.Chance(turn.Random, famineChance) && s.DecreasePopulation() {
			stats.add(owner.ID, report.KeyPopulationReduced, 1)
			if err := m.deps.Sectors.Update(ctx, s); err != nil {
				return fmt.Errorf("update sector %d: %w", s.ID, err)
			}
			continue
		}
		unaffected[owner.ID]++
	}

	for _, n := range turn.AliveNations() {
		reduced := stats.get(n.ID, report.KeyPopulationReduced)
		if reduced == 0 && unaffected[n.ID] == 0 {
			continue
		}
		text := fmt.Sprintf("Famine struck %d of our sectors: %d lost population, %d endured without effect.",
			reduced+unaffected[n.ID], reduced, unaffected[n.ID])
		if err := rep.announce(ctx, n.ID, n.ID, report.NewsEconomy, false, text); err != nil {
			return err
		}
	}

	return stats.flush(ctx, rep, turn, report.KeyCivilianFood, report.KeyPopulationReduced)
}
