package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// PrisonerMaintenance feeds prisoners of war from the captor's Europe food
type PrisonerMaintenance struct {
	deps *Dependencies
}

// NewPrisonerMaintenance creates the prisoner upkeep phase
func NewPrisonerMaintenance(deps *Dependencies) *PrisonerMaintenance {
	return &PrisonerMaintenance{deps: deps}
}

func (m *PrisonerMaintenance) Name() string { return "prisoner_maintenance" }

func (m *PrisonerMaintenance) Run(ctx context.Context, turn *Turn) error {
	rep := newReporter(m.deps, turn)

	relations, err := m.deps.Prisoners.FindByGame(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load prisoners: %w", err)
	}
	byID(relations, func(p *military.PrisonerRelation) int { return p.ID })

	held := make(map[shared.NationID][]*military.PrisonerRelation)
	for _, p := range relations {
		if p.Count > 0 {
			held[p.Captor] = append(held[p.Captor], p)
		}
	}

	stats := make(tally)
	rate := turn.Rules.Rates.FoodRatePrisoner
	for _, n := range turn.AliveNations() {
		captives := held[n.ID]
		total := 0
		for _, p := range captives {
			total += p.Count
		}
		if total == 0 || rate <= 0 {
			continue
		}

		required := total / rate
		if turn.Ledger.Has(n.ID, shared.RegionEurope, goods.GoodFood, required) {
			turn.Ledger.Dec(n.ID, shared.RegionEurope, goods.GoodFood, required)
			stats.add(n.ID, report.KeyPrisonerFood, required)
			continue
		}
		stats.add(n.ID, report.KeyPrisonerFood, turn.Ledger.Withdraw(n.ID, shared.RegionEurope, goods.GoodFood, required))

		deathRate := shared.RandIntBetween(turn.Random, 60, 90)
		for _, p := range captives {
			deaths := p.Count * deathRate / 100
			p.Count -= deaths
			stats.add(n.ID, report.KeyPrisonerDeaths, deaths)
			if err := m.deps.Prisoners.Update(ctx, p); err != nil {
				return fmt.Errorf("update prisoners %d: %w", p.ID, err)
			}
			if deaths == 0 {
				continue
			}
			text := fmt.Sprintf("%d of our soldiers held prisoner by %s died of hunger.", deaths, n.ID)
			if err := rep.announce(ctx, p.Captive, n.ID, report.NewsMilitary, false, text); err != nil {
				return err
			}
		}
		metrics.RecordAttrition("prisoners", n.ID.String(), stats.get(n.ID, report.KeyPrisonerDeaths))

		text := fmt.Sprintf("We could not feed our prisoners of war: %d of them perished.", stats.get(n.ID, report.KeyPrisonerDeaths))
		if err := rep.announce(ctx, n.ID, n.ID, report.NewsMilitary, false, text); err != nil {
			return err
		}
	}

	return stats.flush(ctx, rep, turn, report.KeyPrisonerFood, report.KeyPrisonerDeaths)
}
