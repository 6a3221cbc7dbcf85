package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/production"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// production passes: raw goods, then mills and mints, then factories
const (
	passRaw      = 1
	passRefined  = 2
	passFactory  = 3
	conquestSpan = 5
)

// ProductionPipeline pays site maintenance and runs every production site in
// three ordered passes, so that refined goods see this turn's raw output.
type ProductionPipeline struct {
	deps  *Dependencies
	sites *production.Registry
}

// NewProductionPipeline creates the production phase
func NewProductionPipeline(deps *Dependencies, sites *production.Registry) *ProductionPipeline {
	if sites == nil {
		sites = production.NewRegistry()
	}
	return &ProductionPipeline{deps: deps, sites: sites}
}

func (p *ProductionPipeline) Name() string { return "production" }

func (p *ProductionPipeline) Run(ctx context.Context, turn *Turn) error {
	logger := common.LoggerFromContext(ctx)
	rep := newReporter(p.deps, turn)

	sectors, err := p.deps.Sectors.FindWithProductionSite(ctx, turn.Game.ID)
	if err != nil {
		return fmt.Errorf("load production sites: %w", err)
	}
	byID(sectors, func(s *sector.Sector) int { return s.ID })

	env := &production.Env{
		Ledger: turn.Ledger,
		Game:   turn.Game,
		Events: turn.Events,
		Random: turn.Random,
	}
	stats := make(tally)

	// pass 1: maintenance, then raw goods
	for _, s := range sectors {
		owner, ok := turn.Nations[s.Owner]
		if !ok || !owner.Alive {
			continue
		}
		spec, ok := turn.Rules.Site(s.ProductionSite)
		if !ok {
			return shared.NewNotFoundError("site type", s.ProductionSite)
		}

		s.Payed = pay(turn, owner.ID, spec.Maintenance)
		if s.Payed {
			stats.add(owner.ID, report.KeySiteMaintenance, spec.Maintenance)
		} else {
			stats.add(owner.ID, report.KeySitesUnpaid, 1)
			text := fmt.Sprintf("We could not pay the maintenance of the %s at %s. It produced nothing this month.", spec.Name, s.Position)
			if err := rep.announce(ctx, owner.ID, owner.ID, report.NewsProduction, false, text); err != nil {
				return err
			}
		}
		if err := p.deps.Sectors.Update(ctx, s); err != nil {
			return fmt.Errorf("update sector %d: %w", s.ID, err)
		}

		if spec.Order == passRaw {
			p.process(env, s, spec.SizeCheck(s.PopulationLevel), turn.ConquestCounter(s.ID, s.ConqueredCounter), stats)
		}
	}

	for _, pass := range []int{passRefined, passFactory} {
		for _, s := range sectors {
			owner, ok := turn.Nations[s.Owner]
			if !ok || !owner.Alive {
				continue
			}
			spec, _ := turn.Rules.Site(s.ProductionSite)
			if spec.Order == pass {
				p.process(env, s, spec.SizeCheck(s.PopulationLevel), turn.ConquestCounter(s.ID, s.ConqueredCounter), stats)
			}
		}
	}

	keys := []string{report.KeySitesUnpaid, report.KeySitesUndersized, report.KeySitesOversized, report.KeySiteMaintenance}
	if err := stats.flush(ctx, rep, turn, keys...); err != nil {
		return err
	}
	for _, n := range turn.AliveNations() {
		for _, region := range shared.AllRegions() {
			for _, g := range goods.AllGoods() {
				produced := turn.Ledger.Produced(n.ID, region, g)
				if err := rep.put(ctx, n.ID, report.ProductionKey(g, region), produced); err != nil {
					return err
				}
				metrics.RecordProduction(n.ID.String(), g.String(), produced)
			}
		}
	}

	logger.Log(common.LevelInfo, "production processed", map[string]interface{}{
		"game":  turn.Game.ID,
		"turn":  turn.Number(),
		"sites": len(sectors),
	})
	return nil
}

// process runs a site when it is paid and fits its population band. Recently
// conquered sectors produce regardless of the band; conquest is the counter
// the sector held when the turn began.
func (p *ProductionPipeline) process(env *production.Env, s *sector.Sector, sizeCheck, conquest int, stats tally) {
	if !s.Payed {
		return
	}
	switch sizeCheck {
	case -1:
		stats.add(s.Owner, report.KeySitesUndersized, 1)
	case 1:
		stats.add(s.Owner, report.KeySitesOversized, 1)
	}
	conquered := conquest > 0 && conquest < conquestSpan
	if sizeCheck != 0 && !conquered {
		return
	}
	p.sites.For(s.ProductionSite).Produce(env, s)
}
