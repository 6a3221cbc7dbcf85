package orders

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/mediator"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// BuildProductionSite failure codes
const (
	buildSiteNoSector   = -1
	buildSiteNotOwner   = -2
	buildSiteUnknown    = -3
	buildSiteOccupied   = -4
	buildSiteRegion     = -5
	buildSitePopulation = -6
	buildSiteEnemy      = -7
	buildSiteMoney      = -8
	buildSiteInpt       = -9
	buildSiteStone      = -10
	buildSiteWood       = -11
)

// BuildProductionSiteHandler builds a production site on an owned sector
type BuildProductionSiteHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewBuildProductionSiteHandler creates a new build production site handler
func NewBuildProductionSiteHandler(deps *economy.Dependencies, batch *Batch) *BuildProductionSiteHandler {
	return &BuildProductionSiteHandler{deps: deps, batch: batch}
}

// Handle executes the build production site command
func (h *BuildProductionSiteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.BuildProductionSiteCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command
	turn := h.batch.Turn

	s, err := h.deps.Sectors.FindByID(ctx, turn.Game.ID, cmd.SectorID)
	if shared.IsNotFound(err) {
		return order.Failure(buildSiteNoSector, "Sector not found."), nil
	}
	if err != nil {
		return nil, err
	}
	if s.Owner != o.Nation {
		return order.Failure(buildSiteNotOwner, fmt.Sprintf("We do not own the sector at %s.", s.Position)), nil
	}
	spec, ok := turn.Rules.Site(sector.SiteType(cmd.Site))
	if !ok {
		return order.Failure(buildSiteUnknown, "Unknown production site type."), nil
	}
	if s.ProductionSite != sector.SiteNone {
		return order.Failure(buildSiteOccupied, fmt.Sprintf("The sector at %s already has a %s.", s.Position, s.ProductionSite)), nil
	}
	if !spec.AllowedIn(s.Position.Region) {
		return order.Failure(buildSiteRegion, fmt.Sprintf("A %s cannot be built in %s.", spec.Name, s.Position.Region)), nil
	}
	if spec.SizeCheck(s.PopulationLevel) != 0 {
		return order.Failure(buildSitePopulation, fmt.Sprintf("A %s needs a population level between %d and %d.", spec.Name, spec.MinPop, spec.MaxPop)), nil
	}
	enemy, err := enemyPresent(ctx, h.deps, turn, o.Nation, s.Position)
	if err != nil {
		return nil, err
	}
	if enemy {
		return order.Failure(buildSiteEnemy, fmt.Sprintf("Enemy troops occupy %s.", s.Position)), nil
	}

	reqs := costRequirements(turn, spec.Build, 1, s.Position.Region, map[goods.Good]int{
		goods.GoodMoney: buildSiteMoney,
		goods.GoodInpt:  buildSiteInpt,
		goods.GoodStone: buildSiteStone,
		goods.GoodWood:  buildSiteWood,
	})
	if failure := check(turn.Ledger, o.Nation, reqs); failure != nil {
		return failure, nil
	}
	used := spend(turn.Ledger, o.Nation, reqs)

	s.ProductionSite = spec.Type
	s.Payed = false
	if err := h.deps.Sectors.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update sector %d: %w", s.ID, err)
	}
	return order.Success(1, fmt.Sprintf("Built a %s at %s.", spec.Name, s.Position), used), nil
}

// DemolishProductionSite failure codes
const (
	demolishNoSector = -1
	demolishNotOwner = -2
	demolishNoSite   = -3
)

// DemolishProductionSiteHandler removes the production site of an owned sector
type DemolishProductionSiteHandler struct {
	deps  *economy.Dependencies
	batch *Batch
}

// NewDemolishProductionSiteHandler creates a new demolish production site handler
func NewDemolishProductionSiteHandler(deps *economy.Dependencies, batch *Batch) *DemolishProductionSiteHandler {
	return &DemolishProductionSiteHandler{deps: deps, batch: batch}
}

// Handle executes the demolish production site command
func (h *DemolishProductionSiteHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	env, err := unwrap[*order.DemolishProductionSiteCommand](request)
	if err != nil {
		return nil, err
	}
	o, cmd := env.Order, env.Command

	s, err := h.deps.Sectors.FindByID(ctx, h.batch.Turn.Game.ID, cmd.SectorID)
	if shared.IsNotFound(err) {
		return order.Failure(demolishNoSector, "Sector not found."), nil
	}
	if err != nil {
		return nil, err
	}
	if s.Owner != o.Nation {
		return order.Failure(demolishNotOwner, fmt.Sprintf("We do not own the sector at %s.", s.Position)), nil
	}
	if s.ProductionSite == sector.SiteNone {
		return order.Failure(demolishNoSite, fmt.Sprintf("There is no production site at %s.", s.Position)), nil
	}

	demolished := s.ProductionSite
	s.ProductionSite = sector.SiteNone
	s.Payed = false
	if err := h.deps.Sectors.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update sector %d: %w", s.ID, err)
	}
	return order.Success(1, fmt.Sprintf("Demolished the %s at %s.", demolished, s.Position), nil), nil
}
