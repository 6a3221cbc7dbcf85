// Package production holds one strategy per production site type. Each
// strategy reads its inputs from the ledger, clamps its batch to the stock
// actually available and writes its output with the production tracked
// ledger primitives.
package production

import (
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Env is what a site strategy may touch while producing
type Env struct {
	Ledger *goods.Ledger
	Game   *nation.Game
	Events events.Checker
	Random shared.Random
}

// Site produces goods for one sector
type Site interface {
	// Produce runs the site once and returns the goods it added (positive)
	// or consumed (negative).
	Produce(env *Env, s *sector.Sector) map[goods.Good]int
}

// Registry maps site types to their strategy
type Registry struct {
	sites map[sector.SiteType]Site
}

// NewRegistry registers every known site strategy
func NewRegistry() *Registry {
	return &Registry{sites: map[sector.SiteType]Site{
		sector.SiteEstate:          &Estate{},
		sector.SiteFactory:         &Factory{},
		sector.SiteWeavingMill:     &WeavingMill{},
		sector.SiteMint:            &Mint{},
		sector.SiteMine:            &Mine{},
		sector.SiteQuarry:          &RawSite{Good: goods.GoodStone, Base: 50, Bonus: sector.ResourceStone},
		sector.SiteLumberCamp:      &RawSite{Good: goods.GoodWood, Base: 60, Bonus: sector.ResourceWood, Seasonal: true},
		sector.SiteVineyard:        &RawSite{Good: goods.GoodWine, Base: 30, Bonus: sector.ResourceWine, Seasonal: true},
		sector.SiteSheepFarm:       &RawSite{Good: goods.GoodWool, Base: 40, Bonus: sector.ResourceSheep, Seasonal: true},
		sector.SiteHorseFarm:       &RawSite{Good: goods.GoodHorse, Base: 15, Bonus: sector.ResourceHorse},
		sector.SitePlantation:      &RawSite{Good: goods.GoodColonial, Base: 25, Seasonal: true},
		sector.SiteBarrack:         &Dummy{},
		sector.SiteBarrackShipyard: &Dummy{},
	}}
}

// Register replaces the strategy of a site type
func (r *Registry) Register(t sector.SiteType, site Site) {
	r.sites[t] = site
}

// For returns the strategy of a site type, Dummy when none is registered
func (r *Registry) For(t sector.SiteType) Site {
	if site, ok := r.sites[t]; ok {
		return site
	}
	return &Dummy{}
}

// Dummy produces nothing
type Dummy struct{}

func (d *Dummy) Produce(*Env, *sector.Sector) map[goods.Good]int {
	return nil
}

func produce(env *Env, s *sector.Sector, g goods.Good, qty int, out map[goods.Good]int) {
	if qty <= 0 {
		return
	}
	env.Ledger.IncProd(s.Owner, s.Position.Region, g, qty)
	out[g] += qty
}

func consume(env *Env, s *sector.Sector, g goods.Good, qty int, out map[goods.Good]int) {
	if qty <= 0 {
		return
	}
	env.Ledger.DecProd(s.Owner, s.Position.Region, g, qty)
	out[g] -= qty
}

func stock(env *Env, s *sector.Sector, g goods.Good) int {
	qty := env.Ledger.Get(s.Owner, s.Position.Region, g)
	if qty < 0 {
		return 0
	}
	return qty
}

func boost(env *Env) float64 {
	if env.Game == nil {
		return 1.0
	}
	return env.Game.ProductionModifier()
}

func month(env *Env) int {
	if env.Game == nil {
		return 0
	}
	return env.Game.Month()
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
