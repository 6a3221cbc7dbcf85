package production

import (
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

const resourceBonus = 1.33

// Estate grows food
type Estate struct{}

func (e *Estate) Produce(env *Env, s *sector.Sector) map[goods.Good]int {
	out := make(map[goods.Good]int)
	qty := 75 * ClimateFactor(s.Position, month(env)) * shared.RandBetween(env.Random, 1, 2)
	if s.NaturalResource == sector.ResourceFertile {
		qty *= resourceBonus
	}
	if nation.IsAgricultural(s.Owner) {
		qty *= 1.2
	}
	if env.Events != nil && env.Events.Active(events.ExcellentHarvest, s.Owner) {
		qty *= 2.0
	}
	produce(env, s, goods.GoodFood, int(qty*boost(env)), out)
	return out
}

// Mine extracts ore, gems or precious metals depending on the sector resource.
// Without a matching resource it digs ore at half rate.
type Mine struct{}

func (m *Mine) Produce(env *Env, s *sector.Sector) map[goods.Good]int {
	out := make(map[goods.Good]int)
	var (
		good goods.Good
		base float64
	)
	switch s.NaturalResource {
	case sector.ResourceGems:
		good, base = goods.GoodGems, 5
	case sector.ResourcePrecious:
		good, base = goods.GoodPrecious, 5
	case sector.ResourceOre:
		good, base = goods.GoodOre, 20
	default:
		good, base = goods.GoodOre, 10
	}
	qty := base * shared.RandBetween(env.Random, 1, 2) * boost(env)
	produce(env, s, good, int(qty), out)
	return out
}

// RawSite is a single-output site with an optional resource bonus and
// optional seasonal climate factor.
type RawSite struct {
	Good     goods.Good
	Base     float64
	Bonus    sector.NaturalResource
	Seasonal bool
}

func (r *RawSite) Produce(env *Env, s *sector.Sector) map[goods.Good]int {
	out := make(map[goods.Good]int)
	qty := r.Base * shared.RandBetween(env.Random, 1, 2)
	if r.Seasonal {
		qty *= ClimateFactor(s.Position, month(env))
	}
	if r.Bonus != sector.ResourceNone && s.NaturalResource == r.Bonus {
		qty *= resourceBonus
	}
	produce(env, s, r.Good, int(qty*boost(env)), out)
	return out
}
