package economy

import (
	"context"
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/events"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Tax policies set by the ChangeTaxation order
const (
	PolicyNormal   = 0
	PolicyHarsh    = 1
	PolicyLow      = 2
	PolicyColonial = 3
)

// tax rates of sectors outside the home sphere
const (
	declaredSphereTaxRate = 4
	foreignSphereTaxRate  = 3
)

var sphereGrowth = map[nation.Sphere]float64{
	nation.SphereHome:     1.0,
	nation.SphereDeclared: 0.5,
	nation.SphereForeign:  0.2,
}

// SectorAdvancer collects taxes, grows population and completes fortress
// construction
type SectorAdvancer struct {
	deps *Dependencies
}

// NewSectorAdvancer creates the taxation and population phase
func NewSectorAdvancer(deps *Dependencies) *SectorAdvancer {
	return &SectorAdvancer{deps: deps}
}

func (a *SectorAdvancer) Name() string { return "sector_advancer" }

// SectorYield is what one sector contributed this turn
type SectorYield struct {
	SectorID int
	Increase int
	Taxes    int
}

// GrowthBand returns the population growth band, in percent, of a nation in a
// region given its population of the previous turn. Bands shrink as the
// population grows past the threshold and never drop below the floor.
func GrowthBand(band rules.GrowthBand, previousPopulation int) (low, high float64) {
	low, high = band.BaseLow, band.BaseHigh
	if previousPopulation > band.Threshold && band.Slope > 0 {
		drop := float64(previousPopulation-band.Threshold) / band.Slope
		low -= drop
		high -= drop
	}
	if low < band.FloorLow {
		low = band.FloorLow
	}
	if high < band.FloorHigh {
		high = band.FloorHigh
	}
	return low, high
}

func (a *SectorAdvancer) Run(ctx context.Context, turn *Turn) error {
	_, err := a.Advance(ctx, turn)
	return err
}

// Advance processes every owned sector in id order and returns the yield of
// each sector.
func (a *SectorAdvancer) Advance(ctx context.Context, turn *Turn) ([]SectorYield, error) {
	logger := common.LoggerFromContext(ctx)
	rep := newReporter(a.deps, turn)

	sectors, err := a.deps.Sectors.FindOwned(ctx, turn.Game.ID)
	if err != nil {
		return nil, fmt.Errorf("load sectors: %w", err)
	}
	byID(sectors, func(s *sector.Sector) int { return s.ID })

	policies, err := a.loadPolicies(ctx, rep, turn, sectors)
	if err != nil {
		return nil, err
	}

	type bandKey struct {
		nation shared.NationID
		region shared.RegionID
	}
	bands := make(map[bandKey][2]float64)
	stats := make(tally)
	yields := make([]SectorYield, 0, len(sectors))

	for _, s := range sectors {
		owner, ok := turn.Nations[s.Owner]
		if !ok {
			return nil, shared.NewNotFoundError("nation", s.Owner)
		}
		if !owner.Alive {
			continue
		}
		region := s.Position.Region

		key := bandKey{owner.ID, region}
		band, ok := bands[key]
		if !ok {
			previous, err := rep.previous(ctx, owner.ID, report.PopulationSizeKey(region))
			if err != nil {
				return nil, err
			}
			growth := turn.Rules.Growth.Europe
			if !region.IsEurope() {
				growth = turn.Rules.Growth.Colonies
			}
			low, high := GrowthBand(growth, previous)
			if low > high {
				logger.Log(common.LevelError, "population growth band inverted, clamping", map[string]interface{}{
					"nation": owner.ID,
					"region": region,
					"low":    low,
					"high":   high,
				})
				low = high
			}
			band = [2]float64{low, high}
			bands[key] = band
		}

		rate := shared.RandBetween(turn.Random, band[0], band[1])
		sphere := owner.SphereOf(region, s.PoliticalSphere)
		rate *= sphereGrowth[sphere]

		population := s.Population()
		taxRate := float64(owner.TaxRate)
		switch sphere {
		case nation.SphereDeclared:
			taxRate = declaredSphereTaxRate
		case nation.SphereForeign:
			taxRate = foreignSphereTaxRate
		}
		taxes := float64(population) * taxRate
		increase := float64(population) * rate / 100

		if s.IsConquered() {
			taxes *= float64(s.TaxDecrease()) / 100
		}
		switch policies[owner.ID] {
		case PolicyHarsh:
			taxes *= 1.25
			increase *= 0.5
		case PolicyLow:
			taxes *= 0.5
			increase *= 1.25
		case PolicyColonial:
			taxes *= 1.2
		}
		if turn.Events.Active(events.BoomingEconomy, owner.ID) {
			taxes *= 1.3
		}
		if turn.Game.BoostedTaxation {
			taxes *= 1.25
		}
		if turn.Events.Active(events.ManpowerShortage, owner.ID) {
			increase *= 0.7
		}
		if turn.Events.Active(events.Nationalism, owner.ID) {
			increase *= 1.3
		}
		if turn.Game.FastPopulationGrowth {
			increase *= 1.25
		}

		y := SectorYield{SectorID: s.ID, Increase: int(increase), Taxes: int(taxes)}
		yields = append(yields, y)

		turn.Ledger.Inc(owner.ID, region, goods.GoodPeople, y.Increase)
		turn.Ledger.Inc(owner.ID, shared.RegionEurope, goods.GoodMoney, y.Taxes)

		stats.add(owner.ID, report.TaxationRegionKey(region), y.Taxes)
		stats.add(owner.ID, report.PopulationGrowthKey(region), y.Increase)
		stats.add(owner.ID, report.PopulationSizeKey(region), population)
		stats.add(owner.ID, report.SectorsKey(region), 1)
		stats.add(owner.ID, report.KeyTaxation, y.Taxes)
		stats.add(owner.ID, report.KeyPopulationGrowth, y.Increase)

		if s.ConqueredCounter > 0 {
			turn.NoteConquest(s.ID, s.ConqueredCounter)
			s.ConqueredCounter--
		}
		if err := a.advanceConstruction(ctx, rep, turn, owner, s); err != nil {
			return nil, err
		}
		if err := a.deps.Sectors.Update(ctx, s); err != nil {
			return nil, fmt.Errorf("update sector %d: %w", s.ID, err)
		}
	}

	keys := []string{report.KeyTaxation, report.KeyPopulationGrowth}
	for _, region := range shared.AllRegions() {
		keys = append(keys,
			report.TaxationRegionKey(region),
			report.PopulationSizeKey(region),
			report.PopulationGrowthKey(region),
			report.SectorsKey(region),
		)
	}
	if err := stats.flush(ctx, rep, turn, keys...); err != nil {
		return nil, err
	}

	for _, n := range turn.AliveNations() {
		total := 0
		for _, region := range shared.AllRegions() {
			total += stats.get(n.ID, report.PopulationSizeKey(region))
		}
		if a.deps.Profiles != nil {
			if err := a.deps.Profiles.Max(ctx, turn.Game.ID, n.ID, n.UserID, profile.KeyMaxPopulation, total); err != nil {
				return nil, err
			}
		}
	}

	logger.Log(common.LevelInfo, "sectors advanced", map[string]interface{}{
		"game":    turn.Game.ID,
		"turn":    turn.Number(),
		"sectors": len(yields),
	})
	return yields, nil
}

// loadPolicies reads last turn's tax policy of every alive nation. The
// colonial goods policy only holds if the nation can pay one colonial good per
// ColonialTaxSpend people; otherwise it falls back to normal.
func (a *SectorAdvancer) loadPolicies(ctx context.Context, rep *reporter, turn *Turn, sectors []*sector.Sector) (map[shared.NationID]int, error) {
	logger := common.LoggerFromContext(ctx)
	population := make(map[shared.NationID]int)
	for _, s := range sectors {
		population[s.Owner] += s.Population()
	}

	policies := make(map[shared.NationID]int)
	for _, n := range turn.AliveNations() {
		policy, err := rep.previous(ctx, n.ID, report.KeyTaxationPolicy)
		if err != nil {
			return nil, err
		}
		if policy == PolicyColonial {
			spend := turn.Rules.Rates.ColonialTaxSpend
			required := 0
			if spend > 0 {
				required = population[n.ID] / spend
			}
			if turn.Ledger.Has(n.ID, shared.RegionEurope, goods.GoodColonial, required) {
				turn.Ledger.Dec(n.ID, shared.RegionEurope, goods.GoodColonial, required)
			} else {
				logger.Log(common.LevelInfo, "not enough colonial goods for tax policy", map[string]interface{}{
					"nation":   n.ID,
					"required": required,
				})
				policy = PolicyNormal
			}
		}
		policies[n.ID] = policy
	}
	return policies, nil
}

// advanceConstruction counts down fortress construction and completes it
func (a *SectorAdvancer) advanceConstruction(ctx context.Context, rep *reporter, turn *Turn, owner *nation.Nation, s *sector.Sector) error {
	if s.BuildProgress <= 0 {
		return nil
	}
	s.BuildProgress--
	if s.BuildProgress > 0 {
		return nil
	}

	if s.PendingFort > s.Fort {
		s.Fort = s.PendingFort
	}
	s.PendingFort = sector.FortNone
	owner.ChangeVP(sector.FortVP(s.Fort))

	text := fmt.Sprintf("%s completed the construction of a %s at %s.", owner.Name, s.Fort, s.Position)
	if err := rep.announce(ctx, owner.ID, owner.ID, report.NewsFortress, true, text); err != nil {
		return err
	}
	if a.deps.Profiles == nil {
		return nil
	}
	if err := a.deps.Profiles.Add(ctx, turn.Game.ID, owner.ID, owner.UserID, profile.KeyFortressBuilt, 1); err != nil {
		return err
	}
	if s.Fort == sector.FortHuge {
		return a.deps.Profiles.Max(ctx, turn.Game.ID, owner.ID, owner.UserID, profile.KeyFortressHuge, 1)
	}
	return nil
}
