// Package rules holds the balance tables of the economy: site catalog, unit
// types, salaries, trade prices and consumption rates. The tables are loaded
// from YAML by the tuning package and indexed once.
package rules

import (
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Rules is the full balance catalog
type Rules struct {
	Rates             Rates            `yaml:"rates"`
	Growth            GrowthRules      `yaml:"growth"`
	Sites             []SiteSpec       `yaml:"sites"`
	Battalions        []BattalionType  `yaml:"battalions"`
	Ships             []ShipType       `yaml:"ships"`
	CommanderSalaries []int            `yaml:"commander_salaries"`
	Prices            []GoodPrice      `yaml:"prices"`
	TradeLevels       TradeLevels      `yaml:"trade_levels"`
	BaggageTrain      BaggageTrainSpec `yaml:"baggage_train"`

	sites      map[sector.SiteType]SiteSpec
	battalions map[int]BattalionType
	ships      map[int]ShipType
	prices     map[goods.Good]int
}

// Rates are the fixed consumption and penalty rates
type Rates struct {
	FoodRateCivilian int     `yaml:"food_rate_civilian"`
	FoodRateSoldier  int     `yaml:"food_rate_soldier"`
	FoodRatePrisoner int     `yaml:"food_rate_prisoner"`
	WineRate         float64 `yaml:"wine_rate"`
	StarvingCost     int     `yaml:"starving_cost"`
	BattalionCap     int     `yaml:"battalion_cap"`
	CrossRegionWine  float64 `yaml:"cross_region_wine_penalty"`
	ColonialTaxSpend int     `yaml:"colonial_tax_spend"`
}

// GrowthBand is the population growth band of one region class, in percent
type GrowthBand struct {
	Threshold int     `yaml:"threshold"`
	Slope     float64 `yaml:"slope"`
	BaseLow   float64 `yaml:"base_low"`
	BaseHigh  float64 `yaml:"base_high"`
	FloorLow  float64 `yaml:"floor_low"`
	FloorHigh float64 `yaml:"floor_high"`
}

// GrowthRules holds the Europe and colonial growth bands
type GrowthRules struct {
	Europe   GrowthBand `yaml:"europe"`
	Colonies GrowthBand `yaml:"colonies"`
}

// Cost is a bundle of goods needed to build something
type Cost struct {
	Money  int `yaml:"money"`
	Inpt   int `yaml:"inpt"`
	Stone  int `yaml:"stone"`
	Wood   int `yaml:"wood"`
	Fabric int `yaml:"fabric"`
	Horses int `yaml:"horses"`
	People int `yaml:"people"`
}

// Goods lists the non-zero components of the cost in ledger order
func (c Cost) Goods() map[goods.Good]int {
	out := make(map[goods.Good]int)
	add := func(g goods.Good, qty int) {
		if qty > 0 {
			out[g] = qty
		}
	}
	add(goods.GoodMoney, c.Money)
	add(goods.GoodInpt, c.Inpt)
	add(goods.GoodStone, c.Stone)
	add(goods.GoodWood, c.Wood)
	add(goods.GoodFabric, c.Fabric)
	add(goods.GoodHorse, c.Horses)
	add(goods.GoodPeople, c.People)
	return out
}

// SiteSpec describes a production site type
type SiteSpec struct {
	Type        sector.SiteType `yaml:"type"`
	Name        string          `yaml:"name"`
	Maintenance int             `yaml:"maintenance"`
	MinPop      int             `yaml:"min_pop"`
	MaxPop      int             `yaml:"max_pop"`
	Order       int             `yaml:"order"`
	EuropeOnly  bool            `yaml:"europe_only"`
	ColonyOnly  bool            `yaml:"colony_only"`
	Build       Cost            `yaml:"build"`
}

// SizeCheck compares a population level with the site's band: 0 fits,
// -1 undersized, +1 oversized.
func (s SiteSpec) SizeCheck(populationLevel int) int {
	if populationLevel < s.MinPop {
		return -1
	}
	if populationLevel > s.MaxPop {
		return 1
	}
	return 0
}

// AllowedIn reports whether the site can be built in the region
func (s SiteSpec) AllowedIn(region shared.RegionID) bool {
	if s.EuropeOnly && !region.IsEurope() {
		return false
	}
	if s.ColonyOnly && region.IsEurope() {
		return false
	}
	return true
}

// BattalionType describes a raisable battalion
type BattalionType struct {
	ID          int             `yaml:"id"`
	Name        string          `yaml:"name"`
	Nation      shared.NationID `yaml:"nation"` // 0 = any nation
	Craft       string          `yaml:"craft"`
	Elite       bool            `yaml:"elite"`
	Region      string          `yaml:"region"` // europe, colonies or any
	Maintenance int             `yaml:"maintenance"`
	Cost        Cost            `yaml:"cost"`
}

// AllowedIn reports whether the battalion type may be raised in the region
func (b BattalionType) AllowedIn(region shared.RegionID) bool {
	switch b.Region {
	case "europe":
		return region.IsEurope()
	case "colonies":
		return !region.IsEurope()
	default:
		return true
	}
}

// AvailableTo reports whether the nation may raise the type
func (b BattalionType) AvailableTo(id shared.NationID) bool {
	return b.Nation == 0 || b.Nation == id
}

// ShipType describes a ship class
type ShipType struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Class       int    `yaml:"class"`
	Merchant    bool   `yaml:"merchant"`
	Maintenance int    `yaml:"maintenance"`
	Marines     int    `yaml:"marines"`
	Capacity    int    `yaml:"capacity"`
	Cost        Cost   `yaml:"cost"`
}

// BaggageTrainSpec is the build and upkeep of a baggage train
type BaggageTrainSpec struct {
	Maintenance int  `yaml:"maintenance"`
	Capacity    int  `yaml:"capacity"`
	Cost        Cost `yaml:"cost"`
}

// GoodPrice is the base trade price of a good
type GoodPrice struct {
	Good  goods.Good `yaml:"good"`
	Price int        `yaml:"price"`
}

// TradeLevels are the price factors per trade level 1..9
type TradeLevels struct {
	Buy  []float64 `yaml:"buy"`
	Sell []float64 `yaml:"sell"`
}

// Index builds the lookup tables and validates cross references
func (r *Rules) Index() error {
	r.sites = make(map[sector.SiteType]SiteSpec, len(r.Sites))
	for _, s := range r.Sites {
		if !s.Type.IsValid() {
			return fmt.Errorf("rules: invalid site type %d", s.Type)
		}
		r.sites[s.Type] = s
	}
	r.battalions = make(map[int]BattalionType, len(r.Battalions))
	for _, b := range r.Battalions {
		if _, dup := r.battalions[b.ID]; dup {
			return fmt.Errorf("rules: duplicate battalion type %d", b.ID)
		}
		r.battalions[b.ID] = b
	}
	r.ships = make(map[int]ShipType, len(r.Ships))
	for _, s := range r.Ships {
		if _, dup := r.ships[s.ID]; dup {
			return fmt.Errorf("rules: duplicate ship type %d", s.ID)
		}
		r.ships[s.ID] = s
	}
	r.prices = make(map[goods.Good]int, len(r.Prices))
	for _, p := range r.Prices {
		if !p.Good.IsValid() {
			return fmt.Errorf("rules: invalid good %d in prices", p.Good)
		}
		r.prices[p.Good] = p.Price
	}
	if len(r.TradeLevels.Buy) != 9 || len(r.TradeLevels.Sell) != 9 {
		return fmt.Errorf("rules: trade levels need 9 buy and 9 sell factors")
	}
	if len(r.CommanderSalaries) == 0 {
		return fmt.Errorf("rules: commander salaries missing")
	}
	return nil
}

// Site returns the spec of a site type
func (r *Rules) Site(t sector.SiteType) (SiteSpec, bool) {
	s, ok := r.sites[t]
	return s, ok
}

// Battalion returns a battalion type by id
func (r *Rules) Battalion(id int) (BattalionType, bool) {
	b, ok := r.battalions[id]
	return b, ok
}

// Ship returns a ship type by id
func (r *Rules) Ship(id int) (ShipType, bool) {
	s, ok := r.ships[id]
	return s, ok
}

// BasePrice returns the base trade price of a good, 0 when untraded
func (r *Rules) BasePrice(g goods.Good) int {
	return r.prices[g]
}

// Salary returns the monthly salary of a commander rank (1-based).
// Ranks beyond the table pay the top salary.
func (r *Rules) Salary(rank int) int {
	if rank < 1 {
		rank = 1
	}
	if rank > len(r.CommanderSalaries) {
		rank = len(r.CommanderSalaries)
	}
	return r.CommanderSalaries[rank-1]
}
