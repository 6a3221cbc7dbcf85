// Package report defines the key/value report rows and news entries the
// economy writes each turn. Reports double as scratch state between turns:
// the sector advancer reads the previous turn's population from them.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Entry is one report row. A (game, nation, turn, key) tuple has at most one row.
type Entry struct {
	GameID shared.GameID
	Nation shared.NationID
	Turn   int
	Key    string
	Value  string
}

// Store reads and upserts report rows
type Store interface {
	// Get returns the value of a key, ok is false when no row exists
	Get(ctx context.Context, game shared.GameID, nation shared.NationID, turn int, key string) (value string, ok bool, err error)

	// Put writes a value, overwriting any previous value of the same key and turn
	Put(ctx context.Context, entry Entry) error
}

// NewsType classifies a news entry
type NewsType int

const (
	NewsEconomy    NewsType = 1
	NewsMilitary   NewsType = 2
	NewsNavy       NewsType = 3
	NewsFortress   NewsType = 4
	NewsProduction NewsType = 5
	NewsTrade      NewsType = 6
)

// News is a message shown to a nation, or to every nation when Global is set
type News struct {
	ID        int
	GameID    shared.GameID
	Turn      int
	Nation    shared.NationID
	Subject   shared.NationID
	Type      NewsType
	Global    bool
	BaseID    string
	Text      string
	CreatedAt time.Time
}

// NewsStore appends news entries
type NewsStore interface {
	Append(ctx context.Context, news *News) (int, error)
}

// Report keys shared by the economy phases and the CLI
const (
	KeyTaxation          = "taxation"
	KeyTaxationPolicy    = "taxation.policy"
	KeyPopulationGrowth  = "population.growth"
	KeySitesUnpaid       = "production.sites.unpaid"
	KeySitesUndersized   = "production.sites.undersized"
	KeySitesOversized    = "production.sites.oversized"
	KeySiteMaintenance   = "production.maintenance"
	KeyArmyMaintenance   = "army.maintenance"
	KeyArmyUnpaid        = "army.battalions.unpaid"
	KeyArmyDeserted      = "army.soldiers.deserted"
	KeyArmyStarved       = "army.soldiers.starved"
	KeyArmyFood          = "army.food"
	KeyNavyMaintenance   = "navy.maintenance"
	KeyNavyUnpaid        = "navy.ships.unpaid"
	KeyNavyDeserted      = "navy.ships.deserted"
	KeyNavyWine          = "navy.wine"
	KeyNavyStarvingCost  = "navy.starving"
	KeyCommanderSalaries = "commanders.salaries"
	KeyCommanderUnpaid   = "commanders.unpaid"
	KeyCommanderDeserted = "commanders.deserted"
	KeyTrainMaintenance  = "trains.maintenance"
	KeyTrainLost         = "trains.lost"
	KeyCivilianFood      = "population.food"
	KeyPopulationReduced = "population.sectors.reduced"
	KeyPrisonerFood      = "prisoners.food"
	KeyPrisonerDeaths    = "prisoners.deaths"
	KeyVictoryPoints     = "vp"
)

// RegionKey appends the region suffix used by per-region keys
func RegionKey(base string, region shared.RegionID) string {
	return fmt.Sprintf("%s.region.%d", base, int(region))
}

// TaxationRegionKey is the taxes collected in a region
func TaxationRegionKey(region shared.RegionID) string {
	return RegionKey("taxation", region)
}

// PopulationSizeKey is the population of a nation in a region
func PopulationSizeKey(region shared.RegionID) string {
	return RegionKey("population.size", region)
}

// PopulationGrowthKey is the population increase of a nation in a region
func PopulationGrowthKey(region shared.RegionID) string {
	return RegionKey("population.growth", region)
}

// SectorsKey is the number of sectors a nation owns in a region
func SectorsKey(region shared.RegionID) string {
	return RegionKey("sectors", region)
}

// ProductionKey is the production of one good in a region
func ProductionKey(good fmt.Stringer, region shared.RegionID) string {
	return RegionKey("production."+good.String(), region)
}

// EventKey is the nation-0 key listing the nations affected by an event
func EventKey(name string) string {
	return "event." + name
}
