package shared

import "fmt"

// GameID identifies one game instance. Ledgers and turns never cross games.
type GameID int

// NationID identifies a playable nation within a game.
type NationID int

// RegionID identifies one of the map regions.
type RegionID int

// Nation identifiers
const (
	NationNeutral      NationID = 0
	NationAustria      NationID = 1
	NationDenmark      NationID = 2
	NationEgypt        NationID = 3
	NationFrance       NationID = 4
	NationGreatBritain NationID = 5
	NationHolland      NationID = 6
	NationMorocco      NationID = 7
	NationNaples       NationID = 8
	NationOttoman      NationID = 9
	NationPortugal     NationID = 10
	NationPrussia      NationID = 11
	NationRhine        NationID = 12
	NationRussia       NationID = 13
	NationSpain        NationID = 14
	NationSweden       NationID = 15
	NationWarsaw       NationID = 16
	NationScandinavia  NationID = 17

	NationFirst = NationAustria
	NationLast  = NationScandinavia
)

// Region identifiers
const (
	RegionEurope    RegionID = 1
	RegionCaribbean RegionID = 2
	RegionIndies    RegionID = 3
	RegionAfrica    RegionID = 4

	RegionFirst = RegionEurope
	RegionLast  = RegionAfrica
)

var nationNames = map[NationID]string{
	NationNeutral:      "Neutral",
	NationAustria:      "Austria",
	NationDenmark:      "Denmark",
	NationEgypt:        "Egypt",
	NationFrance:       "France",
	NationGreatBritain: "Great Britain",
	NationHolland:      "Holland",
	NationMorocco:      "Morocco",
	NationNaples:       "Naples",
	NationOttoman:      "Ottoman Empire",
	NationPortugal:     "Portugal",
	NationPrussia:      "Prussia",
	NationRhine:        "Rhine",
	NationRussia:       "Russia",
	NationSpain:        "Spain",
	NationSweden:       "Sweden",
	NationWarsaw:       "Warsaw",
	NationScandinavia:  "Scandinavia",
}

var regionNames = map[RegionID]string{
	RegionEurope:    "Europe",
	RegionCaribbean: "Caribbean",
	RegionIndies:    "Indies",
	RegionAfrica:    "Africa",
}

// IsValid reports whether the nation id is inside the playable range.
func (n NationID) IsValid() bool {
	return n >= NationFirst && n <= NationLast
}

// IsValid reports whether the region id is a known region.
func (r RegionID) IsValid() bool {
	return r >= RegionFirst && r <= RegionLast
}

// IsEurope distinguishes Europe from the colonial regions.
func (r RegionID) IsEurope() bool {
	return r == RegionEurope
}

func (n NationID) String() string {
	if name, ok := nationNames[n]; ok {
		return name
	}
	return fmt.Sprintf("nation-%d", int(n))
}

func (r RegionID) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("region-%d", int(r))
}

// AllNations returns every playable nation id in ascending order.
func AllNations() []NationID {
	nations := make([]NationID, 0, int(NationLast))
	for n := NationFirst; n <= NationLast; n++ {
		nations = append(nations, n)
	}
	return nations
}

// AllRegions returns every region id in ascending order.
func AllRegions() []RegionID {
	return []RegionID{RegionEurope, RegionCaribbean, RegionIndies, RegionAfrica}
}
