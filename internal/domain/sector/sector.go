package sector

import "github.com/ShakaofCarthage/empire-engine/internal/domain/shared"

// MaxPopulationLevel is the highest population level a sector can reach
const MaxPopulationLevel = 9

// populationSize maps a population level to its head count.
var populationSize = [MaxPopulationLevel + 1]int{500, 1000, 2000, 3500, 5500, 8000, 11000, 14500, 18500, 23000}

// NaturalResource is the resource tag of a sector
type NaturalResource int

const (
	ResourceNone     NaturalResource = 0
	ResourceFertile  NaturalResource = 1
	ResourceOre      NaturalResource = 2
	ResourceGems     NaturalResource = 3
	ResourcePrecious NaturalResource = 4
	ResourceStone    NaturalResource = 5
	ResourceWood     NaturalResource = 6
	ResourceWine     NaturalResource = 7
	ResourceSheep    NaturalResource = 8
	ResourceHorse    NaturalResource = 9
)

// Fort is the fortification level of a sector
type Fort int

const (
	FortNone   Fort = 0
	FortSmall  Fort = 1
	FortMedium Fort = 2
	FortLarge  Fort = 3
	FortHuge   Fort = 4
)

// Sector is one map tile owned by a nation
type Sector struct {
	ID               int
	GameID           shared.GameID
	Position         shared.Position
	Owner            shared.NationID
	PoliticalSphere  string
	PopulationLevel  int
	NaturalResource  NaturalResource
	ProductionSite   SiteType
	ConqueredCounter int
	BuildProgress    int
	Fort             Fort
	PendingFort      Fort
	Payed            bool
}

// Population returns the head count for the sector's population level
func (s *Sector) Population() int {
	level := s.PopulationLevel
	if level < 0 {
		level = 0
	}
	if level > MaxPopulationLevel {
		level = MaxPopulationLevel
	}
	return populationSize[level]
}

// PopulationForLevel returns the head count of a population level
func PopulationForLevel(level int) int {
	s := Sector{PopulationLevel: level}
	return s.Population()
}

// IsConquered reports whether the sector still carries a conquest penalty
func (s *Sector) IsConquered() bool {
	return s.ConqueredCounter > 0
}

// TaxDecrease returns the percentage of taxes retained while the conquest
// penalty lasts.
func (s *Sector) TaxDecrease() int {
	if s.ConqueredCounter <= 0 {
		return 100
	}
	retained := 100 - 15*s.ConqueredCounter
	if retained < 10 {
		retained = 10
	}
	return retained
}

// DecreasePopulation drops the population level by one, never below zero.
// It returns false if the sector was already at level zero.
func (s *Sector) DecreasePopulation() bool {
	if s.PopulationLevel <= 0 {
		return false
	}
	s.PopulationLevel--
	return true
}

// HasBarrack reports whether units can be raised in the sector
func (s *Sector) HasBarrack() bool {
	return s.ProductionSite == SiteBarrack || s.ProductionSite == SiteBarrackShipyard
}

// HasShipyard reports whether ships can be built in the sector
func (s *Sector) HasShipyard() bool {
	return s.ProductionSite == SiteBarrackShipyard
}

// FortVP is the victory point award for completing a fortress
func FortVP(f Fort) int {
	switch f {
	case FortSmall:
		return 1
	case FortMedium:
		return 2
	case FortLarge:
		return 4
	case FortHuge:
		return 8
	default:
		return 0
	}
}

func (f Fort) String() string {
	switch f {
	case FortSmall:
		return "small fortress"
	case FortMedium:
		return "medium fortress"
	case FortLarge:
		return "large fortress"
	case FortHuge:
		return "huge fortress"
	default:
		return "no fortress"
	}
}
