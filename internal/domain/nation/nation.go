package nation

import (
	"strings"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Nation is the per-turn reference data of a playable nation. VP is the only
// field the economy mutates.
type Nation struct {
	ID                shared.NationID
	GameID            shared.GameID
	Code              string // single letter home-sphere code
	Name              string
	TaxRate           int
	SphereOfInfluence string // codes of the nation's declared sphere
	Alive             bool
	VP                int
	UserID            int
}

// Sphere classifies a sector relative to its owner
type Sphere int

const (
	SphereHome     Sphere = 1
	SphereDeclared Sphere = 2
	SphereForeign  Sphere = 3
)

// SphereOf classifies a sector by its political sphere code. Colonial sectors
// are always home sphere.
func (n *Nation) SphereOf(region shared.RegionID, sectorSphere string) Sphere {
	if !region.IsEurope() {
		return SphereHome
	}
	if sectorSphere == n.Code {
		return SphereHome
	}
	if sectorSphere != "" && strings.Contains(n.SphereOfInfluence, sectorSphere) {
		return SphereDeclared
	}
	return SphereForeign
}

// ChangeVP applies a VP delta and floors the result at zero. It returns the
// delta actually applied.
func (n *Nation) ChangeVP(delta int) int {
	before := n.VP
	n.VP += delta
	if n.VP < 0 {
		n.VP = 0
	}
	return n.VP - before
}

// HasLargeBattalions is true for nations whose battalions hold 1000 men.
func HasLargeBattalions(id shared.NationID) bool {
	switch id {
	case shared.NationMorocco, shared.NationOttoman, shared.NationEgypt:
		return true
	default:
		return false
	}
}

// MaxHeadcount returns the full strength of a battalion of the nation.
func MaxHeadcount(id shared.NationID) int {
	if HasLargeBattalions(id) {
		return 1000
	}
	return 800
}

// HasReducedDesertion is true for France and Russia while in Europe.
func HasReducedDesertion(id shared.NationID, region shared.RegionID) bool {
	return region.IsEurope() && (id == shared.NationFrance || id == shared.NationRussia)
}

// IsAgricultural marks nations whose estates yield 20% more food.
func IsAgricultural(id shared.NationID) bool {
	switch id {
	case shared.NationAustria, shared.NationRussia, shared.NationWarsaw, shared.NationNaples:
		return true
	default:
		return false
	}
}
