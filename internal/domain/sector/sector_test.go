package sector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
)

func TestSector_TaxDecrease(t *testing.T) {
	tests := []struct {
		counter  int
		expected int
	}{
		{0, 100},
		{1, 85},
		{3, 55},
		{6, 10},
		{9, 10},
	}

	for _, tt := range tests {
		s := &sector.Sector{ConqueredCounter: tt.counter}
		assert.Equal(t, tt.expected, s.TaxDecrease(), "counter %d", tt.counter)
	}
}

func TestSector_PopulationLevels(t *testing.T) {
	s := &sector.Sector{PopulationLevel: 4}
	assert.Equal(t, 5500, s.Population())

	assert.True(t, s.DecreasePopulation())
	assert.Equal(t, 3, s.PopulationLevel)

	s.PopulationLevel = 0
	assert.False(t, s.DecreasePopulation())
	assert.Equal(t, 0, s.PopulationLevel)

	s.PopulationLevel = 42
	assert.Equal(t, 23000, s.Population())
}

func TestSector_Barracks(t *testing.T) {
	s := &sector.Sector{ProductionSite: sector.SiteBarrackShipyard}
	assert.True(t, s.HasBarrack())
	assert.True(t, s.HasShipyard())

	s.ProductionSite = sector.SiteEstate
	assert.False(t, s.HasBarrack())
	assert.Equal(t, 8, sector.FortVP(sector.FortHuge))
}
