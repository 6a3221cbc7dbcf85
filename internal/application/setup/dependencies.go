package setup

import (
	"github.com/ShakaofCarthage/empire-engine/internal/adapters/persistence"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// NewDependencies wires the GORM repositories into the ports the economy
// phases and order handlers read and write through
func NewDependencies(repos *persistence.Repositories, clock shared.Clock) *economy.Dependencies {
	return &economy.Dependencies{
		Games:       repos.Games,
		Nations:     repos.Nations,
		Relations:   repos.Relations,
		Sectors:     repos.Sectors,
		Brigades:    repos.Brigades,
		Commanders:  repos.Commanders,
		Ships:       repos.Ships,
		Trains:      repos.Trains,
		Prisoners:   repos.Prisoners,
		TradeCities: repos.TradeCities,
		Reports:     repos.Reports,
		News:        repos.News,
		Profiles:    profile.NewRecorder(repos.Profiles),
		Clock:       clock,
	}
}
