package helpers

import (
	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/persistence"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/setup"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// TestRepositories holds real GORM repositories for integration tests
type TestRepositories struct {
	DB           *gorm.DB
	Repos        *persistence.Repositories
	Dependencies *economy.Dependencies
}

// NewTestRepositories creates every repository on the shared test DB.
// clock is usually a FixedClock.
func NewTestRepositories(clock shared.Clock) *TestRepositories {
	return NewTestRepositoriesOn(SharedTestDB, clock)
}

// NewTestRepositoriesOn creates every repository on db
func NewTestRepositoriesOn(db *gorm.DB, clock shared.Clock) *TestRepositories {
	repos := persistence.NewRepositories(db, clock)
	return &TestRepositories{
		DB:           db,
		Repos:        repos,
		Dependencies: setup.NewDependencies(repos, clock),
	}
}
