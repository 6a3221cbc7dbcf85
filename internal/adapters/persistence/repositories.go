package persistence

import (
	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Repositories bundles every GORM repository over one connection
type Repositories struct {
	Games       *GormGameRepository
	Nations     *GormNationRepository
	Relations   *GormRelationRepository
	Sectors     *GormSectorRepository
	Brigades    *GormBrigadeRepository
	Commanders  *GormCommanderRepository
	Ships       *GormShipRepository
	Trains      *GormBaggageTrainRepository
	Prisoners   *GormPrisonerRepository
	TradeCities *GormTradeCityRepository
	Reports     *GormReportRepository
	News        *GormNewsRepository
	Profiles    *GormProfileRepository
	Orders      *GormOrderRepository
	Ledgers     *GormLedgerStore
}

// NewRepositories creates every repository on db
func NewRepositories(db *gorm.DB, clock shared.Clock) *Repositories {
	return &Repositories{
		Games:       NewGormGameRepository(db),
		Nations:     NewGormNationRepository(db),
		Relations:   NewGormRelationRepository(db),
		Sectors:     NewGormSectorRepository(db),
		Brigades:    NewGormBrigadeRepository(db),
		Commanders:  NewGormCommanderRepository(db),
		Ships:       NewGormShipRepository(db),
		Trains:      NewGormBaggageTrainRepository(db),
		Prisoners:   NewGormPrisonerRepository(db),
		TradeCities: NewGormTradeCityRepository(db),
		Reports:     NewGormReportRepository(db),
		News:        NewGormNewsRepository(db, clock),
		Profiles:    NewGormProfileRepository(db),
		Orders:      NewGormOrderRepository(db),
		Ledgers:     NewGormLedgerStore(db),
	}
}
