package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/sector"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormSectorRepository implements sector.Repository using GORM
type GormSectorRepository struct {
	db *gorm.DB
}

// NewGormSectorRepository creates a new GORM sector repository
func NewGormSectorRepository(db *gorm.DB) *GormSectorRepository {
	return &GormSectorRepository{db: db}
}

// FindByID retrieves a sector by ID
func (r *GormSectorRepository) FindByID(ctx context.Context, game shared.GameID, id int) (*sector.Sector, error) {
	var model SectorModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND id = ?", int(game), id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("sector", id)
		}
		return nil, fmt.Errorf("failed to find sector: %w", result.Error)
	}
	return modelToSector(&model), nil
}

// FindByPosition retrieves the sector at a map coordinate
func (r *GormSectorRepository) FindByPosition(ctx context.Context, game shared.GameID, pos shared.Position) (*sector.Sector, error) {
	var model SectorModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND region = ? AND x = ? AND y = ?", int(game), int(pos.Region), pos.X, pos.Y).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("sector", pos.String())
		}
		return nil, fmt.Errorf("failed to find sector: %w", result.Error)
	}
	return modelToSector(&model), nil
}

// FindOwned lists every owned sector of a game ordered by id
func (r *GormSectorRepository) FindOwned(ctx context.Context, game shared.GameID) ([]*sector.Sector, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("game_id = ? AND owner > ?", int(game), int(shared.NationNeutral)))
}

// FindWithProductionSite lists owned sectors carrying a production site
func (r *GormSectorRepository) FindWithProductionSite(ctx context.Context, game shared.GameID) ([]*sector.Sector, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("game_id = ? AND owner > ? AND production_site > ?", int(game), int(shared.NationNeutral), int(sector.SiteNone)))
}

func (r *GormSectorRepository) find(ctx context.Context, query *gorm.DB) ([]*sector.Sector, error) {
	var models []SectorModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}

	sectors := make([]*sector.Sector, 0, len(models))
	for i := range models {
		sectors = append(sectors, modelToSector(&models[i]))
	}
	return sectors, nil
}

// Add persists a new sector
func (r *GormSectorRepository) Add(ctx context.Context, s *sector.Sector) error {
	model := sectorToModel(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add sector: %w", err)
	}
	s.ID = model.ID
	return nil
}

// Update saves a sector
func (r *GormSectorRepository) Update(ctx context.Context, s *sector.Sector) error {
	if err := r.db.WithContext(ctx).Save(sectorToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to update sector: %w", err)
	}
	return nil
}

func modelToSector(m *SectorModel) *sector.Sector {
	return &sector.Sector{
		ID:               m.ID,
		GameID:           shared.GameID(m.GameID),
		Position:         position(m.Region, m.X, m.Y),
		Owner:            shared.NationID(m.Owner),
		PoliticalSphere:  m.PoliticalSphere,
		PopulationLevel:  m.PopulationLevel,
		NaturalResource:  sector.NaturalResource(m.NaturalResource),
		ProductionSite:   sector.SiteType(m.ProductionSite),
		ConqueredCounter: m.ConqueredCounter,
		BuildProgress:    m.BuildProgress,
		Fort:             sector.Fort(m.Fort),
		PendingFort:      sector.Fort(m.PendingFort),
		Payed:            m.Payed,
	}
}

func sectorToModel(s *sector.Sector) *SectorModel {
	return &SectorModel{
		ID:               s.ID,
		GameID:           int(s.GameID),
		Region:           int(s.Position.Region),
		X:                s.Position.X,
		Y:                s.Position.Y,
		Owner:            int(s.Owner),
		PoliticalSphere:  s.PoliticalSphere,
		PopulationLevel:  s.PopulationLevel,
		NaturalResource:  int(s.NaturalResource),
		ProductionSite:   int(s.ProductionSite),
		ConqueredCounter: s.ConqueredCounter,
		BuildProgress:    s.BuildProgress,
		Fort:             int(s.Fort),
		PendingFort:      int(s.PendingFort),
		Payed:            s.Payed,
	}
}
