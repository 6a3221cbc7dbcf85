package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormCommanderRepository implements military.CommanderRepository using GORM
type GormCommanderRepository struct {
	db *gorm.DB
}

// NewGormCommanderRepository creates a new GORM commander repository
func NewGormCommanderRepository(db *gorm.DB) *GormCommanderRepository {
	return &GormCommanderRepository{db: db}
}

// FindAlive lists commanders not marked dead, ordered by id
func (r *GormCommanderRepository) FindAlive(ctx context.Context, game shared.GameID) ([]*military.Commander, error) {
	var models []CommanderModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND dead = ?", int(game), false).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list commanders: %w", result.Error)
	}

	commanders := make([]*military.Commander, 0, len(models))
	for i := range models {
		commanders = append(commanders, modelToCommander(&models[i]))
	}
	return commanders, nil
}

// Add persists a new commander
func (r *GormCommanderRepository) Add(ctx context.Context, c *military.Commander) error {
	model := commanderToModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add commander: %w", err)
	}
	c.ID = model.ID
	return nil
}

// Update saves a commander
func (r *GormCommanderRepository) Update(ctx context.Context, c *military.Commander) error {
	if err := r.db.WithContext(ctx).Save(commanderToModel(c)).Error; err != nil {
		return fmt.Errorf("failed to update commander: %w", err)
	}
	return nil
}

func modelToCommander(m *CommanderModel) *military.Commander {
	return &military.Commander{
		ID:       m.ID,
		GameID:   shared.GameID(m.GameID),
		Nation:   shared.NationID(m.NationID),
		Name:     m.Name,
		Position: position(m.Region, m.X, m.Y),
		Rank:     m.Rank,
		Strength: m.Strength,
		Command:  m.Command,
		Sick:     m.Sick,
		Dead:     m.Dead,
		ArmyID:   m.ArmyID,
		CorpID:   m.CorpID,
		Unpaid:   m.Unpaid,
	}
}

func commanderToModel(c *military.Commander) *CommanderModel {
	return &CommanderModel{
		ID:       c.ID,
		GameID:   int(c.GameID),
		NationID: int(c.Nation),
		Name:     c.Name,
		Region:   int(c.Position.Region),
		X:        c.Position.X,
		Y:        c.Position.Y,
		Rank:     c.Rank,
		Strength: c.Strength,
		Command:  c.Command,
		Sick:     c.Sick,
		Dead:     c.Dead,
		ArmyID:   c.ArmyID,
		CorpID:   c.CorpID,
		Unpaid:   c.Unpaid,
	}
}

// GormPrisonerRepository implements military.PrisonerRepository using GORM
type GormPrisonerRepository struct {
	db *gorm.DB
}

// NewGormPrisonerRepository creates a new GORM prisoner repository
func NewGormPrisonerRepository(db *gorm.DB) *GormPrisonerRepository {
	return &GormPrisonerRepository{db: db}
}

// FindByGame lists the prisoner relations of a game ordered by id
func (r *GormPrisonerRepository) FindByGame(ctx context.Context, game shared.GameID) ([]*military.PrisonerRelation, error) {
	var models []PrisonerModel
	result := r.db.WithContext(ctx).
		Where("game_id = ?", int(game)).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list prisoners: %w", result.Error)
	}

	relations := make([]*military.PrisonerRelation, 0, len(models))
	for _, m := range models {
		relations = append(relations, &military.PrisonerRelation{
			ID:      m.ID,
			GameID:  shared.GameID(m.GameID),
			Captor:  shared.NationID(m.Captor),
			Captive: shared.NationID(m.Captive),
			Count:   m.Count,
		})
	}
	return relations, nil
}

// Update saves a prisoner relation
func (r *GormPrisonerRepository) Update(ctx context.Context, p *military.PrisonerRelation) error {
	model := &PrisonerModel{
		ID:      p.ID,
		GameID:  int(p.GameID),
		Captor:  int(p.Captor),
		Captive: int(p.Captive),
		Count:   p.Count,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update prisoners: %w", err)
	}
	p.ID = model.ID
	return nil
}
