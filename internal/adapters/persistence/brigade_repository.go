package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormBrigadeRepository implements military.BrigadeRepository using GORM.
// Battalions live in their own table and are written with their brigade.
type GormBrigadeRepository struct {
	db *gorm.DB
}

// NewGormBrigadeRepository creates a new GORM brigade repository
func NewGormBrigadeRepository(db *gorm.DB) *GormBrigadeRepository {
	return &GormBrigadeRepository{db: db}
}

// FindByID retrieves a brigade with its battalions
func (r *GormBrigadeRepository) FindByID(ctx context.Context, game shared.GameID, id int) (*military.Brigade, error) {
	var model BrigadeModel
	result := r.db.WithContext(ctx).
		Preload("Battalions", orderBattalions).
		Where("game_id = ? AND id = ?", int(game), id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("brigade", id)
		}
		return nil, fmt.Errorf("failed to find brigade: %w", result.Error)
	}
	return modelToBrigade(&model), nil
}

// FindByGame lists every brigade of a game ordered by id
func (r *GormBrigadeRepository) FindByGame(ctx context.Context, game shared.GameID) ([]*military.Brigade, error) {
	return r.find(r.db.WithContext(ctx).Where("game_id = ?", int(game)))
}

// FindByPosition lists the brigades standing on a coordinate
func (r *GormBrigadeRepository) FindByPosition(ctx context.Context, game shared.GameID, pos shared.Position) ([]*military.Brigade, error) {
	return r.find(r.db.WithContext(ctx).
		Where("game_id = ? AND region = ? AND x = ? AND y = ?", int(game), int(pos.Region), pos.X, pos.Y))
}

func (r *GormBrigadeRepository) find(query *gorm.DB) ([]*military.Brigade, error) {
	var models []BrigadeModel
	if err := query.Preload("Battalions", orderBattalions).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list brigades: %w", err)
	}

	brigades := make([]*military.Brigade, 0, len(models))
	for i := range models {
		brigades = append(brigades, modelToBrigade(&models[i]))
	}
	return brigades, nil
}

// Add persists a new brigade and its battalions, assigning ids
func (r *GormBrigadeRepository) Add(ctx context.Context, b *military.Brigade) error {
	model := brigadeToModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add brigade: %w", err)
	}
	b.ID = model.ID
	for i, bat := range b.Battalions {
		bat.ID = model.Battalions[i].ID
	}
	return nil
}

// Update saves a brigade and replaces its battalion set
func (r *GormBrigadeRepository) Update(ctx context.Context, b *military.Brigade) error {
	model := brigadeToModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Battalions").Save(model).Error; err != nil {
			return err
		}

		keep := make([]int, 0, len(model.Battalions))
		for _, bat := range model.Battalions {
			if bat.ID != 0 {
				keep = append(keep, bat.ID)
			}
		}
		stale := tx.Where("brigade_id = ?", model.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		if err := stale.Delete(&BattalionModel{}).Error; err != nil {
			return err
		}

		for i := range model.Battalions {
			if err := tx.Save(&model.Battalions[i]).Error; err != nil {
				return err
			}
			b.Battalions[i].ID = model.Battalions[i].ID
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update brigade: %w", err)
	}
	return nil
}

func orderBattalions(db *gorm.DB) *gorm.DB {
	return db.Order("ordinal")
}

func modelToBrigade(m *BrigadeModel) *military.Brigade {
	b := &military.Brigade{
		ID:         m.ID,
		GameID:     shared.GameID(m.GameID),
		Nation:     shared.NationID(m.NationID),
		Name:       m.Name,
		Position:   position(m.Region, m.X, m.Y),
		CorpID:     m.CorpID,
		Battalions: make([]*military.Battalion, 0, len(m.Battalions)),
	}
	for _, bat := range m.Battalions {
		b.Battalions = append(b.Battalions, &military.Battalion{
			ID:          bat.ID,
			TypeID:      bat.TypeID,
			Headcount:   bat.Headcount,
			Order:       bat.Ordinal,
			Experience:  bat.Experience,
			NotSupplied: bat.NotSupplied,
		})
	}
	return b
}

func brigadeToModel(b *military.Brigade) *BrigadeModel {
	m := &BrigadeModel{
		ID:         b.ID,
		GameID:     int(b.GameID),
		NationID:   int(b.Nation),
		Name:       b.Name,
		Region:     int(b.Position.Region),
		X:          b.Position.X,
		Y:          b.Position.Y,
		CorpID:     b.CorpID,
		Battalions: make([]BattalionModel, 0, len(b.Battalions)),
	}
	for _, bat := range b.Battalions {
		m.Battalions = append(m.Battalions, BattalionModel{
			ID:          bat.ID,
			BrigadeID:   b.ID,
			TypeID:      bat.TypeID,
			Headcount:   bat.Headcount,
			Ordinal:     bat.Order,
			Experience:  bat.Experience,
			NotSupplied: bat.NotSupplied,
		})
	}
	return m
}
