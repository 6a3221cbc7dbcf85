package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/trade"
)

// GormTradeCityRepository implements trade.CityRepository using GORM
type GormTradeCityRepository struct {
	db *gorm.DB
}

// NewGormTradeCityRepository creates a new GORM trade city repository
func NewGormTradeCityRepository(db *gorm.DB) *GormTradeCityRepository {
	return &GormTradeCityRepository{db: db}
}

// FindByID retrieves a trade city with its good levels
func (r *GormTradeCityRepository) FindByID(ctx context.Context, game shared.GameID, id int) (*trade.City, error) {
	var model TradeCityModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND id = ?", int(game), id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("trade city", id)
		}
		return nil, fmt.Errorf("failed to find trade city: %w", result.Error)
	}
	return modelToCity(&model)
}

// FindByGame lists the trade cities of a game ordered by id
func (r *GormTradeCityRepository) FindByGame(ctx context.Context, game shared.GameID) ([]*trade.City, error) {
	var models []TradeCityModel
	result := r.db.WithContext(ctx).Where("game_id = ?", int(game)).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list trade cities: %w", result.Error)
	}

	cities := make([]*trade.City, 0, len(models))
	for i := range models {
		c, err := modelToCity(&models[i])
		if err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, nil
}

// Save upserts a trade city
func (r *GormTradeCityRepository) Save(ctx context.Context, c *trade.City) error {
	levels, err := encodeGoods(c.Levels)
	if err != nil {
		return fmt.Errorf("trade city %d: %w", c.ID, err)
	}
	model := &TradeCityModel{
		ID:     c.ID,
		GameID: int(c.GameID),
		Name:   c.Name,
		Region: int(c.Position.Region),
		X:      c.Position.X,
		Y:      c.Position.Y,
		Owner:  int(c.Owner),
		Levels: levels,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save trade city: %w", err)
	}
	c.ID = model.ID
	return nil
}

func modelToCity(m *TradeCityModel) (*trade.City, error) {
	levels, err := decodeGoods(m.Levels)
	if err != nil {
		return nil, fmt.Errorf("trade city %d: %w", m.ID, err)
	}
	return &trade.City{
		ID:       m.ID,
		GameID:   shared.GameID(m.GameID),
		Name:     m.Name,
		Position: position(m.Region, m.X, m.Y),
		Owner:    shared.NationID(m.Owner),
		Levels:   levels,
	}, nil
}
