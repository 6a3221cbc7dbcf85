package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/military"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormShipRepository implements military.ShipRepository using GORM
type GormShipRepository struct {
	db *gorm.DB
}

// NewGormShipRepository creates a new GORM ship repository
func NewGormShipRepository(db *gorm.DB) *GormShipRepository {
	return &GormShipRepository{db: db}
}

// FindByID retrieves a ship with its cargo
func (r *GormShipRepository) FindByID(ctx context.Context, game shared.GameID, id int) (*military.Ship, error) {
	var model ShipModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND id = ?", int(game), id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("ship", id)
		}
		return nil, fmt.Errorf("failed to find ship: %w", result.Error)
	}
	return modelToShip(&model)
}

// FindByGame lists every ship of a game ordered by id
func (r *GormShipRepository) FindByGame(ctx context.Context, game shared.GameID) ([]*military.Ship, error) {
	var models []ShipModel
	result := r.db.WithContext(ctx).Where("game_id = ?", int(game)).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list ships: %w", result.Error)
	}

	ships := make([]*military.Ship, 0, len(models))
	for i := range models {
		s, err := modelToShip(&models[i])
		if err != nil {
			return nil, err
		}
		ships = append(ships, s)
	}
	return ships, nil
}

// Add persists a new ship and assigns its id
func (r *GormShipRepository) Add(ctx context.Context, s *military.Ship) error {
	model, err := shipToModel(s)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add ship: %w", err)
	}
	s.ID = model.ID
	return nil
}

// Update saves a ship and its cargo
func (r *GormShipRepository) Update(ctx context.Context, s *military.Ship) error {
	model, err := shipToModel(s)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update ship: %w", err)
	}
	return nil
}

// Delete removes a scuttled ship
func (r *GormShipRepository) Delete(ctx context.Context, s *military.Ship) error {
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND id = ?", int(s.GameID), s.ID).
		Delete(&ShipModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete ship: %w", result.Error)
	}
	return nil
}

func modelToShip(m *ShipModel) (*military.Ship, error) {
	cargo, err := decodeGoods(m.Cargo)
	if err != nil {
		return nil, fmt.Errorf("ship %d: %w", m.ID, err)
	}
	return &military.Ship{
		ID:        m.ID,
		GameID:    shared.GameID(m.GameID),
		Nation:    shared.NationID(m.NationID),
		Name:      m.Name,
		TypeID:    m.TypeID,
		Position:  position(m.Region, m.X, m.Y),
		Marines:   m.Marines,
		Condition: m.Condition,
		Capacity:  m.Capacity,
		Unpaid:    m.Unpaid,
		Cargo:     cargo,
	}, nil
}

func shipToModel(s *military.Ship) (*ShipModel, error) {
	cargo, err := encodeGoods(s.Cargo)
	if err != nil {
		return nil, fmt.Errorf("ship %d: %w", s.ID, err)
	}
	return &ShipModel{
		ID:        s.ID,
		GameID:    int(s.GameID),
		NationID:  int(s.Nation),
		Name:      s.Name,
		TypeID:    s.TypeID,
		Region:    int(s.Position.Region),
		X:         s.Position.X,
		Y:         s.Position.Y,
		Marines:   s.Marines,
		Condition: s.Condition,
		Capacity:  s.Capacity,
		Unpaid:    s.Unpaid,
		Cargo:     cargo,
	}, nil
}

// GormBaggageTrainRepository implements military.BaggageTrainRepository using GORM
type GormBaggageTrainRepository struct {
	db *gorm.DB
}

// NewGormBaggageTrainRepository creates a new GORM baggage train repository
func NewGormBaggageTrainRepository(db *gorm.DB) *GormBaggageTrainRepository {
	return &GormBaggageTrainRepository{db: db}
}

// FindByID retrieves a baggage train with its cargo
func (r *GormBaggageTrainRepository) FindByID(ctx context.Context, game shared.GameID, id int) (*military.BaggageTrain, error) {
	var model BaggageTrainModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND id = ?", int(game), id).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("baggage train", id)
		}
		return nil, fmt.Errorf("failed to find baggage train: %w", result.Error)
	}
	return modelToTrain(&model)
}

// FindByGame lists every baggage train of a game ordered by id
func (r *GormBaggageTrainRepository) FindByGame(ctx context.Context, game shared.GameID) ([]*military.BaggageTrain, error) {
	var models []BaggageTrainModel
	result := r.db.WithContext(ctx).Where("game_id = ?", int(game)).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list baggage trains: %w", result.Error)
	}

	trains := make([]*military.BaggageTrain, 0, len(models))
	for i := range models {
		t, err := modelToTrain(&models[i])
		if err != nil {
			return nil, err
		}
		trains = append(trains, t)
	}
	return trains, nil
}

// Add persists a new baggage train and assigns its id
func (r *GormBaggageTrainRepository) Add(ctx context.Context, t *military.BaggageTrain) error {
	model, err := trainToModel(t)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add baggage train: %w", err)
	}
	t.ID = model.ID
	return nil
}

// Update saves a baggage train and its cargo
func (r *GormBaggageTrainRepository) Update(ctx context.Context, t *military.BaggageTrain) error {
	model, err := trainToModel(t)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update baggage train: %w", err)
	}
	return nil
}

// Delete removes a destroyed baggage train
func (r *GormBaggageTrainRepository) Delete(ctx context.Context, t *military.BaggageTrain) error {
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND id = ?", int(t.GameID), t.ID).
		Delete(&BaggageTrainModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete baggage train: %w", result.Error)
	}
	return nil
}

func modelToTrain(m *BaggageTrainModel) (*military.BaggageTrain, error) {
	cargo, err := decodeGoods(m.Cargo)
	if err != nil {
		return nil, fmt.Errorf("baggage train %d: %w", m.ID, err)
	}
	return &military.BaggageTrain{
		ID:        m.ID,
		GameID:    shared.GameID(m.GameID),
		Nation:    shared.NationID(m.NationID),
		Name:      m.Name,
		Position:  position(m.Region, m.X, m.Y),
		Condition: m.Condition,
		Capacity:  m.Capacity,
		Cargo:     cargo,
	}, nil
}

func trainToModel(t *military.BaggageTrain) (*BaggageTrainModel, error) {
	cargo, err := encodeGoods(t.Cargo)
	if err != nil {
		return nil, fmt.Errorf("baggage train %d: %w", t.ID, err)
	}
	return &BaggageTrainModel{
		ID:        t.ID,
		GameID:    int(t.GameID),
		NationID:  int(t.Nation),
		Name:      t.Name,
		Region:    int(t.Position.Region),
		X:         t.Position.X,
		Y:         t.Position.Y,
		Condition: t.Condition,
		Capacity:  t.Capacity,
		Cargo:     cargo,
	}, nil
}
