package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormProfileRepository implements profile.Repository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Find returns a profile row, or nil when the key was never recorded
func (r *GormProfileRepository) Find(ctx context.Context, game shared.GameID, n shared.NationID, key string) (*profile.Entry, error) {
	var model ProfileModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND nation_id = ? AND profile_key = ?", int(game), int(n), key).
		Limit(1).
		Find(&model)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &profile.Entry{
		GameID: shared.GameID(model.GameID),
		Nation: shared.NationID(model.NationID),
		UserID: model.UserID,
		Key:    model.Key,
		Value:  model.Value,
	}, nil
}

// Save upserts a profile row
func (r *GormProfileRepository) Save(ctx context.Context, entry *profile.Entry) error {
	model := &ProfileModel{
		GameID:   int(entry.GameID),
		NationID: int(entry.Nation),
		Key:      entry.Key,
		UserID:   entry.UserID,
		Value:    entry.Value,
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
