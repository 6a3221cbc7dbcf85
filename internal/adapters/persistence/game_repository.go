package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormGameRepository implements nation.GameRepository using GORM
type GormGameRepository struct {
	db *gorm.DB
}

// NewGormGameRepository creates a new GORM game repository
func NewGormGameRepository(db *gorm.DB) *GormGameRepository {
	return &GormGameRepository{db: db}
}

// FindByID retrieves a game by ID
func (r *GormGameRepository) FindByID(ctx context.Context, id shared.GameID) (*nation.Game, error) {
	var model GameModel
	result := r.db.WithContext(ctx).Where("id = ?", int(id)).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("game", id)
		}
		return nil, fmt.Errorf("failed to find game: %w", result.Error)
	}
	return modelToGame(&model), nil
}

// Add persists a new game
func (r *GormGameRepository) Add(ctx context.Context, g *nation.Game) error {
	if err := r.db.WithContext(ctx).Create(gameToModel(g)).Error; err != nil {
		return fmt.Errorf("failed to add game: %w", err)
	}
	return nil
}

// Update saves the turn counter and flags of a game
func (r *GormGameRepository) Update(ctx context.Context, g *nation.Game) error {
	if err := r.db.WithContext(ctx).Save(gameToModel(g)).Error; err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

func modelToGame(m *GameModel) *nation.Game {
	return &nation.Game{
		ID:                   shared.GameID(m.ID),
		Turn:                 m.Turn,
		StartYear:            m.StartYear,
		StartMonth:           m.StartMonth,
		DoubleCosts:          m.DoubleCosts,
		BoostedProduction:    m.BoostedProduction,
		BoostedTaxation:      m.BoostedTaxation,
		FastPopulationGrowth: m.FastPopulationGrowth,
		FastAppointment:      m.FastAppointment,
		Duration:             m.Duration,
	}
}

func gameToModel(g *nation.Game) *GameModel {
	return &GameModel{
		ID:                   int(g.ID),
		Turn:                 g.Turn,
		StartYear:            g.StartYear,
		StartMonth:           g.StartMonth,
		DoubleCosts:          g.DoubleCosts,
		BoostedProduction:    g.BoostedProduction,
		BoostedTaxation:      g.BoostedTaxation,
		FastPopulationGrowth: g.FastPopulationGrowth,
		FastAppointment:      g.FastAppointment,
		Duration:             g.Duration,
	}
}

// GormNationRepository implements nation.Repository using GORM
type GormNationRepository struct {
	db *gorm.DB
}

// NewGormNationRepository creates a new GORM nation repository
func NewGormNationRepository(db *gorm.DB) *GormNationRepository {
	return &GormNationRepository{db: db}
}

// FindByID retrieves one nation of a game
func (r *GormNationRepository) FindByID(ctx context.Context, game shared.GameID, id shared.NationID) (*nation.Nation, error) {
	var model NationModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND nation_id = ?", int(game), int(id)).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("nation", id)
		}
		return nil, fmt.Errorf("failed to find nation: %w", result.Error)
	}
	return modelToNation(&model), nil
}

// FindAll lists the nations of a game ordered by id
func (r *GormNationRepository) FindAll(ctx context.Context, game shared.GameID) ([]*nation.Nation, error) {
	var models []NationModel
	result := r.db.WithContext(ctx).
		Where("game_id = ?", int(game)).
		Order("nation_id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list nations: %w", result.Error)
	}

	nations := make([]*nation.Nation, 0, len(models))
	for i := range models {
		nations = append(nations, modelToNation(&models[i]))
	}
	return nations, nil
}

// Update saves a nation (upsert)
func (r *GormNationRepository) Update(ctx context.Context, n *nation.Nation) error {
	if err := r.db.WithContext(ctx).Save(nationToModel(n)).Error; err != nil {
		return fmt.Errorf("failed to update nation: %w", err)
	}
	return nil
}

func modelToNation(m *NationModel) *nation.Nation {
	return &nation.Nation{
		ID:                shared.NationID(m.NationID),
		GameID:            shared.GameID(m.GameID),
		Code:              m.Code,
		Name:              m.Name,
		TaxRate:           m.TaxRate,
		SphereOfInfluence: m.SphereOfInfluence,
		Alive:             m.Alive,
		VP:                m.VP,
		UserID:            m.UserID,
	}
}

func nationToModel(n *nation.Nation) *NationModel {
	return &NationModel{
		GameID:            int(n.GameID),
		NationID:          int(n.ID),
		Code:              n.Code,
		Name:              n.Name,
		TaxRate:           n.TaxRate,
		SphereOfInfluence: n.SphereOfInfluence,
		Alive:             n.Alive,
		VP:                n.VP,
		UserID:            n.UserID,
	}
}

// GormRelationRepository implements nation.RelationRepository using GORM
type GormRelationRepository struct {
	db *gorm.DB
}

// NewGormRelationRepository creates a new GORM relation repository
func NewGormRelationRepository(db *gorm.DB) *GormRelationRepository {
	return &GormRelationRepository{db: db}
}

// Relation returns the stance of from towards to. A missing row is RelationNone.
func (r *GormRelationRepository) Relation(ctx context.Context, game shared.GameID, from, to shared.NationID) (nation.Relation, error) {
	var model RelationModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND from_nation = ? AND to_nation = ?", int(game), int(from), int(to)).
		Limit(1).
		Find(&model)
	if result.Error != nil {
		return nation.RelationNone, fmt.Errorf("failed to find relation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nation.RelationNone, nil
	}
	return nation.Relation(model.Relation), nil
}

// SetRelation stores the stance of from towards to
func (r *GormRelationRepository) SetRelation(ctx context.Context, game shared.GameID, from, to shared.NationID, rel nation.Relation) error {
	model := &RelationModel{GameID: int(game), FromID: int(from), ToID: int(to), Relation: int(rel)}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "from_nation"}, {Name: "to_nation"}},
		DoUpdates: clause.AssignmentColumns([]string{"relation"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to set relation: %w", result.Error)
	}
	return nil
}
