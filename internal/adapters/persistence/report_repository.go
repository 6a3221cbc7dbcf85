package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/report"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormReportRepository implements report.Store using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// Get returns the value of a report key, ok is false when no row exists
func (r *GormReportRepository) Get(ctx context.Context, game shared.GameID, n shared.NationID, turn int, key string) (string, bool, error) {
	var model ReportModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND nation_id = ? AND turn = ? AND report_key = ?", int(game), int(n), turn, key).
		Limit(1).
		Find(&model)
	if result.Error != nil {
		return "", false, fmt.Errorf("failed to find report: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return model.Value, true, nil
}

// Put upserts a report value
func (r *GormReportRepository) Put(ctx context.Context, entry report.Entry) error {
	model := &ReportModel{
		GameID:   int(entry.GameID),
		NationID: int(entry.Nation),
		Turn:     entry.Turn,
		Key:      entry.Key,
		Value:    entry.Value,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "nation_id"}, {Name: "turn"}, {Name: "report_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to put report: %w", result.Error)
	}
	return nil
}

// FindByTurn lists every report row of a nation for one turn ordered by key
func (r *GormReportRepository) FindByTurn(ctx context.Context, game shared.GameID, n shared.NationID, turn int) ([]report.Entry, error) {
	var models []ReportModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND nation_id = ? AND turn = ?", int(game), int(n), turn).
		Order("report_key").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list reports: %w", result.Error)
	}

	entries := make([]report.Entry, 0, len(models))
	for _, m := range models {
		entries = append(entries, report.Entry{
			GameID: shared.GameID(m.GameID),
			Nation: shared.NationID(m.NationID),
			Turn:   m.Turn,
			Key:    m.Key,
			Value:  m.Value,
		})
	}
	return entries, nil
}

// GormNewsRepository implements report.NewsStore using GORM
type GormNewsRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormNewsRepository creates a new GORM news repository
func NewGormNewsRepository(db *gorm.DB, clock shared.Clock) *GormNewsRepository {
	if clock == nil {
		clock = &shared.RealClock{}
	}
	return &GormNewsRepository{db: db, clock: clock}
}

// Append stores a news entry and returns its id. Entries without a BaseID
// start a new thread keyed by a fresh uuid.
func (r *GormNewsRepository) Append(ctx context.Context, news *report.News) (int, error) {
	if news.BaseID == "" {
		news.BaseID = uuid.New().String()
	}
	if news.CreatedAt.IsZero() {
		news.CreatedAt = r.clock.Now()
	}
	model := &NewsModel{
		GameID:    int(news.GameID),
		Turn:      news.Turn,
		NationID:  int(news.Nation),
		Subject:   int(news.Subject),
		Type:      int(news.Type),
		Global:    news.Global,
		BaseID:    news.BaseID,
		Text:      news.Text,
		CreatedAt: news.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return 0, fmt.Errorf("failed to append news: %w", err)
	}
	news.ID = model.ID
	return model.ID, nil
}

// FindByTurn lists the news addressed to a nation for one turn, global
// entries included
func (r *GormNewsRepository) FindByTurn(ctx context.Context, game shared.GameID, n shared.NationID, turn int) ([]*report.News, error) {
	var models []NewsModel
	result := r.db.WithContext(ctx).
		Where("game_id = ? AND turn = ? AND (nation_id = ? OR global = ?)", int(game), turn, int(n), true).
		Order("id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list news: %w", result.Error)
	}

	items := make([]*report.News, 0, len(models))
	for _, m := range models {
		items = append(items, &report.News{
			ID:        m.ID,
			GameID:    shared.GameID(m.GameID),
			Turn:      m.Turn,
			Nation:    shared.NationID(m.NationID),
			Subject:   shared.NationID(m.Subject),
			Type:      report.NewsType(m.Type),
			Global:    m.Global,
			BaseID:    m.BaseID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		})
	}
	return items, nil
}
