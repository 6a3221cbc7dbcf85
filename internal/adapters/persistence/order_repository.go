package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindPending lists the unprocessed orders of a game turn
func (r *GormOrderRepository) FindPending(ctx context.Context, game shared.GameID, turn int) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).
		Where("game_id = ? AND turn = ? AND processed = ?", int(game), turn, false))
}

// FindByTurn lists every order of a game turn, processed or not
func (r *GormOrderRepository) FindByTurn(ctx context.Context, game shared.GameID, turn int) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("game_id = ? AND turn = ?", int(game), turn))
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var models []OrderModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, 0, len(models))
	for i := range models {
		o, err := modelToOrder(&models[i])
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Add persists a new order
func (r *GormOrderRepository) Add(ctx context.Context, o *order.Order) error {
	model, err := orderToModel(o)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to add order: %w", err)
	}
	o.ID = model.ID
	return nil
}

// Update stores the outcome of an order
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	model, err := orderToModel(o)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

func modelToOrder(m *OrderModel) (*order.Order, error) {
	o := &order.Order{
		ID:          m.ID,
		GameID:      shared.GameID(m.GameID),
		Nation:      shared.NationID(m.NationID),
		Turn:        m.Turn,
		Type:        order.Type(m.Type),
		Position:    m.Position,
		Processed:   m.Processed,
		Result:      m.Result,
		Explanation: m.Explanation,
	}
	if m.Params != "" {
		var params []string
		if err := json.Unmarshal([]byte(m.Params), &params); err != nil {
			return nil, fmt.Errorf("order %d: failed to unmarshal params: %w", m.ID, err)
		}
		copy(o.Params[:], params)
	}
	used, err := decodeGoods(m.UsedGoods)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", m.ID, err)
	}
	if len(used) > 0 {
		o.UsedGoods = used
	}
	return o, nil
}

func orderToModel(o *order.Order) (*OrderModel, error) {
	params, err := json.Marshal(o.Params[:])
	if err != nil {
		return nil, fmt.Errorf("order %d: failed to marshal params: %w", o.ID, err)
	}
	used, err := encodeGoods(o.UsedGoods)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}
	return &OrderModel{
		ID:          o.ID,
		GameID:      int(o.GameID),
		Turn:        o.Turn,
		NationID:    int(o.Nation),
		Type:        int(o.Type),
		Position:    o.Position,
		Params:      string(params),
		Processed:   o.Processed,
		Result:      o.Result,
		Explanation: o.Explanation,
		UsedGoods:   used,
	}, nil
}
