package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// GormLedgerStore implements goods.LedgerStore on the warehouses table.
// Each non-empty ledger cell is one row.
type GormLedgerStore struct {
	db *gorm.DB
}

// NewGormLedgerStore creates a new GORM ledger store
func NewGormLedgerStore(db *gorm.DB) *GormLedgerStore {
	return &GormLedgerStore{db: db}
}

// LoadLedger reads every warehouse row of a game into a fresh ledger
func (s *GormLedgerStore) LoadLedger(ctx context.Context, game shared.GameID) (*goods.Ledger, error) {
	var models []WarehouseModel
	result := s.db.WithContext(ctx).
		Where("game_id = ?", int(game)).
		Order("nation_id, region_id, good_id").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load warehouses: %w", result.Error)
	}

	type key struct {
		nation shared.NationID
		region shared.RegionID
	}
	rows := make(map[key]map[goods.Good]int)
	for _, m := range models {
		k := key{shared.NationID(m.NationID), shared.RegionID(m.RegionID)}
		if rows[k] == nil {
			rows[k] = make(map[goods.Good]int)
		}
		rows[k][goods.Good(m.GoodID)] = m.Quantity
	}

	ledger := goods.NewLedger(game)
	for k, stored := range rows {
		if err := ledger.LoadWarehouse(k.nation, k.region, stored); err != nil {
			return nil, fmt.Errorf("failed to load warehouse: %w", err)
		}
	}
	for _, m := range models {
		if m.Produced == 0 {
			continue
		}
		if err := ledger.LoadProduced(shared.NationID(m.NationID), shared.RegionID(m.RegionID), goods.Good(m.GoodID), m.Produced); err != nil {
			return nil, fmt.Errorf("failed to load production: %w", err)
		}
	}
	return ledger, nil
}

// SaveLedger writes every cell back in one transaction. Rows of cells that
// dropped to zero are kept with a zero quantity.
func (s *GormLedgerStore) SaveLedger(ctx context.Context, ledger *goods.Ledger) error {
	var models []WarehouseModel
	for n := shared.NationFirst; n <= shared.NationLast; n++ {
		for r := shared.RegionFirst; r <= shared.RegionLast; r++ {
			for g := goods.GoodFirst; g <= goods.GoodLast; g++ {
				qty := ledger.Get(n, r, g)
				produced := ledger.Produced(n, r, g)
				if qty == 0 && produced == 0 {
					continue
				}
				models = append(models, WarehouseModel{
					GameID:   int(ledger.Game()),
					NationID: int(n),
					RegionID: int(r),
					GoodID:   int(g),
					Quantity: qty,
					Produced: produced,
				})
			}
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&WarehouseModel{}).
			Where("game_id = ?", int(ledger.Game())).
			Updates(map[string]interface{}{"quantity": 0, "produced": 0}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "nation_id"}, {Name: "region_id"}, {Name: "good_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "produced"}),
		}).CreateInBatches(models, 200).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}
