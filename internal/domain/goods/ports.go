package goods

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// LedgerStore loads and flushes the per-nation, per-region warehouse rows
type LedgerStore interface {
	// LoadLedger builds a ledger from the persisted warehouses of a game
	LoadLedger(ctx context.Context, game shared.GameID) (*Ledger, error)

	// SaveLedger writes every warehouse row back
	SaveLedger(ctx context.Context, ledger *Ledger) error
}
