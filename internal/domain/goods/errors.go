package goods

import (
	"fmt"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// ErrInvalidCell is returned when a persisted warehouse row addresses a cell
// outside the ledger bounds.
type ErrInvalidCell struct {
	Nation shared.NationID
	Region shared.RegionID
	Good   Good
}

func (e *ErrInvalidCell) Error() string {
	return fmt.Sprintf("invalid ledger cell: nation=%d region=%d good=%d", e.Nation, e.Region, e.Good)
}

// ErrNegativeStock reports ledger cells that went below zero
type ErrNegativeStock struct {
	Cells []Cell
}

func (e *ErrNegativeStock) Error() string {
	first := e.Cells[0]
	return fmt.Sprintf("%d negative ledger cells, first nation=%d region=%d good=%d qty=%d",
		len(e.Cells), first.Nation, first.Region, first.Good, first.Quantity)
}
