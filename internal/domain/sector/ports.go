package sector

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Repository defines persistence operations for sectors
type Repository interface {
	FindByID(ctx context.Context, game shared.GameID, id int) (*Sector, error)
	FindByPosition(ctx context.Context, game shared.GameID, pos shared.Position) (*Sector, error)

	// FindOwned lists every sector owned by a nation (neutral sectors excluded), ordered by id
	FindOwned(ctx context.Context, game shared.GameID) ([]*Sector, error)

	// FindWithProductionSite lists owned sectors that carry a production site, ordered by id
	FindWithProductionSite(ctx context.Context, game shared.GameID) ([]*Sector, error)

	Update(ctx context.Context, s *Sector) error
}
