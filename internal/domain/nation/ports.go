package nation

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Repository defines persistence operations for nations
type Repository interface {
	FindByID(ctx context.Context, game shared.GameID, id shared.NationID) (*Nation, error)
	FindAll(ctx context.Context, game shared.GameID) ([]*Nation, error)
	Update(ctx context.Context, n *Nation) error
}

// RelationRepository resolves diplomatic relations. Relation(from, to) is the
// stance of `from` towards `to`; a missing row is RelationNone.
type RelationRepository interface {
	Relation(ctx context.Context, game shared.GameID, from, to shared.NationID) (Relation, error)
}

// GameRepository loads the custom-game flags
type GameRepository interface {
	FindByID(ctx context.Context, id shared.GameID) (*Game, error)
	Update(ctx context.Context, g *Game) error
}
