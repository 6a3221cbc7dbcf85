package military

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// BrigadeRepository persists brigades together with their battalions
type BrigadeRepository interface {
	FindByID(ctx context.Context, game shared.GameID, id int) (*Brigade, error)
	FindByGame(ctx context.Context, game shared.GameID) ([]*Brigade, error)
	FindByPosition(ctx context.Context, game shared.GameID, pos shared.Position) ([]*Brigade, error)
	Add(ctx context.Context, b *Brigade) error
	Update(ctx context.Context, b *Brigade) error
}

// CommanderRepository persists commanders
type CommanderRepository interface {
	// FindAlive lists commanders not marked dead, ordered by id
	FindAlive(ctx context.Context, game shared.GameID) ([]*Commander, error)
	Update(ctx context.Context, c *Commander) error
}

// ShipRepository persists ships and their cargo
type ShipRepository interface {
	FindByID(ctx context.Context, game shared.GameID, id int) (*Ship, error)
	FindByGame(ctx context.Context, game shared.GameID) ([]*Ship, error)
	Add(ctx context.Context, s *Ship) error
	Update(ctx context.Context, s *Ship) error
	Delete(ctx context.Context, s *Ship) error
}

// BaggageTrainRepository persists baggage trains and their cargo
type BaggageTrainRepository interface {
	FindByID(ctx context.Context, game shared.GameID, id int) (*BaggageTrain, error)
	FindByGame(ctx context.Context, game shared.GameID) ([]*BaggageTrain, error)
	Add(ctx context.Context, t *BaggageTrain) error
	Update(ctx context.Context, t *BaggageTrain) error
	Delete(ctx context.Context, t *BaggageTrain) error
}

// PrisonerRepository persists prisoner-of-war relations
type PrisonerRepository interface {
	FindByGame(ctx context.Context, game shared.GameID) ([]*PrisonerRelation, error)
	Update(ctx context.Context, p *PrisonerRelation) error
}
