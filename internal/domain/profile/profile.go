// Package profile tracks per-nation player statistics and achievements.
package profile

import (
	"context"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// Keys bumped by the economy
const (
	KeyFortressBuilt = "fortress.built"
	KeyFortressHuge  = "fortress.huge"
	KeyVPGained      = "vp.gained"
	KeyMaxPopulation = "population.max"
	KeyTradeVolume   = "trade.volume"
)

// Entry is a numeric profile counter of a nation's player
type Entry struct {
	GameID shared.GameID
	Nation shared.NationID
	UserID int
	Key    string
	Value  int
}

// Recorder updates profile counters. Add accumulates a delta, Max keeps the
// highest value ever recorded.
type Recorder interface {
	Add(ctx context.Context, game shared.GameID, nation shared.NationID, user int, key string, delta int) error
	Max(ctx context.Context, game shared.GameID, nation shared.NationID, user int, key string, value int) error
}

// Repository stores profile rows
type Repository interface {
	Find(ctx context.Context, game shared.GameID, nation shared.NationID, key string) (*Entry, error)
	Save(ctx context.Context, entry *Entry) error
}

// repositoryRecorder implements Recorder on top of a Repository
type repositoryRecorder struct {
	repo Repository
}

// NewRecorder creates a Recorder backed by a repository
func NewRecorder(repo Repository) Recorder {
	return &repositoryRecorder{repo: repo}
}

func (r *repositoryRecorder) Add(ctx context.Context, game shared.GameID, nation shared.NationID, user int, key string, delta int) error {
	entry, err := r.load(ctx, game, nation, user, key)
	if err != nil {
		return err
	}
	entry.Value += delta
	return r.repo.Save(ctx, entry)
}

func (r *repositoryRecorder) Max(ctx context.Context, game shared.GameID, nation shared.NationID, user int, key string, value int) error {
	entry, err := r.load(ctx, game, nation, user, key)
	if err != nil {
		return err
	}
	if value <= entry.Value && entry.UserID == user {
		return nil
	}
	if value > entry.Value {
		entry.Value = value
	}
	return r.repo.Save(ctx, entry)
}

func (r *repositoryRecorder) load(ctx context.Context, game shared.GameID, nation shared.NationID, user int, key string) (*Entry, error) {
	entry, err := r.repo.Find(ctx, game, nation, key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &Entry{GameID: game, Nation: nation, Key: key}
	}
	entry.UserID = user
	return entry, nil
}
