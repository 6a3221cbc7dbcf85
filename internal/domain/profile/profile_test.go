package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/profile"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

type memoryRepository struct {
	rows map[string]*profile.Entry
}

func (m *memoryRepository) Find(_ context.Context, _ shared.GameID, nation shared.NationID, key string) (*profile.Entry, error) {
	row, ok := m.rows[nation.String()+key]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (m *memoryRepository) Save(_ context.Context, entry *profile.Entry) error {
	copied := *entry
	m.rows[entry.Nation.String()+entry.Key] = &copied
	return nil
}

func TestRecorder_AddAndMax(t *testing.T) {
	// Arrange
	repo := &memoryRepository{rows: make(map[string]*profile.Entry)}
	rec := profile.NewRecorder(repo)
	ctx := context.Background()

	// Act
	require.NoError(t, rec.Add(ctx, 1, shared.NationSpain, 7, profile.KeyFortressBuilt, 1))
	require.NoError(t, rec.Add(ctx, 1, shared.NationSpain, 7, profile.KeyFortressBuilt, 2))
	require.NoError(t, rec.Max(ctx, 1, shared.NationSpain, 7, profile.KeyMaxPopulation, 5000))
	require.NoError(t, rec.Max(ctx, 1, shared.NationSpain, 7, profile.KeyMaxPopulation, 3000))

	// Assert
	built, _ := repo.Find(ctx, 1, shared.NationSpain, profile.KeyFortressBuilt)
	assert.Equal(t, 3, built.Value)
	maxPop, _ := repo.Find(ctx, 1, shared.NationSpain, profile.KeyMaxPopulation)
	assert.Equal(t, 5000, maxPop.Value)
	assert.Equal(t, 7, maxPop.UserID)
}
