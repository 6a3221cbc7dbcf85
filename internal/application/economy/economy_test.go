package economy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/tuning"
	"github.com/ShakaofCarthage/empire-engine/test/helpers"
)

func loadTurn(t *testing.T, w *helpers.World, rng shared.Random) *economy.Turn {
	t.Helper()
	turn, err := economy.LoadTurn(context.Background(), w.Dependencies(), w.LedgerStore(), tuning.MustDefault(), w.Game.ID, rng)
	require.NoError(t, err)
	return turn
}

func reportValue(t *testing.T, w *helpers.World, n shared.NationID, key string) string {
	t.Helper()
	v, ok := w.Report(n, w.Game.Turn, key)
	require.True(t, ok, "report %s missing for %s", key, n)
	return v
}
