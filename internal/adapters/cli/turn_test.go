package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/persistence"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/nation"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/config"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/database"
)

// seedGame writes a config file and a one-nation game into a sqlite file
func seedGame(t *testing.T) (cfgPath string, dir string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`
database:
  type: sqlite
  path: %s
engine:
  lock_file: %s
logging:
  output: file
  file_path: %s
metrics:
  enabled: true
  textfile_path: %s
`, filepath.Join(dir, "empire.db"), filepath.Join(dir, "engine.pid"), filepath.Join(dir, "engine.log"), filepath.Join(dir, "engine.prom"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	db, err := database.NewConnection(&cfg.Database)
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	ctx := context.Background()
	repos := persistence.NewRepositories(db, shared.NewRealClock())
	require.NoError(t, repos.Games.Add(ctx, &nation.Game{ID: 3, Turn: 5, StartYear: 1805, Duration: 100}))
	require.NoError(t, repos.Nations.Update(ctx, &nation.Nation{ID: shared.NationAustria, GameID: 3, Code: "A", Name: "Austria", TaxRate: 2, Alive: true}))
	ledger := goods.NewLedger(3)
	ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodMoney, 500000)
	ledger.Set(shared.NationAustria, shared.RegionEurope, goods.GoodFood, 20000)
	require.NoError(t, repos.Ledgers.SaveLedger(ctx, ledger))
	return cfgPath, dir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		gameID, configPath, verbose = 0, "", false
	})
	root := NewRootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func TestTurnRun_EndToEnd(t *testing.T) {
	// Arrange
	cfgPath, dir := seedGame(t)

	// Act
	err := execute(t, "--config", cfgPath, "--game", "3", "turn", "run", "--seed", "7")

	// Assert
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "engine.pid"))
	assert.True(t, os.IsNotExist(statErr), "lock released")

	prom, err := os.ReadFile(filepath.Join(dir, "engine.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(prom), "empire_engine_turn_duration_seconds")
	assert.Contains(t, string(prom), "empire_engine_phases_total")

	logs, err := os.ReadFile(filepath.Join(dir, "engine.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"run":`)
}

func TestTurnRun_RefusesWhileLocked(t *testing.T) {
	cfgPath, dir := seedGame(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "engine.pid"), []byte("1\n"), 0o644))

	err := execute(t, "--config", cfgPath, "--game", "3", "turn", "run")

	assert.ErrorContains(t, err, "engine already running")
}

func TestLedgerExportImport(t *testing.T) {
	// Arrange
	cfgPath, dir := seedGame(t)
	snap := filepath.Join(dir, "snapshots", "game-3.json.zst")
	require.NoError(t, execute(t, "--config", cfgPath, "--game", "3", "ledger", "export", "--out", snap))

	cfg, err := config.LoadConfig(cfgPath)
	require.NoError(t, err)
	db, err := database.NewConnection(&cfg.Database)
	require.NoError(t, err)
	repos := persistence.NewRepositories(db, shared.NewRealClock())
	ctx := context.Background()
	before, err := repos.Ledgers.LoadLedger(ctx, 3)
	require.NoError(t, err)
	changed := goods.NewLedger(3)
	changed.Set(shared.NationFrance, shared.RegionEurope, goods.GoodWood, 1)
	require.NoError(t, repos.Ledgers.SaveLedger(ctx, changed))
	require.NoError(t, database.Close(db))

	// Act
	err = execute(t, "--config", cfgPath, "--game", "3", "ledger", "import", "--in", snap)

	// Assert
	require.NoError(t, err)
	db, err = database.NewConnection(&cfg.Database)
	require.NoError(t, err)
	defer database.Close(db)
	after, err := persistence.NewRepositories(db, shared.NewRealClock()).Ledgers.LoadLedger(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, before.Digest(), after.Digest())

	assert.ErrorContains(t, execute(t, "--config", cfgPath, "--game", "4", "ledger", "import", "--in", snap), "belongs to game 3")
}
