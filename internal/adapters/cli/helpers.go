package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/metrics"
	"github.com/ShakaofCarthage/empire-engine/internal/adapters/persistence"
	"github.com/ShakaofCarthage/empire-engine/internal/application/common"
	"github.com/ShakaofCarthage/empire-engine/internal/application/economy"
	"github.com/ShakaofCarthage/empire-engine/internal/application/setup"
	"github.com/ShakaofCarthage/empire-engine/internal/application/turn"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/config"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/database"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/logging"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/pidfile"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/tuning"
)

// resolveGameID picks the game of a command
// Priority: --game flag > engine.game > user config default
func resolveGameID(cfg *config.Config) (shared.GameID, error) {
	if gameID > 0 {
		return shared.GameID(gameID), nil
	}
	if cfg != nil && cfg.Engine.Game > 0 {
		return shared.GameID(cfg.Engine.Game), nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return 0, fmt.Errorf("no game specified and failed to load user config: %w", err)
	}
	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return 0, fmt.Errorf("no game specified and failed to load user config: %w", err)
	}
	if userCfg.DefaultGameID != nil {
		return shared.GameID(*userCfg.DefaultGameID), nil
	}

	return 0, fmt.Errorf("no game specified: use --game, set engine.game, or run 'turn-engine config set-game'")
}

// engineEnv is everything a command needs to talk to one game database
type engineEnv struct {
	cfg      *config.Config
	game     shared.GameID
	log      zerolog.Logger
	db       *gorm.DB
	repos    *persistence.Repositories
	deps     *economy.Dependencies
	rules    *rules.Rules
	commands *metrics.CommandMetricsCollector

	logCloser io.Closer
	lock      *pidfile.PIDFile
}

// openEngine loads configuration, logging, the database and the balance
// catalog. Writers pass exclusive to hold engine.lock_file until Close.
func openEngine(exclusive bool) (*engineEnv, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	game, err := resolveGameID(cfg)
	if err != nil {
		return nil, err
	}

	zl, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	env := &engineEnv{cfg: cfg, game: game, log: zl, logCloser: logCloser}

	if exclusive && cfg.Engine.LockFile != "" {
		lock := pidfile.New(cfg.Engine.LockFile)
		if err := lock.Acquire(); err != nil {
			env.Close()
			return nil, err
		}
		env.lock = lock
	}

	r, err := loadRules(cfg.Engine.TuningPath)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.rules = r

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.db = db
	if err := database.AutoMigrate(db); err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := env.initMetrics(); err != nil {
		env.Close()
		return nil, err
	}

	clock := shared.NewRealClock()
	env.repos = persistence.NewRepositories(db, clock)
	env.deps = setup.NewDependencies(env.repos, clock)
	return env, nil
}

func loadRules(path string) (*rules.Rules, error) {
	if path == "" {
		return tuning.MustDefault(), nil
	}
	r, err := tuning.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuning file: %w", err)
	}
	return r, nil
}

func (e *engineEnv) initMetrics() error {
	if !e.cfg.Metrics.Enabled {
		return nil
	}
	metrics.InitRegistry()

	turnCollector := metrics.NewTurnMetricsCollector()
	if err := turnCollector.Register(); err != nil {
		return fmt.Errorf("failed to register turn metrics: %w", err)
	}
	metrics.SetGlobalTurnCollector(turnCollector)

	e.commands = metrics.NewCommandMetricsCollector()
	if err := e.commands.Register(); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}
	return nil
}

// context carries the zerolog-backed turn logger. The pid matches the one
// written to engine.lock_file.
func (e *engineEnv) context(ctx context.Context) context.Context {
	return common.WithLogger(ctx, logging.NewTurnLogger(e.log).With("pid", os.Getpid()))
}

func (e *engineEnv) runner(seed uint64) *turn.Runner {
	if seed == 0 {
		seed = e.cfg.Engine.Seed
	}
	return turn.NewRunner(e.deps, e.repos.Ledgers, e.repos.Orders, e.rules, setup.NewHandlerRegistry(e.deps), turn.Options{
		Seed:     seed,
		FailFast: e.cfg.Engine.FailFast,
		Commands: e.commands,
	})
}

// writeMetrics dumps the registry for the node exporter textfile collector
func (e *engineEnv) writeMetrics() error {
	if !metrics.IsEnabled() {
		return nil
	}
	if err := prometheus.WriteToTextfile(e.cfg.Metrics.TextfilePath, metrics.GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Close releases the database, the lock and the log file
func (e *engineEnv) Close() {
	if e.db != nil {
		if err := database.Close(e.db); err != nil {
			e.log.Warn().Err(err).Msg("failed to close database")
		}
	}
	if e.lock != nil {
		if err := e.lock.Release(); err != nil {
			e.log.Warn().Err(err).Msg("failed to release lock file")
		}
	}
	if e.logCloser != nil {
		_ = e.logCloser.Close()
	}
}

// formatQuantity formats a quantity with thousands separators
func formatQuantity(n int) string {
	if n < 0 {
		return "-" + addThousandsSeparator(-n)
	}
	return addThousandsSeparator(n)
}

// addThousandsSeparator adds commas to a number (e.g., 1234567 -> "1,234,567")
func addThousandsSeparator(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Insert commas from right to left
	var result []byte
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
