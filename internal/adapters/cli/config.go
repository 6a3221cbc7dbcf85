package cli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/persistence"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/config"
	"github.com/ShakaofCarthage/empire-engine/internal/infrastructure/database"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage turn engine configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (EE_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default game) are stored in ~/.empire-engine/config.json

Examples:
  turn-engine config show
  turn-engine config set-game 3
  turn-engine config clear-game`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetGameCommand())
	cmd.AddCommand(newConfigClearGameCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Turn Engine Configuration")
			fmt.Println("=========================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultGameID != nil {
				fmt.Printf("  Default Game:     %d\n", *userCfg.DefaultGameID)
			} else {
				fmt.Printf("  Default Game:     (not set)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nEngine:")
			fmt.Printf("  Game:             %d\n", cfg.Engine.Game)
			if cfg.Engine.Seed != 0 {
				fmt.Printf("  Seed:             %d\n", cfg.Engine.Seed)
			} else {
				fmt.Printf("  Seed:             (derived per turn)\n")
			}
			if cfg.Engine.TuningPath != "" {
				fmt.Printf("  Tuning:           %s\n", cfg.Engine.TuningPath)
			} else {
				fmt.Printf("  Tuning:           (embedded)\n")
			}
			fmt.Printf("  Fail Fast:        %t\n", cfg.Engine.FailFast)
			fmt.Printf("  Lock File:        %s\n", cfg.Engine.LockFile)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Textfile:         %s\n", cfg.Metrics.TextfilePath)
			}

			return nil
		},
	}

	return cmd
}

// newConfigSetGameCommand creates the config set-game subcommand
func newConfigSetGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-game <game-id>",
		Short: "Set default game",
		Long: `Set the default game used when neither --game nor engine.game is given.
The game must exist in the configured database.

Example:
  turn-engine config set-game 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid game id %q", args[0])
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			game, err := persistence.NewGormGameRepository(db).FindByID(context.Background(), shared.GameID(id))
			if err != nil {
				return fmt.Errorf("game %d not found: %w", id, err)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultGame(id); err != nil {
				return fmt.Errorf("failed to set default game: %w", err)
			}

			fmt.Println("✓ Default game set successfully")
			fmt.Printf("  Game ID:      %d\n", game.ID)
			fmt.Printf("  Current Turn: %d\n", game.Turn)
			fmt.Printf("\nOverride with --game.\n")

			return nil
		},
	}

	return cmd
}

// newConfigClearGameCommand creates the config clear-game subcommand
func newConfigClearGameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-game",
		Short: "Clear default game setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultGame(); err != nil {
				return fmt.Errorf("failed to clear default game: %w", err)
			}

			fmt.Println("✓ Default game cleared")
			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
