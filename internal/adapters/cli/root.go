package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	gameID     int
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "turn-engine",
		Short: "Empire turn engine - resolve the economy and orders of a game turn",
		Long: `turn-engine resolves one turn of a game against its database: taxation and
population growth, production, upkeep of armies, fleets and baggage trains,
and the economic orders submitted by the players.

Examples:
  turn-engine turn run --game 3
  turn-engine turn run --game 3 --seed 42
  turn-engine orders list --game 3
  turn-engine ledger show --game 3 --nation 4
  turn-engine ledger export --game 3 --out snapshots/game-3.json.zst
  turn-engine config set-game 3`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ./, ./configs, /etc/empire-engine)")
	rootCmd.PersistentFlags().IntVar(&gameID, "game", 0,
		"Game ID (defaults to engine.game, then the user default)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log at debug level")

	rootCmd.AddCommand(NewTurnCommand())
	rootCmd.AddCommand(NewOrdersCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
