package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ShakaofCarthage/empire-engine/internal/application/turn"
)

// NewTurnCommand creates the turn command with subcommands
func NewTurnCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Resolve game turns",
		Long: `Resolve the economy of a game turn.

A full run executes the economy phases in order and then processes the
pending orders of the turn. The ledger is committed after every phase.

Examples:
  turn-engine turn run --game 3
  turn-engine turn run --game 3 --economy-only
  turn-engine turn seed --game 3 --turn 12`,
	}

	cmd.AddCommand(newTurnRunCommand())
	cmd.AddCommand(newTurnSeedCommand())

	return cmd
}

// newTurnRunCommand creates the turn run subcommand
func newTurnRunCommand() *cobra.Command {
	var (
		seed        uint64
		economyOnly bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the economy phases and the order batch of the current turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEngine(true)
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := env.context(cmd.Context())
			runner := env.runner(seed)

			run := runner.RunTurn
			if economyOnly {
				run = runner.RunEconomy
			}
			res, runErr := run(ctx, env.game)
			if err := env.writeMetrics(); err != nil {
				env.log.Warn().Err(err).Msg("metrics not written")
			}
			if runErr != nil {
				return fmt.Errorf("turn failed: %w", runErr)
			}

			displayResult(res)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the random source (overrides engine.seed)")
	cmd.Flags().BoolVar(&economyOnly, "economy-only", false, "Skip the order batch")

	return cmd
}

// newTurnSeedCommand prints the seed a turn derives when none is configured
func newTurnSeedCommand() *cobra.Command {
	var turnNumber int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Print the derived random seed of a turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			game, err := resolveGameID(nil)
			if err != nil {
				return err
			}
			fmt.Println(turn.DeriveSeed(game, turnNumber))
			return nil
		},
	}

	cmd.Flags().IntVar(&turnNumber, "turn", 0, "Turn number")
	cmd.MarkFlagRequired("turn")

	return cmd
}

func displayResult(res *turn.Result) {
	fmt.Printf("\nTURN %d OF GAME %d\n", res.Turn, res.Game)
	fmt.Println("─────────────────────────────────────────────")
	fmt.Printf("  Run:       %s\n", res.RunID)
	fmt.Printf("  Seed:      %d\n", res.Seed)
	fmt.Printf("  Duration:  %s\n", res.Duration)
	if len(res.Phases) > 0 {
		fmt.Printf("  Phases:    %s\n", strings.Join(res.Phases, ", "))
	}
	if res.Orders != nil {
		fmt.Printf("  Orders:    %d processed, %d succeeded, %d failed, %d invalid\n",
			res.Orders.Processed, res.Orders.Succeeded, res.Orders.Failed, res.Orders.Invalid)
	}
	fmt.Printf("  Digest:    %s\n", res.Digest)
	fmt.Println("─────────────────────────────────────────────")
}

