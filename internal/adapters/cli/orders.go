package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/order"
)

// NewOrdersCommand creates the orders command with subcommands
func NewOrdersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and process player orders",
		Long: `Inspect and process the economic orders of a turn.

Orders run in submission order, grouped by type. Each order records a result:
positive on success, negative for a failed precondition, zero when its
parameters could not be decoded.

Examples:
  turn-engine orders list --game 3
  turn-engine orders list --game 3 --turn 11
  turn-engine orders process --game 3`,
	}

	cmd.AddCommand(newOrdersListCommand())
	cmd.AddCommand(newOrdersProcessCommand())

	return cmd
}

// newOrdersListCommand creates the orders list subcommand
func newOrdersListCommand() *cobra.Command {
	var turnNumber int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the orders of a turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEngine(false)
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := env.context(cmd.Context())
			if turnNumber == 0 {
				game, err := env.repos.Games.FindByID(ctx, env.game)
				if err != nil {
					return err
				}
				turnNumber = game.Turn
			}

			orders, err := env.repos.Orders.FindByTurn(ctx, env.game, turnNumber)
			if err != nil {
				return err
			}
			displayOrders(turnNumber, orders)
			return nil
		},
	}

	cmd.Flags().IntVar(&turnNumber, "turn", 0, "Turn (defaults to the current turn)")

	return cmd
}

// newOrdersProcessCommand creates the orders process subcommand
func newOrdersProcessCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process the pending orders of the current turn without the economy phases",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEngine(true)
			if err != nil {
				return err
			}
			defer env.Close()

			res, runErr := env.runner(seed).RunOrders(env.context(cmd.Context()), env.game)
			if err := env.writeMetrics(); err != nil {
				env.log.Warn().Err(err).Msg("metrics not written")
			}
			if runErr != nil {
				return fmt.Errorf("order batch failed: %w", runErr)
			}

			displayResult(res)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed of the random source (overrides engine.seed)")

	return cmd
}

func displayOrders(turnNumber int, orders []*order.Order) {
	if len(orders) == 0 {
		fmt.Printf("No orders for turn %d\n", turnNumber)
		return
	}

	fmt.Printf("\nORDERS OF TURN %d\n", turnNumber)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNation\tType\tPos\tParams\tResult\tExplanation")
	fmt.Fprintln(w, "──\t──────\t────\t───\t──────\t──────\t───────────")

	for _, o := range orders {
		result := "pending"
		if o.Processed {
			result = fmt.Sprintf("%d", o.Result)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			o.ID,
			o.Nation,
			o.Type,
			o.Position,
			strings.TrimRight(strings.Join(o.Params[:], ","), ","),
			result,
			o.Explanation,
		)
	}

	w.Flush()
	fmt.Printf("Total: %d orders\n\n", len(orders))
}
