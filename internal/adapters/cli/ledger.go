package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ShakaofCarthage/empire-engine/internal/adapters/snapshot"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/goods"
	"github.com/ShakaofCarthage/empire-engine/internal/domain/shared"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect, export and restore warehouse stocks",
		Long: `Inspect the goods ledger of a game: the stock of every good held by every
nation in every region.

Snapshots are zstd compressed JSON carrying the ledger digest, so a restored
ledger is checked cell by cell.

Examples:
  turn-engine ledger show --game 3
  turn-engine ledger show --game 3 --nation 4 --region 1
  turn-engine ledger export --game 3 --out game-3.json.zst
  turn-engine ledger import --game 3 --in game-3.json.zst`,
	}

	cmd.AddCommand(newLedgerShowCommand())
	cmd.AddCommand(newLedgerExportCommand())
	cmd.AddCommand(newLedgerImportCommand())

	return cmd
}

// newLedgerShowCommand creates the ledger show subcommand
func newLedgerShowCommand() *cobra.Command {
	var nationID, regionID int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show warehouse stocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEngine(false)
			if err != nil {
				return err
			}
			defer env.Close()

			ledger, err := env.repos.Ledgers.LoadLedger(env.context(cmd.Context()), env.game)
			if err != nil {
				return err
			}
			displayLedger(ledger, shared.NationID(nationID), shared.RegionID(regionID))
			return nil
		},
	}

	cmd.Flags().IntVar(&nationID, "nation", 0, "Only this nation")
	cmd.Flags().IntVar(&regionID, "region", 0, "Only this region")

	return cmd
}

// newLedgerExportCommand creates the ledger export subcommand
func newLedgerExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ledger to a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEngine(false)
			if err != nil {
				return err
			}
			defer env.Close()

			ctx := env.context(cmd.Context())
			game, err := env.repos.Games.FindByID(ctx, env.game)
			if err != nil {
				return err
			}
			ledger, err := env.repos.Ledgers.LoadLedger(ctx, env.game)
			if err != nil {
				return err
			}

			snap := snapshot.FromLedger(ledger, game.Turn, shared.NewRealClock().Now())
			if out == "" {
				out = fmt.Sprintf("game-%d-turn-%d.json.zst", game.ID, game.Turn)
			}
			if err := snapshot.WriteFile(out, snap); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			fmt.Printf("Exported %d cells of game %d turn %d to %s\n", len(snap.Cells), game.ID, game.Turn, out)
			fmt.Printf("Digest: %s\n", snap.Header.Digest)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Snapshot file (default: game-<id>-turn-<turn>.json.zst)")

	return cmd
}

// newLedgerImportCommand creates the ledger import subcommand
func newLedgerImportCommand() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the ledger with a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEngine(true)
			if err != nil {
				return err
			}
			defer env.Close()

			snap, err := snapshot.ReadFile(in)
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			if shared.GameID(snap.Header.Game) != env.game {
				return fmt.Errorf("snapshot belongs to game %d, not game %d", snap.Header.Game, env.game)
			}
			ledger, err := snap.ToLedger()
			if err != nil {
				return err
			}
			if err := env.repos.Ledgers.SaveLedger(env.context(cmd.Context()), ledger); err != nil {
				return err
			}

			fmt.Printf("Restored %d cells of game %d turn %d\n", len(snap.Cells), snap.Header.Game, snap.Header.Turn)
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "", "Snapshot file")
	cmd.MarkFlagRequired("in")

	return cmd
}

// displayLedger prints one table per nation and region with stock
func displayLedger(ledger *goods.Ledger, onlyNation shared.NationID, onlyRegion shared.RegionID) {
	printed := 0
	for n := shared.NationFirst; n <= shared.NationLast; n++ {
		if onlyNation != 0 && n != onlyNation {
			continue
		}
		for r := shared.RegionFirst; r <= shared.RegionLast; r++ {
			if onlyRegion != 0 && r != onlyRegion {
				continue
			}
			stored := ledger.Warehouse(n, r)
			if len(stored) == 0 {
				continue
			}

			fmt.Printf("\n%s / %s\n", n, r)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "Good\tStock\tProduced\t")
			for _, g := range goods.AllGoods() {
				qty, ok := stored[g]
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t\n", g, formatQuantity(qty), formatQuantity(ledger.Produced(n, r, g)))
			}
			w.Flush()
			printed++
		}
	}

	if printed == 0 {
		fmt.Println("Ledger is empty")
	}
	fmt.Printf("\nDigest: %s\n", ledger.Digest())
}
