package main

import (
	"fmt"

	"github.com/artpar/contractdiff/adapters/sqlite"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded diff runs",
	Long: `List past diff runs recorded with --history-db, newest first.

Examples:
  contractdiff history --history-db contract-diff.db
  contractdiff history --history-db contract-diff.db --limit 5`,
	RunE: runHistory,
}

var (
	historyDB    string
	historyLimit int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDB, "history-db", "contract-diff.db", "SQLite database with run history")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := sqlite.Open(historyDB)
	if err != nil {
		return fmt.Errorf("open history database: %w", err)
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate history database: %w", err)
	}

	runs, err := sqlite.NewRunStore(db).List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-38s %-20s %-6s %9s %9s %6s %9s  %s\n",
		"RUN", "WHEN", "BUMP", "BREAKING", "ADDITIVE", "DOCS", "REFACTOR", "VERSION")
	for _, r := range runs {
		fmt.Printf("%-38s %-20s %-6s %9d %9d %6d %9d  %s -> %s\n",
			r.ID, r.CreatedAt.UTC().Format("2006-01-02 15:04:05"), r.RequiredBump,
			r.BreakingCount, r.AdditiveCount, r.DocsOnlyCount, r.RefactorCount,
			r.OldVersion, r.NewVersion)
	}
	return nil
}
