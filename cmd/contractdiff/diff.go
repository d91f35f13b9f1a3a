package main

import (
	"fmt"

	"github.com/artpar/contractdiff/adapters/clock"
	"github.com/artpar/contractdiff/adapters/idgen"
	"github.com/artpar/contractdiff/adapters/sqlite"
	"github.com/artpar/contractdiff/app"
	"github.com/artpar/contractdiff/core/report"
	corever "github.com/artpar/contractdiff/core/version"
	"github.com/spf13/cobra"
)

var (
	diffOldDir      string
	diffNewDir      string
	diffOutput      string
	diffVersionFile string
	diffConfigPath  string
	diffHistoryDB   string
)

func init() {
	// The pipeline runs on the bare root command: CI invokes
	// `contractdiff --old-dir ... --new-dir ...` directly.
	rootCmd.RunE = runDiff

	rootCmd.Flags().StringVar(&diffOldDir, "old-dir", "schemas", "old snapshot directory")
	rootCmd.Flags().StringVar(&diffNewDir, "new-dir", "schemas", "new snapshot directory")
	rootCmd.Flags().StringVar(&diffOutput, "output", "contract-diff-report.json", "report output path")
	rootCmd.Flags().StringVar(&diffVersionFile, "version-file", "schemas/openapi/version.json", "current contract version file")
	rootCmd.Flags().StringVar(&diffConfigPath, "config", "contract-diff.config.json", "diff policy file")
	rootCmd.Flags().StringVar(&diffHistoryDB, "history-db", "", "optional SQLite database recording run history")
}

func runDiff(cmd *cobra.Command, args []string) error {
	logger := setupLoggerFromEnv()

	runner := &app.Runner{
		OldDir:      diffOldDir,
		NewDir:      diffNewDir,
		Output:      diffOutput,
		VersionFile: diffVersionFile,
		ConfigPath:  diffConfigPath,
		Logger:      logger,
		Clock:       clock.Real{},
		IDGen:       idgen.UUID{},
	}

	if diffHistoryDB != "" {
		db, err := sqlite.Open(diffHistoryDB)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("migrate history database: %w", err)
		}
		runner.History = sqlite.NewRunStore(db)
	}

	rep, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(rep)
	return nil
}

func printSummary(rep *report.Report) {
	fmt.Printf("Contract diff %s\n\n", rep.RunID)
	fmt.Printf("  %s Breaking:   %d\n", mark(rep.Counts.Breaking == 0), rep.Counts.Breaking)
	fmt.Printf("  %s Additive:   %d\n", checkMark, rep.Counts.Additive)
	fmt.Printf("  %s Docs-only:  %d\n", checkMark, rep.Counts.DocsOnly)
	fmt.Printf("  %s Refactor:   %d\n", checkMark, rep.Counts.Refactor)
	fmt.Printf("  Total changes: %d\n\n", rep.Counts.Total)

	fmt.Printf("  Version: %s -> %s (bump: %s)\n", rep.Version.Current, rep.Version.SuggestedNew, rep.Version.RequiredBump)

	if len(rep.Classification.Breaking) > 0 {
		fmt.Printf("\nBreaking changes:\n")
		for _, c := range rep.Classification.Breaking {
			fmt.Printf("  %s [%s] %s (%s)\n", crossMark, c.Type, c.DottedPath(), c.Hint)
		}
	}

	if rep.Version.RequiredBump == corever.BumpMajor {
		fmt.Printf("\nThis change set requires a major version bump before release.\n")
	}
}

func mark(ok bool) string {
	if ok {
		return checkMark
	}
	return crossMark
}
