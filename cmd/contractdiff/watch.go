package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/artpar/contractdiff/adapters/clock"
	"github.com/artpar/contractdiff/adapters/idgen"
	"github.com/artpar/contractdiff/app"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the diff whenever the new snapshot changes",
	Long: `Watch the new snapshot directory and re-run the full pipeline
after each burst of file changes. Each run is the same synchronous
pipeline as 'contractdiff diff'; only the trigger is event-driven.

Examples:
  contractdiff watch --old-dir schemas-main --new-dir schemas`,
	RunE: runWatch,
}

var (
	watchOldDir      string
	watchNewDir      string
	watchOutput      string
	watchVersionFile string
	watchConfigPath  string
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchOldDir, "old-dir", "schemas", "old snapshot directory")
	watchCmd.Flags().StringVar(&watchNewDir, "new-dir", "schemas", "new snapshot directory")
	watchCmd.Flags().StringVar(&watchOutput, "output", "contract-diff-report.json", "report output path")
	watchCmd.Flags().StringVar(&watchVersionFile, "version-file", "schemas/openapi/version.json", "current contract version file")
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "contract-diff.config.json", "diff policy file")
}

// debounce batches editor save bursts into one re-run.
const debounce = 500 * time.Millisecond

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLoggerFromEnv()

	runner := &app.Runner{
		OldDir:      watchOldDir,
		NewDir:      watchNewDir,
		Output:      watchOutput,
		VersionFile: watchVersionFile,
		ConfigPath:  watchConfigPath,
		Logger:      logger,
		Clock:       clock.Real{},
		IDGen:       idgen.UUID{},
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchSnapshot(watcher, watchNewDir, logger); err != nil {
		return err
	}

	runOnce := func() {
		rep, err := runner.Run(cmd.Context())
		if err != nil {
			logger.Error().Err(err).Msg("diff run failed")
			return
		}
		printSummary(rep)
	}

	// Initial run so the report exists before the first change.
	runOnce()
	logger.Info().Str("dir", watchNewDir).Msg("watching snapshot for changes")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// New subdirectories need watching too (atomic saves land
			// in fresh temp dirs).
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				_ = watcher.Add(event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")

		case <-sigCh:
			logger.Info().Msg("shutting down watch")
			return nil
		}
	}
}

// watchSnapshot registers the snapshot tree with the watcher. A missing
// snapshot directory matches the loader's treat-as-empty behavior: the
// parent is watched instead, so the pipeline re-runs once the directory
// appears.
func watchSnapshot(watcher *fsnotify.Watcher, root string, logger zerolog.Logger) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		parent := filepath.Dir(root)
		logger.Warn().Str("dir", root).Msg("snapshot directory missing, treating as empty and watching for it to appear")
		if err := watcher.Add(parent); err != nil {
			return fmt.Errorf("watch %s: %w", parent, err)
		}
		return nil
	}
	return watchTree(watcher, root)
}

// watchTree adds the root and every subdirectory to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if d.IsDir() {
			if err := watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}
