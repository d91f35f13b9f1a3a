package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	// EnvLogLevel selects the zerolog level (default info).
	EnvLogLevel = "CONTRACTDIFF_LOG_LEVEL"

	// EnvLogFormat selects "console" for human output, JSON otherwise.
	EnvLogFormat = "CONTRACTDIFF_LOG_FORMAT"
)

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contractdiff",
	Short: "Contract-diff pipeline for API and event schemas",
	Long: `contractdiff gates changes to a service's public contract.

It compares two snapshots of schema files (OpenAPI and event
contracts), classifies every structural change as breaking, additive,
documentation-only, or internal refactor, and derives the minimal
semantic-version bump the change set requires.

When --old-dir and --new-dir point at the same directory the old side
is treated as empty, so every schema reports as an addition
(single-snapshot audit). The exit code is 0 even when breaking changes
are found; acting on the report is the caller's policy.

Typical use:
  contractdiff --old-dir schemas-main --new-dir schemas
  contractdiff set-version 2.0.0   # Publish a new contract version
  contractdiff history             # Inspect past runs
  contractdiff watch               # Re-run on snapshot changes`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLoggerFromEnv builds the process logger. Level and format come
// from the environment so CI can switch to JSON without new flags.
func setupLoggerFromEnv() zerolog.Logger {
	levelStr := os.Getenv(EnvLogLevel)
	if levelStr == "" {
		levelStr = "info"
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv(EnvLogFormat) == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
