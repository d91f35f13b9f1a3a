package main

import (
	"fmt"

	"github.com/artpar/contractdiff/adapters/clock"
	corever "github.com/artpar/contractdiff/core/version"
	"github.com/spf13/cobra"
)

var setVersionCmd = &cobra.Command{
	Use:   "set-version VERSION",
	Short: "Publish a new contract version with an audit note",
	Long: `Persist a new current contract version.

This is never done automatically: the diff pipeline only suggests a
bump. Publishing the version is an explicit operator action and is
recorded with a note and timestamp.

Examples:
  contractdiff set-version 2.0.0 --notes "removed legacy /v1 endpoints"
  contractdiff set-version 2.4.0 --version-file schemas/openapi/version.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSetVersion,
}

var (
	setVersionFile  string
	setVersionNotes string
)

func init() {
	rootCmd.AddCommand(setVersionCmd)

	setVersionCmd.Flags().StringVar(&setVersionFile, "version-file", "schemas/openapi/version.json", "contract version file to write")
	setVersionCmd.Flags().StringVar(&setVersionNotes, "notes", "", "audit note for the version change")
}

func runSetVersion(cmd *cobra.Command, args []string) error {
	v, err := corever.Parse(args[0])
	if err != nil {
		return err
	}

	if err := corever.WriteFile(setVersionFile, v, setVersionNotes, clock.Real{}.Now()); err != nil {
		return err
	}

	fmt.Printf("  %s Contract version set to %s (%s)\n", checkMark, v, setVersionFile)
	return nil
}
