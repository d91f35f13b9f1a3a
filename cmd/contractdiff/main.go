// Package main is the entry point for contractdiff, the contract-diff
// pipeline CLI. It compares two snapshots of API and event schemas,
// classifies every structural change, and derives the semver bump the
// change set requires.
package main

var (
	// Set via ldflags at build time
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	Execute()
}
