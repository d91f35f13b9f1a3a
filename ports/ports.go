// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// Run is one recorded diff-pipeline execution.
type Run struct {
	ID            string
	OldDir        string
	NewDir        string
	BreakingCount int
	AdditiveCount int
	DocsOnlyCount int
	RefactorCount int
	RequiredBump  string
	OldVersion    string
	NewVersion    string
	CreatedAt     time.Time
}

// RunStore persists diff-run history.
type RunStore interface {
	// Record stores one completed run.
	Record(ctx context.Context, r Run) error

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)
}
