package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/artpar/contractdiff/ports"
)

// RunStore implements ports.RunStore using SQLite.
type RunStore struct {
	db *DB
}

// NewRunStore creates a new SQLite run store.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Record stores one completed diff run.
func (s *RunStore) Record(ctx context.Context, r ports.Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO diff_runs (
			id, old_dir, new_dir, breaking_count, additive_count,
			docs_only_count, refactor_count, required_bump,
			old_version, new_version, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.OldDir, r.NewDir, r.BreakingCount, r.AdditiveCount,
		r.DocsOnlyCount, r.RefactorCount, r.RequiredBump,
		r.OldVersion, r.NewVersion, r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *RunStore) List(ctx context.Context, limit int) ([]ports.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, old_dir, new_dir, breaking_count, additive_count,
		       docs_only_count, refactor_count, required_bump,
		       old_version, new_version, created_at
		FROM diff_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []ports.Run
	for rows.Next() {
		var r ports.Run
		var createdAt time.Time
		if err := rows.Scan(
			&r.ID, &r.OldDir, &r.NewDir, &r.BreakingCount, &r.AdditiveCount,
			&r.DocsOnlyCount, &r.RefactorCount, &r.RequiredBump,
			&r.OldVersion, &r.NewVersion, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt = createdAt
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

var _ ports.RunStore = (*RunStore)(nil)
