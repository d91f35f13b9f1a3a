package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/contractdiff/adapters/sqlite"
	"github.com/artpar/contractdiff/ports"
)

func openStore(t *testing.T) *sqlite.RunStore {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return sqlite.NewRunStore(db)
}

func sampleRun(id string, at time.Time) ports.Run {
	return ports.Run{
		ID:            id,
		OldDir:        "schemas",
		NewDir:        "schemas-next",
		BreakingCount: 1,
		AdditiveCount: 2,
		DocsOnlyCount: 0,
		RefactorCount: 3,
		RequiredBump:  "major",
		OldVersion:    "1.2.0",
		NewVersion:    "2.0.0",
		CreatedAt:     at,
	}
}

func TestRunStore_RecordAndList(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.Record(ctx, sampleRun(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Record %s failed: %v", id, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-c" || runs[1].ID != "run-b" {
		t.Errorf("List order = [%s, %s], want newest first", runs[0].ID, runs[1].ID)
	}

	got := runs[0]
	if got.BreakingCount != 1 || got.RefactorCount != 3 {
		t.Errorf("counts = %+v", got)
	}
	if got.RequiredBump != "major" || got.NewVersion != "2.0.0" {
		t.Errorf("bump/version = %s/%s", got.RequiredBump, got.NewVersion)
	}
	if !got.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base.Add(2*time.Minute))
	}
}

func TestRunStore_ListEmpty(t *testing.T) {
	store := openStore(t)

	runs, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("List returned %d runs, want 0", len(runs))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
}
