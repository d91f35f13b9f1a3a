package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/contractdiff/adapters/clock"
	"github.com/artpar/contractdiff/adapters/idgen"
	"github.com/artpar/contractdiff/core/classify"
	"github.com/artpar/contractdiff/core/diff"
	"github.com/artpar/contractdiff/core/report"
	"github.com/artpar/contractdiff/core/version"
)

func fixtureClassification() classify.Classification {
	return classify.Classification{
		Breaking: []diff.Change{
			{Type: diff.Remove, Path: []string{"a.json", "paths", "/x", "get"}, Hint: diff.HintEndpointRemoved},
		},
		Additive: []diff.Change{
			{Type: diff.Add, Path: []string{"a.json", "info", "contact"}, Hint: diff.HintFieldAdded},
			{Type: diff.Add, Path: []string{"b.json"}, Hint: diff.HintSchemaAdded},
		},
		DocsOnly: []diff.Change{},
		Refactor: []diff.Change{},
	}
}

func TestBuild(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	ids := idgen.NewSequential("run")
	cls := fixtureClassification()
	vi := version.Info{Current: "1.0.0", RequiredBump: version.BumpMajor, SuggestedNew: "2.0.0"}

	r := report.Build(ids, fake, cls, vi)

	if r.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", r.RunID)
	}
	if r.GeneratedAt != "2025-06-01T09:30:00Z" {
		t.Errorf("GeneratedAt = %q", r.GeneratedAt)
	}
	if r.Counts.Breaking != 1 || r.Counts.Additive != 2 || r.Counts.Total != 3 {
		t.Errorf("Counts = %+v", r.Counts)
	}
	if r.Version.SuggestedNew != "2.0.0" {
		t.Errorf("SuggestedNew = %q, want 2.0.0", r.Version.SuggestedNew)
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := os.WriteFile(path, []byte(`{"stale":true}`), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	fake := clock.NewFake(time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))
	r := report.Build(idgen.NewSequential("run"), fake, fixtureClassification(),
		version.Info{Current: "1.0.0", RequiredBump: version.BumpMajor, SuggestedNew: "2.0.0"})

	if err := r.Write(path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var decoded report.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Counts.Total != 3 {
		t.Errorf("Total = %d, want 3", decoded.Counts.Total)
	}
	if decoded.Classification.DocsOnly == nil {
		t.Error("empty bucket should decode as [], not null")
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	fake := clock.NewFake(time.Now())
	r := report.Build(idgen.NewSequential("run"), fake, fixtureClassification(),
		version.Info{Current: "1.0.0", RequiredBump: version.BumpNone, SuggestedNew: "1.0.0"})

	path := filepath.Join(t.TempDir(), "missing-dir", "report.json")
	if err := r.Write(path); err == nil {
		t.Error("expected error for unwritable path")
	}
}
