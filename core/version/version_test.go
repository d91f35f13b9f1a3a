package version_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/artpar/contractdiff/core/classify"
	"github.com/artpar/contractdiff/core/diff"
	"github.com/artpar/contractdiff/core/version"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    version.Version
		wantErr bool
	}{
		{"1.0.0", version.Version{Major: 1}, false},
		{"2.3.1", version.Version{Major: 2, Minor: 3, Patch: 1}, false},
		{"0.0.0", version.Version{}, false},
		{" 1.2.3 ", version.Version{Major: 1, Minor: 2, Patch: 3}, false},
		{"1.2", version.Version{}, true},
		{"1.2.3.4", version.Version{}, true},
		{"1.2.x", version.Version{}, true},
		{"1.2.-3", version.Version{}, true},
		{"", version.Version{}, true},
	}

	for _, tt := range tests {
		got, err := version.Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBumped(t *testing.T) {
	v := version.Version{Major: 2, Minor: 3, Patch: 1}

	tests := []struct {
		bump version.Bump
		want string
	}{
		{version.BumpMajor, "3.0.0"},
		{version.BumpMinor, "2.4.0"},
		{version.BumpPatch, "2.3.2"},
		{version.BumpNone, "2.3.1"},
	}

	for _, tt := range tests {
		if got := v.Bumped(tt.bump).String(); got != tt.want {
			t.Errorf("Bumped(%s) = %s, want %s", tt.bump, got, tt.want)
		}
	}
}

func breakingChange() diff.Change {
	return diff.Change{Type: diff.Remove, Path: []string{"a.json"}, Hint: diff.HintSchemaRemoved}
}

func additiveChange() diff.Change {
	return diff.Change{Type: diff.Add, Path: []string{"a.json", "info", "contact"}, Hint: diff.HintFieldAdded}
}

func docsChange() diff.Change {
	return diff.Change{Type: diff.Add, Path: []string{"a.json", "description"}, Hint: diff.HintFieldAdded}
}

func refactorChange() diff.Change {
	return diff.Change{Type: diff.Modify, Path: []string{"a.json", "x-internal", "v"}, Hint: diff.HintValueChanged}
}

func TestRequiredBump(t *testing.T) {
	tests := []struct {
		name string
		cls  classify.Classification
		want version.Bump
	}{
		{"empty", classify.Classification{}, version.BumpNone},
		{"docs only", classify.Classification{DocsOnly: []diff.Change{docsChange()}}, version.BumpPatch},
		{"additive", classify.Classification{Additive: []diff.Change{additiveChange()}}, version.BumpMinor},
		{"breaking", classify.Classification{Breaking: []diff.Change{breakingChange()}}, version.BumpMajor},
		{"refactor only never bumps", classify.Classification{Refactor: []diff.Change{refactorChange()}}, version.BumpNone},
		{
			"breaking dominates",
			classify.Classification{
				Breaking: []diff.Change{breakingChange()},
				Additive: []diff.Change{additiveChange(), additiveChange()},
				DocsOnly: []diff.Change{docsChange()},
				Refactor: []diff.Change{refactorChange()},
			},
			version.BumpMajor,
		},
		{
			"additive beats docs",
			classify.Classification{
				Additive: []diff.Change{additiveChange()},
				DocsOnly: []diff.Change{docsChange()},
			},
			version.BumpMinor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := version.RequiredBump(tt.cls); got != tt.want {
				t.Errorf("RequiredBump = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewInfo_AdditiveSuggestsMinor(t *testing.T) {
	v, err := version.Parse("2.3.1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	info := version.NewInfo(v, classify.Classification{Additive: []diff.Change{additiveChange()}})
	if info.Current != "2.3.1" {
		t.Errorf("Current = %s, want 2.3.1", info.Current)
	}
	if info.RequiredBump != version.BumpMinor {
		t.Errorf("RequiredBump = %s, want minor", info.RequiredBump)
	}
	if info.SuggestedNew != "2.4.0" {
		t.Errorf("SuggestedNew = %s, want 2.4.0", info.SuggestedNew)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "version.json")
	if err := os.WriteFile(good, []byte(`{"apiVersion":"2.3.1"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	v, warn := version.ReadFile(good)
	if warn != nil {
		t.Errorf("unexpected warning: %v", warn)
	}
	if v.String() != "2.3.1" {
		t.Errorf("version = %s, want 2.3.1", v)
	}

	tests := []struct {
		name string
		body string
	}{
		{"missing", ""},
		{"malformed json", `{"apiVersion":`},
		{"malformed version", `{"apiVersion":"two"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if tt.body != "" {
				if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
					t.Fatalf("write: %v", err)
				}
			}

			v, warn := version.ReadFile(path)
			if warn == nil {
				t.Error("expected a warning")
			}
			if v.String() != "1.0.0" {
				t.Errorf("fallback = %s, want 1.0.0", v)
			}
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "version.json")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	v := version.Version{Major: 3, Minor: 1}
	if err := version.WriteFile(path, v, "major release", now); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, warn := version.ReadFile(path)
	if warn != nil {
		t.Fatalf("unexpected warning: %v", warn)
	}
	if got != v {
		t.Errorf("round trip = %v, want %v", got, v)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"apiVersion": "3.1.0"`, `"updated": "2025-06-01T12:00:00Z"`, `"notes": "major release"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("version file missing %s:\n%s", want, data)
		}
	}
}
