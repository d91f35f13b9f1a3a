// Package version implements semantic-version parsing, the bump policy,
// and version-file persistence.
package version

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/artpar/contractdiff/core/classify"
)

// Bump is the semver component a change set requires incrementing.
type Bump string

const (
	BumpMajor Bump = "major"
	BumpMinor Bump = "minor"
	BumpPatch Bump = "patch"
	BumpNone  Bump = "none"
)

// Version is a strict major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// String renders the dotted form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse reads a strict three-part semantic version. No prerelease or
// build suffixes are accepted; the contract version is always a plain
// triple.
func Parse(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("version %q: want three dot-separated components", s)
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("version %q: component %q is not an integer", s, part)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("version %q: component %q is negative", s, part)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Bumped returns the version after applying a bump. Exactly one
// component increments and all lower components reset to zero; BumpNone
// returns the version unchanged.
func (v Version) Bumped(b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// RequiredBump derives the minimal bump for a classification, most
// severe class first. Refactor-only change sets never force a bump.
func RequiredBump(cls classify.Classification) Bump {
	switch {
	case len(cls.Breaking) > 0:
		return BumpMajor
	case len(cls.Additive) > 0:
		return BumpMinor
	case len(cls.DocsOnly) > 0:
		return BumpPatch
	default:
		return BumpNone
	}
}

// Info is the version decision carried into the report.
type Info struct {
	Current      string `json:"current"`
	RequiredBump Bump   `json:"requiredBump"`
	SuggestedNew string `json:"suggestedNew"`
}

// NewInfo computes the suggested next version.
func NewInfo(current Version, cls classify.Classification) Info {
	bump := RequiredBump(cls)
	return Info{
		Current:      current.String(),
		RequiredBump: bump,
		SuggestedNew: current.Bumped(bump).String(),
	}
}

// fallback is used when the version file is unreadable or malformed.
var fallback = Version{Major: 1}

// Warning describes a recoverable version-file problem.
type Warning struct {
	Path   string
	Reason string
}

func (w *Warning) String() string {
	return fmt.Sprintf("version file %s: %s, assuming %s", w.Path, w.Reason, fallback)
}

// versionFile is the on-disk shape of the persisted contract version.
type versionFile struct {
	APIVersion string `json:"apiVersion"`
	Updated    string `json:"updated,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ReadFile loads the current contract version. Any failure yields the
// 1.0.0 fallback plus a non-nil Warning; ReadFile never fails.
func ReadFile(path string) (Version, *Warning) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback, &Warning{Path: path, Reason: fmt.Sprintf("read failed: %v", err)}
	}

	var vf versionFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return fallback, &Warning{Path: path, Reason: fmt.Sprintf("parse failed: %v", err)}
	}

	v, err := Parse(vf.APIVersion)
	if err != nil {
		return fallback, &Warning{Path: path, Reason: err.Error()}
	}
	return v, nil
}

// WriteFile persists a new contract version with an audit note. This is
// never called by the diff pipeline itself; publishing a version is an
// explicit operator action.
func WriteFile(path string, v Version, notes string, now time.Time) error {
	vf := versionFile{
		APIVersion: v.String(),
		Updated:    now.UTC().Format(time.RFC3339),
		Notes:      notes,
	}

	data, err := json.MarshalIndent(vf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal version file: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write version file %s: %w", path, err)
	}
	return nil
}
