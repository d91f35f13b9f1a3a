// Package config provides diff-policy configuration loading.
// Loading never fails: a missing or malformed policy file is replaced
// by built-in defaults and reported as a warning for the caller to log.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Enforcement tells policy callers how to act on breaking changes.
// This core only reports it; blocking is the caller's decision.
type Enforcement string

const (
	EnforcementWarn  Enforcement = "warn"
	EnforcementBlock Enforcement = "block"
)

// Config is the diff-policy configuration.
type Config struct {
	// DocsOnlyPatterns are substrings that mark a changed key as
	// documentation-only when found in its lowercased final path segment.
	DocsOnlyPatterns []string `json:"docsOnlyPatterns"`

	// IgnoreOrdering is accepted for policy-file compatibility, but
	// only the default (true) is implemented: normalization always
	// sorts object keys, and array element order is always compared
	// index by index.
	IgnoreOrdering bool `json:"ignoreOrdering"`

	// DeprecationFields are the keys that mark a value as deprecated.
	DeprecationFields []string `json:"deprecationFields"`

	// DeprecationWindowDays is the sunset notice period.
	DeprecationWindowDays int `json:"deprecationWindowDays"`

	// Enforcement is "warn" or "block".
	Enforcement Enforcement `json:"enforcement"`
}

// Warning describes a recoverable configuration problem.
type Warning struct {
	Path   string
	Reason string
}

func (w *Warning) String() string {
	return fmt.Sprintf("config %s: %s, using defaults", w.Path, w.Reason)
}

// Default returns the built-in policy.
func Default() Config {
	return Config{
		DocsOnlyPatterns:      []string{"description", "example", "examples", "summary", "title"},
		IgnoreOrdering:        true,
		DeprecationFields:     []string{"x-status", "x-sunset", "deprecated"},
		DeprecationWindowDays: 90,
		Enforcement:           EnforcementWarn,
	}
}

// Load reads a JSON policy file. Any failure yields the defaults plus a
// non-nil Warning; Load itself never fails.
func Load(path string) (Config, *Warning) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), &Warning{Path: path, Reason: fmt.Sprintf("read failed: %v", err)}
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), &Warning{Path: path, Reason: fmt.Sprintf("parse failed: %v", err)}
	}

	return cfg, nil
}

// HasDocsPattern reports whether a lowercased path segment matches one
// of the configured documentation-only patterns.
func (c Config) HasDocsPattern(segment string) bool {
	for _, p := range c.DocsOnlyPatterns {
		if p != "" && strings.Contains(segment, p) {
			return true
		}
	}
	return false
}

// HasDeprecationField reports whether key is a configured deprecation marker.
func (c Config) HasDeprecationField(key string) bool {
	for _, f := range c.DeprecationFields {
		if f == key {
			return true
		}
	}
	return false
}
