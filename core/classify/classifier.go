// Package classify partitions structural changes into breaking,
// additive, docs-only, and refactor buckets.
package classify

import (
	"strings"

	"github.com/artpar/contractdiff/config"
	"github.com/artpar/contractdiff/core/diff"
)

// internalMarkers are vendor-extension prefixes whose subtrees are
// non-contractual. Changes under them are internal refactors.
var internalMarkers = []string{"x-internal", "x-implementation", "x-private", "x-codegen"}

// Classification is the partition of a change set. Every input change
// lands in exactly one bucket.
type Classification struct {
	Breaking []diff.Change `json:"breaking"`
	Additive []diff.Change `json:"additive"`
	DocsOnly []diff.Change `json:"docsOnly"`
	Refactor []diff.Change `json:"refactor"`
}

// Total is the number of classified changes across all buckets.
func (c Classification) Total() int {
	return len(c.Breaking) + len(c.Additive) + len(c.DocsOnly) + len(c.Refactor)
}

// Classifier applies the bucketing policy.
type Classifier struct {
	cfg config.Config
}

// New creates a classifier with the given policy.
func New(cfg config.Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify partitions changes. Buckets are evaluated in fixed priority:
// docs-only, then refactor, then breaking, then additive by default.
func (cl *Classifier) Classify(changes []diff.Change) Classification {
	// Buckets start non-nil so an empty bucket serializes as [].
	out := Classification{
		Breaking: []diff.Change{},
		Additive: []diff.Change{},
		DocsOnly: []diff.Change{},
		Refactor: []diff.Change{},
	}
	for _, c := range changes {
		switch {
		case cl.isDocsOnly(c):
			out.DocsOnly = append(out.DocsOnly, c)
		case isRefactor(c):
			out.Refactor = append(out.Refactor, c)
		case isBreaking(c):
			out.Breaking = append(out.Breaking, c)
		default:
			out.Additive = append(out.Additive, c)
		}
	}
	return out
}

// isDocsOnly matches changes whose final path segment is a configured
// documentation pattern.
func (cl *Classifier) isDocsOnly(c diff.Change) bool {
	return cl.cfg.HasDocsPattern(strings.ToLower(c.Segment(0)))
}

// isRefactor matches changes anywhere under an internal extension.
func isRefactor(c diff.Change) bool {
	dotted := c.DottedPath()
	for _, marker := range internalMarkers {
		if strings.Contains(dotted, marker) {
			return true
		}
	}
	return false
}

// breakingRemovalHints are removal tags that always break consumers.
var breakingRemovalHints = map[diff.Hint]struct{}{
	diff.HintSchemaRemoved:        {},
	diff.HintEndpointRemoved:      {},
	diff.HintRequiredFieldRemoved: {},
	diff.HintPropertyRemoved:      {},
	diff.HintResponseRemoved:      {},
}

// isBreaking applies the breaking rules; any single match suffices.
func isBreaking(c diff.Change) bool {
	if c.Hint == diff.HintTypeChanged {
		return true
	}

	switch c.Type {
	case diff.Remove:
		if _, hit := breakingRemovalHints[c.Hint]; hit {
			return true
		}
		if isHTTPMethodRemoval(c) || isPathParameterRemoval(c) || isSuccessResponseRemoval(c) {
			return true
		}
	case diff.Add:
		if c.Hint == diff.HintRequiredFieldAdded {
			return true
		}
	case diff.Modify:
		if isRequiredFlagChange(c) || isRequiredArrayGrowth(c) {
			return true
		}
	}
	return false
}

// isHTTPMethodRemoval covers an operation dropped from an OpenAPI path
// item, independent of how the hint was derived.
func isHTTPMethodRemoval(c diff.Change) bool {
	return c.Hint == diff.HintEndpointRemoved ||
		(c.Segment(2) == "paths" && isHTTPMethod(c.Segment(0)))
}

var httpMethods = map[string]struct{}{
	"get": {}, "put": {}, "post": {}, "delete": {},
	"options": {}, "head": {}, "patch": {}, "trace": {},
}

func isHTTPMethod(s string) bool {
	_, ok := httpMethods[s]
	return ok
}

// isPathParameterRemoval matches removal of a parameter object that was
// bound to the URL path (in: "path").
func isPathParameterRemoval(c diff.Change) bool {
	if !pathContains(c, "parameters") {
		return false
	}
	obj, ok := c.OldValue.(map[string]any)
	if !ok {
		return false
	}
	return obj["in"] == "path"
}

// isSuccessResponseRemoval matches removal of a 2xx response code.
func isSuccessResponseRemoval(c diff.Change) bool {
	if c.Segment(1) != "responses" {
		return false
	}
	code := c.Segment(0)
	return len(code) == 3 && code[0] == '2'
}

// isRequiredFlagChange matches a modified required flag: either a
// parameter whose requiredness differs, or any flag flipping optional
// to mandatory. The coarse required-array record is handled separately.
func isRequiredFlagChange(c diff.Change) bool {
	if c.Segment(0) != "required" || !isScalar(c.OldValue) || !isScalar(c.NewValue) {
		return false
	}
	if pathContains(c, "parameters") && c.OldValue != c.NewValue {
		return true
	}
	return c.OldValue == false && c.NewValue == true
}

// isRequiredArrayGrowth matches a required array gaining entries via
// the coarse length-change record.
func isRequiredArrayGrowth(c diff.Change) bool {
	if c.Hint != diff.HintArrayLengthChanged || c.Segment(0) != "required" {
		return false
	}
	oldArr, okOld := c.OldValue.([]any)
	newArr, okNew := c.NewValue.([]any)
	return okOld && okNew && len(newArr) > len(oldArr)
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	default:
		return true
	}
}

func pathContains(c diff.Change, segment string) bool {
	for _, s := range c.Path {
		if s == segment {
			return true
		}
	}
	return false
}
