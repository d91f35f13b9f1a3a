// Package diff computes structural changes between two schema snapshots.
package diff

import (
	"fmt"
	"strings"
)

// ChangeType is the raw kind of a structural change.
type ChangeType string

const (
	Add    ChangeType = "add"
	Remove ChangeType = "remove"
	Modify ChangeType = "modify"
)

// Hint is a semantic tag derived from the change's context. It is a
// closed set of constants so a misspelled tag is a compile error, not a
// silent misclassification.
type Hint string

const (
	HintSchemaRemoved Hint = "schema_removed"
	HintSchemaAdded   Hint = "schema_added"

	HintValueChanged       Hint = "value_changed"
	HintTypeChanged        Hint = "type_changed"
	HintArrayLengthChanged Hint = "array_length_changed"

	HintArrayItemRemoved Hint = "array_item_removed"
	HintArrayItemAdded   Hint = "array_item_added"

	HintEndpointRemoved Hint = "endpoint_removed"
	HintEndpointAdded   Hint = "endpoint_added"

	HintResponseRemoved Hint = "response_removed"
	HintResponseAdded   Hint = "response_added"

	HintRequiredFieldRemoved Hint = "required_field_removed"
	HintRequiredFieldAdded   Hint = "required_field_added"

	HintPropertyRemoved Hint = "property_removed"
	HintPropertyAdded   Hint = "property_added"

	HintFieldRemoved Hint = "field_removed"
	HintFieldAdded   Hint = "field_added"
)

// Change is one structural difference between snapshots.
type Change struct {
	// Type is add, remove, or modify.
	Type ChangeType `json:"type"`

	// Path locates the change: the schema file path followed by the
	// nested object keys and array indices leading to it.
	Path []string `json:"path"`

	// OldValue is set for remove and modify.
	OldValue any `json:"oldValue,omitempty"`

	// NewValue is set for add and modify.
	NewValue any `json:"newValue,omitempty"`

	// Hint is the context-derived semantic tag.
	Hint Hint `json:"classificationHint,omitempty"`
}

// DottedPath renders the change location as a dot-joined string.
func (c Change) DottedPath() string {
	return strings.Join(c.Path, ".")
}

// Key is the identity used for set-equality between engine runs:
// two runs over the same snapshots produce the same set of keys.
func (c Change) Key() string {
	return fmt.Sprintf("%s|%s|%s", c.Type, c.DottedPath(), c.Hint)
}

// Segment returns the path segment n positions from the end, or ""
// when the path is too short. Segment(0) is the final segment.
func (c Change) Segment(n int) string {
	idx := len(c.Path) - 1 - n
	if idx < 0 {
		return ""
	}
	return c.Path[idx]
}
