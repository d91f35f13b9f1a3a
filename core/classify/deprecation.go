package classify

import (
	"time"

	"github.com/artpar/contractdiff/core/diff"
)

// sunsetFormats are the accepted x-sunset date encodings.
var sunsetFormats = []string{time.RFC3339, "2006-01-02"}

// DeprecatedRemoval reports whether a removed value carried one of the
// policy's deprecation markers long enough to matter by now. Which keys
// count comes from Config.DeprecationFields: x-sunset keeps its
// notice-window date semantics and x-status its "deprecated" string;
// any other configured key counts when its value is true or the string
// "deprecated". This is advisory metadata for policy callers: the
// classifier still buckets such removals as breaking, and nothing in
// this core downgrades them.
func (cl *Classifier) DeprecatedRemoval(c diff.Change, now time.Time) bool {
	if c.Type != diff.Remove {
		return false
	}
	obj, ok := c.OldValue.(map[string]any)
	if !ok {
		return false
	}

	for key, v := range obj {
		if !cl.cfg.HasDeprecationField(key) {
			continue
		}
		switch key {
		case "x-sunset":
			if s, ok := v.(string); ok && cl.sunsetElapsed(s, now) {
				return true
			}
		case "x-status":
			if v == "deprecated" {
				return true
			}
		case "deprecated":
			if v == true {
				return true
			}
		default:
			if v == true || v == "deprecated" {
				return true
			}
		}
	}
	return false
}

// sunsetElapsed reports whether the sunset notice period has passed.
func (cl *Classifier) sunsetElapsed(sunset string, now time.Time) bool {
	for _, format := range sunsetFormats {
		if t, err := time.Parse(format, sunset); err == nil {
			window := time.Duration(cl.cfg.DeprecationWindowDays) * 24 * time.Hour
			return !now.Before(t.Add(window))
		}
	}
	return false
}
