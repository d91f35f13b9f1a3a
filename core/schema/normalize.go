package schema

import (
	"fmt"
	"sort"
)

// Normalize deep-rebuilds a decoded document into canonical form:
// objects become map[string]any with every key stringified, arrays keep
// their order, and numbers collapse to float64 so the same document
// decoded from JSON and from YAML normalizes identically.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = Normalize(child)
		}
		return out
	case map[any]any:
		// yaml.v2-style maps; yaml.v3 only produces these for
		// non-string keys.
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[fmt.Sprintf("%v", k)] = Normalize(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Normalize(child)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case float32:
		return float64(val)
	default:
		return val
	}
}

// SortedKeys returns an object's keys in lexicographic order. All
// order-sensitive traversal of normalized content goes through this so
// output is deterministic run to run.
func SortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether two normalized values are structurally equal.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, achild := range av {
			bchild, present := bv[k]
			if !present || !Equal(achild, bchild) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
