package diff

import (
	"sort"
	"strconv"

	"github.com/artpar/contractdiff/core/schema"
)

// httpMethods are the operation keys of an OpenAPI path item.
var httpMethods = map[string]struct{}{
	"get": {}, "put": {}, "post": {}, "delete": {},
	"options": {}, "head": {}, "patch": {}, "trace": {},
}

// Engine compares two loaded snapshots.
type Engine struct{}

// NewEngine creates a diff engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compare returns every structural change from the old snapshot to the
// new one as a flat list. Output order follows sorted file paths and
// sorted object keys, but callers must treat the list as a set.
func (e *Engine) Compare(oldFiles, newFiles []schema.File) []Change {
	oldByPath := indexByPath(oldFiles)
	newByPath := indexByPath(newFiles)

	var changes []Change

	for _, path := range sortedPaths(oldByPath, newByPath) {
		oldFile, inOld := oldByPath[path]
		newFile, inNew := newByPath[path]

		switch {
		case inOld && !inNew:
			changes = append(changes, Change{
				Type:     Remove,
				Path:     []string{path},
				OldValue: oldFile.Content,
				Hint:     HintSchemaRemoved,
			})
		case !inOld && inNew:
			changes = append(changes, Change{
				Type:     Add,
				Path:     []string{path},
				NewValue: newFile.Content,
				Hint:     HintSchemaAdded,
			})
		default:
			changes = e.compareValues([]string{path}, oldFile.Content, newFile.Content, changes)
		}
	}

	return changes
}

func indexByPath(files []schema.File) map[string]schema.File {
	out := make(map[string]schema.File, len(files))
	for _, f := range files {
		out[f.Path] = f
	}
	return out
}

func sortedPaths(a, b map[string]schema.File) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var paths []string
	for p := range a {
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	for p := range b {
		if _, dup := seen[p]; !dup {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// compareValues recursively diffs two normalized values at path.
func (e *Engine) compareValues(path []string, oldV, newV any, changes []Change) []Change {
	if schema.Equal(oldV, newV) {
		return changes
	}

	oldObj, oldIsObj := oldV.(map[string]any)
	newObj, newIsObj := newV.(map[string]any)
	oldArr, oldIsArr := oldV.([]any)
	newArr, newIsArr := newV.([]any)

	switch {
	case oldIsObj && newIsObj:
		return e.compareObjects(path, oldObj, newObj, changes)
	case oldIsArr && newIsArr:
		return e.compareArrays(path, oldArr, newArr, changes)
	case !oldIsObj && !newIsObj && !oldIsArr && !newIsArr:
		return append(changes, Change{
			Type:     Modify,
			Path:     clonePath(path),
			OldValue: oldV,
			NewValue: newV,
			Hint:     HintValueChanged,
		})
	default:
		// Container replaced by scalar, or one container kind by another.
		return append(changes, Change{
			Type:     Modify,
			Path:     clonePath(path),
			OldValue: oldV,
			NewValue: newV,
			Hint:     HintTypeChanged,
		})
	}
}

func (e *Engine) compareObjects(path []string, oldObj, newObj map[string]any, changes []Change) []Change {
	for _, key := range unionKeys(oldObj, newObj) {
		oldChild, inOld := oldObj[key]
		newChild, inNew := newObj[key]
		childPath := append(clonePath(path), key)

		switch {
		case inOld && !inNew:
			changes = append(changes, Change{
				Type:     Remove,
				Path:     childPath,
				OldValue: oldChild,
				Hint:     keyHint(path, key, false),
			})
		case !inOld && inNew:
			changes = append(changes, Change{
				Type:     Add,
				Path:     childPath,
				NewValue: newChild,
				Hint:     keyHint(path, key, true),
			})
		default:
			changes = e.compareValues(childPath, oldChild, newChild, changes)
		}
	}
	return changes
}

// compareArrays emits both a coarse length-change modify and the
// per-index changes when lengths differ. The double count is
// deliberate: downstream tallies depend on both records.
func (e *Engine) compareArrays(path []string, oldArr, newArr []any, changes []Change) []Change {
	if len(oldArr) != len(newArr) {
		changes = append(changes, Change{
			Type:     Modify,
			Path:     clonePath(path),
			OldValue: oldArr,
			NewValue: newArr,
			Hint:     HintArrayLengthChanged,
		})
	}

	longest := len(oldArr)
	if len(newArr) > longest {
		longest = len(newArr)
	}

	for i := 0; i < longest; i++ {
		childPath := append(clonePath(path), strconv.Itoa(i))

		switch {
		case i >= len(newArr):
			changes = append(changes, Change{
				Type:     Remove,
				Path:     childPath,
				OldValue: oldArr[i],
				Hint:     itemHint(path, false),
			})
		case i >= len(oldArr):
			changes = append(changes, Change{
				Type:     Add,
				Path:     childPath,
				NewValue: newArr[i],
				Hint:     itemHint(path, true),
			})
		default:
			changes = e.compareValues(childPath, oldArr[i], newArr[i], changes)
		}
	}
	return changes
}

// keyHint derives the semantic tag for an object key added or removed
// at parentPath. Context wins over the generic field tag.
func keyHint(parentPath []string, key string, added bool) Hint {
	parent := ""
	grandparent := ""
	if len(parentPath) > 0 {
		parent = parentPath[len(parentPath)-1]
	}
	if len(parentPath) > 1 {
		grandparent = parentPath[len(parentPath)-2]
	}

	_, isMethod := httpMethods[key]
	switch {
	case isMethod && grandparent == "paths":
		return pick(added, HintEndpointAdded, HintEndpointRemoved)
	case parent == "responses":
		return pick(added, HintResponseAdded, HintResponseRemoved)
	case key == "required" || parent == "required":
		return pick(added, HintRequiredFieldAdded, HintRequiredFieldRemoved)
	case parent == "properties":
		return pick(added, HintPropertyAdded, HintPropertyRemoved)
	default:
		return pick(added, HintFieldAdded, HintFieldRemoved)
	}
}

// itemHint tags an array element added or removed from the array at
// arrayPath. Entries of a required array keep their semantic weight.
func itemHint(arrayPath []string, added bool) Hint {
	if len(arrayPath) > 0 && arrayPath[len(arrayPath)-1] == "required" {
		return pick(added, HintRequiredFieldAdded, HintRequiredFieldRemoved)
	}
	return pick(added, HintArrayItemAdded, HintArrayItemRemoved)
}

func pick(added bool, add, remove Hint) Hint {
	if added {
		return add
	}
	return remove
}

func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var keys []string
	for k := range a {
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	for k := range b {
		if _, dup := seen[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func clonePath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}
