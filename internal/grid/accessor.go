package grid

import (
	"strconv"
	"strings"
)

// Record is a decoded source object. Nested objects are map[string]any and
// arrays are []any, as produced by encoding/json.
type Record = map[string]any

// Resolve walks a dot-delimited accessor path through a nested record one
// segment at a time. Missing keys, non-object intermediates and nil parents
// all resolve to Undefined; Resolve never fails.
func Resolve(record any, path string) Value {
	head, rest, nested := strings.Cut(path, ".")
	child, ok := lookup(record, head)
	if !ok {
		return Undefined()
	}
	if !nested {
		return ValueOf(child)
	}
	return Resolve(child, rest)
}

func lookup(parent any, key string) (any, bool) {
	switch p := parent.(type) {
	case map[string]any:
		v, ok := p[key]
		return v, ok
	case map[string]string:
		v, ok := p[key]
		return v, ok
	case []any:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(p) {
			return nil, false
		}
		return p[idx], true
	case Value:
		if p.kind != KindObject {
			return nil, false
		}
		return lookup(p.obj, key)
	default:
		return nil, false
	}
}
