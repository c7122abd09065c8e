package track

import (
	"github.com/signadot/track-format/go-track/container"
)

// Snapshot returns a deep copy of a canonical structure, suitable as a
// baseline for later comparison. Handles are unwrapped to the structure
// they wrap; shared and cyclic sub-structures stay shared in the copy.
func Snapshot(v any) any {
	return snapshot(v, map[uintptr]any{})
}

func snapshot(v any, seen map[uintptr]any) any {
	v = unwrapValue(v)
	id, ok := identity(v)
	if ok {
		if dup, ok := seen[id]; ok {
			return dup
		}
	}
	switch t := v.(type) {
	case Record:
		out := make(Record, len(t))
		seen[id] = out
		for k, val := range t {
			out[k] = snapshot(val, seen)
		}
		return out
	case *List:
		out := &List{elems: make([]any, len(t.elems))}
		seen[id] = out
		for i, e := range t.elems {
			out.elems[i] = snapshot(e, seen)
		}
		return out
	case *container.Map:
		out := container.NewMap()
		seen[id] = out
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out.Set(k, snapshot(val, seen))
		}
		return out
	case *container.Set:
		out := t.Clone()
		seen[id] = out
		return out
	case *container.Time:
		out := t.Clone()
		seen[id] = out
		return out
	case *container.Bytes:
		out := t.Clone()
		seen[id] = out
		return out
	case *container.Floats:
		out := t.Clone()
		seen[id] = out
		return out
	}
	return v
}
