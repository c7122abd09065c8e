package track

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/signadot/track-format/go-track/container"
	"github.com/signadot/track-format/go-track/dotpath"
)

// Record is the plain record type, tracked at field granularity. Keys may
// be strings, integers, or opaque *Symbol keys; integer keys are
// canonicalized to their decimal string form at wrap time, so the key 5
// and the key "5" address the same field.
type Record = map[any]any

// Symbol is an opaque record key. Two symbols with the same description
// are distinct keys whose rendered path segments collide; see dotpath.
type Symbol = dotpath.Symbol

// NewSymbol creates a new opaque key.
func NewSymbol(desc string) *Symbol {
	return dotpath.NewSymbol(desc)
}

// Method is a function-typed field value. Reading such a field through a
// handle returns the function bound to that handle, so writes it makes
// through its receiver are still tracked. Values whose operations demand
// a receiver identity other than the handle cannot be tracked this way.
type Method = func(h *Handle, args ...any) any

// List is the ordered-sequence type. Lists are always used by pointer;
// the pointer is the list's identity in the graph. Mutate through a
// handle, not through the list itself.
type List struct {
	elems []any
}

// NewList creates a list holding the given elements.
func NewList(vs ...any) *List {
	return &List{elems: append([]any(nil), vs...)}
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.elems)
}

// At returns the element at index i.
func (l *List) At(i int) any {
	return l.elems[i]
}

// Elems returns a copy of the element slice.
func (l *List) Elems() []any {
	return slices.Clone(l.elems)
}

// normKey canonicalizes a property key for storage and child-cache
// lookup: integers become their decimal string, strings and symbols stay
// themselves.
func normKey(key any) any {
	switch k := key.(type) {
	case string:
		return k
	case *Symbol:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint:
		return strconv.FormatUint(uint64(k), 10)
	default:
		return dotpath.Render(key)
	}
}

// listIndex extracts a sequence index from a normalized key.
func listIndex(nk any) (int, bool) {
	s, ok := nk.(string)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

// structured reports whether v is a non-nil canonical structured value:
// a Record, a *List, or a container instance.
func structured(v any) bool {
	switch t := v.(type) {
	case Record:
		return t != nil
	case *List:
		return t != nil
	case *container.Map:
		return t != nil
	case *container.Set:
		return t != nil
	case *container.Time:
		return t != nil
	case *container.Bytes:
		return t != nil
	case *container.Floats:
		return t != nil
	}
	return false
}

// identity returns the stable identity of a structured value: the map
// pointer for records, the pointer for everything else.
func identity(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
	return 0, false
}

// identical implements the write-comparison rule: ordinary value equality
// for comparable values (NaN over NaN counts as a change, -0 over 0 does
// not), reference identity for maps, slices, pointers, and functions.
func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func,
		reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}

// unwrapValue strips a handle down to the value it wraps, so that
// assigning a handle to a field stores the underlying structure.
func unwrapValue(v any) any {
	switch x := v.(type) {
	case *Handle:
		return x.node.target
	case *Container:
		return x.raw
	}
	return v
}

// normalizeRecord rewrites non-canonical keys in place so that map
// lookups and path rendering agree.
func normalizeRecord(r Record) {
	var fix []any
	for k := range r {
		if nk := normKey(k); nk != k {
			fix = append(fix, k)
		}
	}
	for _, k := range fix {
		v := r[k]
		delete(r, k)
		r[normKey(k)] = v
	}
}
