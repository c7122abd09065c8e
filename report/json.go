package report

import (
	"encoding/base64"
	"encoding/json"
	"reflect"
	"time"

	"github.com/signadot/track-format/go-track/container"
	"github.com/signadot/track-format/go-track/dotpath"
	"github.com/signadot/track-format/go-track/track"
)

// JSONValue converts a canonical structure (or a handle over one) into
// plain JSON-marshalable values: records become string-keyed maps with
// keys rendered in dotted-path form, lists and sets become arrays,
// timestamps RFC 3339 strings, byte buffers base64 strings. A cyclic
// sub-structure is cut off with null at the repeated node.
func JSONValue(v any) any {
	return jsonValue(v, map[uintptr]bool{})
}

func jsonValue(v any, seen map[uintptr]bool) any {
	switch t := v.(type) {
	case *track.Handle:
		v = t.Raw()
	case *track.Container:
		v = t.Raw()
	}
	if id, ok := ident(v); ok {
		if seen[id] {
			return nil
		}
		seen[id] = true
		defer delete(seen, id)
	}
	switch t := v.(type) {
	case track.Record:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[dotpath.Render(k)] = jsonValue(val, seen)
		}
		return out
	case *track.List:
		out := make([]any, t.Len())
		for i, e := range t.Elems() {
			out[i] = jsonValue(e, seen)
		}
		return out
	case *container.Map:
		out := make(map[string]any, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			out[dotpath.Render(k)] = jsonValue(val, seen)
		}
		return out
	case *container.Set:
		vals := t.Values()
		out := make([]any, len(vals))
		for i, e := range vals {
			out[i] = jsonValue(e, seen)
		}
		return out
	case *container.Time:
		return t.Format(time.RFC3339Nano)
	case *container.Bytes:
		return base64.StdEncoding.EncodeToString(t.Slice())
	case *container.Floats:
		return t.Slice()
	}
	return v
}

func ident(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer:
		return rv.Pointer(), true
	}
	return 0, false
}

// Marshal renders a canonical structure as indented JSON.
func Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(JSONValue(v), "", "  ")
}
