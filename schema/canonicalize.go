package schema

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/signadot/track-format/go-track/container"
	"github.com/signadot/track-format/go-track/debug"
	"github.com/signadot/track-format/go-track/track"
)

// Canonicalize validates raw against the schema and returns a fully
// defaulted copy of it. Keys the schema does not declare pass through
// unchanged. The input is never modified.
func (s *Schema) Canonicalize(raw track.Record) (track.Record, error) {
	if raw == nil {
		raw = track.Record{}
	}
	out, err := canonicalizeFields("", s.Fields, raw)
	if err != nil {
		return nil, err
	}
	if debug.Schema() {
		debug.Logf("canonicalized %q: %d fields", s.Name, len(out))
	}
	return out, nil
}

// Validate reports whether raw would canonicalize without error.
func (s *Schema) Validate(raw track.Record) error {
	_, err := s.Canonicalize(raw)
	return err
}

func canonicalizeFields(prefix string, fields map[string]*Field, raw track.Record) (track.Record, error) {
	out := track.Record{}
	for k, v := range raw {
		if name, ok := k.(string); ok {
			if _, declared := fields[name]; declared {
				continue
			}
		}
		out[k] = convert(v)
	}
	for name, f := range fields {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		v, present := raw[name]
		if !present {
			dv, err := f.defaultValue(path, raw)
			if err != nil {
				return nil, err
			}
			out[name] = dv
			continue
		}
		cv, err := f.ingest(path, v)
		if err != nil {
			return nil, err
		}
		out[name] = cv
	}
	return out, nil
}

func (f *Field) defaultValue(path string, raw track.Record) (any, error) {
	switch {
	case f.prog != nil:
		res, err := expr.Run(f.prog, exprEnv(raw))
		if err != nil {
			return nil, &ValidationError{FieldPath: path, Message: "default expression failed", Err: err}
		}
		return f.ingest(path, res)
	case f.Default != nil:
		cv, err := f.ingest(path, f.Default)
		if err != nil {
			return nil, err
		}
		// a fresh copy each time so two canonical structures never
		// share a defaulted sub-structure
		return track.Snapshot(cv), nil
	case f.Required:
		return nil, &ValidationError{FieldPath: path, Message: "required field missing"}
	}
	return f.zero(path)
}

func (f *Field) zero(path string) (any, error) {
	switch f.Type {
	case TypeInt:
		return 0, nil
	case TypeFloat:
		return 0.0, nil
	case TypeString:
		return "", nil
	case TypeBool:
		return false, nil
	case TypeRecord:
		// nested defaults still fill in
		return canonicalizeFields(path, f.Fields, track.Record{})
	case TypeList:
		return track.NewList(), nil
	case TypeMap:
		return container.NewMap(), nil
	case TypeSet:
		return container.NewSet(), nil
	case TypeBytes:
		return container.NewBytes(0), nil
	case TypeFloats:
		return container.NewFloats(0), nil
	}
	// time and any have no sensible zero
	return nil, nil
}

// ingest converts a raw value into canonical tracked form and checks it
// against the field type. Plain decoded YAML/JSON shapes (map[string]any,
// []any) convert to track.Record and *track.List on the way in.
func (f *Field) ingest(path string, v any) (any, error) {
	switch f.Type {
	case TypeAny:
		return convert(v), nil
	case TypeInt:
		switch t := v.(type) {
		case int:
			return t, nil
		case int64:
			return int(t), nil
		}
	case TypeFloat:
		switch t := v.(type) {
		case float64:
			return t, nil
		case int:
			return float64(t), nil
		}
	case TypeString:
		if t, ok := v.(string); ok {
			return t, nil
		}
	case TypeBool:
		if t, ok := v.(bool); ok {
			return t, nil
		}
	case TypeRecord:
		var rec track.Record
		switch t := v.(type) {
		case track.Record:
			rec = t
		case map[string]any:
			rec = track.Record{}
			for k, val := range t {
				rec[k] = val
			}
		default:
			return nil, typeErr(path, f.Type, v)
		}
		return canonicalizeFields(path, f.Fields, rec)
	case TypeList:
		var elems []any
		switch t := v.(type) {
		case *track.List:
			elems = t.Elems()
		case []any:
			elems = t
		default:
			return nil, typeErr(path, f.Type, v)
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			if f.Elem != nil {
				ce, err := f.Elem.ingest(fmt.Sprintf("%s.%d", path, i), e)
				if err != nil {
					return nil, err
				}
				out[i] = ce
			} else {
				out[i] = convert(e)
			}
		}
		return track.NewList(out...), nil
	case TypeMap:
		switch t := v.(type) {
		case *container.Map:
			return t, nil
		case map[string]any:
			m := container.NewMap()
			for k, val := range t {
				m.Set(k, convert(val))
			}
			return m, nil
		}
	case TypeSet:
		switch t := v.(type) {
		case *container.Set:
			return t, nil
		case []any:
			return container.NewSet(t...), nil
		}
	case TypeTime:
		switch t := v.(type) {
		case *container.Time:
			return t, nil
		case time.Time:
			return container.NewTime(t), nil
		case string:
			ts, err := time.Parse(time.RFC3339, t)
			if err != nil {
				return nil, &ValidationError{FieldPath: path, Message: "cannot parse timestamp", Err: err}
			}
			return container.NewTime(ts), nil
		}
	case TypeBytes:
		switch t := v.(type) {
		case *container.Bytes:
			return t, nil
		case []byte:
			return container.BytesOf(t), nil
		}
	case TypeFloats:
		switch t := v.(type) {
		case *container.Floats:
			return t, nil
		case []float64:
			return container.FloatsOf(t), nil
		case []any:
			fs := make([]float64, len(t))
			for i, e := range t {
				switch n := e.(type) {
				case float64:
					fs[i] = n
				case int:
					fs[i] = float64(n)
				default:
					return nil, typeErr(fmt.Sprintf("%s.%d", path, i), "float", e)
				}
			}
			return container.FloatsOf(fs), nil
		}
	}
	return nil, typeErr(path, f.Type, v)
}

func typeErr(path, want string, got any) error {
	return &ValidationError{
		FieldPath: path,
		Message:   fmt.Sprintf("expected %s, got %T", want, got),
	}
}

// convert normalizes plain decoded shapes without a declared type.
func convert(v any) any {
	switch t := v.(type) {
	case map[string]any:
		rec := track.Record{}
		for k, val := range t {
			rec[k] = convert(val)
		}
		return rec
	case track.Record:
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = convert(e)
		}
		return track.NewList(out...)
	}
	return v
}

// exprEnv exposes the raw input's string-keyed fields to default
// expressions.
func exprEnv(raw track.Record) map[string]any {
	env := make(map[string]any, len(raw))
	for k, v := range raw {
		if name, ok := k.(string); ok {
			env[name] = v
		}
	}
	return env
}
