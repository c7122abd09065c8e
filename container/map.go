package container

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Map is an insertion-ordered keyed map. Keys may be any comparable value.
type Map struct {
	idx  map[any]int
	keys []any
	vals []any
}

// NewMap creates an empty Map, optionally seeded from alternating
// key/value pairs.
func NewMap(pairs ...any) *Map {
	m := &Map{idx: map[any]int{}}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set inserts or replaces the value under key.
func (m *Map) Set(key, val any) {
	if i, ok := m.idx[key]; ok {
		m.vals[i] = val
		return
	}
	m.idx[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
}

// Delete removes key, reporting whether it was present.
func (m *Map) Delete(key any) bool {
	i, ok := m.idx[key]
	if !ok {
		return false
	}
	delete(m.idx, key)
	m.keys = slices.Delete(m.keys, i, i+1)
	m.vals = slices.Delete(m.vals, i, i+1)
	for j := i; j < len(m.keys); j++ {
		m.idx[m.keys[j]] = j
	}
	return true
}

// Clear removes all entries.
func (m *Map) Clear() {
	clear(m.idx)
	m.keys = m.keys[:0]
	m.vals = m.vals[:0]
}

// Get returns the value under key.
func (m *Map) Get(key any) (any, bool) {
	i, ok := m.idx[key]
	if !ok {
		return nil, false
	}
	return m.vals[i], true
}

// Has reports whether key is present.
func (m *Map) Has(key any) bool {
	_, ok := m.idx[key]
	return ok
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []any {
	return slices.Clone(m.keys)
}

// Values returns the values in key insertion order.
func (m *Map) Values() []any {
	return slices.Clone(m.vals)
}

// Clone returns a shallow copy with the same entries and order.
func (m *Map) Clone() *Map {
	out := NewMap()
	for i, k := range m.keys {
		out.Set(k, m.vals[i])
	}
	return out
}

// MarshalJSON renders the map as a JSON object with stringified keys.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("{")
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kd, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		vd, err := json.Marshal(m.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kd)
		buf.WriteByte(':')
		buf.Write(vd)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
