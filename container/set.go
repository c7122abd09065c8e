package container

import (
	"encoding/json"
	"slices"
)

// Set is an insertion-ordered set of comparable values.
type Set struct {
	idx   map[any]int
	elems []any
}

// NewSet creates a Set holding the given values.
func NewSet(vals ...any) *Set {
	s := &Set{idx: map[any]int{}}
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

// Add inserts a value, reporting whether it was newly added.
func (s *Set) Add(val any) bool {
	if _, ok := s.idx[val]; ok {
		return false
	}
	s.idx[val] = len(s.elems)
	s.elems = append(s.elems, val)
	return true
}

// Delete removes a value, reporting whether it was present.
func (s *Set) Delete(val any) bool {
	i, ok := s.idx[val]
	if !ok {
		return false
	}
	delete(s.idx, val)
	s.elems = slices.Delete(s.elems, i, i+1)
	for j := i; j < len(s.elems); j++ {
		s.idx[s.elems[j]] = j
	}
	return true
}

// Clear removes all values.
func (s *Set) Clear() {
	clear(s.idx)
	s.elems = s.elems[:0]
}

// Has reports membership.
func (s *Set) Has(val any) bool {
	_, ok := s.idx[val]
	return ok
}

// Len returns the number of values.
func (s *Set) Len() int {
	return len(s.elems)
}

// Values returns the values in insertion order.
func (s *Set) Values() []any {
	return slices.Clone(s.elems)
}

// Clone returns a copy with the same values and order.
func (s *Set) Clone() *Set {
	return NewSet(s.elems...)
}

// MarshalJSON renders the set as a JSON array in insertion order.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.elems)
}
