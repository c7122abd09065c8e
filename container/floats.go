package container

import (
	"encoding/json"
	"slices"
)

// Floats is a fixed-width numeric buffer of float64 values.
type Floats struct {
	v []float64
}

// NewFloats creates a zeroed buffer of length n.
func NewFloats(n int) *Floats {
	return &Floats{v: make([]float64, n)}
}

// FloatsOf creates a buffer owning a copy of v.
func FloatsOf(v []float64) *Floats {
	return &Floats{v: slices.Clone(v)}
}

// SetAt writes one value at index i.
func (f *Floats) SetAt(i int, v float64) {
	f.v[i] = v
}

// Fill sets every element to v.
func (f *Floats) Fill(v float64) {
	for i := range f.v {
		f.v[i] = v
	}
}

// CopyFrom copies src into the buffer starting at index 0, returning the
// number of elements copied.
func (f *Floats) CopyFrom(src []float64) int {
	return copy(f.v, src)
}

// At returns the value at index i.
func (f *Floats) At(i int) float64 {
	return f.v[i]
}

// Len returns the buffer length.
func (f *Floats) Len() int {
	return len(f.v)
}

// Slice returns a copy of the buffer contents.
func (f *Floats) Slice() []float64 {
	return slices.Clone(f.v)
}

// Clone returns a copy of the buffer.
func (f *Floats) Clone() *Floats {
	return &Floats{v: slices.Clone(f.v)}
}

// MarshalJSON renders the buffer as a JSON array.
func (f *Floats) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.v)
}
