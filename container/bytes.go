package container

import (
	"encoding/json"
	"slices"
)

// Bytes is a mutable byte buffer with in-place write operations.
type Bytes struct {
	b []byte
}

// NewBytes creates a zeroed buffer of length n.
func NewBytes(n int) *Bytes {
	return &Bytes{b: make([]byte, n)}
}

// BytesOf creates a buffer owning a copy of b.
func BytesOf(b []byte) *Bytes {
	return &Bytes{b: slices.Clone(b)}
}

// SetByte writes one byte at index i.
func (b *Bytes) SetByte(i int, v byte) {
	b.b[i] = v
}

// CopyAt copies p into the buffer starting at offset i, returning the
// number of bytes copied.
func (b *Bytes) CopyAt(i int, p []byte) int {
	return copy(b.b[i:], p)
}

// Fill sets every byte to v.
func (b *Bytes) Fill(v byte) {
	for i := range b.b {
		b.b[i] = v
	}
}

// Resize grows or shrinks the buffer to length n, zero-filling growth.
func (b *Bytes) Resize(n int) {
	if n <= len(b.b) {
		b.b = b.b[:n]
		return
	}
	grown := make([]byte, n)
	copy(grown, b.b)
	b.b = grown
}

// Len returns the buffer length.
func (b *Bytes) Len() int {
	return len(b.b)
}

// ByteAt returns the byte at index i.
func (b *Bytes) ByteAt(i int) byte {
	return b.b[i]
}

// Slice returns a copy of the buffer contents.
func (b *Bytes) Slice() []byte {
	return slices.Clone(b.b)
}

// Clone returns a copy of the buffer.
func (b *Bytes) Clone() *Bytes {
	return &Bytes{b: slices.Clone(b.b)}
}

// MarshalJSON renders the buffer the way encoding/json renders []byte
// (base64).
func (b *Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.b)
}
