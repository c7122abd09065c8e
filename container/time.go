package container

import (
	"encoding/json"
	"time"
)

// Time is a mutable timestamp. The zero value is the zero time.
type Time struct {
	t time.Time
}

// NewTime creates a Time holding t.
func NewTime(t time.Time) *Time {
	return &Time{t: t}
}

// Now creates a Time holding the current instant.
func Now() *Time {
	return &Time{t: time.Now()}
}

// Set replaces the held instant.
func (t *Time) Set(v time.Time) {
	t.t = v
}

// Add shifts the held instant by d.
func (t *Time) Add(d time.Duration) {
	t.t = t.t.Add(d)
}

// Truncate rounds the held instant down to a multiple of d.
func (t *Time) Truncate(d time.Duration) {
	t.t = t.t.Truncate(d)
}

// Get returns the held instant.
func (t *Time) Get() time.Time {
	return t.t
}

// Unix returns the held instant as a Unix timestamp in seconds.
func (t *Time) Unix() int64 {
	return t.t.Unix()
}

// Format formats the held instant.
func (t *Time) Format(layout string) string {
	return t.t.Format(layout)
}

// Equal reports whether the held instant equals v.
func (t *Time) Equal(v time.Time) bool {
	return t.t.Equal(v)
}

// Clone returns a copy holding the same instant.
func (t *Time) Clone() *Time {
	return &Time{t: t.t}
}

// MarshalJSON renders the instant in RFC 3339 form.
func (t *Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.t)
}
