package track

import "errors"

var (
	// ErrNotTrackable is returned when a value cannot accept tracking:
	// it is nil (and so cannot take new entries) or is not a canonical
	// structured type.
	ErrNotTrackable = errors.New("not trackable")

	// ErrNotTracked is returned when change-set state is queried for a
	// value that was never wrapped in the graph.
	ErrNotTracked = errors.New("not tracked")
)
