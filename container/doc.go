// Package container provides the standard container categories whose
// internal state cannot be intercepted field by field: keyed maps, sets,
// timestamps, byte buffers, and fixed-width numeric buffers.
//
// Tracking treats these at container granularity: mutating a container
// dirties the container's own path, never a sub-key path. The mutation
// adapter ([CategoryOf], [IsMutating]) classifies each category's methods
// into mutating and read-only; only the mutating subset triggers dirty
// propagation.
//
// Container values are always used by pointer so that a shared instance
// keeps one identity across everything that references it.
package container
