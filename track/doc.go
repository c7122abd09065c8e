// Package track wraps nested data structures in tracking handles that
// record which dotted paths changed since the last reset.
//
// A [Graph] maintains one canonical node per distinct underlying value,
// no matter how many parents or trackers reach it. Mutating through a
// handle updates the underlying value and then marks the corresponding
// path dirty in every root change-set that can reach the mutated node,
// ancestors included: writing a.b.c also dirties a.b and a.
//
// Go has no transparent field interception, so handles are an explicit
// accessor surface: reads, writes, deletes, and enumeration go through
// [Handle] (records and sequences) or [Container] (container categories,
// tracked at container granularity). Everything reachable from a
// tracker's root is wrapped eagerly at construction so that shared
// sub-structures register their graph edges before any mutation.
//
//	g := track.NewGraph()
//	t, err := g.Track(track.Record{"a": track.Record{"b": 0}})
//	h := t.Handle()
//	h.Get("a").(*track.Handle).Set("b", 1)
//	t.DirtyPaths() // ["a.b", "a"]
//
// Trackers that share underlying values must share a Graph.
package track
