// Package dotpath renders property keys and dotted path strings for the
// tracking layer.
//
// A path is a dot-joined sequence of stringified keys, shallowest first:
//
//	"a.b.c"     object field c under b under a
//	"items.0"   element 0 of the sequence under "items"
//
// Record keys and sequence indices stringify identically: the key 5 and the
// key "5" render to the same segment.
//
// Opaque keys (see [Symbol]) render as Symbol(desc). A literal string key of
// that exact textual form renders with a leading backslash so that the two
// can never collide in a path.
package dotpath
