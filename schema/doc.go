// Package schema turns raw partial input into a fully defaulted canonical
// structure before tracking begins. A Schema is a typed shape definition,
// parseable from YAML, whose fields carry literal or expression-valued
// defaults. It implements track.Canonicalizer so that
// Graph.TrackValidated can use it directly; the tracking core itself
// never depends on this package.
package schema
