package track

import (
	"fmt"

	"github.com/signadot/track-format/go-track/changes"
	"github.com/signadot/track-format/go-track/container"
	"github.com/signadot/track-format/go-track/dotpath"
	"github.com/signadot/track-format/go-track/notify"
)

// Tracker is a top-level tracked structure with its own independent
// change-set.
type Tracker struct {
	graph *Graph
	set   *changes.ChangeSet
	node  *node
}

// Track wraps a canonical structure in a new tracker. The structure and
// everything reachable from it is wrapped eagerly; values shared with
// other trackers on the same graph keep their one canonical node.
//
// The root must be a record or a list. A container has no path of its
// own at the root — its mutations dirty the container's path under some
// parent — so tracking one directly fails with ErrNotTrackable; put it
// inside a record instead.
func (g *Graph) Track(structure any) (*Tracker, error) {
	structure = unwrapValue(structure)
	if container.Of(structure) {
		return nil, fmt.Errorf("%w: %T must live inside a tracked record or list", ErrNotTrackable, structure)
	}
	cs := changes.New()
	n, err := g.wrap(structure, cs, nil, "")
	if err != nil {
		return nil, err
	}
	return &Tracker{graph: g, set: cs, node: n}, nil
}

// Root returns the root's canonical wrapper.
func (t *Tracker) Root() any {
	return t.node.wrapper
}

// Handle returns the root handle.
func (t *Tracker) Handle() *Handle {
	h, _ := t.node.wrapper.(*Handle)
	return h
}

// ChangeSet returns the tracker's change-set.
func (t *Tracker) ChangeSet() *changes.ChangeSet {
	return t.set
}

// IsDirty reports whether anything changed since the last reset.
func (t *Tracker) IsDirty() bool {
	return t.set.Len() > 0
}

// DirtyPaths returns the changed paths in insertion order.
func (t *Tracker) DirtyPaths() []string {
	return t.set.Paths()
}

// MarkClean empties the change-set without notifying subscribers. Other
// trackers' change-sets are untouched.
func (t *Tracker) MarkClean() {
	t.set.Clear()
}

// Subscribe registers a push callback for this tracker's change-set.
func (t *Tracker) Subscribe(fn func(paths []string)) (cancel func()) {
	return t.graph.hub.Subscribe(t.set, fn)
}

// Watch registers a pull-mode watcher for this tracker's change-set.
func (t *Tracker) Watch(opts ...notify.WatchOption) *notify.Watcher {
	return t.graph.hub.Watch(t.set, opts...)
}

// Canonicalizer is the schema collaborator boundary: given raw partial
// input it returns a fully defaulted structure of a known shape, or
// fails with a validation error. The tracking layer never inspects how
// the structure was produced, and never reinterprets the error.
type Canonicalizer interface {
	Canonicalize(raw Record) (Record, error)
}

// SchemaTracker is a tracker over a schema-produced structure. It adds
// the top-level slice query, which only makes sense when the root's
// shape is known.
type SchemaTracker struct {
	*Tracker
}

// TrackValidated runs raw input through the schema collaborator and
// tracks the canonical result. Collaborator failures propagate
// unchanged.
func (g *Graph) TrackValidated(c Canonicalizer, raw Record) (*SchemaTracker, error) {
	canonical, err := c.Canonicalize(raw)
	if err != nil {
		return nil, err
	}
	t, err := g.Track(canonical)
	if err != nil {
		return nil, err
	}
	return &SchemaTracker{Tracker: t}, nil
}

// Entry pairs a top-level key with the current value under it.
type Entry struct {
	Key   string
	Value any
}

// DirtyTopLevelSlice maps each dirty path's top-level key to the
// handle's current value at that key, deduplicated, in order of each
// key's first dirty path.
func (st *SchemaTracker) DirtyTopLevelSlice() []Entry {
	h := st.Handle()
	seen := map[string]bool{}
	var out []Entry
	for _, p := range st.DirtyPaths() {
		top := dotpath.Head(p)
		if seen[top] {
			continue
		}
		seen[top] = true
		var v any
		if h != nil {
			v = h.Get(top)
		}
		out = append(out, Entry{Key: top, Value: v})
	}
	return out
}

// String identifies the tracker by its root type and dirty count.
func (t *Tracker) String() string {
	return fmt.Sprintf("tracker(%T, %d dirty)", t.node.target, t.set.Len())
}
