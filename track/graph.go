package track

import (
	"fmt"
	"slices"

	"github.com/signadot/track-format/go-track/changes"
	"github.com/signadot/track-format/go-track/container"
	"github.com/signadot/track-format/go-track/debug"
	"github.com/signadot/track-format/go-track/dotpath"
	"github.com/signadot/track-format/go-track/notify"
)

// Graph owns the handle-graph: one node per distinct underlying value,
// found by the value's identity. Trackers created on the same Graph see
// each other's shared sub-structures; nodes live as long as the Graph.
type Graph struct {
	nodes map[uintptr]*node
	hub   *notify.Hub
}

// NewGraph creates an empty Graph with its own notification hub.
func NewGraph() *Graph {
	return &Graph{
		nodes: map[uintptr]*node{},
		hub:   notify.NewHub(),
	}
}

// Hub returns the graph's notification hub.
func (g *Graph) Hub() *notify.Hub {
	return g.hub
}

// node is the graph record for one distinct underlying value.
type node struct {
	graph  *Graph
	target any

	// the single canonical wrapper: *Handle for records and lists,
	// *Container for container categories
	wrapper any

	// parent edges carry only relation and lookup, never ownership; an
	// edge is removed when its key is replaced or deleted, and the
	// propagation walk skips anything unresolvable
	parents []edge

	// children caches wrapped sub-values by normalized key so re-reading
	// a key yields the same handle
	children map[any]*node

	// owned is the set of root change-sets that consider this node part
	// of their tree; monotonically non-decreasing, pushed down to every
	// descendant on first connection
	owned map[*changes.ChangeSet]struct{}

	// rootSets holds the change-set of each tracker this node is the
	// top-level structure of
	rootSets []*changes.ChangeSet
}

// edge points from a child node to one parent, under the rendered path
// segment the child sits at.
type edge struct {
	parent *node
	key    string
}

// wrap returns the canonical node for target, creating and (for records
// and lists) eagerly descending into it on first sight. With a parent it
// registers the parent edge; with no parent the node is a root against
// owning.
func (g *Graph) wrap(target any, owning *changes.ChangeSet, parent *node, key string) (*node, error) {
	if !structured(target) {
		return nil, fmt.Errorf("%w: %T", ErrNotTrackable, target)
	}
	id, ok := identity(target)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotTrackable, target)
	}
	if n, ok := g.nodes[id]; ok {
		if parent != nil {
			for cs := range parent.owned {
				n.connect(cs)
			}
			if !n.hasEdge(parent, key) {
				n.parents = append(n.parents, edge{parent: parent, key: key})
			}
		}
		if owning != nil {
			n.connect(owning)
			if parent == nil && !slices.Contains(n.rootSets, owning) {
				n.rootSets = append(n.rootSets, owning)
			}
		}
		return n, nil
	}

	n := &node{
		graph:    g,
		target:   target,
		children: map[any]*node{},
		owned:    map[*changes.ChangeSet]struct{}{},
	}
	if parent == nil {
		n.rootSets = append(n.rootSets, owning)
		n.owned[owning] = struct{}{}
	} else {
		n.parents = append(n.parents, edge{parent: parent, key: key})
		for cs := range parent.owned {
			n.owned[cs] = struct{}{}
		}
		if owning != nil {
			n.owned[owning] = struct{}{}
		}
	}
	// register before descending so cyclic structures terminate
	g.nodes[id] = n
	if debug.Wrap() {
		debug.Logf("track: wrap %T key=%q root=%v\n", target, key, parent == nil)
	}

	if container.Of(target) {
		n.wrapper = &Container{node: n, raw: target}
		return n, nil
	}
	n.wrapper = &Handle{node: n}

	switch t := target.(type) {
	case Record:
		normalizeRecord(t)
		for k, v := range t {
			if !structured(v) {
				continue
			}
			child, err := g.wrap(v, nil, n, dotpath.Render(k))
			if err != nil {
				return nil, err
			}
			n.children[k] = child
		}
	case *List:
		for i, v := range t.elems {
			if !structured(v) {
				continue
			}
			child, err := g.wrap(v, nil, n, dotpath.Render(i))
			if err != nil {
				return nil, err
			}
			n.children[normKey(i)] = child
		}
	}
	return n, nil
}

// connect unions a change-set into the node's owned set and pushes it to
// every descendant. Idempotent, which also terminates cycles.
func (n *node) connect(cs *changes.ChangeSet) {
	if _, ok := n.owned[cs]; ok {
		return
	}
	n.owned[cs] = struct{}{}
	for _, child := range n.children {
		child.connect(cs)
	}
}

func (n *node) hasEdge(parent *node, key string) bool {
	for _, e := range n.parents {
		if e.parent == parent && e.key == key {
			return true
		}
	}
	return false
}

func (n *node) isRoot() bool {
	return len(n.rootSets) > 0
}

// unlinkChild drops the cached child mapping for a key and the matching
// parent edge on the child, leaving the child (possibly orphaned) in the
// graph.
func (n *node) unlinkChild(nk any, rendered string) {
	child, ok := n.children[nk]
	if !ok {
		return
	}
	delete(n.children, nk)
	for i, e := range child.parents {
		if e.parent == n && e.key == rendered {
			child.parents = slices.Delete(child.parents, i, i+1)
			break
		}
	}
}

// Lookup returns the canonical wrapper (*Handle or *Container) for a
// value already in the graph, or ErrNotTracked.
func (g *Graph) Lookup(value any) (any, error) {
	value = unwrapValue(value)
	id, ok := identity(value)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotTracked, value)
	}
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotTracked, value)
	}
	return n.wrapper, nil
}

// ChangeSetsOf returns every change-set that considers value part of its
// tree. It fails with ErrNotTracked for values never wrapped in this
// graph.
func (g *Graph) ChangeSetsOf(value any) ([]*changes.ChangeSet, error) {
	value = unwrapValue(value)
	id, ok := identity(value)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotTracked, value)
	}
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotTracked, value)
	}
	sets := make([]*changes.ChangeSet, 0, len(n.owned))
	for cs := range n.owned {
		sets = append(sets, cs)
	}
	return sets, nil
}
