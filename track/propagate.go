package track

import (
	"github.com/signadot/track-format/go-track/changes"
	"github.com/signadot/track-format/go-track/debug"
	"github.com/signadot/track-format/go-track/dotpath"
)

// propagate marks one mutation dirty in every change-set that can reach
// n. With hasKey, key is the rendered segment that changed under n; with
// no key the mutation is container-level and n's own path is the leaf.
// Every change-set that gained at least one new path is broadcast once.
func (g *Graph) propagate(n *node, key string, hasKey bool) {
	if debug.Propagate() {
		debug.Logf("track: propagate %T key=%q\n", n.target, key)
	}
	touched := map[*changes.ChangeSet]bool{}
	g.walkUp(n, nil, map[*node]bool{}, key, hasKey, touched)
	for cs, gained := range touched {
		if gained {
			g.hub.Broadcast(cs)
		}
	}
}

// walkUp climbs every parent edge from cur, accumulating in suffix the
// rendered segments from cur down to the mutated node, shallowest first.
// The cycle guard covers only the current branch: a node reached again
// through a different branch is walked again, so converging parent
// chains (diamonds) each record their own full paths.
func (g *Graph) walkUp(cur *node, suffix []string, onBranch map[*node]bool, key string, hasKey bool, touched map[*changes.ChangeSet]bool) {
	if onBranch[cur] {
		return
	}
	onBranch[cur] = true
	defer delete(onBranch, cur)

	for _, cs := range cur.rootSets {
		record(cs, suffix, key, hasKey, touched)
	}
	climbed := false
	for _, e := range cur.parents {
		if e.parent == nil {
			// unresolvable edge, skip
			continue
		}
		climbed = true
		up := make([]string, 0, len(suffix)+1)
		up = append(up, e.key)
		up = append(up, suffix...)
		g.walkUp(e.parent, up, onBranch, key, hasKey, touched)
	}
	if !climbed && !cur.isRoot() {
		// orphan: mark in every change-set that ever owned this node
		for cs := range cur.owned {
			record(cs, suffix, key, hasKey, touched)
		}
	}
}

// record adds the leaf path and every strict non-empty prefix to cs,
// deepest first, and notes whether cs gained anything new.
func record(cs *changes.ChangeSet, suffix []string, key string, hasKey bool, touched map[*changes.ChangeSet]bool) {
	segs := suffix
	if hasKey {
		segs = make([]string, 0, len(suffix)+1)
		segs = append(segs, suffix...)
		segs = append(segs, key)
	}
	if len(segs) == 0 {
		return
	}
	gained := false
	for i := len(segs); i >= 1; i-- {
		if cs.Add(dotpath.Join(segs[:i])) {
			gained = true
		}
	}
	if gained {
		touched[cs] = true
	} else if _, ok := touched[cs]; !ok {
		touched[cs] = false
	}
}
