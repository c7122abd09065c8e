package track

import (
	"fmt"

	"github.com/signadot/track-format/go-track/dotpath"
)

// Handle is the canonical accessor wrapper for a tracked record or list.
// All reads and writes of the underlying structure go through it; writes
// propagate dirty paths into every change-set that can reach the value.
type Handle struct {
	node *node
}

// Raw returns the underlying structure. Mutations made directly on it
// bypass tracking.
func (h *Handle) Raw() any {
	return h.node.target
}

// IsList reports whether the handle wraps a sequence.
func (h *Handle) IsList() bool {
	_, ok := h.node.target.(*List)
	return ok
}

// Len returns the number of fields or elements.
func (h *Handle) Len() int {
	switch t := h.node.target.(type) {
	case Record:
		return len(t)
	case *List:
		return len(t.elems)
	}
	return 0
}

// Has reports whether the key is present.
func (h *Handle) Has(key any) bool {
	nk := normKey(key)
	switch t := h.node.target.(type) {
	case Record:
		_, ok := t[nk]
		return ok
	case *List:
		i, ok := listIndex(nk)
		return ok && i >= 0 && i < len(t.elems)
	}
	return false
}

// Keys enumerates the keys: normalized record keys in unspecified order,
// or list indices in order.
func (h *Handle) Keys() []any {
	switch t := h.node.target.(type) {
	case Record:
		out := make([]any, 0, len(t))
		for k := range t {
			out = append(out, k)
		}
		return out
	case *List:
		out := make([]any, len(t.elems))
		for i := range t.elems {
			out[i] = i
		}
		return out
	}
	return nil
}

// Get reads a field. Structured values come back as their canonical
// wrapper (the same wrapper every time), Method values come back bound
// to this handle, everything else comes back raw. A missing key reads
// as nil, like an unwrapped map.
func (h *Handle) Get(key any) any {
	nk := normKey(key)
	switch t := h.node.target.(type) {
	case Record:
		v, ok := t[nk]
		if !ok {
			return nil
		}
		return h.wrapChild(nk, v)
	case *List:
		i, ok := listIndex(nk)
		if !ok || i < 0 || i >= len(t.elems) {
			return nil
		}
		return h.wrapChild(nk, t.elems[i])
	}
	return nil
}

func (h *Handle) wrapChild(nk any, v any) any {
	n := h.node
	if child, ok := n.children[nk]; ok && identical(child.target, v) {
		return child.wrapper
	}
	if structured(v) {
		child, err := n.graph.wrap(v, nil, n, dotpath.Render(nk))
		if err != nil {
			return v
		}
		n.children[nk] = child
		return child.wrapper
	}
	if m, ok := v.(Method); ok {
		bound := func(args ...any) any {
			return m(h, args...)
		}
		return bound
	}
	return v
}

// Set writes a field. Handles passed as the value are unwrapped to the
// structure they wrap. Writing a value identical to the current one is a
// no-op with respect to dirtiness; otherwise the key's path and every
// ancestor path become dirty in every reachable change-set before Set
// returns, push notifications included.
func (h *Handle) Set(key, val any) {
	val = unwrapValue(val)
	nk := normKey(key)
	rendered := dotpath.Render(nk)
	n := h.node
	switch t := n.target.(type) {
	case Record:
		old, existed := t[nk]
		if existed && identical(old, val) {
			return
		}
		n.unlinkChild(nk, rendered)
		t[nk] = val
		n.graph.propagate(n, rendered, true)
	case *List:
		i, ok := listIndex(nk)
		if !ok {
			panic(fmt.Sprintf("track: non-index key %v on list", key))
		}
		if i < 0 || i >= len(t.elems) {
			panic(fmt.Sprintf("track: index %d out of range [0,%d)", i, len(t.elems)))
		}
		if identical(t.elems[i], val) {
			return
		}
		n.unlinkChild(nk, rendered)
		t.elems[i] = val
		n.graph.propagate(n, rendered, true)
	}
}

// Delete removes a record key, reporting whether it was present. The
// key's path is propagated before removal, while it still resolves
// against the pre-delete graph.
func (h *Handle) Delete(key any) bool {
	nk := normKey(key)
	rendered := dotpath.Render(nk)
	n := h.node
	t, ok := n.target.(Record)
	if !ok {
		return false
	}
	if _, exists := t[nk]; !exists {
		return false
	}
	n.graph.propagate(n, rendered, true)
	delete(t, nk)
	n.unlinkChild(nk, rendered)
	return true
}

// Append adds elements to the end of a list. Each appended element
// dirties its own index path plus the list's ancestors.
func (h *Handle) Append(vals ...any) {
	t, ok := h.node.target.(*List)
	if !ok {
		panic("track: Append on non-list handle")
	}
	for _, v := range vals {
		v = unwrapValue(v)
		i := len(t.elems)
		t.elems = append(t.elems, v)
		h.node.graph.propagate(h.node, dotpath.Render(i), true)
	}
}

// Truncate shrinks a list to n elements. Only the length-bearing path and
// the list's own path are marked dirty; truncated indices are not.
func (h *Handle) Truncate(size int) {
	t, ok := h.node.target.(*List)
	if !ok {
		panic("track: Truncate on non-list handle")
	}
	if size < 0 || size >= len(t.elems) {
		return
	}
	for i := size; i < len(t.elems); i++ {
		h.node.unlinkChild(normKey(i), dotpath.Render(i))
	}
	t.elems = t.elems[:size]
	h.node.graph.propagate(h.node, "length", true)
}
