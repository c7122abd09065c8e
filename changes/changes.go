// Package changes provides the change-set: the unordered collection of
// distinct dotted path strings recording what changed in one tracker since
// its last reset. Insertion order is preserved for reporting.
package changes

// ChangeSet is a set of distinct path strings with recorded insertion
// order. Adding a path already present is a no-op.
//
// A ChangeSet is identified by pointer: the notification layer keys its
// subscriber registry on *ChangeSet.
type ChangeSet struct {
	members map[string]struct{}
	order   []string
}

// New creates an empty ChangeSet.
func New() *ChangeSet {
	return &ChangeSet{members: map[string]struct{}{}}
}

// Add inserts a path, reporting whether it was newly added.
func (cs *ChangeSet) Add(path string) bool {
	if _, ok := cs.members[path]; ok {
		return false
	}
	cs.members[path] = struct{}{}
	cs.order = append(cs.order, path)
	return true
}

// Has reports membership.
func (cs *ChangeSet) Has(path string) bool {
	_, ok := cs.members[path]
	return ok
}

// Len returns the number of distinct paths.
func (cs *ChangeSet) Len() int {
	return len(cs.order)
}

// Paths returns a snapshot of the members in insertion order.
func (cs *ChangeSet) Paths() []string {
	out := make([]string, len(cs.order))
	copy(out, cs.order)
	return out
}

// Clear empties the set. It does not notify anyone; resetting is the
// owning tracker's business.
func (cs *ChangeSet) Clear() {
	clear(cs.members)
	cs.order = cs.order[:0]
}
