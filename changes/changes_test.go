package changes

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChangeSet(t *testing.T) {
	cs := New()
	if cs.Len() != 0 {
		t.Fatalf("new set Len = %d", cs.Len())
	}
	if !cs.Add("a.b") {
		t.Error("first Add reported not-new")
	}
	if cs.Add("a.b") {
		t.Error("duplicate Add reported new")
	}
	cs.Add("a")
	if !cs.Has("a.b") || !cs.Has("a") || cs.Has("b") {
		t.Error("membership wrong")
	}
	if diff := cmp.Diff([]string{"a.b", "a"}, cs.Paths()); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}

	// snapshot independence
	snap := cs.Paths()
	cs.Add("c")
	if len(snap) != 2 {
		t.Error("snapshot affected by later Add")
	}

	cs.Clear()
	if cs.Len() != 0 || cs.Has("a") {
		t.Error("Clear did not empty the set")
	}
	if !cs.Add("a") {
		t.Error("Add after Clear reported not-new")
	}
}
