package track

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustTrack(t *testing.T, g *Graph, v any) *Tracker {
	t.Helper()
	tr, err := g.Track(v)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	return tr
}

func TestIdentityStability(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{
		"a":     Record{"b": Record{"c": 0}},
		"items": NewList(Record{"x": 1}),
	})
	h := tr.Handle()

	a1 := h.Get("a").(*Handle)
	a2 := h.Get("a").(*Handle)
	if a1 != a2 {
		t.Error("re-reading a record key returned a different handle")
	}
	if a1.Get("b").(*Handle) != a2.Get("b").(*Handle) {
		t.Error("nested re-read returned a different handle")
	}
	items := h.Get("items").(*Handle)
	if items.Get(0).(*Handle) != items.Get(0).(*Handle) {
		t.Error("re-reading a list element returned a different handle")
	}
	if items.Get(0) != items.Get("0") {
		t.Error("int and string index return different handles")
	}
}

func TestDirtyOnNestedWrite(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"a": Record{"b": Record{"c": 0}}})

	tr.Handle().Get("a").(*Handle).Get("b").(*Handle).Set("c", 1)

	want := []string{"a.b.c", "a.b", "a"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("DirtyPaths mismatch (-want +got):\n%s", diff)
	}
	if !tr.IsDirty() {
		t.Error("IsDirty = false after write")
	}
}

func TestNoOpWrites(t *testing.T) {
	shared := Record{"v": 1}
	tests := []struct {
		name  string
		root  Record
		write func(h *Handle)
		dirty bool
	}{
		{
			name:  "same int",
			root:  Record{"x": 5},
			write: func(h *Handle) { h.Set("x", 5) },
			dirty: false,
		},
		{
			name:  "different int",
			root:  Record{"x": 5},
			write: func(h *Handle) { h.Set("x", 6) },
			dirty: true,
		},
		{
			name:  "NaN over NaN counts as change",
			root:  Record{"x": math.NaN()},
			write: func(h *Handle) { h.Set("x", math.NaN()) },
			dirty: true,
		},
		{
			name:  "negative zero over zero is no-op",
			root:  Record{"x": 0.0},
			write: func(h *Handle) { h.Set("x", math.Copysign(0, -1)) },
			dirty: false,
		},
		{
			name:  "same record reference",
			root:  Record{"x": shared},
			write: func(h *Handle) { h.Set("x", shared) },
			dirty: false,
		},
		{
			name:  "handle assigned back to its own field",
			root:  Record{"x": Record{"y": 1}},
			write: func(h *Handle) { h.Set("x", h.Get("x")) },
			dirty: false,
		},
		{
			name:  "int type change",
			root:  Record{"x": 1},
			write: func(h *Handle) { h.Set("x", int64(1)) },
			dirty: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			tr := mustTrack(t, g, tt.root)
			tt.write(tr.Handle())
			if tr.IsDirty() != tt.dirty {
				t.Errorf("IsDirty = %v, want %v (paths %v)", tr.IsDirty(), tt.dirty, tr.DirtyPaths())
			}
		})
	}
}

func TestDeleteBeforeRemove(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"a": Record{"b": 1}})
	h := tr.Handle()

	a := h.Get("a").(*Handle)
	if !a.Delete("b") {
		t.Fatal("Delete(b) = false")
	}
	if a.Has("b") {
		t.Error("key still present after Delete")
	}
	want := []string{"a.b", "a"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("DirtyPaths mismatch (-want +got):\n%s", diff)
	}
	if a.Delete("b") {
		t.Error("second Delete(b) = true")
	}
}

func TestListAppend(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"items": NewList()})
	items := tr.Handle().Get("items").(*Handle)

	items.Append(42)

	want := []string{"items.0", "items"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("DirtyPaths mismatch (-want +got):\n%s", diff)
	}
	if items.Len() != 1 || items.Get(0) != 42 {
		t.Errorf("list contents wrong: len=%d", items.Len())
	}
}

func TestListSetAndTruncate(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"items": NewList("a", "b", "c")})
	items := tr.Handle().Get("items").(*Handle)

	items.Set(1, "B")
	want := []string{"items.1", "items"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("after Set (-want +got):\n%s", diff)
	}

	tr.MarkClean()
	items.Truncate(1)
	// truncation marks only the length-bearing path and the container path
	want = []string{"items.length", "items"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("after Truncate (-want +got):\n%s", diff)
	}
	if items.Len() != 1 {
		t.Errorf("Len = %d after Truncate(1)", items.Len())
	}

	tr.MarkClean()
	items.Truncate(5)
	if tr.IsDirty() {
		t.Error("growing Truncate dirtied the tracker")
	}
}

func TestIntAndStringKeysCollide(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{5: "five"})
	h := tr.Handle()

	if h.Get("5") != "five" {
		t.Errorf(`Get("5") = %v`, h.Get("5"))
	}
	h.Set(5, "FIVE")
	if h.Get("5") != "FIVE" || h.Len() != 1 {
		t.Error("int and string keys did not merge")
	}
	want := []string{"5"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("DirtyPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestSymbolKeys(t *testing.T) {
	g := NewGraph()
	sym := NewSymbol("test")
	tr := mustTrack(t, g, Record{
		sym:            Record{"v": 0},
		"Symbol(test)": Record{"v": 0},
	})
	h := tr.Handle()

	h.Get(sym).(*Handle).Set("v", 1)
	h.Get("Symbol(test)").(*Handle).Set("v", 2)

	want := []string{
		"Symbol(test).v", "Symbol(test)",
		`\Symbol(test).v`, `\Symbol(test)`,
	}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("DirtyPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestMethodBinding(t *testing.T) {
	g := NewGraph()
	incr := Method(func(h *Handle, args ...any) any {
		n := h.Get("n").(int)
		h.Set("n", n+1)
		return n + 1
	})
	tr := mustTrack(t, g, Record{"n": 0, "incr": incr})
	h := tr.Handle()

	bound := h.Get("incr").(func(args ...any) any)
	if got := bound(); got != 1 {
		t.Errorf("bound() = %v", got)
	}
	want := []string{"n"}
	if diff := cmp.Diff(want, tr.DirtyPaths()); diff != "" {
		t.Errorf("DirtyPaths mismatch (-want +got):\n%s", diff)
	}
}

func TestMissingKeyReadsNil(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"a": 1})
	if v := tr.Handle().Get("nope"); v != nil {
		t.Errorf("Get(missing) = %v", v)
	}
}

func TestReplacedChildGetsNewHandle(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"a": Record{"v": 1}})
	h := tr.Handle()

	first := h.Get("a").(*Handle)
	h.Set("a", Record{"v": 2})
	second := h.Get("a").(*Handle)
	if first == second {
		t.Error("replaced value returned the old handle")
	}
	if second.Get("v") != 2 {
		t.Errorf("new child Get(v) = %v", second.Get("v"))
	}
}
