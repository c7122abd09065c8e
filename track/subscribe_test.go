package track

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSubscribeDeliversDuringWrite(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"a": Record{"b": 1}})

	var got [][]string
	cancel := tr.Subscribe(func(paths []string) {
		got = append(got, paths)
	})
	defer cancel()

	tr.Handle().Get("a").(*Handle).Set("b", 2)
	if len(got) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(got))
	}
	// each delivery carries the full accumulated set
	if diff := cmp.Diff([]string{"a.b", "a"}, got[0]); diff != "" {
		t.Errorf("first batch (-want +got):\n%s", diff)
	}

	tr.Handle().Set("c", 3)
	if len(got) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(got))
	}
	if diff := cmp.Diff([]string{"a.b", "a", "c"}, got[1]); diff != "" {
		t.Errorf("second batch (-want +got):\n%s", diff)
	}
}

func TestSubscribeNoDeliveryWithoutNewPaths(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"x": 1})
	n := 0
	tr.Subscribe(func([]string) { n++ })

	h := tr.Handle()
	h.Set("x", 2)
	h.Set("x", 3) // same path, already dirty
	if n != 1 {
		t.Errorf("deliveries = %d, want 1", n)
	}
	h.Set("x", 3) // identical value, no write at all
	if n != 1 {
		t.Errorf("deliveries = %d after no-op, want 1", n)
	}
}

func TestSubscriberMutatesDuringDelivery(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"n": 0, "log": NewList()})
	h := tr.Handle()

	// the callback writes back into the tracked structure; the
	// nested write runs its own full cycle, including delivery
	var batches [][]string
	depth := 0
	tr.Subscribe(func(paths []string) {
		batches = append(batches, paths)
		if depth == 0 {
			depth++
			h.Get("log").(*Handle).Append("saw change")
		}
	})

	h.Set("n", 1)
	if len(batches) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(batches))
	}
	if diff := cmp.Diff([]string{"n"}, batches[0]); diff != "" {
		t.Errorf("outer batch (-want +got):\n%s", diff)
	}
	want := []string{"n", "log.0", "log"}
	if diff := cmp.Diff(want, batches[1]); diff != "" {
		t.Errorf("nested batch (-want +got):\n%s", diff)
	}
	if h.Get("log").(*Handle).Get(0) != "saw change" {
		t.Error("nested write lost")
	}
}

func TestWatchPull(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"x": 1})
	w := tr.Watch()
	defer w.Cancel()

	tr.Handle().Set("x", 2)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	batch, ok := w.Next(ctx)
	if !ok {
		t.Fatal("Next returned !ok")
	}
	if diff := cmp.Diff([]string{"x"}, batch); diff != "" {
		t.Errorf("batch (-want +got):\n%s", diff)
	}
}

func TestWatchCoalescesToLatest(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"x": 1, "y": 1})
	w := tr.Watch()
	defer w.Cancel()

	h := tr.Handle()
	h.Set("x", 2)
	h.Set("y", 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	batch, ok := w.Next(ctx)
	if !ok {
		t.Fatal("Next returned !ok")
	}
	// only the latest snapshot survives; it already contains both paths
	if diff := cmp.Diff([]string{"x", "y"}, batch); diff != "" {
		t.Errorf("batch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	g := NewGraph()
	tr := mustTrack(t, g, Record{"x": 1})
	n := 0
	cancel := tr.Subscribe(func([]string) { n++ })

	tr.Handle().Set("x", 2)
	cancel()
	tr.Handle().Set("y", 3)
	if n != 1 {
		t.Errorf("deliveries = %d, want 1", n)
	}
}
