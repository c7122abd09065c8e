package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/track-format/go-track/container"
	"github.com/signadot/track-format/go-track/track"
)

func TestJSONValue(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := track.Record{
		"name":  "api",
		"n":     3,
		"items": track.NewList("a", "b"),
		"tags":  container.NewSet("x"),
		"meta":  container.NewMap("k", 1),
		"at":    container.NewTime(at),
		"blob":  container.BytesOf([]byte{1, 2, 3}),
		"vals":  container.FloatsOf([]float64{1.5}),
	}
	got := JSONValue(in).(map[string]any)
	want := map[string]any{
		"name":  "api",
		"n":     3,
		"items": []any{"a", "b"},
		"tags":  []any{"x"},
		"meta":  map[string]any{"k": 1},
		"at":    "2024-03-01T12:00:00Z",
		"blob":  "AQID",
		"vals":  []float64{1.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSONValue mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONValueUnwrapsHandles(t *testing.T) {
	g := track.NewGraph()
	tr, err := g.Track(track.Record{"x": track.Record{"y": 1}})
	if err != nil {
		t.Fatal(err)
	}
	got := JSONValue(tr.Handle()).(map[string]any)
	if got["x"].(map[string]any)["y"] != 1 {
		t.Errorf("got %v", got)
	}
}

func TestJSONValueCycle(t *testing.T) {
	r := track.Record{"x": 1}
	r["self"] = r
	got := JSONValue(r).(map[string]any)
	if got["self"] != nil {
		t.Error("cycle not cut off")
	}
	if _, err := json.Marshal(got); err != nil {
		t.Errorf("result not marshalable: %v", err)
	}
}

func TestExplain(t *testing.T) {
	before := track.Record{"count": 1, "name": "api"}
	after := track.Record{"count": 2, "name": "api"}
	got, err := Explain(before, after)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "[-1-]") || !strings.Contains(got, "{+2+}") {
		t.Errorf("diff markers missing:\n%s", got)
	}
	if strings.Contains(got, "{+api+}") {
		t.Errorf("unchanged value reported:\n%s", got)
	}
}

func TestMergePatchRoundTrip(t *testing.T) {
	before := track.Record{
		"name":     "api",
		"replicas": 1,
		"old":      true,
	}
	after := track.Record{
		"name":     "api",
		"replicas": 3,
		"extra":    "new",
	}
	patch, err := MergePatch(before, after)
	if err != nil {
		t.Fatal(err)
	}
	var p map[string]any
	if err := json.Unmarshal(patch, &p); err != nil {
		t.Fatal(err)
	}
	if _, ok := p["name"]; ok {
		t.Error("unchanged field in patch")
	}
	if v, ok := p["old"]; !ok || v != nil {
		t.Error("removed field not nulled")
	}

	got, err := ApplyMergePatch(before, patch)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := JSONValue(after).(map[string]any)
	var wantJSON any
	b, _ := json.Marshal(want)
	json.Unmarshal(b, &wantJSON)
	if diff := cmp.Diff(wantJSON, got); diff != "" {
		t.Errorf("patched doc mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDirty(t *testing.T) {
	g := track.NewGraph()
	tr, err := g.Track(track.Record{"a": track.Record{"b": 1}})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteDirty(&buf, tr); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "clean\n" {
		t.Errorf("clean output = %q", buf.String())
	}

	tr.Handle().Get("a").(*track.Handle).Set("b", 2)
	buf.Reset()
	if err := WriteDirty(&buf, tr); err != nil {
		t.Fatal(err)
	}
	want := "2 dirty paths:\n  a.b\n  a\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
