package nodelink

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/storyline"
)

type rec struct {
	id, group string
	t         float64
}

func layout(t *testing.T, records []rec) storyline.Result {
	t.Helper()
	res, err := storyline.Build(records, storyline.Config[rec]{
		Time:  func(r rec) float64 { return r.t },
		ID:    func(r rec) string { return r.id },
		Group: func(r rec) string { return r.group },
	})
	if err != nil {
		t.Fatalf("storyline.Build() error: %v", err)
	}
	return res
}

var meetings = []rec{
	{"a", "x", 1}, {"b", "x", 1}, {"c", "y", 1},
	{"a", "x", 2}, {"b", "x", 2}, {"c", "x", 2},
	{"c", "z", 3}, {"b", "z", 3}, {"a", "", 3},
}

func TestCoOccurrence(t *testing.T) {
	got := CoOccurrence(layout(t, meetings))
	want := []Edge{
		{From: "a", To: "b", Shared: 2},
		{From: "a", To: "c", Shared: 1},
		{From: "b", To: "c", Shared: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CoOccurrence() = %+v, want %+v", got, want)
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(layout(t, meetings), Options{})

	if !strings.Contains(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	for _, n := range []string{`"a" [`, `"b" [`, `"c" [`} {
		if !strings.Contains(dot, n) {
			t.Errorf("ToDOT() output missing node %s", n)
		}
	}
	if !strings.Contains(dot, `"a" -- "b" [weight=2`) {
		t.Error("ToDOT() output missing weighted edge a -- b")
	}
	if strings.Contains(dot, "->") {
		t.Error("co-occurrence graph should be undirected")
	}
}

func TestToDOT_MinShared(t *testing.T) {
	dot := ToDOT(layout(t, meetings), Options{MinShared: 2})
	if strings.Contains(dot, `"a" -- "c"`) {
		t.Error("edge below MinShared kept")
	}
	if !strings.Contains(dot, `"b" -- "c"`) {
		t.Error("edge at MinShared dropped")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(layout(t, meetings), Options{Detailed: true})
	if !strings.Contains(dot, `label="a\nevents: 3\ngroups: 1"`) {
		t.Errorf("ToDOT() detailed label missing counts:\n%s", dot)
	}
}

func TestToDOT_Style(t *testing.T) {
	style := render.StyleFuncs{Color: func(string) string { return "#123456" }}
	dot := ToDOT(layout(t, meetings), Options{Style: style})
	if !strings.Contains(dot, `fillcolor="#123456"`) {
		t.Error("ToDOT() ignores node style")
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(storyline.Result{}, Options{})
	if !strings.HasPrefix(dot, "graph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty DOT malformed: %q", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %q, want %q", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed svg without viewBox: %q", got)
	}
}
