package geometry

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/storyline/pkg/storyline"
)

func assertIncreasing(t *testing.T, pts []ControlPoint) {
	t.Helper()
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("point %d is NaN: %+v", i, p)
		}
		if i > 0 && !(pts[i-1].X < p.X) {
			t.Fatalf("x not strictly increasing at %d: %v then %v", i, pts[i-1].X, p.X)
		}
	}
}

func TestPointsDwellSegments(t *testing.T) {
	g, _ := Build([]float64{1, 2, 3}, 900)
	got := Points([]Knot{{1, 0}, {2, 1}, {3, 1}}, g)
	want := []ControlPoint{
		{0, 0}, {200, 0},
		{350, 1}, {550, 1},
		{700, 1}, {900, 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}

func TestPointsEmptyAndSingle(t *testing.T) {
	g, _ := Build([]float64{5}, 600)

	if pts := Points(nil, g); pts != nil {
		t.Errorf("Points(nil) = %v, want nil", pts)
	}

	pts := Points([]Knot{{5, 2}}, g)
	if len(pts) != 2 {
		t.Fatalf("single knot: %d points, want 2", len(pts))
	}
	if pts[0].Y != 2 || pts[1].Y != 2 {
		t.Errorf("single knot path not flat: %v", pts)
	}
	if pts[0].X != 300 {
		t.Errorf("single knot left x = %v, want 300", pts[0].X)
	}
	assertIncreasing(t, pts)
}

func TestPointsZeroWidth(t *testing.T) {
	g, err := Build([]float64{1, 2, 3}, 0)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	pts := Points([]Knot{{1, 0}, {2, 0}, {3, 1}}, g)
	if len(pts) != 6 {
		t.Fatalf("%d points, want 6", len(pts))
	}
	assertIncreasing(t, pts)
}

func TestPointsOversizedPadding(t *testing.T) {
	g := Geometry{
		Scale:   NewPointScale([]float64{1, 2, 3}, 0, 100),
		Padding: 80,
		Epsilon: DefaultEpsilon,
	}
	pts := Points([]Knot{{1, 0}, {2, 5}, {3, 0}}, g)
	want := []ControlPoint{
		{-80, 0}, {24.75, 0},
		{25, 5}, {74.75, 5},
		{75, 0}, {235, 0},
	}
	if !reflect.DeepEqual(pts, want) {
		t.Errorf("Points() = %v, want %v", pts, want)
	}
	assertIncreasing(t, pts)
}

func TestPointsSkipsNonFinite(t *testing.T) {
	g, _ := Build([]float64{1, 2}, 100)
	pts := Points([]Knot{{1, 0}, {math.NaN(), 1}, {2, math.Inf(1)}}, g)
	if len(pts) != 2 {
		t.Errorf("%d points, want 2", len(pts))
	}
	assertIncreasing(t, pts)
}

func TestPointsUnsortedKnots(t *testing.T) {
	g, _ := Build([]float64{1, 2, 3}, 900)
	sorted := Points([]Knot{{1, 0}, {2, 1}, {3, 2}}, g)
	shuffled := Points([]Knot{{3, 2}, {1, 0}, {2, 1}}, g)
	if !reflect.DeepEqual(sorted, shuffled) {
		t.Errorf("knot order changed output: %v vs %v", sorted, shuffled)
	}
}

func TestPointsStrictlyIncreasing(t *testing.T) {
	domains := [][]float64{
		{1},
		{1, 2},
		{0, 0.001, 0.002, 50},
		{1990, 1991, 1992, 2010, 2011},
	}
	for _, d := range domains {
		for _, w := range []float64{0, 1, 50, 800} {
			for _, opts := range [][]Option{nil, {WithContinuous()}} {
				g, err := Build(d, w, opts...)
				if err != nil {
					t.Fatalf("Build(%v, %v) error: %v", d, w, err)
				}
				knots := make([]Knot, len(d))
				for i, v := range d {
					knots[i] = Knot{Time: v, Y: float64(i % 2)}
				}
				assertIncreasing(t, Points(knots, g))
			}
		}
	}
}

func TestStorylinePoints(t *testing.T) {
	type rec struct {
		id, group string
		t         float64
	}
	records := []rec{
		{"A", "x", 1}, {"B", "x", 1},
		{"A", "y", 2}, {"B", "z", 2},
		{"A", "y", 4}, {"B", "y", 4},
	}
	res, err := storyline.Build(records, storyline.Config[rec]{
		Time:  func(r rec) float64 { return r.t },
		ID:    func(r rec) string { return r.id },
		Group: func(r rec) string { return r.group },
	})
	if err != nil {
		t.Fatalf("storyline.Build() error: %v", err)
	}

	g, err := Build(res.Times(), 600)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	for _, s := range res.Storylines {
		pts := StorylinePoints(s, g)
		if len(pts) != 2*len(s.Points) {
			t.Errorf("%s: %d control points, want %d", s.Key, len(pts), 2*len(s.Points))
		}
		assertIncreasing(t, pts)
		for i, p := range s.Points {
			if pts[2*i].Y != p.Y || pts[2*i+1].Y != p.Y {
				t.Errorf("%s: dwell %d not at y=%v", s.Key, i, p.Y)
			}
		}
	}
}
