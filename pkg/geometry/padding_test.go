package geometry

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/storyline/pkg/errors"
)

const tol = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tol }

func TestBuildPointScale(t *testing.T) {
	g, err := Build([]float64{1, 2, 3}, 900)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if g.Padding != 100 {
		t.Errorf("Padding = %v, want 100", g.Padding)
	}
	for _, tc := range []struct{ t, x float64 }{{1, 100}, {2, 450}, {3, 800}} {
		if got := g.X(tc.t); !approx(got, tc.x) {
			t.Errorf("X(%v) = %v, want %v", tc.t, got, tc.x)
		}
	}
	if g.Continuous() {
		t.Error("Continuous() = true, want false")
	}
}

func TestBuildShrinksPadding(t *testing.T) {
	g, err := Build([]float64{0, 1, 10}, 300, WithContinuous())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	// Range is [100/3, 800/3]; the gap between 0 and 1 is 70/3.
	want := 70.0/6 - DefaultEpsilon
	if !approx(g.Padding, want) {
		t.Errorf("Padding = %v, want %v", g.Padding, want)
	}
	if !g.Continuous() {
		t.Error("Continuous() = false, want true")
	}
}

func TestBuildPaddingInequality(t *testing.T) {
	domains := [][]float64{
		{1, 2, 3, 4, 5},
		{0, 0.001, 1},
		{1990, 1991, 2005, 2006, 2020},
		{-5, 5},
		{0, 1, 1, 1, 2, 100, 100.5},
	}
	widths := []float64{0, 10, 100, 960, 5000}

	for _, d := range domains {
		for _, w := range widths {
			for _, opts := range [][]Option{nil, {WithContinuous()}, {WithSubdivision(1)}} {
				g, err := Build(d, w, opts...)
				if err != nil {
					t.Fatalf("Build(%v, %v) error: %v", d, w, err)
				}
				if g.Padding < 0 {
					t.Errorf("Build(%v, %v): negative padding %v", d, w, g.Padding)
				}
				dom := g.Scale.Domain()
				for i := 1; i < len(dom); i++ {
					lo, hi := g.X(dom[i-1]), g.X(dom[i])
					if lo+g.Padding > hi-g.Padding+tol {
						t.Errorf("Build(%v, %v): %v+%v > %v-%v", d, w, lo, g.Padding, hi, g.Padding)
					}
				}
			}
		}
	}
}

func TestBuildBoundaries(t *testing.T) {
	t.Run("zero width", func(t *testing.T) {
		g, err := Build([]float64{1, 2, 3}, 0)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if g.Padding != 0 {
			t.Errorf("Padding = %v, want 0", g.Padding)
		}
		for _, v := range []float64{1, 2, 3} {
			if x := g.X(v); x != 0 {
				t.Errorf("X(%v) = %v, want 0", v, x)
			}
		}
	})

	t.Run("single value", func(t *testing.T) {
		g, err := Build([]float64{5, 5}, 600)
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if g.Padding != 0 {
			t.Errorf("Padding = %v, want 0", g.Padding)
		}
		if x := g.X(5); x != 300 {
			t.Errorf("X(5) = %v, want 300", x)
		}
		if gap := g.MinGap(); !math.IsInf(gap, 1) {
			t.Errorf("MinGap() = %v, want +Inf", gap)
		}
	})

	t.Run("single value continuous", func(t *testing.T) {
		g, err := Build([]float64{5}, 600, WithContinuous())
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		if x := g.X(5); x != 300 {
			t.Errorf("X(5) = %v, want 300", x)
		}
	})
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		domain []float64
		width  float64
	}{
		{"empty domain", nil, 100},
		{"nan value", []float64{1, math.NaN()}, 100},
		{"infinite value", []float64{math.Inf(-1), 1}, 100},
		{"negative width", []float64{1, 2}, -1},
		{"nan width", []float64{1, 2}, math.NaN()},
		{"infinite width", []float64{1, 2}, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.domain, tt.width)
			if !errors.Is(err, errors.ErrCodeGeometryDegenerate) {
				t.Errorf("Build() error = %v, want GEOMETRY_DEGENERATE", err)
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	g, _ := Build([]float64{1, 2, 3}, 900, WithSubdivision(0), WithEpsilon(-1))
	if g.Padding != 100 || g.Epsilon != DefaultEpsilon {
		t.Errorf("invalid options should select defaults: padding %v, epsilon %v", g.Padding, g.Epsilon)
	}

	g, _ = Build([]float64{1, 2, 3}, 900, WithSubdivision(6), WithEpsilon(1))
	if g.Padding != 50 || g.Epsilon != 1 {
		t.Errorf("padding %v, epsilon %v, want 50 and 1", g.Padding, g.Epsilon)
	}
}

func TestBuildDoesNotMutateDomain(t *testing.T) {
	d := []float64{3, 1, 3, 2}
	g, _ := Build(d, 100)
	if !reflect.DeepEqual(d, []float64{3, 1, 3, 2}) {
		t.Errorf("domain mutated: %v", d)
	}
	if got := g.Scale.Domain(); !reflect.DeepEqual(got, []float64{1, 2, 3}) {
		t.Errorf("Domain() = %v, want [1 2 3]", got)
	}
}
