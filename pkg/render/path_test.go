package render

import (
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/storyline/pkg/geometry"
)

func TestMonotoneXShortInputs(t *testing.T) {
	tests := []struct {
		name string
		pts  []geometry.ControlPoint
		want string
	}{
		{"empty", nil, ""},
		{"single", []geometry.ControlPoint{{X: 1, Y: 2}}, "M1,2"},
		{"line", []geometry.ControlPoint{{X: 0, Y: 0}, {X: 10, Y: 5}}, "M0,0L10,5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonotoneX(tt.pts); got != tt.want {
				t.Errorf("MonotoneX() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonotoneXCollinear(t *testing.T) {
	pts := []geometry.ControlPoint{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	want := "M0,0C0.33,0.33 0.67,0.67 1,1C1.33,1.33 1.67,1.67 2,2"
	if got := MonotoneX(pts); got != want {
		t.Errorf("MonotoneX() = %q, want %q", got, want)
	}
}

// segments parses the cubic segments of a MonotoneX path into
// [start, c1, c2, end] y-values.
func segments(t *testing.T, path string) [][4]float64 {
	t.Helper()
	if !strings.HasPrefix(path, "M") {
		t.Fatalf("path %q does not start with M", path)
	}
	parts := strings.Split(path[1:], "C")
	prevY := parseY(t, parts[0])
	var out [][4]float64
	for _, p := range parts[1:] {
		f := strings.Fields(p)
		if len(f) != 3 {
			t.Fatalf("malformed segment %q", p)
		}
		seg := [4]float64{prevY, parseY(t, f[0]), parseY(t, f[1]), parseY(t, f[2])}
		out = append(out, seg)
		prevY = seg[3]
	}
	return out
}

func parseY(t *testing.T, pair string) float64 {
	t.Helper()
	_, y, ok := strings.Cut(pair, ",")
	if !ok {
		t.Fatalf("malformed point %q", pair)
	}
	v, err := strconv.ParseFloat(y, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", y, err)
	}
	return v
}

func TestMonotoneXNoOvershoot(t *testing.T) {
	g, err := geometry.Build([]float64{1, 2, 3, 4}, 800)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	knots := []geometry.Knot{{Time: 1, Y: 0}, {Time: 2, Y: 100}, {Time: 3, Y: 100}, {Time: 4, Y: 20}}
	path := MonotoneX(geometry.Points(knots, g))

	const tol = 0.01
	for i, s := range segments(t, path) {
		lo, hi := min(s[0], s[3]), max(s[0], s[3])
		for _, c := range s[1:3] {
			if c < lo-tol || c > hi+tol {
				t.Errorf("segment %d control y %v outside [%v, %v]", i, c, lo, hi)
			}
		}
		if s[0] == s[3] && (s[1] != s[0] || s[2] != s[0]) {
			t.Errorf("flat segment %d bends: %v", i, s)
		}
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		-0.001:    "0",
		12.3456:   "12.35",
		-7.5:      "-7.5",
		1000000.1: "1000000.1",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
