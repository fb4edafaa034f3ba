package geometry

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/storyline/pkg/storyline"
)

// Knot is a (time, y) position a curve must pass through.
type Knot struct {
	Time float64
	Y    float64
}

// ControlPoint is a pixel-space point handed to the curve interpolator.
type ControlPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Knots returns the knots of a storyline.
func Knots(s storyline.Storyline) []Knot {
	knots := make([]Knot, len(s.Points))
	for i, p := range s.Points {
		knots[i] = Knot{Time: p.Time, Y: p.Y}
	}
	return knots
}

// StorylinePoints returns the control points of a storyline.
func StorylinePoints(s storyline.Storyline, g Geometry) []ControlPoint {
	return Points(Knots(s), g)
}

// Points returns two control points per knot, one at each end of its
// dwell segment. The x-coordinates are strictly increasing.
//
// Knots are taken in time order; knots with a non-finite time or y are
// skipped. No knots yield nil. A single knot yields a flat two-point path.
func Points(knots []Knot, g Geometry) []ControlPoint {
	ks := make([]Knot, 0, len(knots))
	for _, k := range knots {
		if isFinite(k.Time) && isFinite(k.Y) {
			ks = append(ks, k)
		}
	}
	if len(ks) == 0 {
		return nil
	}
	slices.SortStableFunc(ks, func(a, b Knot) int { return cmp.Compare(a.Time, b.Time) })

	eps := g.Epsilon
	if !(eps > 0) {
		eps = DefaultEpsilon
	}
	pad := max(0, g.Padding)

	out := make([]ControlPoint, 0, 2*len(ks))
	lastX := math.Inf(-1)
	for i, k := range ks {
		x := g.X(k.Time)
		left, right := x-pad, x+pad

		hasNext := i+1 < len(ks)
		var next float64
		if hasNext {
			next = g.X(ks[i+1].Time)
			right = clampRight(right, x, next, pad, eps)
		}

		if left <= lastX {
			span := right - left
			left = lastX + eps
			right = left + span
			if hasNext {
				right = clampRight(right, x, next, pad, eps)
			}
		}
		right = max(right, left+eps)

		out = append(out, ControlPoint{X: left, Y: k.Y}, ControlPoint{X: right, Y: k.Y})
		lastX = right
	}
	return out
}

// clampRight keeps the right end of a dwell clear of the next knot's dwell.
func clampRight(right, x, next, pad, eps float64) float64 {
	if right > next-pad-eps {
		return min(right, (x+next)/2-eps)
	}
	return right
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
