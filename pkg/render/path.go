package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/storyline/pkg/geometry"
)

// MonotoneX returns SVG path data for a cubic curve through pts that is
// monotone in y between consecutive points, so it never overshoots a flat
// dwell segment. Points must be strictly increasing in x.
//
// Tangents follow Fritsch-Carlson as used by d3's curveMonotoneX; each
// Hermite segment is emitted as a cubic Bézier.
func MonotoneX(pts []geometry.ControlPoint) string {
	var b strings.Builder
	switch len(pts) {
	case 0:
		return ""
	case 1:
		writeCmd(&b, 'M', pts[0])
		return b.String()
	case 2:
		writeCmd(&b, 'M', pts[0])
		writeCmd(&b, 'L', pts[1])
		return b.String()
	}

	n := len(pts)
	tangents := make([]float64, n)
	for i := 1; i < n-1; i++ {
		tangents[i] = interiorSlope(pts[i-1], pts[i], pts[i+1])
	}
	tangents[0] = endSlope(pts[0], pts[1], tangents[1])
	tangents[n-1] = endSlope(pts[n-2], pts[n-1], tangents[n-2])

	writeCmd(&b, 'M', pts[0])
	for i := 0; i < n-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		dx := (p1.X - p0.X) / 3
		writeCmd(&b, 'C',
			geometry.ControlPoint{X: p0.X + dx, Y: p0.Y + dx*tangents[i]},
			geometry.ControlPoint{X: p1.X - dx, Y: p1.Y - dx*tangents[i+1]},
			p1)
	}
	return b.String()
}

// interiorSlope is the tangent at p1, limited so the curve stays monotone.
func interiorSlope(p0, p1, p2 geometry.ControlPoint) float64 {
	h0, h1 := p1.X-p0.X, p2.X-p1.X
	if h0 == 0 || h1 == 0 {
		return 0
	}
	s0, s1 := (p1.Y-p0.Y)/h0, (p2.Y-p1.Y)/h1
	p := (s0*h1 + s1*h0) / (h0 + h1)
	m := (sign(s0) + sign(s1)) * min(math.Abs(s0), math.Abs(s1), 0.5*math.Abs(p))
	if math.IsNaN(m) {
		return 0
	}
	return m
}

// endSlope is the one-sided tangent at an end of the segment p0-p1, given
// the tangent t at its other end.
func endSlope(p0, p1 geometry.ControlPoint, t float64) float64 {
	h := p1.X - p0.X
	if h == 0 {
		return t
	}
	return (3*(p1.Y-p0.Y)/h - t) / 2
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func writeCmd(b *strings.Builder, cmd byte, pts ...geometry.ControlPoint) {
	b.WriteByte(cmd)
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(num(p.X))
		b.WriteByte(',')
		b.WriteString(num(p.Y))
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
