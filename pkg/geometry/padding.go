package geometry

import (
	"math"

	"github.com/matzehuels/storyline/pkg/errors"
)

const (
	// DefaultSubdivision divides the per-time pixel share into dwell and ramp.
	DefaultSubdivision = 3

	// DefaultEpsilon absorbs floating-point error in pixel comparisons.
	DefaultEpsilon = 0.25
)

// Geometry is the horizontal model of a chart: where each time sits and how
// wide the dwell around it is.
type Geometry struct {
	Scale   Scale
	Padding float64 // Half-width of the dwell segment around each knot
	Width   float64 // Total pixel width
	Epsilon float64 // Minimum pixel separation between control points
}

// X maps a time to its pixel position.
func (g Geometry) X(t float64) float64 {
	if g.Scale == nil {
		return 0
	}
	return g.Scale.Map(t)
}

// Continuous reports whether the geometry uses a linear scale.
func (g Geometry) Continuous() bool {
	_, ok := g.Scale.(*LinearScale)
	return ok
}

// MinGap returns the smallest pixel distance between adjacent domain
// values, or +Inf when the domain has fewer than two values.
func (g Geometry) MinGap() float64 {
	if g.Scale == nil {
		return math.Inf(1)
	}
	return minGap(g.Scale)
}

// Option configures [Build].
type Option func(*options)

type options struct {
	subdivision int
	continuous  bool
	epsilon     float64
}

// WithSubdivision sets the subdivision factor. Values below 1 select the
// default.
func WithSubdivision(n int) Option {
	return func(o *options) { o.subdivision = n }
}

// WithContinuous selects a linear scale over [min, max] instead of the
// default point scale.
func WithContinuous() Option {
	return func(o *options) { o.continuous = true }
}

// WithEpsilon sets the pixel epsilon. Non-positive or non-finite values
// select the default.
func WithEpsilon(e float64) Option {
	return func(o *options) { o.epsilon = e }
}

// Build creates the scale and padding for domain spread over width pixels.
//
// The domain is sorted and deduplicated first. Build fails with a
// GEOMETRY_DEGENERATE error when the domain is empty or holds a non-finite
// value, or when width is negative or non-finite. A width of zero is valid
// and collapses every time onto x=0 with zero padding.
func Build(domain []float64, width float64, opts ...Option) (Geometry, error) {
	o := options{subdivision: DefaultSubdivision, epsilon: DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}
	if o.subdivision < 1 {
		o.subdivision = DefaultSubdivision
	}
	if !(o.epsilon > 0) || math.IsInf(o.epsilon, 0) {
		o.epsilon = DefaultEpsilon
	}

	if math.IsNaN(width) || math.IsInf(width, 0) || width < 0 {
		return Geometry{}, errors.New(errors.ErrCodeGeometryDegenerate, "pixel width must be a finite non-negative number, got %v", width)
	}
	if len(domain) == 0 {
		return Geometry{}, errors.New(errors.ErrCodeGeometryDegenerate, "domain has no values")
	}
	for _, v := range domain {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Geometry{}, errors.New(errors.ErrCodeGeometryDegenerate, "domain value %v is not finite", v)
		}
	}

	values := distinct(domain)
	candidate := width / float64(len(values)) / float64(o.subdivision)

	var scale Scale
	if o.continuous {
		scale = NewLinearScale(values, candidate, width-candidate)
	} else {
		scale = NewPointScale(values, candidate, width-candidate)
	}

	g := Geometry{Scale: scale, Width: width, Epsilon: o.epsilon}
	if len(values) < 2 {
		return g, nil
	}
	g.Padding = verifyPadding(candidate, minGap(scale), o.epsilon)
	return g, nil
}

// verifyPadding shrinks candidate when two dwell segments of the tightest
// adjacent pair would come closer than eps.
func verifyPadding(candidate, gap, eps float64) float64 {
	if 2*candidate <= gap-eps {
		return candidate
	}
	return max(0, min(candidate, gap/2-eps))
}

func minGap(s Scale) float64 {
	d := s.Domain()
	gap := math.Inf(1)
	for i := 1; i < len(d); i++ {
		gap = min(gap, s.Map(d[i])-s.Map(d[i-1]))
	}
	return gap
}
