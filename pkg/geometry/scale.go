package geometry

import (
	"slices"
	"sort"
)

// Scale maps domain values to pixel positions.
type Scale interface {
	// Map returns the pixel position of v.
	Map(v float64) float64
	// Domain returns the sorted distinct values the scale was built over.
	Domain() []float64
	// Range returns the pixel interval values are mapped into.
	Range() (lo, hi float64)
}

// PointScale places each domain value at an evenly spaced position across
// the range. A single value maps to the middle of the range.
//
// Values between two domain values are interpolated linearly between their
// positions; values outside the domain clamp to the ends.
type PointScale struct {
	domain []float64
	lo, hi float64
}

// NewPointScale returns a point scale over the distinct values of domain.
func NewPointScale(domain []float64, lo, hi float64) *PointScale {
	return &PointScale{domain: distinct(domain), lo: lo, hi: hi}
}

func (s *PointScale) Domain() []float64         { return slices.Clone(s.domain) }
func (s *PointScale) Range() (float64, float64) { return s.lo, s.hi }

// Step returns the distance between adjacent domain positions.
func (s *PointScale) Step() float64 {
	if len(s.domain) < 2 {
		return 0
	}
	return (s.hi - s.lo) / float64(len(s.domain)-1)
}

func (s *PointScale) Map(v float64) float64 {
	n := len(s.domain)
	switch {
	case n == 0:
		return s.lo
	case n == 1:
		return (s.lo + s.hi) / 2
	case v <= s.domain[0]:
		return s.lo
	case v >= s.domain[n-1]:
		return s.hi
	}

	i := sort.SearchFloat64s(s.domain, v)
	step := s.Step()
	if s.domain[i] == v {
		return s.lo + float64(i)*step
	}
	a, b := s.domain[i-1], s.domain[i]
	frac := (v - a) / (b - a)
	return s.lo + (float64(i-1)+frac)*step
}

// LinearScale maps [min, max] of the domain proportionally onto the range.
// A domain with a single value maps it to the middle of the range.
type LinearScale struct {
	domain []float64
	lo, hi float64
}

// NewLinearScale returns a linear scale over the extent of domain.
func NewLinearScale(domain []float64, lo, hi float64) *LinearScale {
	return &LinearScale{domain: distinct(domain), lo: lo, hi: hi}
}

func (s *LinearScale) Domain() []float64         { return slices.Clone(s.domain) }
func (s *LinearScale) Range() (float64, float64) { return s.lo, s.hi }

func (s *LinearScale) Map(v float64) float64 {
	n := len(s.domain)
	if n == 0 {
		return s.lo
	}
	d0, d1 := s.domain[0], s.domain[n-1]
	if d0 == d1 {
		return (s.lo + s.hi) / 2
	}
	return s.lo + (v-d0)/(d1-d0)*(s.hi-s.lo)
}

// distinct returns a sorted copy of values without duplicates.
func distinct(values []float64) []float64 {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}
