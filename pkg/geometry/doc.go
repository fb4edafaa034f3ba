// Package geometry maps storyline time onto pixels.
//
// # Scales
//
// A [Scale] maps domain time to horizontal pixels. [PointScale] spaces the
// sorted distinct times evenly, which suits ordinal data such as chapters
// or years with gaps that should not be drawn to scale. [LinearScale] maps
// [min, max] proportionally, for continuous time.
//
// # Padding
//
// Every knot of a storyline is drawn as a short flat "dwell" segment of
// half-width padding around its x, so curves only bend between knots.
// [Build] derives the padding from the pixel width and the number of
// distinct times:
//
//	g, err := geometry.Build(res.Times(), 800)
//	pts := geometry.StorylinePoints(res.Storylines[0], g)
//
// The candidate padding width/|domain|/subdivision is verified once against
// the smallest pixel gap between adjacent times and shrunk when two dwell
// segments would touch. With the returned padding, x(t_i)+padding never
// exceeds x(t_i+1)-padding.
//
// # Control Points
//
// [Points] emits two control points per knot and guarantees the sequence is
// strictly increasing in x, even when padding is zero or the caller feeds a
// padding too wide for the scale. The points are meant for a monotone cubic
// interpolator; this package does not interpolate.
package geometry
