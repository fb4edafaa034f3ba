// Package axis places the time-axis tick labels of a storyline chart.
//
// [Ticks] maps tick values through a scale and formats their labels.
// [PlaceLabels] decides, from the tick pixel positions alone, whether labels
// fit horizontally or need to be rotated and shrunk. Both are pure: they
// never modify their inputs.
package axis

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/storyline/pkg/geometry"
)

// Defaults for [PlaceLabels].
const (
	DefaultMinGap      = 60.0
	DefaultFontSize    = 12.0
	DefaultMinFontSize = 8.0
	DefaultRotation    = -45.0
)

// Anchor is the text anchor of a label, using SVG text-anchor values.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Directive tells the renderer how to draw one tick label.
type Directive struct {
	Rotation float64 // Degrees, negative is counter-clockwise
	Anchor   Anchor
	FontSize float64 // Pixels
}

// Rotated reports whether the label is drawn at an angle.
func (d Directive) Rotated() bool { return d.Rotation != 0 }

// Option configures [PlaceLabels].
type Option func(*options)

type options struct {
	minGap      float64
	fontSize    float64
	minFontSize float64
	rotation    float64
}

// WithMinGap sets the spacing below which labels are rotated.
func WithMinGap(px float64) Option { return func(o *options) { o.minGap = px } }

// WithFontSize sets the default label font size.
func WithFontSize(px float64) Option { return func(o *options) { o.fontSize = px } }

// WithMinFontSize sets the smallest font size labels may shrink to.
func WithMinFontSize(px float64) Option { return func(o *options) { o.minFontSize = px } }

// WithRotation sets the angle of rotated labels.
func WithRotation(deg float64) Option { return func(o *options) { o.rotation = deg } }

func newOptions(opts []Option) options {
	o := options{
		minGap:      DefaultMinGap,
		fontSize:    DefaultFontSize,
		minFontSize: DefaultMinFontSize,
		rotation:    DefaultRotation,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !(o.minGap >= 0) {
		o.minGap = DefaultMinGap
	}
	if !(o.fontSize > 0) {
		o.fontSize = DefaultFontSize
	}
	if !(o.minFontSize > 0) || o.minFontSize > o.fontSize {
		o.minFontSize = min(DefaultMinFontSize, o.fontSize)
	}
	return o
}

// PlaceLabels returns one directive per tick position.
//
// When the smallest distance between neighboring positions is below the
// minimum gap, every label is rotated and end-anchored; below half the gap,
// the font also shrinks in proportion, down to the minimum font size.
// Otherwise labels are horizontal and centered.
func PlaceLabels(positions []float64, opts ...Option) []Directive {
	if len(positions) == 0 {
		return nil
	}
	o := newOptions(opts)

	d := Directive{Anchor: AnchorMiddle, FontSize: o.fontSize}
	if gap := MinSpacing(positions); gap < o.minGap {
		d.Rotation = o.rotation
		d.Anchor = AnchorEnd
		if half := o.minGap / 2; gap < half {
			d.FontSize = max(o.minFontSize, o.fontSize*gap/half)
		}
	}

	out := make([]Directive, len(positions))
	for i := range out {
		out[i] = d
	}
	return out
}

// MinSpacing returns the smallest distance between neighboring positions,
// or +Inf for fewer than two positions.
func MinSpacing(positions []float64) float64 {
	sorted := slices.Clone(positions)
	slices.Sort(sorted)
	gap := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		gap = min(gap, sorted[i]-sorted[i-1])
	}
	return gap
}

// Format renders a tick value as label text.
type Format func(float64) string

// Plain formats a value in its shortest decimal form.
func Plain(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Template returns a Format that substitutes the value into a fmt template,
// for example "Year %v".
func Template(tmpl string) Format {
	return func(v float64) string { return fmt.Sprintf(tmpl, v) }
}

// Tick is a labeled position on the time axis.
type Tick struct {
	Value float64
	X     float64
	Label string
}

// Ticks maps values through the scale. Nil values select the scale domain;
// a nil format selects [Plain].
func Ticks(s geometry.Scale, values []float64, format Format) []Tick {
	if values == nil {
		values = s.Domain()
	}
	if format == nil {
		format = Plain
	}
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, X: s.Map(v), Label: format(v)}
	}
	return ticks
}

// Positions returns the pixel positions of ticks.
func Positions(ticks []Tick) []float64 {
	xs := make([]float64, len(ticks))
	for i, t := range ticks {
		xs[i] = t.X
	}
	return xs
}
