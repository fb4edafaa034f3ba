package render

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/matzehuels/storyline/pkg/axis"
	"github.com/matzehuels/storyline/pkg/geometry"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// Defaults for [Build].
const (
	// DefaultRowPixels is the pixel height of one layout unit when the
	// chart is shorter than the requested height.
	DefaultRowPixels = 20.0

	// DefaultBandColor fills bands whose members have no valid color.
	DefaultBandColor = "#d9d9d9"

	labelGap = 4.0
)

// Margin is the space around the plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin leaves room for storyline labels on the right and the axis
// at the bottom.
var DefaultMargin = Margin{Top: 30, Right: 135, Bottom: 25, Left: 20}

// Layer names a scene layer.
type Layer string

const (
	LayerBands      Layer = "bands"
	LayerConnectors Layer = "connectors"
	LayerCurves     Layer = "curves"
	LayerAxis       Layer = "axis"
)

// Input is everything [Build] needs.
type Input struct {
	Layout   storyline.Result
	Geometry geometry.Geometry

	// Height caps the plot height in pixels. Zero sizes the plot by
	// RowPixels alone.
	Height    float64
	RowPixels float64
	Margin    *Margin

	Style      Style
	Highlights []string

	// Ticks defaults to one tick per domain value with plain labels.
	Ticks       []axis.Tick
	AxisOptions []axis.Option
}

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BandMark draws one band. A band absent for some time-slices is drawn as
// one segment per run of consecutive slices.
type BandMark struct {
	Key      string
	Label    string
	Fill     string
	Segments []Rect
	Events   []storyline.Event
}

// ConnectorMark joins the dwell segments of two or more entities sharing a
// band at the same time.
type ConnectorMark struct {
	Key    string // band@time
	Band   string
	Time   float64
	X0, X1 float64
	Y      float64
	Count  int
	Events []storyline.Event
}

// CurveMark draws one storyline.
type CurveMark struct {
	Key         string
	Label       string
	Title       string
	Color       string
	Highlighted bool
	Points      []geometry.ControlPoint // Canvas pixels
	Path        string                  // SVG path data
	LabelX      float64
	LabelY      float64
	Events      []storyline.Event
}

// TickMark is one axis tick and how to draw its label.
type TickMark struct {
	Key       string
	Value     float64
	X         float64
	Label     string
	Directive axis.Directive
}

// Scene is a fully resolved, drawable chart.
type Scene struct {
	Width, Height float64 // canvas size
	Plot          Rect    // plot area inside the margins
	AxisY         float64

	Bands      []BandMark
	Connectors []ConnectorMark
	Curves     []CurveMark
	Axis       []TickMark
}

// Empty reports whether the scene draws no data.
func (s Scene) Empty() bool { return len(s.Curves) == 0 && len(s.Bands) == 0 }

// Build resolves a layout into a scene. It never fails: an empty layout
// yields a scene without data marks.
func Build(in Input) Scene {
	m := DefaultMargin
	if in.Margin != nil {
		m = *in.Margin
	}
	style := in.Style
	if style == nil {
		style = StyleFuncs{}
	}
	rowPx := in.RowPixels
	if !(rowPx > 0) {
		rowPx = DefaultRowPixels
	}

	lo, hi := in.Layout.Extent()
	plotH := (hi - lo) * rowPx
	if in.Height > 0 {
		plotH = min(plotH, in.Height)
	}
	f := frame{margin: m, geo: in.Geometry, lo: lo, hi: hi, plotH: plotH}

	s := Scene{
		Width:  m.Left + in.Geometry.Width + m.Right,
		Height: m.Top + plotH + m.Bottom,
		Plot:   Rect{X: m.Left, Y: m.Top, W: in.Geometry.Width, H: plotH},
		AxisY:  m.Top + plotH,
	}

	s.Curves = buildCurves(in.Layout, style, in.Highlights, f)
	s.Bands = buildBands(in.Layout, s.Curves, f)
	s.Connectors = buildConnectors(in.Layout, f)
	s.Axis = buildAxis(in, f)
	return s
}

// frame maps layout coordinates onto the canvas.
type frame struct {
	margin Margin
	geo    geometry.Geometry
	lo, hi float64
	plotH  float64
}

// x maps a time to canvas pixels.
func (f frame) x(t float64) float64 { return f.margin.Left + f.geo.X(t) }

// shift moves a plot-space x onto the canvas.
func (f frame) shift(x float64) float64 { return f.margin.Left + x }

// y maps a layout y to canvas pixels.
func (f frame) y(v float64) float64 {
	if f.hi == f.lo {
		return f.margin.Top
	}
	return f.margin.Top + (v-f.lo)/(f.hi-f.lo)*f.plotH
}

func buildCurves(res storyline.Result, style Style, highlights []string, f frame) []CurveMark {
	highlighted := make(map[string]bool, len(highlights))
	for _, k := range highlights {
		highlighted[k] = true
	}

	curves := make([]CurveMark, 0, len(res.Storylines))
	for _, sl := range res.Storylines {
		pts := geometry.StorylinePoints(sl, f.geo)
		if len(pts) == 0 {
			continue
		}
		px := make([]geometry.ControlPoint, len(pts))
		for i, p := range pts {
			px[i] = geometry.ControlPoint{X: f.shift(p.X), Y: f.y(p.Y)}
		}
		last := px[len(px)-1]
		curves = append(curves, CurveMark{
			Key:         sl.Key,
			Label:       style.LabelOf(sl.Key),
			Title:       style.TitleOf(sl.Key),
			Color:       style.ColorOf(sl.Key),
			Highlighted: highlighted[sl.Key],
			Points:      px,
			Path:        MonotoneX(px),
			LabelX:      last.X + labelGap,
			LabelY:      last.Y,
			Events:      sl.Events(),
		})
	}
	return curves
}

// buildBands draws each band as one segment per run of consecutive domain
// values, filled with the blend of its members' colors.
func buildBands(res storyline.Result, curves []CurveMark, f frame) []BandMark {
	colorOf := make(map[string]string, len(curves))
	for _, c := range curves {
		colorOf[c.Key] = c.Color
	}
	index := make(map[float64]int)
	if f.geo.Scale != nil {
		for i, v := range f.geo.Scale.Domain() {
			index[v] = i
		}
	}
	pad := f.geo.Padding

	bands := make([]BandMark, 0, len(res.Bands))
	for _, b := range res.Bands {
		y0, y1 := f.y(b.Y0), f.y(b.Y1)
		var segs []Rect
		runStart := 0
		for i := 1; i <= len(b.Times); i++ {
			if i < len(b.Times) && index[b.Times[i]] == index[b.Times[i-1]]+1 {
				continue
			}
			x0 := f.x(b.Times[runStart]) - pad
			x1 := f.x(b.Times[i-1]) + pad
			segs = append(segs, Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0})
			runStart = i
		}

		var members []string
		seen := make(map[string]bool)
		for _, e := range b.Events {
			if !seen[e.Entity] {
				seen[e.Entity] = true
				members = append(members, colorOf[e.Entity])
			}
		}

		label := b.Group
		if b.Solo() {
			label = ""
		}
		bands = append(bands, BandMark{
			Key:      b.Key,
			Label:    label,
			Fill:     Blend(members, DefaultBandColor),
			Segments: segs,
			Events:   b.Events,
		})
	}
	return bands
}

func buildConnectors(res storyline.Result, f frame) []ConnectorMark {
	var out []ConnectorMark
	pad := f.geo.Padding
	for _, b := range res.Bands {
		for _, t := range b.Times {
			members := b.At(t)
			if len(members) < 2 {
				continue
			}
			out = append(out, ConnectorMark{
				Key:    ConnectorKey(b.Key, t),
				Band:   b.Key,
				Time:   t,
				X0:     f.x(t) - pad,
				X1:     f.x(t) + pad,
				Y:      f.y(b.Mid()),
				Count:  len(members),
				Events: members,
			})
		}
	}
	return out
}

// ConnectorKey returns the key of the connector of band at time t.
func ConnectorKey(band string, t float64) string {
	return band + "@" + strconv.FormatFloat(t, 'f', -1, 64)
}

func buildAxis(in Input, f frame) []TickMark {
	if f.geo.Scale == nil {
		return nil
	}
	ticks := in.Ticks
	if ticks == nil {
		ticks = axis.Ticks(f.geo.Scale, nil, nil)
	}
	// Ticks beyond the domain would clamp onto the end points of a point scale
	// or run off the plot of a linear one.
	if dom := f.geo.Scale.Domain(); len(dom) > 0 {
		lo, hi := dom[0], dom[len(dom)-1]
		ticks = slices.DeleteFunc(slices.Clone(ticks), func(t axis.Tick) bool {
			return t.Value < lo || t.Value > hi
		})
	} else {
		ticks = slices.Clone(ticks)
	}
	slices.SortStableFunc(ticks, func(a, b axis.Tick) int { return cmp.Compare(a.X, b.X) })

	dirs := axis.PlaceLabels(axis.Positions(ticks), in.AxisOptions...)
	out := make([]TickMark, len(ticks))
	for i, t := range ticks {
		out[i] = TickMark{
			Key:       "tick:" + strconv.FormatFloat(t.Value, 'f', -1, 64),
			Value:     t.Value,
			X:         f.shift(t.X),
			Label:     t.Label,
			Directive: dirs[i],
		}
	}
	return out
}
