package pipeline

import (
	"github.com/matzehuels/storyline/pkg/axis"
	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/geometry"
	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// =============================================================================
// Layout
// =============================================================================

// ComputeLayout lays out records with the layout options.
func ComputeLayout(records []dataset.Record, opts Options) (storyline.Result, error) {
	opts.SetDefaults()
	return storyline.Build(records, opts.LayoutConfig())
}

// ComputeGeometry fits the time domain of res to the plot width. An empty
// layout has no domain to fit and yields the zero Geometry.
func ComputeGeometry(res storyline.Result, opts Options) (geometry.Geometry, error) {
	if res.Empty() {
		return geometry.Geometry{}, nil
	}
	opts.SetDefaults()
	return geometry.Build(res.Times(), opts.Width, opts.GeometryOptions()...)
}

// =============================================================================
// Scene
// =============================================================================

// BuildStyle colors storylines by the category field, or by entity when no
// category is configured. Labels and tooltips come from the label and title
// fields and fall back to the entity.
func BuildStyle(records []dataset.Record, opts Options) (render.Style, error) {
	opts.SetDefaults()
	f := opts.Fields

	categories := f.Attribute(records, f.Category)
	labels := f.Attribute(records, f.Label)
	titles := f.Attribute(records, f.Title)

	var keys []string
	for _, e := range f.Entities(records) {
		if c, ok := categories[e]; ok {
			keys = append(keys, c)
		} else {
			keys = append(keys, e)
		}
	}

	var popts []render.PaletteOption
	if len(opts.Scheme) > 0 {
		popts = append(popts, render.WithScheme(opts.Scheme))
	}
	if len(opts.Palette) > 0 {
		popts = append(popts, render.WithOverrides(opts.Palette))
	}
	palette, err := render.NewPalette(keys, popts...)
	if err != nil {
		return nil, err
	}

	return render.StyleFuncs{
		Base: palette,
		Color: func(key string) string {
			if c, ok := categories[key]; ok {
				return palette.ColorOf(c)
			}
			return palette.ColorOf(key)
		},
		Label: lookup(labels),
		Title: lookup(titles),
	}, nil
}

func lookup(m map[string]string) func(string) string {
	return func(key string) string {
		if v, ok := m[key]; ok {
			return v
		}
		return key
	}
}

// BuildScene resolves the layout into canvas marks.
func BuildScene(res storyline.Result, geo geometry.Geometry, style render.Style, opts Options) render.Scene {
	opts.SetDefaults()
	in := render.Input{
		Layout:      res,
		Geometry:    geo,
		Height:      opts.Height,
		Style:       style,
		Highlights:  opts.Highlights,
		AxisOptions: opts.AxisOptions(),
	}
	if geo.Scale != nil {
		in.Ticks = axis.Ticks(geo.Scale, opts.Ticks, opts.TickFormat())
	}
	return render.Build(in)
}
