package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/geometry"
	"github.com/matzehuels/storyline/pkg/pipeline"
)

// chartFlags holds the flags shared by the chart commands. Only flags the
// user sets override the settings file.
type chartFlags struct {
	// Fields
	timeField  string
	idField    string
	groupField string
	timeLayout string
	category   string
	label      string
	tooltip    string

	// Layout
	bandGap    float64
	bandHeight float64
	groupOrder string
	recurring  string

	// Geometry and axis
	width       float64
	height      float64
	subdivision int
	continuous  bool
	axisMinGap  float64
	axisFormat  string
	ticks       []float64

	// Render
	formats     string
	title       string
	highlights  string
	interactive bool
	payloads    bool
	pngScale    float64

	// Filter
	entities string
	times    []float64

	// Graph
	detailed  bool
	minShared int
}

func (f *chartFlags) bindFields(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.timeField, "time", dataset.DefaultTimeField, "record field holding the time")
	fs.StringVar(&f.idField, "id", dataset.DefaultIDField, "record field holding the entity")
	fs.StringVar(&f.groupField, "group", dataset.DefaultGroupField, "record field holding the group")
	fs.StringVar(&f.timeLayout, "time-layout", "", `Go time layout for date values (e.g. "2006-01-02")`)
	fs.StringVar(&f.category, "category", "", "record field that picks the line color")
	fs.StringVar(&f.label, "label", "", "record field shown as the line label")
	fs.StringVar(&f.tooltip, "tooltip", "", "record field shown as the line tooltip")
	fs.StringVar(&f.entities, "entities", "", "only lay out these entities (comma-separated)")
	fs.Float64SliceVar(&f.times, "times", nil, "only lay out these times (comma-separated)")
}

func (f *chartFlags) bindLayout(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.bandGap, "band-gap", 1, "vertical gap between bands")
	fs.Float64Var(&f.bandHeight, "band-height", 1, "vertical span of a band slot")
	fs.StringVar(&f.groupOrder, "group-order", "", "explicit top-to-bottom group order (comma-separated)")
	fs.StringVar(&f.recurring, "recurring", pipeline.DefaultRecurring, "reappearing groups: merge (one band) or split (new band per run)")
	_ = cmd.RegisterFlagCompletionFunc("recurring", completeRecurring)
}

func (f *chartFlags) bindGeometry(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "plot width in pixels")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "maximum plot height in pixels")
	fs.IntVar(&f.subdivision, "subdivision", geometry.DefaultSubdivision, "padding subdivision of each time slot")
	fs.BoolVar(&f.continuous, "continuous", false, "space times by value instead of evenly")
	fs.Float64Var(&f.axisMinGap, "axis-min-gap", 0, "tick spacing below which labels rotate (pixels)")
	fs.StringVar(&f.axisFormat, "axis-format", "", `tick label template (e.g. "Year %v")`)
	fs.Float64SliceVar(&f.ticks, "ticks", nil, "explicit tick values (comma-separated)")
}

func (f *chartFlags) bindRender(cmd *cobra.Command, defaultFormats string) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", defaultFormats, "output format(s), comma-separated")
	fs.StringVar(&f.title, "title", "", "chart title")
	fs.StringVar(&f.highlights, "highlight", "", "entities to emphasize (comma-separated)")
	fs.BoolVar(&f.interactive, "interactive", false, "embed click handling in SVG output")
	fs.BoolVar(&f.payloads, "payloads", false, "include source records in JSON output")
	fs.Float64Var(&f.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG pixel density")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats(pipeline.VizTypeStoryline))
}

func (f *chartFlags) bindGraph(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.detailed, "detailed", false, "show event and group counts on nodes")
	fs.IntVar(&f.minShared, "min-shared", 0, "drop edges between entities sharing fewer time-slices")
}

// apply copies the flags the user set onto opts.
func (f *chartFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := func(name string, fn func()) {
		if cmd.Flags().Changed(name) {
			fn()
		}
	}

	set("time", func() { opts.Fields.Time = f.timeField })
	set("id", func() { opts.Fields.ID = f.idField })
	set("group", func() { opts.Fields.Group = f.groupField })
	set("time-layout", func() { opts.Fields.TimeLayout = f.timeLayout })
	set("category", func() { opts.Fields.Category = f.category })
	set("label", func() { opts.Fields.Label = f.label })
	set("tooltip", func() { opts.Fields.Title = f.tooltip })
	set("entities", func() { opts.Filter.Entities = parseList(f.entities) })
	set("times", func() { opts.Filter.Times = f.times })

	set("band-gap", func() { opts.BandGap = f.bandGap })
	set("band-height", func() { opts.BandHeight = f.bandHeight })
	set("group-order", func() { opts.GroupOrder = parseList(f.groupOrder) })
	set("recurring", func() { opts.Recurring = f.recurring })

	set("width", func() { opts.Width = f.width })
	set("height", func() { opts.Height = f.height })
	set("subdivision", func() { opts.Subdivision = f.subdivision })
	set("continuous", func() { opts.Continuous = f.continuous })
	set("axis-min-gap", func() { opts.AxisMinGap = f.axisMinGap })
	set("axis-format", func() { opts.AxisFormat = f.axisFormat })
	set("ticks", func() { opts.Ticks = f.ticks })

	set("format", func() { opts.Formats = parseList(f.formats) })
	set("title", func() { opts.Title = f.title })
	set("highlight", func() { opts.Highlights = parseList(f.highlights) })
	set("interactive", func() { opts.Interactive = f.interactive })
	set("payloads", func() { opts.Payloads = f.payloads })
	set("png-scale", func() { opts.PNGScale = f.pngScale })

	set("detailed", func() { opts.Detailed = f.detailed })
	set("min-shared", func() { opts.MinShared = f.minShared })
}
