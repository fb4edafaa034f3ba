// Package pipeline runs the complete load → layout → geometry → render
// pipeline for storyline charts.
//
// The CLI drives every chart through this package, so all entry points
// share defaults, validation and caching.
//
// # Stages
//
//  1. Layout: group events into bands and trace one storyline per entity
//  2. Geometry: fit the time domain to the plot width and compute padding
//  3. Scene: resolve marks, colors and axis ticks in canvas pixels
//  4. Render: encode the scene (SVG, PNG, PDF, JSON) or the co-occurrence
//     graph (SVG, PNG, PDF, DOT)
//
// # Usage
//
//	records, err := dataset.ReadFile("events.csv")
//	if err != nil {
//	    return err
//	}
//	res, err := pipeline.Run(ctx, records, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
//
// Use a [Runner] with a cache to skip rendering an unchanged input.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/storyline/pkg/axis"
	"github.com/matzehuels/storyline/pkg/cache"
	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/errors"
	"github.com/matzehuels/storyline/pkg/geometry"
	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config
// =============================================================================

const (
	// DefaultWidth is the default plot width in pixels.
	DefaultWidth = 960.0

	// DefaultHeight caps the plot height in pixels.
	DefaultHeight = 600.0

	// DefaultPNGScale is the pixel density of PNG output.
	DefaultPNGScale = 2.0

	// DefaultRecurring keeps one band per group label.
	DefaultRecurring = "merge"
)

// Visualization types.
const (
	VizTypeStoryline = "storyline"
	VizTypeNodelink  = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeStoryline

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats lists the output formats of each visualization type.
var ValidFormats = map[string]map[string]bool{
	VizTypeStoryline: {FormatSVG: true, FormatPNG: true, FormatPDF: true, FormatJSON: true},
	VizTypeNodelink:  {FormatSVG: true, FormatPNG: true, FormatPDF: true, FormatDOT: true},
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeStoryline: true,
	VizTypeNodelink:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Dataset options
	Fields dataset.Fields `json:"fields"`
	Filter dataset.Filter `json:"filter"`

	// Layout options
	BandGap    float64  `json:"band_gap,omitempty"`
	BandHeight float64  `json:"band_height,omitempty"`
	GroupOrder []string `json:"group_order,omitempty"`
	Recurring  string   `json:"recurring,omitempty"`

	// Geometry options
	VizType     string  `json:"viz_type,omitempty"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Subdivision int     `json:"subdivision,omitempty"`
	Continuous  bool    `json:"continuous,omitempty"`

	// Axis options
	AxisMinGap float64   `json:"axis_min_gap,omitempty"`
	AxisFormat string    `json:"axis_format,omitempty"` // fmt template such as "Year %v"
	Ticks      []float64 `json:"ticks,omitempty"`

	// Render options
	Formats     []string          `json:"formats,omitempty"`
	Title       string            `json:"title,omitempty"`
	Scheme      []string          `json:"scheme,omitempty"`
	Palette     map[string]string `json:"palette,omitempty"` // category value → color
	Highlights  []string          `json:"highlights,omitempty"`
	Interactive bool              `json:"interactive,omitempty"`
	Payloads    bool              `json:"payloads,omitempty"` // embed records in JSON output
	PNGScale    float64           `json:"png_scale,omitempty"`

	// Co-occurrence graph options
	Detailed  bool `json:"detailed,omitempty"`
	MinShared int  `json:"min_shared,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the band and storyline snapshot.
	Layout storyline.Result

	// Geometry is the horizontal mapping. It is the zero value for an
	// empty layout.
	Geometry geometry.Geometry

	// Scene is the resolved chart. Nodelink runs leave it empty.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records      int
	Events       int
	Excluded     int
	Bands        int
	Storylines   int
	LayoutTime   time.Duration
	GeometryTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	Hits   []string // Formats served from the cache
	Misses []string // Formats rendered in this run
}

// RenderHit reports whether every artifact came from the cache.
func (c CacheInfo) RenderHit() bool { return len(c.Hits) > 0 && len(c.Misses) == 0 }

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeConfiguration, "invalid viz type %q (must be one of: storyline, nodelink)", vizType)
	}
	return nil
}

// ValidateFormat checks that format is produced by vizType.
func ValidateFormat(vizType, format string) error {
	valid := ValidFormats[vizType]
	if !valid[format] {
		names := make([]string, 0, len(valid))
		for _, f := range []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT} {
			if valid[f] {
				names = append(names, f)
			}
		}
		return errors.New(errors.ErrCodeConfiguration, "invalid %s format %q (must be one of: %s)", vizType, format, strings.Join(names, ", "))
	}
	return nil
}

// ValidateFormats checks every format against vizType.
func ValidateFormats(vizType string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(vizType, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAxisFormat checks that a tick label template has a verb.
func ValidateAxisFormat(tmpl string) error {
	if tmpl != "" && !strings.Contains(tmpl, "%") {
		return errors.New(errors.ErrCodeConfiguration, "axis format %q has no formatting verb (e.g. \"Year %%v\")", tmpl)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero values with the defaults.
func (o *Options) SetDefaults() {
	o.Fields = o.Fields.WithDefaults()
	if o.Recurring == "" {
		o.Recurring = DefaultRecurring
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Subdivision == 0 {
		o.Subdivision = geometry.DefaultSubdivision
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate reports the first invalid option as a CONFIGURATION error.
func (o *Options) Validate() error {
	if err := o.Fields.Validate(); err != nil {
		return err
	}
	if _, err := storyline.ParseRecurring(o.Recurring); err != nil {
		return err
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.VizType, o.Formats); err != nil {
		return err
	}
	if err := ValidateAxisFormat(o.AxisFormat); err != nil {
		return err
	}
	for _, n := range []struct {
		name string
		v    float64
	}{{"width", o.Width}, {"height", o.Height}, {"band gap", o.BandGap}, {"band height", o.BandHeight}} {
		if n.v < 0 || math.IsNaN(n.v) || math.IsInf(n.v, 0) {
			return errors.New(errors.ErrCodeConfiguration, "%s must be a non-negative number, got %v", n.name, n.v)
		}
	}
	if o.Subdivision < 1 {
		return errors.New(errors.ErrCodeConfiguration, "subdivision must be at least 1, got %d", o.Subdivision)
	}
	if !(o.PNGScale > 0) {
		return errors.New(errors.ErrCodeConfiguration, "png scale must be positive, got %v", o.PNGScale)
	}
	if o.MinShared < 0 {
		return errors.New(errors.ErrCodeConfiguration, "min shared must be non-negative, got %d", o.MinShared)
	}
	for _, c := range o.Scheme {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "scheme")
		}
	}
	for k, c := range o.Palette {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "palette entry %q", k)
		}
	}
	return nil
}

// IsNodelink reports whether the run renders the co-occurrence graph.
func (o *Options) IsNodelink() bool { return o.VizType == VizTypeNodelink }

// LayoutConfig returns the layout configuration for dataset records.
func (o *Options) LayoutConfig() storyline.Config[dataset.Record] {
	cfg := o.Fields.Config()
	cfg.BandGap = o.BandGap
	cfg.BandHeight = o.BandHeight
	cfg.GroupOrder = o.GroupOrder
	cfg.Recurring, _ = storyline.ParseRecurring(o.Recurring)
	return cfg
}

// GeometryOptions returns the geometry options.
func (o *Options) GeometryOptions() []geometry.Option {
	opts := []geometry.Option{geometry.WithSubdivision(o.Subdivision)}
	if o.Continuous {
		opts = append(opts, geometry.WithContinuous())
	}
	return opts
}

// AxisOptions returns the label placement options.
func (o *Options) AxisOptions() []axis.Option {
	if o.AxisMinGap > 0 {
		return []axis.Option{axis.WithMinGap(o.AxisMinGap)}
	}
	return nil
}

// TickFormat returns the tick label format.
func (o *Options) TickFormat() axis.Format {
	if o.AxisFormat == "" {
		return axis.Plain
	}
	return axis.Template(o.AxisFormat)
}

// LayoutKeyOpts returns cache key options for the layout and geometry.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		TimeField:   o.Fields.Time,
		IDField:     o.Fields.ID,
		GroupField:  o.Fields.Group,
		TimeLayout:  o.Fields.TimeLayout,
		BandGap:     o.BandGap,
		BandHeight:  o.BandHeight,
		GroupOrder:  o.GroupOrder,
		Recurring:   o.Recurring,
		Entities:    o.Filter.Entities,
		Times:       o.Filter.Times,
		VizType:     o.VizType,
		Width:       o.Width,
		Height:      o.Height,
		Subdivision: o.Subdivision,
		Continuous:  o.Continuous,
	}
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		Interactive: o.Interactive,
		Scheme:      o.Scheme,
		Palette:     o.Palette,
		Category:    o.Fields.Category,
		Label:       o.Fields.Label,
		Tooltip:     o.Fields.Title,
		Highlights:  o.Highlights,
		AxisMinGap:  o.AxisMinGap,
		AxisFormat:  o.AxisFormat,
		Ticks:       o.Ticks,
		Detailed:    o.Detailed,
		MinShared:   o.MinShared,
	}
	if format == FormatJSON && o.Payloads {
		k.Format = "json+payloads"
	}
	if format == FormatPNG {
		k.Format = fmt.Sprintf("png@%g", o.PNGScale)
	}
	return k
}
