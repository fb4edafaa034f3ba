// Package config loads chart settings from TOML files.
//
// A settings file mirrors the pipeline options section by section:
//
//	[fields]
//	time = "year"
//	id = "name"
//	group = "place"
//
//	[layout]
//	group_order = ["Station", "Caves"]
//	recurring = "split"
//
//	[geometry]
//	width = 1200
//
//	[axis]
//	format = "Year %v"
//
//	[render]
//	formats = ["svg", "png"]
//	title = "Dark"
//
//	[render.palette]
//	Nielsen = "#e6550d"
//
// Unknown keys are rejected so typos surface instead of being ignored.
// Command-line flags override file values.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/errors"
	"github.com/matzehuels/storyline/pkg/pipeline"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "storyline.toml"

// Config is the content of a settings file.
type Config struct {
	Fields   Fields   `toml:"fields"`
	Layout   Layout   `toml:"layout"`
	Geometry Geometry `toml:"geometry"`
	Axis     Axis     `toml:"axis"`
	Render   Render   `toml:"render"`
	Graph    Graph    `toml:"graph"`
	Filter   Filter   `toml:"filter"`
}

// Fields names the record fields.
type Fields struct {
	Time       string `toml:"time"`
	ID         string `toml:"id"`
	Group      string `toml:"group"`
	TimeLayout string `toml:"time_layout"`
	Category   string `toml:"category"`
	Label      string `toml:"label"`
	Title      string `toml:"title"`
}

// Layout configures bands.
type Layout struct {
	BandGap    float64  `toml:"band_gap"`
	BandHeight float64  `toml:"band_height"`
	GroupOrder []string `toml:"group_order"`
	Recurring  string   `toml:"recurring"`
}

// Geometry configures the plot size and horizontal mapping.
type Geometry struct {
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Subdivision int     `toml:"subdivision"`
	Continuous  bool    `toml:"continuous"`
}

// Axis configures the time axis.
type Axis struct {
	MinGap float64   `toml:"min_gap"`
	Format string    `toml:"format"`
	Ticks  []float64 `toml:"ticks"`
}

// Render configures output encoding and styling.
type Render struct {
	Formats     []string          `toml:"formats"`
	Title       string            `toml:"title"`
	Scheme      []string          `toml:"scheme"`
	Palette     map[string]string `toml:"palette"`
	Highlights  []string          `toml:"highlights"`
	Interactive bool              `toml:"interactive"`
	Payloads    bool              `toml:"payloads"`
	PNGScale    float64           `toml:"png_scale"`
}

// Graph configures the co-occurrence graph.
type Graph struct {
	Detailed  bool `toml:"detailed"`
	MinShared int  `toml:"min_shared"`
}

// Filter selects records.
type Filter struct {
	Entities []string  `toml:"entities"`
	Times    []float64 `toml:"times"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	var o pipeline.Options
	o.SetDefaults()
	return FromOptions(o)
}

// Load reads and validates the settings file at path. Keys missing from the
// file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeConfiguration, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads path, or DefaultFile from the working directory when path
// is empty. A missing DefaultFile yields the defaults.
func Resolve(path string) (Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(DefaultFile); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(DefaultFile)
	return cfg, DefaultFile, err
}

// Validate reports the first invalid setting as a CONFIGURATION error.
func (c Config) Validate() error {
	o := c.Options()
	o.SetDefaults()
	return o.Validate()
}

// Options converts the settings to pipeline options.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Fields: dataset.Fields{
			Time:       c.Fields.Time,
			ID:         c.Fields.ID,
			Group:      c.Fields.Group,
			TimeLayout: c.Fields.TimeLayout,
			Category:   c.Fields.Category,
			Label:      c.Fields.Label,
			Title:      c.Fields.Title,
		},
		Filter: dataset.Filter{
			Entities: c.Filter.Entities,
			Times:    c.Filter.Times,
		},
		BandGap:     c.Layout.BandGap,
		BandHeight:  c.Layout.BandHeight,
		GroupOrder:  c.Layout.GroupOrder,
		Recurring:   c.Layout.Recurring,
		Width:       c.Geometry.Width,
		Height:      c.Geometry.Height,
		Subdivision: c.Geometry.Subdivision,
		Continuous:  c.Geometry.Continuous,
		AxisMinGap:  c.Axis.MinGap,
		AxisFormat:  c.Axis.Format,
		Ticks:       c.Axis.Ticks,
		Formats:     c.Render.Formats,
		Title:       c.Render.Title,
		Scheme:      c.Render.Scheme,
		Palette:     c.Render.Palette,
		Highlights:  c.Render.Highlights,
		Interactive: c.Render.Interactive,
		Payloads:    c.Render.Payloads,
		PNGScale:    c.Render.PNGScale,
		Detailed:    c.Graph.Detailed,
		MinShared:   c.Graph.MinShared,
	}
}

// FromOptions converts pipeline options to settings.
func FromOptions(o pipeline.Options) Config {
	return Config{
		Fields: Fields{
			Time:       o.Fields.Time,
			ID:         o.Fields.ID,
			Group:      o.Fields.Group,
			TimeLayout: o.Fields.TimeLayout,
			Category:   o.Fields.Category,
			Label:      o.Fields.Label,
			Title:      o.Fields.Title,
		},
		Layout: Layout{
			BandGap:    o.BandGap,
			BandHeight: o.BandHeight,
			GroupOrder: o.GroupOrder,
			Recurring:  o.Recurring,
		},
		Geometry: Geometry{
			Width:       o.Width,
			Height:      o.Height,
			Subdivision: o.Subdivision,
			Continuous:  o.Continuous,
		},
		Axis: Axis{
			MinGap: o.AxisMinGap,
			Format: o.AxisFormat,
			Ticks:  o.Ticks,
		},
		Render: Render{
			Formats:     o.Formats,
			Title:       o.Title,
			Scheme:      o.Scheme,
			Palette:     o.Palette,
			Highlights:  o.Highlights,
			Interactive: o.Interactive,
			Payloads:    o.Payloads,
			PNGScale:    o.PNGScale,
		},
		Graph:  Graph{Detailed: o.Detailed, MinShared: o.MinShared},
		Filter: Filter{Entities: o.Filter.Entities, Times: o.Filter.Times},
	}
}

// Write encodes c as TOML to path.
func (c Config) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return f.Close()
}
