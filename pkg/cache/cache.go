// Package cache stores rendered artifacts between runs.
//
// The CLI renders the same event file many times while a chart is being
// tuned. Artifacts are keyed by a hash of the event records and every
// option that changes the output, so an unchanged input is served from
// the cache instead of being laid out and rendered again.
//
// Two backends are provided: [FileCache] for the CLI and [NullCache],
// which disables caching.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/storyline/pkg/buildinfo"
)

// TTLArtifact is how long a rendered artifact stays valid.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// LayoutKeyOpts holds the options that change the layout or its geometry.
type LayoutKeyOpts struct {
	TimeField  string    `json:"time_field"`
	IDField    string    `json:"id_field"`
	GroupField string    `json:"group_field"`
	TimeLayout string    `json:"time_layout,omitempty"`
	BandGap    float64   `json:"band_gap"`
	BandHeight float64   `json:"band_height"`
	GroupOrder []string  `json:"group_order,omitempty"`
	Recurring  string    `json:"recurring"`
	Entities   []string  `json:"entities,omitempty"`
	Times      []float64 `json:"times,omitempty"`

	VizType     string  `json:"viz_type"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Subdivision int     `json:"subdivision"`
	Continuous  bool    `json:"continuous,omitempty"`
}

// ArtifactKeyOpts holds the options that change one rendered artifact.
type ArtifactKeyOpts struct {
	Format      string            `json:"format"`
	Title       string            `json:"title,omitempty"`
	Interactive bool              `json:"interactive,omitempty"`
	Scheme      []string          `json:"scheme,omitempty"`
	Palette     map[string]string `json:"palette,omitempty"`
	Category    string            `json:"category,omitempty"`
	Label       string            `json:"label,omitempty"`
	Tooltip     string            `json:"tooltip,omitempty"`
	Highlights  []string          `json:"highlights,omitempty"`
	AxisMinGap  float64           `json:"axis_min_gap,omitempty"`
	AxisFormat  string            `json:"axis_format,omitempty"`
	Ticks       []float64         `json:"ticks,omitempty"`
	Detailed    bool              `json:"detailed,omitempty"`
	MinShared   int               `json:"min_shared,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a dataset laid out with opts.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one artifact rendered from a layout.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey returns "artifact:<sha256>". The build version is part of the
// hash.
func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, buildinfo.Version, opts)
}
