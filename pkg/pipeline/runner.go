package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/storyline/pkg/cache"
	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/observability"
	"github.com/matzehuels/storyline/pkg/render"
)

// Runner executes the pipeline with an artifact cache.
//
// The Runner holds no per-run state, so goroutines may share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default keyer and a nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Run executes the pipeline without caching.
func Run(ctx context.Context, records []dataset.Record, opts Options) (*Result, error) {
	return NewRunner(nil, nil, opts.Logger).Execute(ctx, records, opts)
}

// Execute runs the layout → geometry → scene → render pipeline.
// Artifacts found in the cache are not rendered again.
func (r *Runner) Execute(ctx context.Context, records []dataset.Record, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	hooks := observability.Pipeline()

	records = opts.Filter.Apply(records, opts.Fields)
	result := &Result{Stats: Stats{Records: len(records)}}

	// Stage 1: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, len(records))
	res, err := ComputeLayout(records, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, observability.LayoutStats{
		Events:     len(res.Events),
		Bands:      len(res.Bands),
		Storylines: len(res.Storylines),
		Excluded:   len(res.Excluded),
	}, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.Events = len(res.Events)
	result.Stats.Excluded = len(res.Excluded)
	result.Stats.Bands = len(res.Bands)
	result.Stats.Storylines = len(res.Storylines)

	for _, ex := range res.Excluded {
		logger.Debug("excluded record", "index", ex.Index, "entity", ex.Entity, "reason", ex.Reason)
	}
	logger.Info("computed layout",
		"events", len(res.Events),
		"bands", len(res.Bands),
		"storylines", len(res.Storylines),
		"excluded", len(res.Excluded),
		"duration", result.Stats.LayoutTime)

	style, err := BuildStyle(records, opts)
	if err != nil {
		return nil, fmt.Errorf("style: %w", err)
	}

	// Stage 2: Geometry and scene
	if !opts.IsNodelink() {
		geoStart := time.Now()
		geo, err := ComputeGeometry(res, opts)
		result.Stats.GeometryTime = time.Since(geoStart)
		hooks.OnGeometryComplete(ctx, len(res.Times()), geo.Padding, result.Stats.GeometryTime, err)
		if err != nil {
			return nil, fmt.Errorf("geometry: %w", err)
		}
		result.Geometry = geo
		result.Scene = BuildScene(res, geo, style, opts)

		logger.Debug("computed geometry",
			"slices", len(res.Times()),
			"padding", geo.Padding,
			"width", result.Scene.Width,
			"height", result.Scene.Height)
	}

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	artifacts, info, err := r.render(ctx, records, result, style, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// render serves cached artifacts and renders the rest.
func (r *Runner) render(ctx context.Context, records []dataset.Record, result *Result, style render.Style, opts Options) (map[string][]byte, CacheInfo, error) {
	var info CacheInfo
	artifacts := make(map[string][]byte, len(opts.Formats))
	keys := r.artifactKeys(records, opts)
	cacheHooks := observability.Cache()

	var missing []string
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		if key, ok := keys[format]; ok {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				cacheHooks.OnCacheHit(ctx, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}
		artifacts[format] = nil
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, info, nil
	}

	var rendered map[string][]byte
	var err error
	if opts.IsNodelink() {
		rendered, err = RenderGraph(ctx, result.Layout, style, missing, opts)
	} else {
		rendered, err = RenderScene(ctx, result.Scene, missing, opts)
	}
	if err != nil {
		return nil, CacheInfo{}, err
	}

	for _, format := range missing {
		data := rendered[format]
		artifacts[format] = data
		info.Misses = append(info.Misses, format)
		if key, ok := keys[format]; ok {
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Debug("cache write failed", "format", format, "error", err)
				continue
			}
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
	}
	return artifacts, info, nil
}

// artifactKeys returns the cache key of each format. Records that cannot
// be hashed are not cached.
func (r *Runner) artifactKeys(records []dataset.Record, opts Options) map[string]string {
	data, err := json.Marshal(records)
	if err != nil {
		opts.Logger.Debug("records not cacheable", "error", err)
		return nil
	}
	layoutKey := r.Keyer.LayoutKey(cache.Hash(data), opts.LayoutKeyOpts())
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
	}
	return keys
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
