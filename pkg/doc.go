// Package pkg provides the core libraries for storyline visualization.
//
// # Overview
//
// A storyline chart draws one line per entity across time. Entities that share
// a group at the same time run side by side inside a band; lines cross between
// bands as entities regroup. The pkg directory is organized into four areas:
//
//  1. [storyline] - Layout (events, bands, storylines)
//  2. [geometry] and [axis] - Horizontal placement and tick generation
//  3. [render] - Scene construction and output sinks
//  4. [pipeline] - Orchestration (load → layout → scene → artifacts)
//
// # Architecture
//
// The typical data flow:
//
//	Event file (JSON, YAML, CSV)
//	         ↓
//	    [dataset] package (records + field mapping)
//	         ↓
//	    [storyline] package (bands + storylines)
//	         ↓
//	    [geometry] package (time → x, padding, control points)
//	         ↓
//	    [render] package (scene of marks)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/storyline/pkg/dataset"
//	    "github.com/matzehuels/storyline/pkg/pipeline"
//	)
//
//	records, _ := dataset.ReadFile("trips.csv")
//	res, _ := pipeline.Run(ctx, records, pipeline.Options{
//	    Fields:  dataset.Fields{Group: "place"},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	os.WriteFile("trips.svg", res.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Main Packages
//
// [storyline] - The layout engine. Groups events into bands per time-slice,
// assigns each band a vertical slot, and threads one storyline per entity
// through the bands it occupies.
//
// [geometry] - Maps domain time to x. Computes the padding around each time
// and the control points a curve passes through.
//
// [axis] - Tick values and labels with rotation when labels crowd.
//
// [render] - Builds a keyed scene of bands, connectors, curves and ticks, and
// reconciles scenes for incremental updates.
//
//   - [render/sink]: Output formats (SVG, PDF, PNG, JSON)
//   - [render/nodelink]: Entity co-occurrence graph via Graphviz
//
// ## Infrastructure
//
// [pipeline] - Complete pipeline used by the CLI. Validates options, computes
// layout and geometry, renders artifacts, and caches them.
//
// [dataset] - Event file readers and the field mapping from records to
// entity, time and group.
//
// [config] - The storyline.toml settings file.
//
// [cache] - File-backed artifact cache keyed by dataset and option hashes.
//
// [observability] - Pipeline and cache hooks with a structured-log
// implementation.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/storyline/   # Specific package
//	go test -run Example       # Examples only
//
// [storyline]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/storyline
// [geometry]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/geometry
// [axis]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/axis
// [render]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/pipeline
// [dataset]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/dataset
// [config]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/storyline/pkg/errors
package pkg
