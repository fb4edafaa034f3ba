// Package render turns a storyline layout into drawable scene descriptors.
//
// # Overview
//
// The core packages stop at abstract geometry: bands with y intervals,
// storylines with (time, y) knots, and a horizontal scale with padding.
// This package maps that model onto a pixel canvas:
//
//   - [Build] produces a [Scene] with four keyed layers: bands, connectors,
//     curves and axis ticks
//   - [Reconcile] diffs two scenes into enter, update and exit sets
//   - [Scene.Click] and [Dispatch] resolve a clicked element to its events
//   - [MonotoneX] converts control points into SVG path data
//
// Output formats live in the [sink] subpackage; the entity co-occurrence
// graph lives in [nodelink].
//
// # Styles
//
// Colors, labels and tooltips come from a [Style]. [Palette] assigns the
// category-10 colors in key order and generates further hues in HCL space
// once those run out. [StyleFuncs] adapts plain functions.
//
//	style, _ := render.NewPalette(keys)
//	scene := render.Build(render.Input{Layout: res, Geometry: g, Style: style})
//	svg := sink.RenderSVG(scene)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG using the external rsvg-convert tool
// (from librsvg).
//
// [sink]: github.com/matzehuels/storyline/pkg/render/sink
// [nodelink]: github.com/matzehuels/storyline/pkg/render/nodelink
package render
