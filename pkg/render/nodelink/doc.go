// Package nodelink renders the entity co-occurrence graph of a storyline
// layout as a node-link diagram.
//
// # Overview
//
// A storyline chart shows when entities share a band; this package shows
// how often. Every entity becomes a node, and two entities are joined by an
// undirected edge weighted by the number of time-slices they spent in the
// same band.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: node labels include event and group counts
//   - MinShared: hide edges shared for fewer time-slices
//   - Style: node fill colors from a [render.Style]
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [render.Style]: github.com/matzehuels/storyline/pkg/render.Style
package nodelink
