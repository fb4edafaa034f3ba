// Package sink writes a [render.Scene] in an output format.
//
// # Overview
//
//   - SVG: the chart with hover and click highlighting
//   - JSON: the resolved scene for external tools
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws the four scene layers in order: bands, connectors,
// storylines and the time axis. Every element carries a data-key attribute
// with its scene key and a stable id from [render.ElementID], so scripts can
// address elements across re-renders.
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithTitle("Martha"),
//	    sink.WithInteraction(),
//	)
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render a static SVG first, then convert it
// with [render.ToPDF] and [render.ToPNG]. These require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.Scene]: github.com/matzehuels/storyline/pkg/render.Scene
// [render.ElementID]: github.com/matzehuels/storyline/pkg/render.ElementID
// [render.ToPDF]: github.com/matzehuels/storyline/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/storyline/pkg/render.ToPNG
package sink
