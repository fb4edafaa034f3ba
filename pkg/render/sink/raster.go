package sink

import (
	"context"

	"github.com/matzehuels/storyline/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions sets the options of the SVG the PNG is rasterized from.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the pixel density of the PNG. The default is 2.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions sets the options of the SVG the PDF is converted from.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPNG rasterizes the storyline chart. Hover and click handling is
// dropped even when [WithInteraction] is passed, since a PNG cannot run it.
func RenderPNG(ctx context.Context, s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(ctx, staticSVG(s, r.svgOpts), r.scale)
}

// RenderPDF converts the storyline chart to a single-page PDF, without the
// interaction script.
func RenderPDF(ctx context.Context, s render.Scene, opts ...PDFOption) ([]byte, error) {
	var r pdfRenderer
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPDF(ctx, staticSVG(s, r.svgOpts))
}

// staticSVG renders s with opts and interaction turned off.
func staticSVG(s render.Scene, opts []SVGOption) []byte {
	opts = append(opts[:len(opts):len(opts)], func(r *svgRenderer) { r.interaction = false })
	return RenderSVG(s, opts...)
}
