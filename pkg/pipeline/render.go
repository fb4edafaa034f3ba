package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/storyline/pkg/errors"
	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/render/nodelink"
	"github.com/matzehuels/storyline/pkg/render/sink"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// RenderScene encodes a storyline scene in each requested format.
func RenderScene(ctx context.Context, scene render.Scene, formats []string, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, scene, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			var jsonOpts []sink.JSONOption
			if opts.Payloads {
				jsonOpts = append(jsonOpts, sink.WithPayloads())
			}
			data, err = sink.RenderJSON(scene, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported storyline format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderGraph encodes the co-occurrence graph of res in each requested
// format.
func RenderGraph(ctx context.Context, res storyline.Result, style render.Style, formats []string, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(res, nodelink.Options{
		Detailed:  opts.Detailed,
		MinShared: opts.MinShared,
		Style:     style,
	})
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.PNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
