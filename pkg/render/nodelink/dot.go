package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/storyline/pkg/errors"
	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// Options configures co-occurrence diagram generation.
type Options struct {
	// Detailed includes event and group counts in node labels.
	// When false, only the entity is shown.
	Detailed bool

	// MinShared drops edges between entities that shared a band for fewer
	// time-slices. Zero keeps every edge.
	MinShared int

	// Style colors the nodes. Nil draws white nodes.
	Style render.Style
}

// Edge is a pair of entities that shared a band.
type Edge struct {
	From, To string
	Shared   int // Time-slices spent in the same band
}

// CoOccurrence returns the entity pairs that shared a band, in first-seen
// order of the pair. From precedes To in storyline order.
func CoOccurrence(res storyline.Result) []Edge {
	rank := make(map[string]int, len(res.Storylines))
	for i, s := range res.Storylines {
		rank[s.Key] = i
	}

	type pair struct{ a, b string }
	index := make(map[pair]int)
	var edges []Edge

	for _, b := range res.Bands {
		for _, t := range b.Times {
			members := b.At(t)
			for i := 0; i < len(members); i++ {
				for j := i + 1; j < len(members); j++ {
					x, y := members[i].Entity, members[j].Entity
					if rank[y] < rank[x] {
						x, y = y, x
					}
					p := pair{x, y}
					if k, ok := index[p]; ok {
						edges[k].Shared++
						continue
					}
					index[p] = len(edges)
					edges = append(edges, Edge{From: x, To: y, Shared: 1})
				}
			}
		}
	}
	return edges
}

// ToDOT converts a layout to Graphviz DOT format. The resulting DOT string
// can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(res storyline.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, s := range res.Storylines {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(s, opts.Detailed))}
		if opts.Style != nil {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", opts.Style.ColorOf(s.Key)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", s.Key, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range CoOccurrence(res) {
		if e.Shared < opts.MinShared {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [weight=%d, penwidth=%d, label=%q];\n",
			e.From, e.To, e.Shared, min(1+e.Shared, 8), strconv.Itoa(e.Shared))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s storyline.Storyline, detailed bool) string {
	if !detailed {
		return s.Key
	}
	groups := make(map[string]bool)
	for _, p := range s.Points {
		if p.Event.Group != "" {
			groups[p.Event.Group] = true
		}
	}
	return fmt.Sprintf("%s\nevents: %d\ngroups: %d", s.Key, len(s.Points), len(groups))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a
// pixel-sized one so the diagram scales like the storyline SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
