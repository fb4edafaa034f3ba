package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/storyline/pkg/buildinfo"
	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/storyline"
)

const storylineCSS = `
    .band rect { opacity: 0.35; }
    .band-label { font: 11px sans-serif; fill: #555; }
    .connector { stroke: #555; stroke-opacity: 0.5; stroke-linecap: round; }
    .storyline path { fill: none; stroke-width: 2; transition: stroke-width 0.2s ease, opacity 0.2s ease; }
    .storyline text { font: 12px sans-serif; dominant-baseline: middle; }
    .storyline.highlighted path, .storyline.active path { stroke-width: 4; }
    .dimmed { opacity: 0.2; }
    .axis line, .axis path { stroke: #333; }
    .axis text { font-family: sans-serif; fill: #333; }`

const storylineJS = `
    const lines = document.querySelectorAll('.storyline');
    function focus(key) {
      lines.forEach(l => {
        l.classList.toggle('active', l.dataset.key === key);
        l.classList.toggle('dimmed', l.dataset.key !== key);
      });
    }
    function clearFocus() {
      lines.forEach(l => l.classList.remove('active', 'dimmed'));
    }
    lines.forEach(l => {
      l.addEventListener('mouseenter', () => focus(l.dataset.key));
      l.addEventListener('mouseleave', clearFocus);
    });
    document.querySelectorAll('[data-events]').forEach(el => {
      el.addEventListener('click', () => el.dispatchEvent(new CustomEvent('storyline-click', {
        bubbles: true,
        detail: { layer: el.dataset.layer, key: el.dataset.key, events: JSON.parse(el.dataset.events) },
      })));
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	interaction bool
	background  string
}

// WithTitle adds a document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithInteraction embeds the hover and click script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithBackground fills the canvas with a color.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	fmt.Fprintf(&buf, "  <!-- generated by %s -->\n", escapeXML(buildinfo.Short()))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", storylineCSS)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	renderBands(&buf, s.Bands, r.interaction)
	renderConnectors(&buf, s.Connectors, r.interaction)
	renderCurves(&buf, s.Curves, r.interaction)
	renderAxis(&buf, s)

	if r.interaction {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", storylineJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// clickData returns the attributes that let the interaction script forward
// a click on an element of layer, or "" when interaction is off.
func clickData(layer render.Layer, events []storyline.Event, interactive bool) string {
	if !interactive {
		return ""
	}
	return fmt.Sprintf(` data-layer="%s" data-events="%s"`, layer, escapeXML(string(eventsJSON(events))))
}

func renderBands(buf *bytes.Buffer, bands []render.BandMark, interactive bool) {
	buf.WriteString(`  <g class="bands">` + "\n")
	for _, b := range bands {
		fmt.Fprintf(buf, `    <g class="band" id="%s" data-key="%s"%s>`+"\n",
			render.ElementID(render.LayerBands, b.Key), escapeXML(b.Key), clickData(render.LayerBands, b.Events, interactive))
		for _, r := range b.Segments {
			fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s"/>`+"\n",
				r.X, r.Y, r.W, r.H, escapeXML(b.Fill))
		}
		if b.Label != "" && len(b.Segments) > 0 {
			first := b.Segments[0]
			fmt.Fprintf(buf, `      <text class="band-label" x="%.2f" y="%.2f">%s</text>`+"\n",
				first.X, first.Y-2, escapeXML(b.Label))
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderConnectors(buf *bytes.Buffer, connectors []render.ConnectorMark, interactive bool) {
	buf.WriteString(`  <g class="connectors">` + "\n")
	for _, c := range connectors {
		fmt.Fprintf(buf, `    <line class="connector" id="%s" data-key="%s"%s x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="%d"/>`+"\n",
			render.ElementID(render.LayerConnectors, c.Key), escapeXML(c.Key), clickData(render.LayerConnectors, c.Events, interactive),
			c.X0, c.Y, c.X1, c.Y, 2+2*c.Count)
	}
	buf.WriteString("  </g>\n")
}

func renderCurves(buf *bytes.Buffer, curves []render.CurveMark, interactive bool) {
	buf.WriteString(`  <g class="storylines">` + "\n")
	for _, c := range curves {
		class := "storyline"
		if c.Highlighted {
			class += " highlighted"
		}
		fmt.Fprintf(buf, `    <g class="%s" id="%s" data-key="%s"%s>`+"\n",
			class, render.ElementID(render.LayerCurves, c.Key), escapeXML(c.Key), clickData(render.LayerCurves, c.Events, interactive))
		if c.Title != "" {
			fmt.Fprintf(buf, "      <title>%s</title>\n", escapeXML(c.Title))
		}
		fmt.Fprintf(buf, `      <path d="%s" stroke="%s"/>`+"\n", c.Path, escapeXML(c.Color))
		fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" fill="%s">%s</text>`+"\n",
			c.LabelX, c.LabelY, escapeXML(c.Color), escapeXML(c.Label))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderAxis(buf *bytes.Buffer, s render.Scene) {
	if len(s.Axis) == 0 {
		return
	}
	fmt.Fprintf(buf, `  <g class="axis" transform="translate(0,%.2f)">`+"\n", s.AxisY)
	fmt.Fprintf(buf, `    <path d="M%.2f,6V0H%.2fV6" fill="none"/>`+"\n", s.Plot.X, s.Plot.X+s.Plot.W)
	for _, t := range s.Axis {
		d := t.Directive
		fmt.Fprintf(buf, `    <g class="tick" id="%s" data-key="%s">`+"\n",
			render.ElementID(render.LayerAxis, t.Key), escapeXML(t.Key))
		fmt.Fprintf(buf, `      <line x1="%.2f" x2="%.2f" y2="6"/>`+"\n", t.X, t.X)
		if d.Rotated() {
			fmt.Fprintf(buf, `      <text x="%.2f" y="18" text-anchor="%s" font-size="%.1f" transform="rotate(%.1f %.2f 18)">%s</text>`+"\n",
				t.X, d.Anchor, d.FontSize, d.Rotation, t.X, escapeXML(t.Label))
		} else {
			fmt.Fprintf(buf, `      <text x="%.2f" y="18" text-anchor="%s" font-size="%.1f">%s</text>`+"\n",
				t.X, d.Anchor, d.FontSize, escapeXML(t.Label))
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
