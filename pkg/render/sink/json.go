package sink

import (
	"encoding/json"

	"github.com/matzehuels/storyline/pkg/buildinfo"
	"github.com/matzehuels/storyline/pkg/geometry"
	"github.com/matzehuels/storyline/pkg/render"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	payloads bool
}

// WithPayloads includes the original record of every event. Payloads must
// be JSON-serializable.
func WithPayloads() JSONOption { return func(r *jsonRenderer) { r.payloads = true } }

type jsonOutput struct {
	Generator  string          `json:"generator"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Plot       render.Rect     `json:"plot"`
	Bands      []jsonBand      `json:"bands"`
	Connectors []jsonConnector `json:"connectors"`
	Curves     []jsonCurve     `json:"curves"`
	Axis       []jsonTick      `json:"axis"`
}

type jsonBand struct {
	Key      string        `json:"key"`
	Label    string        `json:"label,omitempty"`
	Fill     string        `json:"fill"`
	Segments []render.Rect `json:"segments"`
	Events   []jsonEvent   `json:"events"`
}

type jsonConnector struct {
	Key   string  `json:"key"`
	Band  string  `json:"band"`
	Time  float64 `json:"time"`
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
	Y     float64 `json:"y"`
	Count int     `json:"count"`
}

type jsonCurve struct {
	Key         string                  `json:"key"`
	Label       string                  `json:"label"`
	Title       string                  `json:"title,omitempty"`
	Color       string                  `json:"color"`
	Highlighted bool                    `json:"highlighted,omitempty"`
	Path        string                  `json:"path"`
	Points      []geometry.ControlPoint `json:"points"`
	LabelX      float64                 `json:"label_x"`
	LabelY      float64                 `json:"label_y"`
	Events      []jsonEvent             `json:"events"`
}

type jsonTick struct {
	Key      string  `json:"key"`
	Value    float64 `json:"value"`
	X        float64 `json:"x"`
	Label    string  `json:"label"`
	Rotation float64 `json:"rotation,omitempty"`
	Anchor   string  `json:"anchor"`
	FontSize float64 `json:"font_size"`
}

type jsonEvent struct {
	Entity  string  `json:"entity"`
	Time    float64 `json:"time"`
	Group   string  `json:"group,omitempty"`
	Index   int     `json:"index"`
	Payload any     `json:"payload,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document. It fails
// only when a payload cannot be serialized.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Generator:  buildinfo.Short(),
		Width:      s.Width,
		Height:     s.Height,
		Plot:       s.Plot,
		Bands:      make([]jsonBand, len(s.Bands)),
		Connectors: make([]jsonConnector, len(s.Connectors)),
		Curves:     make([]jsonCurve, len(s.Curves)),
		Axis:       make([]jsonTick, len(s.Axis)),
	}
	for i, b := range s.Bands {
		out.Bands[i] = jsonBand{
			Key:      b.Key,
			Label:    b.Label,
			Fill:     b.Fill,
			Segments: b.Segments,
			Events:   toJSONEvents(b.Events, r.payloads),
		}
	}
	for i, c := range s.Connectors {
		out.Connectors[i] = jsonConnector{
			Key: c.Key, Band: c.Band, Time: c.Time,
			X0: c.X0, X1: c.X1, Y: c.Y, Count: c.Count,
		}
	}
	for i, c := range s.Curves {
		out.Curves[i] = jsonCurve{
			Key:         c.Key,
			Label:       c.Label,
			Title:       c.Title,
			Color:       c.Color,
			Highlighted: c.Highlighted,
			Path:        c.Path,
			Points:      c.Points,
			LabelX:      c.LabelX,
			LabelY:      c.LabelY,
			Events:      toJSONEvents(c.Events, r.payloads),
		}
	}
	for i, t := range s.Axis {
		out.Axis[i] = jsonTick{
			Key:      t.Key,
			Value:    t.Value,
			X:        t.X,
			Label:    t.Label,
			Rotation: t.Directive.Rotation,
			Anchor:   string(t.Directive.Anchor),
			FontSize: t.Directive.FontSize,
		}
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONEvents(events []storyline.Event, payloads bool) []jsonEvent {
	out := make([]jsonEvent, len(events))
	for i, e := range events {
		out[i] = jsonEvent{Entity: e.Entity, Time: e.Time, Group: e.Group, Index: e.Index}
		if payloads {
			out[i].Payload = e.Payload
		}
	}
	return out
}

// eventsJSON is the compact click payload embedded in interactive SVG.
func eventsJSON(events []storyline.Event) []byte {
	data, err := json.Marshal(toJSONEvents(events, false))
	if err != nil {
		return []byte("[]")
	}
	return data
}
