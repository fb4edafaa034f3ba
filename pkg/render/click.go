package render

import "github.com/matzehuels/storyline/pkg/storyline"

// Click returns the events behind the element of layer with the given key,
// or nil when no element matches. Axis ticks carry no events.
func (s Scene) Click(layer Layer, key string) []storyline.Event {
	switch layer {
	case LayerBands:
		for _, m := range s.Bands {
			if m.Key == key {
				return m.Events
			}
		}
	case LayerConnectors:
		for _, m := range s.Connectors {
			if m.Key == key {
				return m.Events
			}
		}
	case LayerCurves:
		for _, m := range s.Curves {
			if m.Key == key {
				return m.Events
			}
		}
	}
	return nil
}

// Dispatch forwards the events of a clicked element to onClick. It reports
// whether the element was found with events to forward.
func Dispatch(s Scene, layer Layer, key string, onClick func([]storyline.Event)) bool {
	events := s.Click(layer, key)
	if len(events) == 0 || onClick == nil {
		return false
	}
	onClick(events)
	return true
}
