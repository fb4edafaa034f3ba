package storyline

import (
	"math"
	"slices"
)

// Event is one normalized input record.
type Event struct {
	Entity  string  // Entity identifier (never empty)
	Time    float64 // Domain time value (always finite)
	Group   string  // Group label; empty means the entity is alone
	Index   int     // Position of the record in the input
	Payload any     // The original record
}

// Band is the vertical interval occupied by one group.
type Band struct {
	Key        string    // Unique band key, used for render identity
	Group      string    // Group label ("" for a solo band)
	Order      int       // Vertical slot index
	Y0, Y1     float64   // Vertical extent, Y0 < Y1
	Start, End float64   // First and last time the band is occupied
	Times      []float64 // Distinct times the band is occupied, ascending
	Events     []Event   // Member events, sorted by time then input index
}

// Mid returns the y shared by every member of the band.
func (b Band) Mid() float64 { return (b.Y0 + b.Y1) / 2 }

// Height returns the vertical span of the band.
func (b Band) Height() float64 { return b.Y1 - b.Y0 }

// Solo reports whether the band holds a single ungrouped entity.
func (b Band) Solo() bool { return b.Group == "" }

// At returns the member events at time t.
func (b Band) At(t float64) []Event {
	var out []Event
	for _, e := range b.Events {
		if e.Time == t {
			out = append(out, e)
		}
	}
	return out
}

// Point is one knot of a storyline.
type Point struct {
	Time  float64
	Y     float64
	Band  string // Key of the band the entity occupies at Time
	Event Event
}

// Storyline is the ordered path of one entity.
type Storyline struct {
	Key    string
	Points []Point
}

// Events returns the events behind the storyline's points.
func (s Storyline) Events() []Event {
	out := make([]Event, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Event
	}
	return out
}

// Exclusion records an input record that did not become an event.
type Exclusion struct {
	Index  int
	Entity string
	Reason string
}

// Exclusion reasons.
const (
	ReasonInvalidEntity = "invalid entity id"
	ReasonInvalidTime   = "non-finite time"
	ReasonDuplicate     = "duplicate entity at time"
)

// Result is an immutable layout snapshot.
type Result struct {
	Bands      []Band
	Storylines []Storyline
	Events     []Event // Normalized events sorted by time then input index
	Excluded   []Exclusion
}

// Empty reports whether there is nothing to render.
func (r Result) Empty() bool { return len(r.Events) == 0 }

// Times returns the distinct event times in ascending order.
func (r Result) Times() []float64 {
	times := make([]float64, 0, len(r.Events))
	for _, e := range r.Events {
		times = append(times, e.Time)
	}
	slices.Sort(times)
	return slices.Compact(times)
}

// Extent returns the smallest Y0 and largest Y1 over all bands.
// An empty result has extent (0, 0).
func (r Result) Extent() (lo, hi float64) {
	if len(r.Bands) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, b := range r.Bands {
		lo = min(lo, b.Y0)
		hi = max(hi, b.Y1)
	}
	return lo, hi
}

// Band looks up a band by key.
func (r Result) Band(key string) (Band, bool) {
	for _, b := range r.Bands {
		if b.Key == key {
			return b, true
		}
	}
	return Band{}, false
}

// Storyline looks up a storyline by key.
func (r Result) Storyline(key string) (Storyline, bool) {
	for _, s := range r.Storylines {
		if s.Key == key {
			return s, true
		}
	}
	return Storyline{}, false
}
