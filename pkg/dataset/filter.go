package dataset

import "strings"

// Filter selects records by entity and time. Empty lists select everything.
type Filter struct {
	Entities []string
	Times    []float64
}

// Empty reports whether the filter keeps every record.
func (f Filter) Empty() bool { return len(f.Entities) == 0 && len(f.Times) == 0 }

// Apply returns the records that pass the filter, in input order. The input
// is not modified.
func (f Filter) Apply(records []Record, fields Fields) []Record {
	if f.Empty() {
		return records
	}
	fields = fields.WithDefaults()

	entities := make(map[string]bool, len(f.Entities))
	for _, e := range f.Entities {
		entities[e] = true
	}
	times := make(map[float64]bool, len(f.Times))
	for _, t := range f.Times {
		times[t] = true
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if len(entities) > 0 && !entities[strings.TrimSpace(r.String(fields.ID))] {
			continue
		}
		if len(times) > 0 && !times[r.Time(fields.Time, fields.TimeLayout)] {
			continue
		}
		out = append(out, r)
	}
	return out
}
