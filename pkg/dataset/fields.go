package dataset

import (
	"strings"

	"github.com/matzehuels/storyline/pkg/errors"
	"github.com/matzehuels/storyline/pkg/storyline"
)

// Default field names.
const (
	DefaultTimeField  = "time"
	DefaultIDField    = "id"
	DefaultGroupField = "group"
)

// Fields names the record fields that drive the layout and the style.
type Fields struct {
	Time       string // Time field (default "time")
	ID         string // Entity field (default "id")
	Group      string // Group field (default "group")
	TimeLayout string // Go time layout for date strings, e.g. "2006-01-02"

	Category string // Field whose value picks the storyline color
	Label    string // Field shown as the storyline label
	Title    string // Field shown as the storyline tooltip
}

// WithDefaults fills empty layout fields with the defaults.
func (f Fields) WithDefaults() Fields {
	if f.Time == "" {
		f.Time = DefaultTimeField
	}
	if f.ID == "" {
		f.ID = DefaultIDField
	}
	if f.Group == "" {
		f.Group = DefaultGroupField
	}
	return f
}

// Validate rejects field names that cannot be used.
func (f Fields) Validate() error {
	f = f.WithDefaults()
	for _, name := range []string{f.Time, f.ID, f.Group} {
		if strings.TrimSpace(name) != name {
			return errors.New(errors.ErrCodeConfiguration, "field name %q has surrounding whitespace", name)
		}
	}
	if f.Time == f.ID {
		return errors.New(errors.ErrCodeConfiguration, "time and id cannot use the same field %q", f.Time)
	}
	return nil
}

// Config returns layout accessors reading these fields.
func (f Fields) Config() storyline.Config[Record] {
	f = f.WithDefaults()
	return storyline.Config[Record]{
		Time:  func(r Record) float64 { return r.Time(f.Time, f.TimeLayout) },
		ID:    func(r Record) string { return strings.TrimSpace(r.String(f.ID)) },
		Group: func(r Record) string { return strings.TrimSpace(r.String(f.Group)) },
	}
}

// Entities returns the distinct entities of records in input order.
func (f Fields) Entities(records []Record) []string {
	f = f.WithDefaults()
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		id := strings.TrimSpace(r.String(f.ID))
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Attribute returns, for every entity, field's value on the entity's first
// record that sets it. An empty field yields nil.
func (f Fields) Attribute(records []Record, field string) map[string]string {
	if field == "" {
		return nil
	}
	f = f.WithDefaults()
	out := make(map[string]string)
	for _, r := range records {
		id := strings.TrimSpace(r.String(f.ID))
		if _, ok := out[id]; ok || id == "" {
			continue
		}
		if v := r.String(field); v != "" {
			out[id] = v
		}
	}
	return out
}
