package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one event as read from a file.
type Record map[string]any

// String returns a field as text. Missing fields are empty.
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Float returns a numeric field. Numeric strings are parsed.
func (r Record) Float(field string) (float64, bool) {
	return toFloat(r[field])
}

// Time returns the time of a field. With a layout, string values that are
// not plain numbers are parsed as dates and converted to fractional years.
// Unreadable values yield NaN.
func (r Record) Time(field, layout string) float64 {
	v := r[field]
	if f, ok := toFloat(v); ok {
		return f
	}
	switch t := v.(type) {
	case time.Time:
		return FractionalYear(t)
	case string:
		if layout == "" {
			break
		}
		if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
			return FractionalYear(parsed)
		}
	}
	return math.NaN()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// FractionalYear converts t to a year with the elapsed part of the year as
// the fraction, in UTC.
func FractionalYear(t time.Time) float64 {
	t = t.UTC()
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + float64(t.Sub(start))/float64(end.Sub(start))
}
