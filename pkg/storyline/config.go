package storyline

import (
	"math"
	"strings"

	"github.com/matzehuels/storyline/pkg/errors"
)

const (
	// DefaultBandGap is the vertical gap between adjacent band slots.
	DefaultBandGap = 1.0

	// DefaultBandHeight is the vertical span of a band slot.
	DefaultBandHeight = 1.0
)

// soloPrefix marks the band key of an entity with an empty group label.
const soloPrefix = "~"

// RecurringMode selects how a group label that reappears after an absence
// is laid out.
type RecurringMode int

const (
	// MergeRecurring keeps one band per group label for the whole chart.
	MergeRecurring RecurringMode = iota
	// SplitRecurring starts a new band for each run of consecutive time-slices.
	SplitRecurring
)

// String returns the configuration name of the mode.
func (m RecurringMode) String() string {
	if m == SplitRecurring {
		return "split"
	}
	return "merge"
}

// ParseRecurring parses "merge" or "split". The empty string means merge.
func ParseRecurring(s string) (RecurringMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return MergeRecurring, nil
	case "split":
		return SplitRecurring, nil
	}
	return MergeRecurring, errors.New(errors.ErrCodeConfiguration, "invalid recurring mode %q (must be 'merge' or 'split')", s)
}

// Config describes how to read records of type T and how to lay them out.
// Time, ID and Group are required; zero values of the other fields select
// the defaults.
type Config[T any] struct {
	Time  func(T) float64 // Domain time of a record
	ID    func(T) string  // Entity of a record
	Group func(T) string  // Group label of a record

	BandGap    float64       // Gap between band slots (default 1)
	BandHeight float64       // Height of a band slot (default 1)
	GroupOrder []string      // Explicit vertical order of group labels
	Recurring  RecurringMode // Layout of reappearing group labels
}

func (c Config[T]) validate() error {
	if c.Time == nil {
		return errors.New(errors.ErrCodeConfiguration, "time accessor is required")
	}
	if c.ID == nil {
		return errors.New(errors.ErrCodeConfiguration, "id accessor is required")
	}
	if c.Group == nil {
		return errors.New(errors.ErrCodeConfiguration, "group accessor is required")
	}
	if c.BandGap < 0 || math.IsNaN(c.BandGap) || math.IsInf(c.BandGap, 0) {
		return errors.New(errors.ErrCodeConfiguration, "band gap must be a non-negative number, got %v", c.BandGap)
	}
	if math.IsNaN(c.BandHeight) || math.IsInf(c.BandHeight, 0) {
		return errors.New(errors.ErrCodeConfiguration, "band height must be finite, got %v", c.BandHeight)
	}
	if c.Recurring != MergeRecurring && c.Recurring != SplitRecurring {
		return errors.New(errors.ErrCodeConfiguration, "unknown recurring mode %d", c.Recurring)
	}
	seen := make(map[string]bool, len(c.GroupOrder))
	for _, g := range c.GroupOrder {
		if seen[g] {
			return errors.New(errors.ErrCodeConfiguration, "group order lists %q twice", g)
		}
		seen[g] = true
	}
	return nil
}

func (c *Config[T]) setDefaults() {
	if c.BandGap == 0 {
		c.BandGap = DefaultBandGap
	}
	if c.BandHeight <= 0 {
		c.BandHeight = DefaultBandHeight
	}
}
