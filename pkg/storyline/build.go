package storyline

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/storyline/pkg/errors"
)

// Build lays out records as bands and storylines.
//
// Build is a pure function: identical records and configuration always
// produce a structurally identical Result, and nothing in records is
// modified. An input without usable events yields an empty Result.
func Build[T any](records []T, cfg Config[T]) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	cfg.setDefaults()

	events, excluded := normalize(records, cfg)
	if len(events) == 0 {
		return Result{Excluded: excluded}, nil
	}

	slices.SortStableFunc(events, func(a, b Event) int {
		return cmp.Or(cmp.Compare(a.Time, b.Time), cmp.Compare(a.Index, b.Index))
	})

	bands, bandOf := assignBands(events, cfg)
	return Result{
		Bands:      bands,
		Storylines: buildStorylines(events, bands, bandOf),
		Events:     events,
		Excluded:   excluded,
	}, nil
}

// normalize reads every record through the accessors. Records are visited
// in input order so the first record of a duplicated (entity, time) wins.
func normalize[T any](records []T, cfg Config[T]) ([]Event, []Exclusion) {
	type slot struct {
		entity string
		time   float64
	}

	events := make([]Event, 0, len(records))
	var excluded []Exclusion
	seen := make(map[slot]bool, len(records))

	for i, r := range records {
		e := Event{
			Entity:  cfg.ID(r),
			Time:    cfg.Time(r),
			Group:   cfg.Group(r),
			Index:   i,
			Payload: r,
		}
		switch {
		case errors.ValidateEntityID(e.Entity) != nil:
			excluded = append(excluded, Exclusion{Index: i, Entity: e.Entity, Reason: ReasonInvalidEntity})
			continue
		case math.IsNaN(e.Time) || math.IsInf(e.Time, 0):
			excluded = append(excluded, Exclusion{Index: i, Entity: e.Entity, Reason: ReasonInvalidTime})
			continue
		}
		k := slot{e.Entity, e.Time}
		if seen[k] {
			excluded = append(excluded, Exclusion{Index: i, Entity: e.Entity, Reason: ReasonDuplicate})
			continue
		}
		seen[k] = true
		events = append(events, e)
	}
	return events, excluded
}

// bandGroup identifies the events that share a band. Solo groups live in
// their own namespace so a literal label never collides with an entity.
type bandGroup struct {
	solo bool
	name string // group label, or the entity of a solo group
}

// groupKey returns the band grouping key of an event. Ungrouped entities
// get a key of their own so they never merge with anyone.
func groupKey(e Event) bandGroup {
	if e.Group == "" {
		return bandGroup{solo: true, name: e.Entity}
	}
	return bandGroup{name: e.Group}
}

// base returns the band key of the group's first run.
func (g bandGroup) base() string {
	if g.solo {
		return soloPrefix + g.name
	}
	return g.name
}

// instance is a band under construction.
type instance struct {
	key       string
	group     string
	groupKey  bandGroup
	seq       int // creation order
	lastSlice int
	times     []float64
	events    []Event
}

// assignBands walks the sorted events once, creating band instances in
// first-seen order, then sorts them into vertical slots. It returns the
// bands and, for each event position, the index of its band.
func assignBands[T any](events []Event, cfg Config[T]) ([]Band, []int) {
	sliceOf := make(map[float64]int)
	for _, e := range events {
		if _, ok := sliceOf[e.Time]; !ok {
			sliceOf[e.Time] = len(sliceOf)
		}
	}

	var instances []*instance
	current := make(map[bandGroup]*instance) // latest instance per group
	runs := make(map[bandGroup]int)          // instances created per group
	taken := make(map[string]bool)           // band keys in use
	owner := make([]*instance, len(events))

	for i, e := range events {
		gk := groupKey(e)
		slice := sliceOf[e.Time]

		inst, ok := current[gk]
		if ok && cfg.Recurring == SplitRecurring && slice > inst.lastSlice+1 {
			ok = false
		}
		if !ok {
			runs[gk]++
			inst = &instance{
				key:       uniqueKey(gk.base(), runs[gk], taken),
				group:     e.Group,
				groupKey:  gk,
				seq:       len(instances),
				lastSlice: -1,
			}
			taken[inst.key] = true
			current[gk] = inst
			instances = append(instances, inst)
		}
		if inst.lastSlice != slice {
			inst.times = append(inst.times, e.Time)
			inst.lastSlice = slice
		}
		inst.events = append(inst.events, e)
		owner[i] = inst
	}

	rank := groupRanks(cfg.GroupOrder)
	slices.SortStableFunc(instances, func(a, b *instance) int {
		return cmp.Or(cmp.Compare(rank(a), rank(b)), cmp.Compare(a.seq, b.seq))
	})

	pitch := cfg.BandHeight + cfg.BandGap
	bands := make([]Band, len(instances))
	index := make(map[*instance]int, len(instances))
	for order, inst := range instances {
		y0 := float64(order) * pitch
		bands[order] = Band{
			Key:    inst.key,
			Group:  inst.group,
			Order:  order,
			Y0:     y0,
			Y1:     y0 + cfg.BandHeight,
			Start:  inst.times[0],
			End:    inst.times[len(inst.times)-1],
			Times:  inst.times,
			Events: inst.events,
		}
		index[inst] = order
	}

	bandOf := make([]int, len(events))
	for i, inst := range owner {
		bandOf[i] = index[inst]
	}
	return bands, bandOf
}

// groupRanks ranks instances: explicitly ordered groups first, in the
// listed order, then every other instance tied so creation order decides.
func groupRanks(order []string) func(*instance) int {
	rank := make(map[string]int, len(order))
	for i, g := range order {
		rank[g] = i
	}
	return func(inst *instance) int {
		if inst.groupKey.solo {
			return len(order)
		}
		if r, ok := rank[inst.groupKey.name]; ok {
			return r
		}
		return len(order)
	}
}

// uniqueKey returns the band key for the n-th run of a group, skipping keys
// already taken by another group.
func uniqueKey(base string, run int, taken map[string]bool) string {
	key := base
	if run > 1 {
		key = fmt.Sprintf("%s#%d", base, run)
	}
	for taken[key] {
		run++
		key = fmt.Sprintf("%s#%d", base, run)
	}
	return key
}

// buildStorylines emits one storyline per entity in first-seen order.
func buildStorylines(events []Event, bands []Band, bandOf []int) []Storyline {
	var lines []Storyline
	pos := make(map[string]int)

	for i, e := range events {
		idx, ok := pos[e.Entity]
		if !ok {
			idx = len(lines)
			pos[e.Entity] = idx
			lines = append(lines, Storyline{Key: e.Entity})
		}
		b := bands[bandOf[i]]
		lines[idx].Points = append(lines[idx].Points, Point{
			Time:  e.Time,
			Y:     b.Mid(),
			Band:  b.Key,
			Event: e,
		})
	}
	return lines
}
