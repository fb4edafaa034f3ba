// Package storyline computes the band layout of a storyline chart.
//
// # Overview
//
// A storyline chart draws one curve per entity across time. Entities that
// share a group at the same moment converge into a common horizontal band;
// entities in different groups diverge. This package turns time-stamped
// records into that vertical structure:
//
//   - [Band]: the vertical interval occupied by one group
//   - [Storyline]: the ordered (time, y) points of one entity
//   - [Result]: bands, storylines and the normalized events
//
// It knows nothing about pixels along the time axis; see the geometry
// package for scales, padding and curve control points.
//
// # Building a Layout
//
// [Build] takes arbitrary records plus accessors describing how to read the
// entity, time and group of each record:
//
//	res, err := storyline.Build(records, storyline.Config[Scene]{
//	    Time:  func(s Scene) float64 { return float64(s.Year) },
//	    ID:    func(s Scene) string { return s.Character },
//	    Group: func(s Scene) string { return s.Place },
//	})
//
// Missing accessors are reported as CONFIGURATION errors. An input with no
// usable events yields an empty [Result] and no error.
//
// # Band Order
//
// Groups are assigned vertical slots in first-seen order: events are sorted
// by time, ties broken by input position, and each new group takes the next
// slot. [Config.GroupOrder] pins listed groups to the top in the given order.
// The slot index, [Config.BandHeight] and [Config.BandGap] determine Y0/Y1.
//
// # Recurring Groups
//
// A label that reappears after an absence is ambiguous: it may be the same
// band resuming or a new interaction. [Config.Recurring] makes the choice
// explicit. [MergeRecurring] keeps one band per label; [SplitRecurring]
// starts a new band (keyed "label#2", "label#3", ...) for every run of
// consecutive time-slices.
//
// # Exclusions
//
// Every record either becomes an event or is listed in [Result.Excluded]
// with a reason: empty or malformed entity, non-finite time, or a second
// record for an (entity, time) pair already seen.
package storyline
