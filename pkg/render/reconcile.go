package render

import "reflect"

// Change is an element present in both scenes whose descriptor changed.
type Change[T any] struct {
	Key string
	Old T
	New T
}

// LayerDiff is the keyed difference of one layer.
type LayerDiff[T any] struct {
	Enter  []T         // In next only, in next order
	Update []Change[T] // In both and changed, in next order
	Exit   []T         // In prev only, in prev order
}

// Empty reports whether the layer is unchanged.
func (d LayerDiff[T]) Empty() bool {
	return len(d.Enter) == 0 && len(d.Update) == 0 && len(d.Exit) == 0
}

// Diff is the keyed difference between two scenes.
type Diff struct {
	Bands      LayerDiff[BandMark]
	Connectors LayerDiff[ConnectorMark]
	Curves     LayerDiff[CurveMark]
	Axis       LayerDiff[TickMark]
}

// Empty reports whether the scenes draw the same elements.
func (d Diff) Empty() bool {
	return d.Bands.Empty() && d.Connectors.Empty() && d.Curves.Empty() && d.Axis.Empty()
}

// Reconcile matches the elements of prev and next by key. Reconciling a
// scene with itself yields an empty diff; reconciling with the zero Scene
// enters or exits everything.
func Reconcile(prev, next Scene) Diff {
	return Diff{
		Bands:      diffLayer(prev.Bands, next.Bands, func(m BandMark) string { return m.Key }),
		Connectors: diffLayer(prev.Connectors, next.Connectors, func(m ConnectorMark) string { return m.Key }),
		Curves:     diffLayer(prev.Curves, next.Curves, func(m CurveMark) string { return m.Key }),
		Axis:       diffLayer(prev.Axis, next.Axis, func(m TickMark) string { return m.Key }),
	}
}

func diffLayer[T any](prev, next []T, key func(T) string) LayerDiff[T] {
	old := make(map[string]T, len(prev))
	for _, m := range prev {
		old[key(m)] = m
	}

	var d LayerDiff[T]
	kept := make(map[string]bool, len(next))
	for _, m := range next {
		k := key(m)
		kept[k] = true
		o, ok := old[k]
		switch {
		case !ok:
			d.Enter = append(d.Enter, m)
		case !reflect.DeepEqual(o, m):
			d.Update = append(d.Update, Change[T]{Key: k, Old: o, New: m})
		}
	}
	for _, m := range prev {
		if !kept[key(m)] {
			d.Exit = append(d.Exit, m)
		}
	}
	return d
}
