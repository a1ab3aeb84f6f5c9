package cells

import "github.com/fenwicklabs/cells/internal"

// Replacement describes one ReplaceRange call: the half-open index range
// that was overwritten, the elements that were there before, and the
// elements now in their place.
type Replacement[T any] struct {
	Start, End       int
	ReplacedElements []T
	NewElements      []T
}

// ArrayCell is a StoredCell specialized to a slice, adding a range-replace
// write path and a LastReplacement gauge for incremental observers.
type ArrayCell[T any] struct {
	StoredCell[[]T]
	inner *internal.ArrayCell
}

// NewArrayCell creates an array cell seeded with initial.
func NewArrayCell[T any](initial []T) ArrayCell[T] {
	boxed := make([]any, len(initial))
	for i, v := range initial {
		boxed[i] = v
	}
	a := internal.NewArrayCell(boxed)
	return ArrayCell[T]{
		StoredCell: wrapStoredCell[[]T](a.StoredCell),
		inner:      a,
	}
}

// Write replaces the entire array and notifies unconditionally.
func (a ArrayCell[T]) Write(v []T) {
	boxed := make([]any, len(v))
	for i, e := range v {
		boxed[i] = e
	}
	a.inner.Write(boxed)
}

// ReplaceRange overwrites the half-open index range [start, end) with
// newElements, publishes the precise Replacement on LastReplacement (if it
// has ever been requested), and fires observers once.
func (a ArrayCell[T]) ReplaceRange(start, end int, newElements []T) {
	boxed := make([]any, len(newElements))
	for i, e := range newElements {
		boxed[i] = e
	}
	a.inner.ReplaceRange(start, end, boxed)
}

// LastReplacement returns a cell carrying the most recent Replacement, or
// nil until the first ReplaceRange after this was requested. Implemented as
// a Computed over the untyped last-replacement cell so it participates in
// the same dependency tracking as any other derived cell.
func (a ArrayCell[T]) LastReplacement() Computed[*Replacement[T]] {
	base := a.inner.LastReplacement()

	c := internal.NewComputed(func() any {
		raw, _ := base.Resolve().(*internal.Replacement)
		if raw == nil {
			return (*Replacement[T])(nil)
		}

		replaced := make([]T, len(raw.ReplacedElements))
		for i, e := range raw.ReplacedElements {
			replaced[i], _ = e.(T)
		}
		newEls := make([]T, len(raw.NewElements))
		for i, e := range raw.NewElements {
			newEls[i], _ = e.(T)
		}

		return &Replacement[T]{
			Start:            raw.Range[0],
			End:              raw.Range[1],
			ReplacedElements: replaced,
			NewElements:      newEls,
		}
	})

	return wrapComputed[*Replacement[T]](c)
}

// Count returns the array's current length.
func (a ArrayCell[T]) Count() int { return a.inner.Count() }

// At returns the element at i.
func (a ArrayCell[T]) At(i int) T {
	v, _ := a.inner.At(i).(T)
	return v
}

// Slice returns a copy of the half-open range [start, end).
func (a ArrayCell[T]) Slice(start, end int) []T {
	boxed := a.inner.Slice(start, end)
	out := make([]T, len(boxed))
	for i, v := range boxed {
		out[i], _ = v.(T)
	}
	return out
}

// First returns the first element, or the zero value if the array is empty.
func (a ArrayCell[T]) First() T {
	v, _ := a.inner.First().(T)
	return v
}

// Last returns the last element, or the zero value if the array is empty.
func (a ArrayCell[T]) Last() T {
	v, _ := a.inner.Last().(T)
	return v
}

// IndexOf returns the index of the first element satisfying pred, or -1.
func (a ArrayCell[T]) IndexOf(pred func(T) bool) int {
	return a.inner.IndexOf(func(v any) bool {
		t, _ := v.(T)
		return pred(t)
	})
}
