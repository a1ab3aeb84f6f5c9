package cells

import "github.com/fenwicklabs/cells/internal"

// StoredCell holds a value supplied from outside the reactive graph and
// notifies observers on writes that the configured policy considers a
// change.
type StoredCell[T any] struct {
	Cell[T]
	inner *internal.StoredCell
}

func wrapStoredCell[T any](s *internal.StoredCell) StoredCell[T] {
	return StoredCell[T]{Cell: wrapCell[T](s.Cell), inner: s}
}

// Write stores a new value, notifying observers only if the configured
// policy considers it a change from the previous value (for the first Write,
// the value the cell was created with).
func (s StoredCell[T]) Write(v T) {
	s.inner.Write(v)
}

// NewCell creates a stored cell using Go's == as the change-detection
// policy: for pointer-like T this is reference identity, for value types
// it is structural equality — exactly the identity/equality split spec §4.5
// describes, expressed as a single constraint since Go's == already draws
// that line per kind.
func NewCell[T comparable](initial T) StoredCell[T] {
	equal := func(a, b any) bool { return a.(T) == b.(T) }
	s := internal.NewStoredCell(initial, internal.PolicyEquality, equal)
	return wrapStoredCell[T](s)
}

// NewOpaqueCell creates a stored cell for a T with no meaningful equality
// (slices, maps, funcs): every write counts as a change.
func NewOpaqueCell[T any](initial T) StoredCell[T] {
	s := internal.NewStoredCell(initial, internal.PolicyOpaque, nil)
	return wrapStoredCell[T](s)
}
