package cells

import (
	"reflect"

	"github.com/fenwicklabs/cells/internal"
)

// as casts an any back to T, zero-valuing a nil (used when a cell's cache
// is absent rather than panicking on a failed assertion on the zero case).
// Modeled on the teacher's as[T] helper in sig.go; it additionally copies
// the []any an ArrayCell stores into a typed slice T.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	if boxed, ok := v.([]any); ok {
		if typ := reflect.TypeFor[T](); typ.Kind() == reflect.Slice {
			out := reflect.MakeSlice(typ, len(boxed), len(boxed))
			for i, e := range boxed {
				if e != nil {
					out.Index(i).Set(reflect.ValueOf(e))
				}
			}
			return out.Interface().(T)
		}
	}
	return v.(T)
}

// Cell is the read-only public face shared by every concrete cell kind:
// stored, computed, attachment points, array cells, and external-source
// cells all hand back a Cell[T] for observers that only need to read and
// subscribe, not write.
type Cell[T any] struct {
	inner *internal.Cell

	// resolvable is usually inner itself, except when this Cell[T] was
	// produced by wrapAttachmentPoint: there it is the owning
	// *internal.AttachmentPoint, so AttachTo's cycle check can walk the
	// real attachment chain instead of seeing an opaque base Cell.
	resolvable internal.Resolvable
}

func wrapCell[T any](c *internal.Cell) Cell[T] {
	return Cell[T]{inner: c, resolvable: c}
}

// Read resolves the cell's current value, registering a dependency if
// called from within another cell's compute function.
func (c Cell[T]) Read() T {
	return as[T](c.inner.Resolve())
}

// WhenChanged subscribes fn to run every time this cell's value changes.
// fn receives the freshly resolved value: for derived cells (Computed,
// AttachmentPoint, ...) the cache is already invalidated by the time
// observers fire, so this resolves rather than reading the stale cache.
func (c Cell[T]) WhenChanged(fn func(T)) Lifetime {
	return wrapLifetime(c.inner.WhenChanged(func() {
		fn(as[T](c.inner.Resolve()))
	}))
}

// Observe subscribes closure and runs it immediately with the current
// value, then again on every subsequent change.
func (c Cell[T]) Observe(closure func(T)) Lifetime {
	return wrapLifetime(c.inner.Observe(func(v any) {
		closure(as[T](v))
	}))
}

// IsBound returns a Cell[bool] reporting whether anything currently
// observes this cell. Each read freshly rescans the observer set, so it
// reflects garbage-collected weak observers as soon as Go reclaims them.
func (c Cell[T]) IsBound() Cell[bool] {
	return wrapCell[bool](c.inner.IsBound())
}
