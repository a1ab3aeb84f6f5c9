package cells

import "github.com/fenwicklabs/cells/internal"

// Computed derives its value from other cells, with the dependency set
// discovered implicitly during evaluation and diffed against the previous
// run so an unchanged dependency set skips resubscription entirely.
type Computed[T any] struct {
	Cell[T]
}

func wrapComputed[T any](c *internal.Computed) Computed[T] {
	return Computed[T]{Cell: wrapCell[T](c.Cell)}
}

// NewComputed creates a computed cell around fn. Nothing is evaluated until
// the first Read (the engine is pull/lazy, not push/eager).
func NewComputed[T any](fn func() T) Computed[T] {
	c := internal.NewComputed(func() any { return fn() })
	return wrapComputed[T](c)
}
