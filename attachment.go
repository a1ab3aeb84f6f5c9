package cells

import "github.com/fenwicklabs/cells/internal"

// constantResolvable is a Resolvable that never changes, used to give an
// AttachmentPoint a well-defined value before it has ever been attached.
type constantResolvable struct {
	value any
}

func (c *constantResolvable) Resolve() any { return c.value }

func (c *constantResolvable) WhenChangedNotify(n internal.Notifiable) *internal.Lifetime {
	return internal.NewLifetime(nil)
}

// AttachmentPoint forwards reads to whatever Resolvable it currently points
// at, letting the target be swapped at runtime via AttachTo.
type AttachmentPoint[T any] struct {
	Cell[T]
	attach *internal.AttachmentPoint
}

func wrapAttachmentPoint[T any](a *internal.AttachmentPoint) AttachmentPoint[T] {
	return AttachmentPoint[T]{
		Cell:   Cell[T]{inner: a.Cell, resolvable: a},
		attach: a,
	}
}

// AttachTo repoints this AttachmentPoint at target, releasing any
// subscription to the previous target. Panics with an *internal.CellError
// (ErrAttachmentCycle) if target would form a cycle back to this point
// through a chain of attachments.
func (a AttachmentPoint[T]) AttachTo(target Cell[T]) {
	a.attach.AttachTo(target.resolvable)
}

// NewAttachment creates an immutable AttachmentPoint defaulting to
// defaultValue until AttachTo is called.
func NewAttachment[T any](defaultValue T) AttachmentPoint[T] {
	a := internal.NewAttachmentPointTo(&constantResolvable{value: defaultValue})
	return wrapAttachmentPoint[T](a)
}

// MutableAttachmentPoint is an AttachmentPoint whose Write forwards to
// whatever writable target it currently points at.
type MutableAttachmentPoint[T any] struct {
	AttachmentPoint[T]
}

// Write forwards v to the current target. Panics with an *internal.CellError
// (ErrNotWritable) if the current target does not accept writes.
func (a MutableAttachmentPoint[T]) Write(v T) {
	a.attach.Write(v)
}

// AttachMutableTo repoints this attachment at a writable StoredCell target,
// releasing any subscription to the previous one.
func (a MutableAttachmentPoint[T]) AttachMutableTo(target StoredCell[T]) {
	a.attach.AttachTo(target.inner)
}

// AttachMutableToAttachment repoints this attachment at another mutable
// attachment point, so mutable attachments can chain to one another (spec
// §4.8's chained attachment-to-attachment case) — *internal.AttachmentPoint
// itself implements internal.Writable, forwarding through to whatever that
// target in turn points at. AttachTo's cycle check walks the real chain the
// same way the immutable AttachTo above does. A separate method from
// AttachMutableTo rather than a widened interface parameter, since Go's
// generic type inference can't recover T from an interface-typed parameter
// when the caller passes a concrete StoredCell[T]/MutableAttachmentPoint[T]
// argument — this keeps both call shapes inferring T directly.
func (a MutableAttachmentPoint[T]) AttachMutableToAttachment(target MutableAttachmentPoint[T]) {
	a.attach.AttachTo(target.attach)
}

// NewMutableAttachment creates a mutable AttachmentPoint pointing at
// defaultCell until AttachMutableTo is called.
func NewMutableAttachment[T any](defaultCell StoredCell[T]) MutableAttachmentPoint[T] {
	a := internal.NewAttachmentPointTo(defaultCell.inner)
	return MutableAttachmentPoint[T]{AttachmentPoint: wrapAttachmentPoint[T](a)}
}
