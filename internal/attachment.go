package internal

import "sync"

// Resolvable is anything that can both be depended on and read: Cell-backed
// kinds all satisfy it, letting AttachmentPoint point at any of them.
type Resolvable interface {
	Changeable
	Resolve() any
}

// Writable is implemented by cell kinds that accept external writes
// (StoredCell, and AttachmentPoint itself by forwarding; ArrayCell's Write
// takes a []any and so does not qualify). AttachmentPoint.Write fails with ErrNotWritable
// against anything else (spec §4.8).
type Writable interface {
	Write(v any)
}

// AttachmentPoint holds a pointer to another Resolvable and transparently
// forwards reads/writes to it, letting the pointed-to target be swapped at
// runtime (spec §4.8). Grounded on the teacher's Link (internal/link.go)
// indirection node, generalized from a fixed signal reference to a
// reassignable one with cycle detection on reattachment.
type AttachmentPoint struct {
	*Cell
	box *selfBox

	mu    sync.Mutex
	inner Resolvable

	deps   []Changeable
	depsLT *Lifetime
}

// NewAttachmentPoint constructs an AttachmentPoint initially pointing at
// nothing: Resolve returns nil until AttachTo is called, so callers should
// use NewAttachmentPointTo unless they intend to AttachTo before any read.
func NewAttachmentPoint() *AttachmentPoint {
	a := &AttachmentPoint{}
	a.box = &selfBox{target: a}
	a.Cell = NewCell(a)
	return a
}

// NewAttachmentPointTo constructs an AttachmentPoint already pointing at inner.
func NewAttachmentPointTo(inner Resolvable) *AttachmentPoint {
	a := NewAttachmentPoint()
	a.inner = inner
	return a
}

func (a *AttachmentPoint) notifyBox() *selfBox { return a.box }

func (a *AttachmentPoint) NeedsUpdate() bool { return false }
func (a *AttachmentPoint) BeginObserving()   {}

func (a *AttachmentPoint) DoneObserving() {
	if a.depsLT != nil {
		a.depsLT.Done()
		a.depsLT = nil
	}
	a.deps = nil
	a.Cell.DropCacheSilently()
}

// ComputeValue resolves through to inner inside a fresh capture frame. Since
// inner.Resolve() is itself a dependency read, the frame's dependency set is
// exactly {inner}. AttachTo clears the recorded dependency set when it swaps
// inner out, so the shared diff/rewire machinery from Computed subscribes to
// the new target on the next resolve (spec §4.8's "reuse the dependency
// tracking machinery").
func (a *AttachmentPoint) ComputeValue() any {
	a.mu.Lock()
	inner := a.inner
	oldDeps := a.deps
	a.mu.Unlock()

	var result any

	WithNewContext(func(f *Frame) {
		if oldDeps != nil {
			f.SetExpectedDependencies(oldDeps)
		}

		if inner != nil {
			result = inner.Resolve()
		}

		if !f.DependenciesDiffer() {
			return
		}

		newDeps := append([]Changeable(nil), f.Dependencies()...)

		a.mu.Lock()
		oldLifetime := a.depsLT
		a.mu.Unlock()

		newLifetimes := make([]*Lifetime, 0, len(newDeps))
		for _, dep := range newDeps {
			newLifetimes = append(newLifetimes, dep.WhenChangedNotify(a))
		}
		newComposite := LiveAsLongAs(newLifetimes...)

		f.ResetDependencies()

		if oldLifetime != nil {
			oldLifetime.Done()
		}

		a.mu.Lock()
		a.deps = newDeps
		a.depsLT = newComposite
		a.mu.Unlock()
	})

	return result
}

// AttachTo repoints this AttachmentPoint at a new target, releasing any
// subscription to the previous one and marking this cell changed so
// observers re-resolve through the new target. Panics ErrAttachmentCycle if
// target would transitively point back to a (spec §4.8).
func (a *AttachmentPoint) AttachTo(target Resolvable) {
	if formsCycle(a, target) {
		panicCellError(ErrAttachmentCycle, "")
	}

	a.mu.Lock()
	a.inner = target
	oldLifetime := a.depsLT
	a.deps = nil
	a.depsLT = nil
	a.mu.Unlock()

	if oldLifetime != nil {
		oldLifetime.Done()
	}

	a.Cell.MarkAsChanged()
}

// Write forwards to inner if it implements Writable, otherwise panics
// ErrNotWritable (spec §4.8).
func (a *AttachmentPoint) Write(v any) {
	a.mu.Lock()
	inner := a.inner
	a.mu.Unlock()

	w, ok := inner.(Writable)
	if !ok {
		panicCellError(ErrNotWritable, "")
	}
	w.Write(v)
}

// formsCycle walks a chain of AttachmentPoints starting at target, looking
// for a path back to self. Non-AttachmentPoint targets (StoredCell,
// Computed, ...) can never be part of a cycle since they don't forward.
func formsCycle(self *AttachmentPoint, target Resolvable) bool {
	next, ok := target.(*AttachmentPoint)
	for ok {
		if next == self {
			return true
		}
		next.mu.Lock()
		candidate := next.inner
		next.mu.Unlock()
		next, ok = candidate.(*AttachmentPoint)
	}
	return false
}
