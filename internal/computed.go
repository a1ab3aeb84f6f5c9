package internal

// Computed is a function-of-cells whose dependencies are discovered
// implicitly during evaluation and diffed against the previous run so that
// a stable dependency set skips the resubscribe cost entirely (spec §4.6).
// Grounded on the teacher's Computed (internal/computed.go)'s
// clear-deps-then-recompute shape, restructured around the reset-before-drop
// ordering spec §4.6/§5 mandates: the teacher clears unconditionally on
// every recompute, we diff old vs new and only rewire on a genuine change.
type Computed struct {
	*Cell
	box *selfBox

	compute func() any

	deps   []Changeable
	depsLT *Lifetime // composite subscription Lifetime over deps, nil until first compute
}

// NewComputed constructs a Computed around a pure compute function. The
// cache starts absent: nothing is computed until the first Resolve (spec's
// lazy/pull model), matching the end-to-end scenario in spec §8.2.
func NewComputed(compute func() any) *Computed {
	c := &Computed{compute: compute}
	c.box = &selfBox{target: c}
	c.Cell = NewCell(c)
	return c
}

func (c *Computed) notifyBox() *selfBox { return c.box }

// MarkAsChanged lets a Computed act as a Notifiable for its own dependents'
// WhenChangedNotify subscriptions, forwarding into the shared Cell.
func (c *Computed) MarkAsChanged() { c.Cell.MarkAsChanged() }

func (c *Computed) NeedsUpdate() bool { return false }

func (c *Computed) BeginObserving() {}

// DoneObserving eagerly releases upstream subscriptions once nothing
// observes this computed any more; the next Resolve rebuilds them.
func (c *Computed) DoneObserving() {
	if c.depsLT != nil {
		c.depsLT.Done()
		c.depsLT = nil
	}
	c.deps = nil
	c.Cell.DropCacheSilently()
}

// ComputeValue implements the §4.6 algorithm: snapshot the prior dependency
// set, run compute() inside a fresh capture frame seeded with that snapshot
// as the "expected" set, and only rewire subscriptions if the frame detects
// a genuine difference.
func (c *Computed) ComputeValue() any {
	oldDeps := c.deps
	var result any

	WithNewContext(func(f *Frame) {
		if oldDeps != nil {
			f.SetExpectedDependencies(oldDeps)
		}

		result = c.compute()

		if !f.DependenciesDiffer() {
			return
		}

		newDeps := append([]Changeable(nil), f.Dependencies()...)
		oldLifetime := c.depsLT

		newLifetimes := make([]*Lifetime, 0, len(newDeps))
		for _, dep := range newDeps {
			newLifetimes = append(newLifetimes, dep.WhenChangedNotify(c))
		}
		newComposite := LiveAsLongAs(newLifetimes...)

		// Reset before dropping: unsubscribing from the old set may itself
		// run code (observer-count transitions) that reads cells, and
		// those reads must not leak back into this frame (spec §4.6/§5).
		f.ResetDependencies()

		if oldLifetime != nil {
			oldLifetime.Done()
		}

		c.deps = newDeps
		c.depsLT = newComposite
	})

	return result
}
