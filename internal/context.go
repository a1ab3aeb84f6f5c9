package internal

// Frame is the per-evaluation record that collects a dependency set, called
// a "capture frame" in spec §4.3. Grounded on the teacher's ExecutionContext
// (internal/context.go) and Tracker (internal/tracker.go), generalized from
// a single current-node pointer into a stack entry carrying the prior run's
// dependency set for diffing.
type Frame struct {
	dependencies []Changeable

	// expected is the prior run's dependency set, set via
	// SetExpectedDependencies, used by DependenciesDiffer for the
	// order-sensitive equality check spec §4.3 requires.
	expected    []Changeable
	hasExpected bool
}

// AddDependency appends a Changeable to this frame's observed set.
func (f *Frame) AddDependency(c Changeable) {
	f.dependencies = append(f.dependencies, c)
}

// SetExpectedDependencies attaches the prior run's dependency set for
// diffing.
func (f *Frame) SetExpectedDependencies(prior []Changeable) {
	f.expected = prior
	f.hasExpected = true
}

// DependenciesDiffer is true iff expected is missing or differs from the
// observed set by length or order-sensitive element identity.
func (f *Frame) DependenciesDiffer() bool {
	if !f.hasExpected {
		return true
	}
	if len(f.expected) != len(f.dependencies) {
		return true
	}
	for i := range f.dependencies {
		if f.dependencies[i] != f.expected[i] {
			return true
		}
	}
	return false
}

// ResetDependencies replaces the observed set with empty. Used before
// dropping old subscriptions so that any transitive effects of the drop
// (begin/done-observing side effects) can't leak back into this frame's
// dependency set (spec §4.6, §5).
func (f *Frame) ResetDependencies() {
	f.dependencies = nil
}

// Dependencies returns the frame's currently observed dependency set.
func (f *Frame) Dependencies() []Changeable {
	return f.dependencies
}

// contextStack is the thread/queue-local stack of Frames backing a single
// goroutine's evaluations. Never shared across goroutines (spec §5).
type contextStack struct {
	frames []*Frame
}

// current returns the top-of-stack Frame, or nil if no evaluation is active
// on the calling goroutine.
func (c *contextStack) current() *Frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// withNewContext pushes a fresh Frame, runs body, and pops — even if body
// panics, so a failing computation never leaves a stale Frame behind
// (spec §7's "the capture frame must be popped").
func (c *contextStack) withNewContext(body func(f *Frame)) {
	f := acquireFrame()
	c.frames = append(c.frames, f)
	defer func() {
		c.frames = c.frames[:len(c.frames)-1]
		releaseFrame(f)
	}()

	body(f)
}

// CurrentFrame returns the top-of-stack Frame for the calling goroutine, or
// nil if no evaluation is active there. Cells use this to implicitly
// register themselves as a dependency when read.
func CurrentFrame() *Frame {
	return CurrentRuntime().context.current()
}

// WithNewContext pushes a fresh Frame for the calling goroutine's Runtime,
// runs body against it, and pops on return (including on panic).
func WithNewContext(body func(f *Frame)) {
	CurrentRuntime().context.withNewContext(body)
}

// RunUntracked runs fn with dependency capture suspended: Cell reads inside
// fn do not register themselves even if a Frame is active (spec §6's
// Untrack).
func RunUntracked(fn func()) {
	r := CurrentRuntime()
	r.untrackedDepth++
	defer func() { r.untrackedDepth-- }()
	fn()
}

// isTracking reports whether a Cell read on the calling goroutine right now
// should register itself in the current Frame.
func isTracking() bool {
	r := CurrentRuntime()
	return r.untrackedDepth == 0 && r.context.current() != nil
}
