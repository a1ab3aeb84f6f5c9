package cells

import "github.com/fenwicklabs/cells/internal"

type triggerNotify struct {
	fn func()
}

func (t *triggerNotify) MarkAsChanged() { t.fn() }

// NewTrigger creates an action whose dependencies are discovered the first
// time invoke is called and re-diffed on every subsequent call. onUpdate is
// called at most once per coalescing window whenever a dependency read
// during the last invoke becomes dirty; the host decides when (or whether)
// to call invoke again. The returned Lifetime releases the trigger's
// upstream subscriptions permanently.
func NewTrigger(action func(), onUpdate func()) (invoke func(), lt Lifetime) {
	t := internal.NewTrigger(action)
	sub := t.WhenChangedNotify(&triggerNotify{fn: onUpdate})

	invoke = t.PerformAction
	// sub anchors the onUpdate callback; composing it with the dispose
	// Lifetime keeps it alive for exactly as long as the caller holds lt.
	lt = wrapLifetime(internal.LiveAsLongAs(sub, internal.NewLifetime(t.Dispose)))
	return invoke, lt
}
