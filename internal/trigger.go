package internal

import "sync"

// Trigger is an action whose dependencies, when invalidated, fire a single
// coalesced "update-needed" callback rather than re-running the action
// itself — the host decides when to call PerformAction again (spec §4.7).
// Grounded on the teacher's Effect (internal/effect.go) EffectType-tagged
// queueing and proto/effect.go's cleanup-then-recompute cycle, narrowed down
// to the spec's single coalesced fanout: the render/user queue split is a
// host-scheduler concern, out of scope per spec §1.
type Trigger struct {
	box *selfBox

	action func()

	mu            sync.Mutex
	deps          []Changeable
	depsLT        *Lifetime
	pendingUpdate bool

	updateObservers *NotificationSet
}

// NewTrigger constructs a Trigger around an action. No dependencies are
// tracked until PerformAction is first called.
func NewTrigger(action func()) *Trigger {
	t := &Trigger{action: action, updateObservers: NewNotificationSet()}
	t.box = &selfBox{target: t}
	return t
}

func (t *Trigger) notifyBox() *selfBox { return t.box }

// WhenChangedNotify subscribes n to this Trigger's "update-needed" signal.
func (t *Trigger) WhenChangedNotify(n Notifiable) *Lifetime {
	return t.updateObservers.Add(n)
}

// MarkAsChanged coalesces: if an update is already pending, this call is a
// silent no-op; otherwise it sets pending and fans out to downstream
// observers exactly once.
func (t *Trigger) MarkAsChanged() {
	t.mu.Lock()
	if t.pendingUpdate {
		t.mu.Unlock()
		return
	}
	t.pendingUpdate = true
	t.mu.Unlock()

	t.updateObservers.FireAll()
}

// PerformAction runs the action inside a fresh capture frame, clearing
// pendingUpdate *before* invoking the action (so writes made by the action
// itself schedule a fresh update), then diffs and rewires dependencies using
// the same reset-before-drop protocol as Computed (spec §4.6, §4.7).
func (t *Trigger) PerformAction() {
	oldDeps := t.deps

	WithNewContext(func(f *Frame) {
		if oldDeps != nil {
			f.SetExpectedDependencies(oldDeps)
		}

		t.mu.Lock()
		t.pendingUpdate = false
		t.mu.Unlock()

		t.action()

		if !f.DependenciesDiffer() {
			return
		}

		newDeps := append([]Changeable(nil), f.Dependencies()...)
		oldLifetime := t.depsLT

		newLifetimes := make([]*Lifetime, 0, len(newDeps))
		for _, dep := range newDeps {
			newLifetimes = append(newLifetimes, dep.WhenChangedNotify(t))
		}
		newComposite := LiveAsLongAs(newLifetimes...)

		f.ResetDependencies()

		if oldLifetime != nil {
			oldLifetime.Done()
		}

		t.deps = newDeps
		t.depsLT = newComposite
	})
}

// Dispose tears down the Trigger's upstream subscriptions permanently. The
// public API exposes this as the Lifetime returned from trigger(...).
func (t *Trigger) Dispose() {
	t.mu.Lock()
	lt := t.depsLT
	t.depsLT = nil
	t.deps = nil
	t.mu.Unlock()

	if lt != nil {
		lt.Done()
	}
}
