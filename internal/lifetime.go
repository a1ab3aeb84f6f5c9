package internal

import "sync"

// ReleaseErrorHandler is called when a Lifetime's release callback panics.
// Left nil by default; a host may set it to route release failures into its
// own logging, the way the teacher's packages expose a debug hook rather
// than importing a logger.
var ReleaseErrorHandler func(err error)

type lifetimeState int32

const (
	lifetimeActive lifetimeState = iota
	lifetimeDone
	lifetimePinned
)

// Lifetime is a disposable subscription token with three states: active,
// done, and pinned. Done() and Forever() are both idempotent terminal
// transitions from active.
type Lifetime struct {
	mu       sync.Mutex
	state    lifetimeState
	release  func()
	children []*Lifetime
	anchor   any // strongly retained while active/pinned; cleared on Done
}

// NewLifetime wraps a release callback. release may be nil for a pure
// composite (a Lifetime whose only job is to cascade to its children).
func NewLifetime(release func()) *Lifetime {
	return &Lifetime{release: release}
}

// NewAnchoredLifetime wraps a release callback like NewLifetime, but also
// strongly retains anchor for as long as the Lifetime stays active or
// pinned, dropping the hold only once Done() runs. NotificationSet.Add uses
// this so the weakly-held box behind a subscription stays alive for exactly
// as long as the Lifetime the caller was handed does — per spec §9, the
// consumer holding the Lifetime is what keeps the subscription alive, not
// the other way round.
func NewAnchoredLifetime(anchor any, release func()) *Lifetime {
	return &Lifetime{release: release, anchor: anchor}
}

// Done idempotently transitions active -> done, running the release
// callback (and cascading to composite children) at most once.
func (lt *Lifetime) Done() {
	lt.mu.Lock()
	if lt.state != lifetimeActive {
		lt.mu.Unlock()
		return
	}
	lt.state = lifetimeDone
	release := lt.release
	children := lt.children
	lt.release = nil
	lt.children = nil
	lt.anchor = nil
	lt.mu.Unlock()

	if release != nil {
		runReleaseSafely(release)
	}
	for _, child := range children {
		child.Done()
	}
}

// Forever transitions active -> pinned, suppressing the release callback
// (even when the Lifetime value itself is later dropped) by anchoring it
// in a process-lifetime registry.
func (lt *Lifetime) Forever() {
	lt.mu.Lock()
	if lt.state != lifetimeActive {
		lt.mu.Unlock()
		return
	}
	lt.state = lifetimePinned
	children := lt.children
	lt.mu.Unlock()

	pinForever(lt)

	for _, child := range children {
		child.Forever()
	}
}

// IsActive reports whether this Lifetime has not yet been done or pinned.
func (lt *Lifetime) IsActive() bool {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	return lt.state == lifetimeActive
}

// LiveAsLongAs returns a composite Lifetime whose Done()/Forever() cascade
// to every member. Nested composites are flattened on construction so a
// composite never holds another composite as a child.
func LiveAsLongAs(members ...*Lifetime) *Lifetime {
	flat := make([]*Lifetime, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}
		if m.isComposite() {
			flat = append(flat, m.children...)
		} else {
			flat = append(flat, m)
		}
	}

	return &Lifetime{children: flat}
}

func (lt *Lifetime) isComposite() bool {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	return lt.release == nil && lt.state == lifetimeActive
}

func runReleaseSafely(release func()) {
	defer func() {
		if r := recover(); r != nil {
			if ReleaseErrorHandler != nil {
				ReleaseErrorHandler(asError(r))
			}
		}
	}()
	release()
}

func asError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &CellError{Kind: ErrReleaseCallback, Message: toMessage(r)}
}

var (
	pinnedMu sync.Mutex
	pinned   []*Lifetime
)

// pinForever anchors a Lifetime (and anything it closes over) so the
// garbage collector can never reclaim it, matching "survives for the
// process lifetime" in spec §4.1.
func pinForever(lt *Lifetime) {
	pinnedMu.Lock()
	pinned = append(pinned, lt)
	pinnedMu.Unlock()
}
