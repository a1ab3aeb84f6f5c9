package internal

import "sync"

// Hooks is implemented by each concrete cell kind (StoredCell, Computed,
// AttachmentPoint, ArrayCell, ExternalSourceCell) and driven by the shared
// Cell base, corresponding to spec §3's "Behavior hooks".
type Hooks interface {
	// ComputeValue produces a fresh value. Called with the cell's mutex not
	// held, so it may freely read other cells.
	ComputeValue() any

	// NeedsUpdate is consulted even when the cache is present; returning
	// true forces a recompute (used by ExternalSourceCell's "always fresh
	// while unobserved" rule). Most cells simply return false here.
	NeedsUpdate() bool

	// BeginObserving/DoneObserving fire exactly at the 0->1 and 1->0
	// transitions of the cell's own observer count.
	BeginObserving()
	DoneObserving()
}

// Cell is the base embedded by every concrete cell kind. It owns the cached
// value, the dirty bit, the observer set, and the lazily-constructed
// is_bound gauge. Grounded on the teacher's ReactiveNode cache/flags
// (internal/node.go) and Signal's pending-value pattern
// (internal/signal.go), but pull (lazy Resolve) rather than the teacher's
// push/heap eager recompute — see DESIGN.md's Open Question decision.
type Cell struct {
	mu sync.Mutex

	hooks Hooks

	cached  any
	present bool // cached is present and valid

	computing bool // reentrancy guard: a cell reading itself mid-compute is a cycle

	observers *NotificationSet
	bound     bool // observer-count edge tracker, drives BeginObserving/DoneObserving

	isBound *Cell // lazily constructed; nil until IsBound() is first called

	runAgain   bool // Observe's iterative self-stabilization flag (spec §4.4)
	delivering bool
}

// NewCell constructs a Cell around the given Hooks implementation.
func NewCell(hooks Hooks) *Cell {
	return &Cell{
		hooks:     hooks,
		observers: NewNotificationSet(),
	}
}

// Resolve registers this cell as a dependency of the active capture frame
// (if any), then returns its value: recomputing and caching when the cache
// is absent or NeedsUpdate says so, otherwise returning the cache untouched.
func (c *Cell) Resolve() any {
	if f := CurrentFrame(); f != nil && isTracking() {
		f.AddDependency(c)
	}

	c.mu.Lock()
	if c.present && !c.hooks.NeedsUpdate() {
		v := c.cached
		c.mu.Unlock()
		return v
	}
	if c.computing {
		c.mu.Unlock()
		panicCellError(ErrComputeCycle, "")
	}
	c.computing = true
	c.mu.Unlock()

	// On panic, the cache is left absent/dirty (so the next Resolve
	// retries) and the reentrancy guard is released, per spec §7: a
	// failed computation must not leave the engine in an inconsistent
	// state, and the panic propagates unchanged to the caller.
	succeeded := false
	defer func() {
		if succeeded {
			return
		}
		c.mu.Lock()
		c.computing = false
		c.present = false
		c.cached = nil
		c.mu.Unlock()
	}()

	v := c.hooks.ComputeValue()
	succeeded = true

	c.mu.Lock()
	c.cached = v
	c.present = true
	c.computing = false
	c.mu.Unlock()

	return v
}

// Rebind unconditionally recomputes and overwrites the cache.
func (c *Cell) Rebind() any {
	c.mu.Lock()
	c.present = false
	c.mu.Unlock()
	return c.Resolve()
}

// MarkAsChanged drops the cache (if present) and fires observers. Idempotent
// while already dirty: repeated calls with no intervening Resolve produce
// exactly one fanout, per spec §8.
func (c *Cell) MarkAsChanged() {
	c.mu.Lock()
	if !c.present {
		c.mu.Unlock()
		return
	}
	c.present = false
	c.cached = nil
	c.mu.Unlock()

	c.observers.FireAll()
	c.checkObservingEdge()
}

// SetCacheDirect overwrites the cache with v and marks it present, without
// going through ComputeValue. Used by leaf cells (StoredCell, ArrayCell)
// whose cache IS the authoritative value rather than a derived one.
func (c *Cell) SetCacheDirect(v any) {
	c.mu.Lock()
	c.cached = v
	c.present = true
	c.mu.Unlock()
}

// CachedDirect returns the current cache without registering a dependency
// or invoking any hook. Used by leaf cells to read back their own stored
// value.
func (c *Cell) CachedDirect() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached
}

// DropCacheSilently discards the cache without firing observers. Used by
// DoneObserving hooks, where the observer set is already known empty so no
// fanout is needed.
func (c *Cell) DropCacheSilently() {
	c.mu.Lock()
	c.present = false
	c.cached = nil
	c.mu.Unlock()
}

// FireObservers notifies observers without touching the cache, used when a
// leaf cell's authoritative value has already been overwritten directly
// (StoredCell.Write, ArrayCell's range-replace).
func (c *Cell) FireObservers() {
	c.observers.FireAll()
	c.checkObservingEdge()
}

// WhenChangedNotify weakly subscribes n to this cell's changes. On the
// first live observer, BeginObserving fires and the cell is considered
// bound. The Lifetime returned is what keeps n reachable (internal.NotificationSet
// only ever holds a weak.Pointer): n stays alive for as long as the caller
// holds this Lifetime active or pinned, and becomes collectible the moment
// Done() runs, per spec §9's "the consumer owns the Lifetime".
func (c *Cell) WhenChangedNotify(n Notifiable) *Lifetime {
	c.mu.Lock()
	wasLive := c.bound
	c.mu.Unlock()

	entry := c.observers.Add(n)

	c.mu.Lock()
	if !wasLive {
		c.bound = true
		c.mu.Unlock()
		c.hooks.BeginObserving()
	} else {
		c.mu.Unlock()
	}

	return NewLifetime(func() {
		entry.Done()
		c.checkObservingEdge()
	})
}

// WhenChanged wraps a closure in a Notifiable adapter and subscribes it.
func (c *Cell) WhenChanged(fn func()) *Lifetime {
	return c.WhenChangedNotify(newFuncNotifiable(fn))
}

// checkObservingEdge fires DoneObserving exactly once, the first time the
// observer set is discovered to be empty after having been bound. The
// discovery may lag behind a GC-collected observer until the set is next
// scanned (FireAll, AnyLive, or another explicit Done) — an accepted,
// documented looseness for weakly-held observers (spec §4.2/§9).
func (c *Cell) checkObservingEdge() {
	c.mu.Lock()
	if !c.bound {
		c.mu.Unlock()
		return
	}
	stillLive := c.observers.AnyLive()
	if stillLive {
		c.mu.Unlock()
		return
	}
	c.bound = false
	c.mu.Unlock()

	c.hooks.DoneObserving()
}

// Observe subscribes closure and immediately evaluates it once with the
// current value. If closure re-enters (by writing a StoredCell it itself
// depends on), the recursive re-fire is converted into iteration: a
// "run again" flag is set, and on return from the current invocation the
// cell re-evaluates until the flag stays clear, per spec §4.4's reentrancy
// rule.
func (c *Cell) Observe(closure func(v any)) *Lifetime {
	deliver := func() {
		c.mu.Lock()
		if c.delivering {
			c.runAgain = true
			c.mu.Unlock()
			return
		}
		c.delivering = true
		c.mu.Unlock()

		for {
			v := c.Resolve()
			closure(v)

			c.mu.Lock()
			again := c.runAgain
			c.runAgain = false
			if !again {
				c.delivering = false
				c.mu.Unlock()
				return
			}
			c.mu.Unlock()
		}
	}

	lt := c.WhenChanged(deliver)
	deliver()
	return lt
}

// IsBound lazily constructs and returns the is_bound gauge: a Cell<bool>
// that always recomputes (so GC-based observer drops are visible on the
// very next read, independent of any explicit unsubscribe).
func (c *Cell) IsBound() *Cell {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isBound == nil {
		c.isBound = NewCell(&isBoundHooks{owner: c})
	}
	return c.isBound
}

type isBoundHooks struct {
	owner *Cell
}

func (h *isBoundHooks) ComputeValue() any {
	return h.owner.observers.AnyLive()
}

func (h *isBoundHooks) NeedsUpdate() bool { return true }
func (h *isBoundHooks) BeginObserving()   {}
func (h *isBoundHooks) DoneObserving()    {}

// leafHooks backs cells whose cache is always set directly (SetCacheDirect)
// rather than lazily computed: ArrayCell's last_replacement gauge is the one
// place besides StoredCell itself that needs this.
type leafHooks struct{}

func (leafHooks) ComputeValue() any {
	panicCellError(ErrStoredCompute, "leaf cell has no compute function")
	return nil
}

func (leafHooks) NeedsUpdate() bool { return false }
func (leafHooks) BeginObserving()   {}
func (leafHooks) DoneObserving()    {}
