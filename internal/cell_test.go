package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type constHooks struct {
	compute func() any
	begin   int
	done    int
}

func (h *constHooks) ComputeValue() any { return h.compute() }
func (h *constHooks) NeedsUpdate() bool { return false }
func (h *constHooks) BeginObserving()   { h.begin++ }
func (h *constHooks) DoneObserving()    { h.done++ }

func TestCellResolveCachesValue(t *testing.T) {
	calls := 0
	h := &constHooks{compute: func() any { calls++; return 42 }}
	c := NewCell(h)

	assert.Equal(t, 42, c.Resolve())
	assert.Equal(t, 42, c.Resolve())
	assert.Equal(t, 1, calls)
}

func TestCellMarkAsChangedDirtiesCacheAndFires(t *testing.T) {
	n := 0
	h := &constHooks{compute: func() any { n++; return n }}
	c := NewCell(h)

	assert.Equal(t, 1, c.Resolve())

	fired := 0
	lt := c.WhenChangedNotify(newCountingNotifiable(&fired))
	defer lt.Done()

	c.MarkAsChanged()
	assert.Equal(t, 1, fired)
	assert.Equal(t, 2, c.Resolve())
}

func TestCellResolvePanicLeavesCleanState(t *testing.T) {
	h := &constHooks{compute: func() any { panic("boom") }}
	c := NewCell(h)

	assert.Panics(t, func() { c.Resolve() })

	// computing flag must have been released, not left stuck, or this
	// second call would spuriously panic ErrComputeCycle instead of
	// retrying the compute.
	assert.Panics(t, func() { c.Resolve() })
}

func TestCellObservingEdgeFiresHooksOnce(t *testing.T) {
	h := &constHooks{compute: func() any { return 1 }}
	c := NewCell(h)

	calls := 0
	n := newCountingNotifiable(&calls)
	lt := c.WhenChangedNotify(n)

	assert.Equal(t, 1, h.begin)
	assert.Equal(t, 0, h.done)

	lt.Done()
	assert.Equal(t, 1, h.done)
}

func TestIsBoundReflectsObserverPresence(t *testing.T) {
	h := &constHooks{compute: func() any { return 1 }}
	c := NewCell(h)

	assert.False(t, c.IsBound().Resolve().(bool))

	calls := 0
	n := newCountingNotifiable(&calls)
	lt := c.WhenChangedNotify(n)

	assert.True(t, c.IsBound().Resolve().(bool))

	lt.Done()
	assert.False(t, c.IsBound().Resolve().(bool))
}

func TestObserveIterativeStabilizationDoesNotRecurse(t *testing.T) {
	stored := NewStoredCell(0, PolicyEquality, func(a, b any) bool { return a.(int) == b.(int) })

	lt := stored.Cell.Observe(func(v any) {
		n := v.(int)
		if n < 1000 {
			stored.Write(n + 1)
		}
	})
	defer lt.Done()

	assert.Equal(t, 1000, stored.CachedDirect())
}
