package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedLazyUntilFirstResolve(t *testing.T) {
	calls := 0
	s := NewStoredCell(1, PolicyEquality, intEqual)
	c := NewComputed(func() any {
		calls++
		return s.Resolve().(int) * 2
	})

	assert.Equal(t, 0, calls, "nothing computes before the first Resolve")
	assert.Equal(t, 2, c.Resolve())
	assert.Equal(t, 1, calls)
}

func TestComputedSkipsRecomputeOnUnchangedDeps(t *testing.T) {
	calls := 0
	s := NewStoredCell(1, PolicyEquality, intEqual)
	c := NewComputed(func() any {
		calls++
		return s.Resolve()
	})

	c.Resolve()
	c.Resolve() // cache still present, NeedsUpdate false: no recompute
	assert.Equal(t, 1, calls)
}

func TestComputedRewiresOnDependencyChange(t *testing.T) {
	a := NewStoredCell(1, PolicyEquality, intEqual)
	b := NewStoredCell(2, PolicyEquality, intEqual)

	c := NewComputed(func() any {
		if a.Resolve().(int) == 0 {
			return b.Resolve()
		}
		return a.Resolve()
	})

	assert.Equal(t, 1, c.Resolve())

	a.Write(0)
	assert.Equal(t, 2, c.Resolve())

	b.Write(6)
	assert.Equal(t, 6, c.Resolve())

	a.Write(5)
	assert.Equal(t, 5, c.Resolve())

	b.Write(9) // b no longer a dependency
	assert.Equal(t, 5, c.Resolve())
}

func TestComputedDoneObservingReleasesUpstream(t *testing.T) {
	a := NewStoredCell(1, PolicyEquality, intEqual)
	c := NewComputed(func() any { return a.Resolve().(int) + 1 })

	c.Resolve()

	fired := 0
	lt := c.WhenChangedNotify(newCountingNotifiable(&fired))

	a.Write(2)
	assert.Equal(t, 1, fired)

	lt.Done()
	assert.False(t, a.observers.AnyLive())
}
