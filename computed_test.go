package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedDependencyChange(t *testing.T) {
	a := NewCell(1)
	b := NewCell(2)

	c := NewComputed(func() int {
		if a.Read() == 0 {
			return b.Read()
		}
		return a.Read()
	})

	assert.Equal(t, 1, c.Read())

	a.Write(3)
	assert.Equal(t, 3, c.Read())

	a.Write(0)
	assert.Equal(t, 2, c.Read())

	b.Write(4)
	assert.Equal(t, 4, c.Read())

	a.Write(5)
	assert.Equal(t, 5, c.Read())

	// b is no longer a dependency: writing it must not change c.
	b.Write(6)
	assert.Equal(t, 5, c.Read())
}

func TestComputedSkipsRecomputeWhenDepsUnchanged(t *testing.T) {
	log := []string{}

	count := NewCell(1)
	double := NewComputed(func() int {
		log = append(log, "doubling")
		return count.Read() * 2
	})
	plusTwo := NewComputed(func() int {
		log = append(log, "adding")
		return double.Read() + 2
	})

	assert.Equal(t, 1, count.Read())
	assert.Equal(t, 2, double.Read())
	assert.Equal(t, 4, plusTwo.Read())

	count.Write(10)
	assert.Equal(t, 20, double.Read())
	assert.Equal(t, 22, plusTwo.Read())

	assert.Equal(t, []string{"doubling", "adding", "doubling", "adding"}, log)
}

func TestComputedReleaseOnScopeExit(t *testing.T) {
	a := NewCell(1)

	fired := 0
	func() {
		c := NewComputed(func() int { return a.Read() + 1 })
		lt := c.WhenChanged(func(int) { fired++ })
		defer lt.Done()

		c.Read()
		a.Write(2)
		assert.Equal(t, 1, fired)
	}()

	a.Write(3)
	assert.Equal(t, 1, fired, "no observer should fire after the scope released its subscription")
	assert.False(t, a.IsBound().Read(), "releasing the computed's own observers must cascade to its upstream subscriptions")
}
