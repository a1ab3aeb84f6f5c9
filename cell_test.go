package cells

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoredCell(t *testing.T) {
	t.Run("simple binding", func(t *testing.T) {
		b := NewCell(1)
		assert.Equal(t, 1, b.Read())

		b.Write(2)
		assert.Equal(t, 2, b.Read())
	})

	t.Run("equality policy skips redundant fanout", func(t *testing.T) {
		b := NewCell(1)
		fired := 0
		lt := b.WhenChanged(func(int) { fired++ })
		defer lt.Done()

		b.Write(1) // same value, equality policy: no fanout
		assert.Equal(t, 0, fired)

		b.Write(2)
		assert.Equal(t, 1, fired)
	})

	t.Run("opaque policy always fires", func(t *testing.T) {
		b := NewOpaqueCell([]int{1, 2})
		fired := 0
		lt := b.WhenChanged(func([]int) { fired++ })
		defer lt.Done()

		b.Write([]int{1, 2}) // same contents, opaque: always counts
		assert.Equal(t, 1, fired)
	})
}

func TestIsBound(t *testing.T) {
	b := NewCell(1)
	assert.False(t, b.IsBound().Read())

	lt := b.WhenChanged(func(int) {})
	assert.True(t, b.IsBound().Read())

	lt.Done()
	assert.False(t, b.IsBound().Read())
}

func TestObserveIterativeStabilization(t *testing.T) {
	b := NewCell(1)

	lt := b.Observe(func(v int) {
		if v < 5 {
			b.Write(v + 1)
		}
	})
	lt.Forever()

	assert.Equal(t, 5, b.Read())

	// A pinned Observe closure must keep firing after a GC pass, not just
	// by accident of nothing having run yet.
	for i := 0; i < 3; i++ {
		runtime.GC()
	}

	b.Write(0)
	assert.Equal(t, 5, b.Read())
}
