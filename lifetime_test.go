package cells

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifetimeDoneIsIdempotent(t *testing.T) {
	calls := 0
	b := NewCell(1)
	lt := b.WhenChanged(func(int) { calls++ })

	lt.Done()
	lt.Done() // second call must be a silent no-op

	b.Write(2)
	assert.Equal(t, 0, calls)
}

func TestCompositeLifetime(t *testing.T) {
	x := NewCell(1)
	y := NewCell(2)

	ltA := x.WhenChanged(func(int) {})
	ltB := y.WhenChanged(func(int) {})

	combined := LiveAsLongAs(ltA, ltB)
	combined.Done()

	assert.False(t, ltA.IsActive())
	assert.False(t, ltB.IsActive())
	assert.False(t, x.IsBound().Read())
	assert.False(t, y.IsBound().Read())
}

func TestLifetimeForeverSurvivesScopeExit(t *testing.T) {
	a := NewCell(1)
	fired := 0

	func() {
		lt := a.WhenChanged(func(int) { fired++ })
		lt.Forever()
	}()

	// celltest.ForceGC can't be imported here (celltest imports this
	// package), so the same few-pass GC is inlined: a pinned subscription
	// must keep firing even after the closure that created it is collected.
	for i := 0; i < 3; i++ {
		runtime.GC()
	}

	a.Write(2)
	assert.Equal(t, 1, fired)
	assert.True(t, a.IsBound().Read())
}
