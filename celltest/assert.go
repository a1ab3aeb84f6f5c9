package celltest

import (
	"testing"

	"github.com/fenwicklabs/cells"
	"github.com/stretchr/testify/assert"
)

// AssertBound asserts that c currently has at least one live observer,
// running ForceGC first so a just-collected weak observer has already been
// noticed.
func AssertBound[T any](t *testing.T, c cells.Cell[T], msgAndArgs ...any) bool {
	t.Helper()
	ForceGC()
	return assert.True(t, c.IsBound().Read(), msgAndArgs...)
}

// AssertNotBound asserts that c currently has no live observers.
func AssertNotBound[T any](t *testing.T, c cells.Cell[T], msgAndArgs ...any) bool {
	t.Helper()
	ForceGC()
	return assert.False(t, c.IsBound().Read(), msgAndArgs...)
}

// AssertReads asserts that c.Read() equals want.
func AssertReads[T any](t *testing.T, c cells.Cell[T], want T, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Equal(t, want, c.Read(), msgAndArgs...)
}
