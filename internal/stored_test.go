package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intEqual(a, b any) bool { return a.(int) == b.(int) }

func TestStoredCellPolicyIdentity(t *testing.T) {
	s := NewStoredCell(1, PolicyIdentity, nil)

	fired := 0
	n := newCountingNotifiable(&fired)
	lt := s.WhenChangedNotify(n)
	defer lt.Done()

	s.Write(1) // same value: identity comparison, no fanout
	assert.Equal(t, 0, fired)

	s.Write(2)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 2, s.CachedDirect())
}

func TestStoredCellPolicyEquality(t *testing.T) {
	s := NewStoredCell(1, PolicyEquality, intEqual)

	fired := 0
	lt := s.WhenChangedNotify(newCountingNotifiable(&fired))
	defer lt.Done()

	s.Write(1)
	assert.Equal(t, 0, fired)

	s.Write(2)
	assert.Equal(t, 1, fired)
}

func TestStoredCellPolicyOpaqueAlwaysFires(t *testing.T) {
	s := NewStoredCell([]int{1}, PolicyOpaque, nil)

	fired := 0
	lt := s.WhenChangedNotify(newCountingNotifiable(&fired))
	defer lt.Done()

	s.Write([]int{1})
	assert.Equal(t, 1, fired)
}

func TestStoredCellConstructionSeedsBaselineForEquality(t *testing.T) {
	// The constructor already establishes a baseline value via SetCacheDirect,
	// so a first explicit Write matching that baseline is correctly treated
	// as a non-change under PolicyEquality — there is no separate
	// "uninitialized" state to special-case.
	s := NewStoredCell(0, PolicyEquality, intEqual)

	fired := 0
	lt := s.WhenChangedNotify(newCountingNotifiable(&fired))
	defer lt.Done()

	s.Write(0)
	assert.Equal(t, 0, fired)
}

func TestStoredCellComputeValuePanics(t *testing.T) {
	s := NewStoredCell(1, PolicyEquality, intEqual)
	assert.Panics(t, func() { s.ComputeValue() })
}
