package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentPointForwardsAndTracks(t *testing.T) {
	a := NewAttachmentPointTo(&constResolvable{value: 0})

	assert.Equal(t, 0, a.Resolve())

	target := NewStoredCell(42, PolicyEquality, intEqual)
	a.AttachTo(target)
	assert.Equal(t, 42, a.Resolve())

	target.Write(100)
	assert.Equal(t, 100, a.Resolve())
}

func TestAttachmentPointWriteRequiresWritable(t *testing.T) {
	a := NewAttachmentPointTo(&constResolvable{value: 0})
	assert.Panics(t, func() { a.Write(1) })

	target := NewStoredCell(1, PolicyEquality, intEqual)
	a.AttachTo(target)
	assert.NotPanics(t, func() { a.Write(2) })
	assert.Equal(t, 2, target.CachedDirect())
}

func TestAttachmentCycleDetection(t *testing.T) {
	a := NewAttachmentPointTo(&constResolvable{value: 0})
	b := NewAttachmentPointTo(&constResolvable{value: 0})

	b.AttachTo(a)
	assert.Panics(t, func() { a.AttachTo(b) })
}

type constResolvable struct {
	value any
}

func (c *constResolvable) Resolve() any { return c.value }
func (c *constResolvable) WhenChangedNotify(n Notifiable) *Lifetime {
	return NewLifetime(nil)
}
