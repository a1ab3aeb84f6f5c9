package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayCellReplaceRange(t *testing.T) {
	arr := NewArrayCell([]any{1})

	lastRepl := arr.LastReplacement()
	calls := 0
	var got *Replacement
	lt := lastRepl.Observe(func(v any) {
		calls++
		got, _ = v.(*Replacement)
	})
	defer lt.Done()

	arr.ReplaceRange(0, 0, []any{0})

	assert.Equal(t, []any{0, 1}, arr.CachedDirect())
	assert.Equal(t, 2, calls)

	if assert.NotNil(t, got) {
		assert.Equal(t, [2]int{0, 0}, got.Range)
		assert.Empty(t, got.ReplacedElements)
		assert.Equal(t, []any{0}, got.NewElements)
	}
}

func TestArrayCellReaders(t *testing.T) {
	arr := NewArrayCell([]any{"a", "b", "c"})

	assert.Equal(t, 3, arr.Count())
	assert.Equal(t, "a", arr.First())
	assert.Equal(t, "c", arr.Last())
	assert.Equal(t, "b", arr.At(1))
	assert.Equal(t, []any{"b", "c"}, arr.Slice(1, 3))
	assert.Equal(t, 2, arr.IndexOf(func(v any) bool { return v == "c" }))
	assert.Equal(t, -1, arr.IndexOf(func(v any) bool { return v == "z" }))
}

func TestArrayCellWholeWrite(t *testing.T) {
	arr := NewArrayCell([]any{1, 2})

	fired := 0
	lt := arr.WhenChangedNotify(newCountingNotifiable(&fired))
	defer lt.Done()

	arr.Write([]any{3, 4, 5})
	assert.Equal(t, []any{3, 4, 5}, arr.CachedDirect())
	assert.Equal(t, 1, fired)
}
