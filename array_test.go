package cells

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayCellRangeReplacement(t *testing.T) {
	arr := NewArrayCell([]int{1})

	lastRepl := arr.LastReplacement()
	calls := 0
	var repl *Replacement[int]
	lt := lastRepl.Observe(func(r *Replacement[int]) {
		calls++
		repl = r
	})
	defer lt.Done()

	arr.ReplaceRange(0, 0, []int{0})

	assert.Equal(t, []int{0, 1}, arr.Read())
	assert.Equal(t, 2, calls, "observe fires once immediately, once on the replacement")

	if assert.NotNil(t, repl) {
		assert.Equal(t, 0, repl.Start)
		assert.Equal(t, 0, repl.End)
		assert.Empty(t, repl.ReplacedElements)
		assert.Equal(t, []int{0}, repl.NewElements)
	}
}

func TestArrayCellReaders(t *testing.T) {
	arr := NewArrayCell([]string{"a", "b", "c"})

	assert.Equal(t, 3, arr.Count())
	assert.Equal(t, "a", arr.First())
	assert.Equal(t, "c", arr.Last())
	assert.Equal(t, "b", arr.At(1))
	assert.Equal(t, []string{"b", "c"}, arr.Slice(1, 3))
	assert.Equal(t, 2, arr.IndexOf(func(s string) bool { return s == "c" }))
	assert.Equal(t, -1, arr.IndexOf(func(s string) bool { return s == "z" }))
}

func TestArrayCellWholeWrite(t *testing.T) {
	arr := NewArrayCell([]int{1, 2})
	fired := 0
	lt := arr.WhenChanged(func([]int) { fired++ })
	defer lt.Done()

	arr.Write([]int{3, 4, 5})
	assert.Equal(t, []int{3, 4, 5}, arr.Read())
	assert.Equal(t, 1, fired)
}
