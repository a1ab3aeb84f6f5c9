package internal

import "sync"

// Replacement describes one ReplaceRange operation: the half-open index
// range that was overwritten, the elements that were there before, and the
// elements now in their place (spec §4.9's last_replacement payload).
type Replacement struct {
	Range            [2]int
	ReplacedElements []any
	NewElements      []any
}

// ArrayCell is a StoredCell specialized to []any, adding a range-replace
// write path and a last_replacement gauge so observers can diff
// incrementally instead of re-scanning the whole array on every change
// (spec §4.9). Grounded on the teacher's Signal write path
// (internal/signal.go) for the whole-array case, with the range machinery
// modeled after proto/array.go's splice semantics in the original source.
type ArrayCell struct {
	*StoredCell

	mu sync.Mutex

	lastReplacement *Cell
}

// NewArrayCell constructs an ArrayCell seeded with initial. Every write
// through this type always counts as a change (PolicyOpaque): comparing two
// slices for equality isn't a meaningful default, and ReplaceRange already
// reports precisely what changed.
func NewArrayCell(initial []any) *ArrayCell {
	a := &ArrayCell{}
	a.StoredCell = NewStoredCell(cloneSlice(initial), PolicyOpaque, nil)
	return a
}

func cloneSlice(s []any) []any {
	out := make([]any, len(s))
	copy(out, s)
	return out
}

// Write replaces the entire array and notifies unconditionally.
func (a *ArrayCell) Write(v []any) {
	a.StoredCell.Write(cloneSlice(v))
}

func (a *ArrayCell) snapshot() []any {
	v, _ := a.StoredCell.Cell.CachedDirect().([]any)
	return v
}

// ReplaceRange overwrites the half-open index range [start, end) with
// newElements, publishes the precise Replacement on last_replacement (if it
// has ever been requested), and fires observers once.
func (a *ArrayCell) ReplaceRange(start, end int, newElements []any) {
	a.mu.Lock()
	current := a.snapshot()

	replaced := append([]any(nil), current[start:end]...)

	next := make([]any, 0, len(current)-(end-start)+len(newElements))
	next = append(next, current[:start]...)
	next = append(next, newElements...)
	next = append(next, current[end:]...)

	lastRepl := a.lastReplacement
	a.mu.Unlock()

	a.StoredCell.Cell.SetCacheDirect(next)

	if lastRepl != nil {
		lastRepl.SetCacheDirect(&Replacement{
			Range:            [2]int{start, end},
			ReplacedElements: replaced,
			NewElements:      append([]any(nil), newElements...),
		})
		lastRepl.FireObservers()
	}

	a.StoredCell.Cell.FireObservers()
}

// LastReplacement lazily constructs and returns the Cell carrying the most
// recent Replacement (nil until the first ReplaceRange after this was
// requested).
func (a *ArrayCell) LastReplacement() *Cell {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.lastReplacement == nil {
		a.lastReplacement = NewCell(leafHooks{})
		a.lastReplacement.SetCacheDirect((*Replacement)(nil))
	}
	return a.lastReplacement
}

// Count returns the array's current length, registering a dependency on the
// whole array (spec §4.9: scalar derived reads observe the full cell).
func (a *ArrayCell) Count() int {
	v, _ := a.StoredCell.Cell.Resolve().([]any)
	return len(v)
}

// At returns the element at i, or nil if out of range.
func (a *ArrayCell) At(i int) any {
	v, _ := a.StoredCell.Cell.Resolve().([]any)
	if i < 0 || i >= len(v) {
		return nil
	}
	return v[i]
}

// Slice returns a copy of the half-open range [start, end).
func (a *ArrayCell) Slice(start, end int) []any {
	v, _ := a.StoredCell.Cell.Resolve().([]any)
	return append([]any(nil), v[start:end]...)
}

// First returns the first element, or nil if empty.
func (a *ArrayCell) First() any {
	v, _ := a.StoredCell.Cell.Resolve().([]any)
	if len(v) == 0 {
		return nil
	}
	return v[0]
}

// Last returns the final element, or nil if empty.
func (a *ArrayCell) Last() any {
	v, _ := a.StoredCell.Cell.Resolve().([]any)
	if len(v) == 0 {
		return nil
	}
	return v[len(v)-1]
}

// IndexOf returns the index of the first element satisfying pred, or -1.
func (a *ArrayCell) IndexOf(pred func(any) bool) int {
	v, _ := a.StoredCell.Cell.Resolve().([]any)
	for i, el := range v {
		if pred(el) {
			return i
		}
	}
	return -1
}
