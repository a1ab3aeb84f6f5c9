// Package celltest provides test-only helpers for exercising the cells
// engine: a deterministic RedrawRequester fake and small assertion helpers
// for dependency-graph behavior. Grounded on the teacher's assert-heavy,
// package-level test style (sig_*_test.go).
package celltest

import (
	"runtime"
	"sync"
)

// FakeRedrawRequester counts redraw requests instead of scheduling a real
// frame, so tests can assert exactly how many times a Trigger's on_update
// fired.
type FakeRedrawRequester struct {
	mu    sync.Mutex
	count int
}

// NewFakeRedrawRequester constructs a zeroed fake.
func NewFakeRedrawRequester() *FakeRedrawRequester {
	return &FakeRedrawRequester{}
}

// RequestRedraw implements cells.RedrawRequester.
func (f *FakeRedrawRequester) RequestRedraw() {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
}

// Count returns how many times RequestRedraw has been called.
func (f *FakeRedrawRequester) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Reset zeroes the counter.
func (f *FakeRedrawRequester) Reset() {
	f.mu.Lock()
	f.count = 0
	f.mu.Unlock()
}

// ForceGC runs enough garbage-collection passes for weak.Pointer-backed
// observer sets to observe a dropped reference, matching the pattern the
// engine's own is_bound tests rely on: a single runtime.GC() is not always
// sufficient to settle finalizer/cleanup queues, so this runs a few.
func ForceGC() {
	for i := 0; i < 3; i++ {
		runtime.GC()
	}
}
