package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// Runtime holds everything that must be thread/queue-local: the dependency
// capture Frame stack and the untracked-read depth counter. Grounded on the
// teacher's goroutine-keyed Runtime registry (internal/runtime.go,
// internal/runtime_default.go), which uses goid.Get() rather than a context
// value so that ordinary, context-less call sites (most Cell reads) don't
// need to thread anything through.
type Runtime struct {
	context        contextStack
	untrackedDepth int
}

var runtimes sync.Map // goid int64 -> *Runtime

// CurrentRuntime returns the Runtime for the calling goroutine, creating one
// on first use. Entries are never evicted: like the teacher, this trades a
// bounded per-goroutine leak (one small struct per goroutine that has ever
// touched a cell) for not needing goroutine-exit hooks, which Go does not
// expose.
func CurrentRuntime() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := &Runtime{}
	actual, _ := runtimes.LoadOrStore(gid, r)
	return actual.(*Runtime)
}

// framePool lets WithNewContext reuse Frame carriers across evaluations
// instead of allocating one per resolve(), the "pool a small set of worker
// carriers" optimization spec §4.3 calls out.
var framePool = sync.Pool{New: func() any { return &Frame{} }}

func acquireFrame() *Frame {
	f := framePool.Get().(*Frame)
	f.dependencies = nil
	f.expected = nil
	f.hasExpected = false
	return f
}

func releaseFrame(f *Frame) {
	framePool.Put(f)
}
