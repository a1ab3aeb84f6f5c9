// Package hostsync bridges the cells engine to an arbitrary host object
// graph: a key-value ExternalValueSource adapter for things like a DOM
// attribute table or a config map, and LiveAsLongAsObject for tying a
// subscription's lifetime to an arbitrary host object's garbage collection
// rather than to an explicit Lifetime.Done() call (spec §9's "host-object-
// lifetime attachment").
package hostsync

import (
	"runtime"
	"sync"

	"github.com/fenwicklabs/cells"
)

// MapSource adapts a plain map-backed key/value store into an
// cells.ExternalValueSource, broadcasting a change to all of a key's
// subscribers when that key is Set. Grounded on the teacher's polling-free external-signal
// bridging pattern generalized to a concrete in-memory backing store.
type MapSource struct {
	mu   sync.RWMutex
	data map[string]any
	subs map[string]map[int]func()
	next int
}

// NewMapSource constructs an empty MapSource.
func NewMapSource() *MapSource {
	return &MapSource{
		data: make(map[string]any),
		subs: make(map[string]map[int]func()),
	}
}

// Set stores v at key and notifies every live subscriber for that key.
func (m *MapSource) Set(key string, v any) {
	m.mu.Lock()
	m.data[key] = v
	callbacks := make([]func(), 0, len(m.subs[key]))
	for _, fn := range m.subs[key] {
		callbacks = append(callbacks, fn)
	}
	m.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Read implements cells.ExternalValueSource.
func (m *MapSource) Read(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key]
}

type mapSubscription struct {
	key string
	id  int
}

// Subscribe implements cells.ExternalValueSource.
func (m *MapSource) Subscribe(key string, onChange func()) any {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.next
	m.next++
	if m.subs[key] == nil {
		m.subs[key] = make(map[int]func())
	}
	m.subs[key][id] = onChange

	return mapSubscription{key: key, id: id}
}

// Unsubscribe implements cells.ExternalValueSource.
func (m *MapSource) Unsubscribe(subscription any) {
	sub, ok := subscription.(mapSubscription)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs[sub.key], sub.id)
}

var _ cells.ExternalValueSource = (*MapSource)(nil)

// LiveAsLongAsObject returns a Lifetime that calls Done on lt when host
// becomes unreachable to the garbage collector, using runtime.AddCleanup
// rather than a hand-rolled finalizer queue (spec §9's language-neutral
// "weak map from host to composite Lifetime" realized natively in Go).
// host must not be captured by lt's own release callback, or it can never
// become unreachable. The returned Lifetime can still be Done'd early; the
// eventual cleanup is then a no-op.
func LiveAsLongAsObject[T any](host *T, lt cells.Lifetime) cells.Lifetime {
	var once sync.Once
	runtime.AddCleanup(host, func(_ struct{}) { once.Do(lt.Done) }, struct{}{})
	return lt
}
