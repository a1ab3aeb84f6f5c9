package internal

import (
	"sync"
	"weak"
)

// notificationEntry is one slot in a NotificationSet's intrusive doubly
// linked list, mirroring the teacher's DependencyLink (internal/node.go,
// internal/signal.go) but holding a weak.Pointer instead of a strong one.
type notificationEntry struct {
	ptr weak.Pointer[selfBox]

	prev, next *notificationEntry
}

// NotificationSet is a weakly-held collection of Notifiable observers,
// iterated newest first. Entries are added/removed in O(1) via the intrusive
// list; dead (GC'd) entries are tombstoned lazily rather than scanned for
// eagerly, per spec §4.2.
type NotificationSet struct {
	mu   sync.Mutex
	head *notificationEntry
}

func NewNotificationSet() *NotificationSet {
	return &NotificationSet{}
}

// Add subscribes n weakly and returns a Lifetime that, on Done, unlinks
// exactly this entry right away. The
// set itself only ever holds a weak.Pointer to box, so the returned
// Lifetime anchors box strongly: n stays alive for as long as the caller
// holds the Lifetime active (or pinned), and only becomes collectible once
// Done() runs and drops the anchor.
func (s *NotificationSet) Add(n Notifiable) *Lifetime {
	box := boxOf(n)

	s.mu.Lock()
	entry := &notificationEntry{ptr: weak.Make(box)}
	s.pushFront(entry)
	s.mu.Unlock()

	return NewAnchoredLifetime(box, func() {
		s.mu.Lock()
		s.unlink(entry)
		s.mu.Unlock()
	})
}

func (s *NotificationSet) pushFront(e *notificationEntry) {
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
}

func (s *NotificationSet) unlink(e *notificationEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else if s.head == e {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev = nil
	e.next = nil
}

// FireAll delivers MarkAsChanged to a snapshot of currently-live observers.
// Observers added during the fire (e.g. a Computed re-subscribing mid-fanout)
// do not run in this pass, per spec §4.2. Dead entries found along the way
// are unlinked (lazy compaction, no separate sweep needed).
func (s *NotificationSet) FireAll() {
	s.mu.Lock()
	snapshot := make([]*notificationEntry, 0, 4)
	for e := s.head; e != nil; e = e.next {
		snapshot = append(snapshot, e)
	}
	s.mu.Unlock()

	for _, e := range snapshot {
		box := e.ptr.Value()
		if box == nil {
			s.mu.Lock()
			s.unlink(e)
			s.mu.Unlock()
			continue
		}
		box.MarkAsChanged()
	}
}

// CompactIfNeeded drops tombstoned/dead entries. Safe to call at any time;
// cheap no-op when nothing has died.
func (s *NotificationSet) CompactIfNeeded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for e := s.head; e != nil; {
		next := e.next
		if e.ptr.Value() == nil {
			s.unlink(e)
		}
		e = next
	}
}

// AnyLive reports whether at least one live (not yet GC'd, not yet Done'd)
// observer remains. Dead entries encountered are tombstoned as a side
// effect, same as FireAll.
func (s *NotificationSet) AnyLive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for e := s.head; e != nil; {
		next := e.next
		if e.ptr.Value() == nil {
			s.unlink(e)
			e = next
			continue
		}
		return true
	}
	return false
}
