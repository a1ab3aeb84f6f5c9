package internal

// ChangePolicy selects how StoredCell decides whether a write actually
// changed the value and should therefore notify observers. A closed,
// construction-time tagged variant per spec §9 ("represent as tagged
// construction, not as subclass hierarchy").
type ChangePolicy int

const (
	// PolicyIdentity treats new == old iff they are the same reference.
	PolicyIdentity ChangePolicy = iota
	// PolicyEquality treats new == old iff they are comparable-equal.
	PolicyEquality
	// PolicyOpaque always counts a write as a change.
	PolicyOpaque
)

// StoredCell holds a value supplied from outside and a write path gated by
// a ChangePolicy. Grounded on the teacher's Signal (internal/signal.go):
// Write/isEqual generalized from a single always-== comparison into the
// three-way policy spec §4.5 requires.
type StoredCell struct {
	*Cell

	policy ChangePolicy
	equal  func(a, b any) bool

	firstWrite bool
}

// NewStoredCell constructs a StoredCell with the given initial value and
// policy. The equal func is only consulted for PolicyEquality (PolicyIdentity
// always compares with ==) and is supplied by the generic public wrapper:
// the root package's NewCell passes a T-typed ==, NewOpaqueCell passes nil.
// The initial value is the baseline the first Write is compared against.
func NewStoredCell(initial any, policy ChangePolicy, equal func(a, b any) bool) *StoredCell {
	s := &StoredCell{policy: policy, equal: equal, firstWrite: true}
	s.Cell = NewCell(s)
	s.Cell.SetCacheDirect(initial)
	s.firstWrite = false
	return s
}

// Write stores new_value unconditionally and notifies observers only if the
// configured policy says the value changed. The constructor's initial value
// counts as the first write, so no later Write is treated specially.
func (s *StoredCell) Write(v any) {
	prev := s.Cell.CachedDirect()
	changed := s.firstWrite || !s.sameValue(prev, v)

	s.Cell.SetCacheDirect(v)

	if changed {
		s.Cell.FireObservers()
	}
}

func (s *StoredCell) sameValue(a, b any) bool {
	switch s.policy {
	case PolicyOpaque:
		return false
	case PolicyIdentity:
		return a == b
	case PolicyEquality:
		if s.equal != nil {
			return s.equal(a, b)
		}
		return a == b
	default:
		return a == b
	}
}

// ComputeValue is unreachable: a healthy StoredCell's cache is always
// present (set directly by the constructor and by Write), so the engine
// should never ask it to recompute. Reaching here means mark_as_changed()
// was called on a StoredCell directly, which spec §4.5/§7 treats as a fatal
// programmer error.
func (s *StoredCell) ComputeValue() any {
	panicCellError(ErrStoredCompute, "")
	return nil
}

func (s *StoredCell) NeedsUpdate() bool  { return false }
func (s *StoredCell) BeginObserving()    {}
func (s *StoredCell) DoneObserving()     {}
