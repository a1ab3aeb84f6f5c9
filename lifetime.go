package cells

import "github.com/fenwicklabs/cells/internal"

// Lifetime is a disposable handle returned by every subscription-creating
// call (WhenChanged, Observe, trigger wiring). Its zero value is not usable;
// obtain one from a subscribing call.
type Lifetime struct {
	lt *internal.Lifetime
}

func wrapLifetime(lt *internal.Lifetime) Lifetime {
	return Lifetime{lt: lt}
}

// Done releases the subscription this Lifetime guards. Idempotent.
func (l Lifetime) Done() {
	if l.lt != nil {
		l.lt.Done()
	}
}

// Forever pins the subscription to live for the remainder of the process,
// suppressing Done entirely even if the caller later drops this Lifetime.
func (l Lifetime) Forever() {
	if l.lt != nil {
		l.lt.Forever()
	}
}

// IsActive reports whether this Lifetime has not yet been Done or pinned.
func (l Lifetime) IsActive() bool {
	return l.lt != nil && l.lt.IsActive()
}

// LiveAsLongAs returns a composite Lifetime whose Done/Forever cascades to
// every member, useful for tying several subscriptions to one disposal.
func LiveAsLongAs(members ...Lifetime) Lifetime {
	inner := make([]*internal.Lifetime, 0, len(members))
	for _, m := range members {
		if m.lt != nil {
			inner = append(inner, m.lt)
		}
	}
	return wrapLifetime(internal.LiveAsLongAs(inner...))
}
