package cells

import "github.com/fenwicklabs/cells/internal"

// ExternalValueSource is implemented by a host embedding this library: a
// key-addressed store that can be read synchronously and subscribed to
// out-of-band.
type ExternalValueSource interface {
	Read(key string) any
	Subscribe(key string, onChange func()) (subscription any)
	Unsubscribe(subscription any)
}

type externalSourceAdapter struct {
	source ExternalValueSource
}

func (a externalSourceAdapter) Read(key string) any { return a.source.Read(key) }
func (a externalSourceAdapter) Subscribe(key string, onChange func()) any {
	return a.source.Subscribe(key, onChange)
}
func (a externalSourceAdapter) Unsubscribe(subscription any) {
	a.source.Unsubscribe(subscription)
}

// ExternalBinding creates a cell bridging source at key. While unobserved,
// every Read re-consults the source directly; once observed, the cell holds
// the source strongly and subscribes once, relying on the source's change
// callback rather than polling.
func ExternalBinding[T any](source ExternalValueSource, key string) Cell[T] {
	e := internal.NewExternalSourceCell(externalSourceAdapter{source: source}, key)
	return wrapCell[T](e.Cell)
}
