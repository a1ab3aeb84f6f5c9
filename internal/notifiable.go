package internal

// Notifiable accepts a "mark as changed" signal from something it has
// subscribed to.
type Notifiable interface {
	MarkAsChanged()
}

// Changeable is anything that can notify observers when it changes.
type Changeable interface {
	WhenChangedNotify(n Notifiable) *Lifetime
}

// selfBox gives a Notifiable a stable, independently-allocated identity for
// weak.Pointer to track. The box is only reachable through whatever
// strongly retains its owner (see hasBox.notifyBox), so the owner and its
// box are collected together: a NotificationSet entry that wraps a
// weak.Pointer[selfBox] reports "dead" exactly when nothing outside the
// engine holds the owner alive any more.
type selfBox struct {
	target Notifiable
}

func (b *selfBox) MarkAsChanged() { b.target.MarkAsChanged() }

// hasBox is implemented by every concrete Notifiable the engine hands to a
// NotificationSet, so the set can key its weak entries off a stable box
// rather than the arbitrary interface value itself.
type hasBox interface {
	notifyBox() *selfBox
}

// boxOf returns n's own box if it already has one (hasBox), or allocates a
// fresh box for callers (like closure-based observers) that don't carry
// their own box.
func boxOf(n Notifiable) *selfBox {
	if b, ok := n.(hasBox); ok {
		return b.notifyBox()
	}
	return &selfBox{target: n}
}

// funcNotifiable adapts a plain closure into a Notifiable with a stable box,
// used by Cell.WhenChanged's convenience wrapping (spec §4.4).
type funcNotifiable struct {
	box *selfBox
	fn  func()
}

func newFuncNotifiable(fn func()) *funcNotifiable {
	f := &funcNotifiable{fn: fn}
	f.box = &selfBox{target: f}
	return f
}

func (f *funcNotifiable) MarkAsChanged()    { f.fn() }
func (f *funcNotifiable) notifyBox() *selfBox { return f.box }
