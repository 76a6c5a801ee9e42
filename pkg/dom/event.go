package dom

// Handler is an event listener callback.
type Handler func(ev *Event)

// ListenerID identifies an attached listener for removal.
type ListenerID uint64

// EventTarget is implemented by Element and Window.
type EventTarget interface {
	// AddEventListener attaches fn for events of the given type and returns
	// a handle for RemoveEventListener.
	AddEventListener(typ string, fn Handler) ListenerID

	// RemoveEventListener detaches a listener. It reports whether the
	// listener was attached to this target.
	RemoveEventListener(id ListenerID) bool
}

// Event is a dispatched DOM event.
type Event struct {
	// Type is the event type, e.g. "click" or "submit".
	Type string

	// Target is the element the event originated from. It is nil for events
	// dispatched on the window only.
	Target *Element

	// CurrentTarget is the target whose listeners are running.
	CurrentTarget EventTarget

	// Detail carries extra data supplied with the event (e.g. a key name).
	Detail map[string]string

	defaultPrevented   bool
	propagationStopped bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event after the current target's listeners.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

type listener struct {
	id  ListenerID
	typ string
	fn  Handler
}

func removeListener(list []*listener, id ListenerID) ([]*listener, bool) {
	for i, l := range list {
		if l.id == id {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}

func listenersOf(list []*listener, typ string) []*listener {
	var out []*listener
	for _, l := range list {
		if l.typ == typ {
			out = append(out, l)
		}
	}
	return out
}
