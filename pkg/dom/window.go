package dom

import "slices"

// Window is the global event target of a document.
type Window struct {
	doc       *Document
	listeners []*listener
}

// AddEventListener implements EventTarget.
func (w *Window) AddEventListener(typ string, fn Handler) ListenerID {
	id := w.doc.newListenerID()
	w.listeners = append(w.listeners, &listener{id: id, typ: typ, fn: fn})
	return id
}

// RemoveEventListener implements EventTarget.
func (w *Window) RemoveEventListener(id ListenerID) bool {
	var ok bool
	w.listeners, ok = removeListener(w.listeners, id)
	return ok
}

// ListenerCount returns the number of listeners attached for typ.
func (w *Window) ListenerCount(typ string) int {
	return len(listenersOf(w.listeners, typ))
}

// ListenerTypes returns the sorted event types with window listeners.
func (w *Window) ListenerTypes() []string {
	var types []string
	for _, l := range w.listeners {
		if !slices.Contains(types, l.typ) {
			types = append(types, l.typ)
		}
	}
	slices.Sort(types)
	return types
}
