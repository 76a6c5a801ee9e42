package component

import (
	microerrors "github.com/vango-dev/micro/internal/errors"
	"github.com/vango-dev/micro/pkg/dom"
)

// Scope selects where a binding's listener is attached.
type Scope int

const (
	// ScopeSelf attaches to the component's container.
	ScopeSelf Scope = iota
	// ScopeWindow attaches to the document window.
	ScopeWindow
)

// Binding declares one event listener of a component.
type Binding struct {
	// Type is the event type, e.g. "click".
	Type string

	// Handler receives matching events.
	Handler dom.Handler

	// Name identifies the binding for RemoveEvent.
	Name string

	// Scope selects the container or the window.
	Scope Scope

	// TargetID limits a container binding to events originating from the
	// element with this id.
	TargetID string
}

type binding struct {
	Binding

	on       dom.EventTarget
	listener dom.ListenerID
}

func (b *binding) detach() {
	if b.on != nil {
		b.on.RemoveEventListener(b.listener)
		b.on = nil
	}
}

// AddEvent declares a binding. factory receives the container and is called
// once, immediately. The binding is attached on the next mount.
func (c *Component) AddEvent(factory func(container *dom.Element) Binding) *Component {
	c.bindings = append(c.bindings, &binding{Binding: factory(c.container)})
	return c
}

// MountEvent attaches every binding, replacing listeners of earlier mounts.
func (c *Component) MountEvent() {
	for _, b := range c.bindings {
		b.detach()

		var on dom.EventTarget = c.container
		if b.Scope == ScopeWindow {
			on = c.doc.Window()
		}
		b.on = on
		b.listener = on.AddEventListener(b.Type, c.shim(b))
	}
}

func (c *Component) shim(b *binding) dom.Handler {
	handler, targetID := b.Handler, b.TargetID
	if b.Scope == ScopeWindow || targetID == "" {
		return handler
	}
	return func(ev *dom.Event) {
		if ev.Target == nil || ev.Target.ID() != targetID {
			return
		}
		handler(ev)
	}
}

// RemoveEvent detaches the first binding with the given name and forgets
// it, so later mounts do not attach it again.
func (c *Component) RemoveEvent(name string) error {
	for i, b := range c.bindings {
		if b.Name != "" && b.Name == name {
			b.detach()
			c.bindings = append(c.bindings[:i:i], c.bindings[i+1:]...)
			return nil
		}
	}
	return microerrors.New("M003").
		WithDetailf("event %q is not registered on component %s", name, c.id).
		Wrap(ErrUnknownBinding)
}

// Bindings returns the declared bindings in order.
func (c *Component) Bindings() []Binding {
	out := make([]Binding, len(c.bindings))
	for i, b := range c.bindings {
		out[i] = b.Binding
	}
	return out
}
