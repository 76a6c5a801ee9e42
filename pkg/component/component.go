package component

import (
	"log/slog"

	"github.com/google/uuid"

	microerrors "github.com/vango-dev/micro/internal/errors"
	"github.com/vango-dev/micro/pkg/dom"
	"github.com/vango-dev/micro/pkg/reactive"
)

// Template renders the current state of a component to markup.
type Template func() string

// Component is a template rendered into a container element.
type Component struct {
	id       string
	doc      *dom.Document
	template Template
	opts     options

	container *dom.Element
	ref       *dom.Element

	bindings []*binding
	tracker  *reactive.Computation
}

// New creates a component with a detached container holding the first
// render of tpl.
func New(doc *dom.Document, tpl Template, opts ...Option) *Component {
	o := options{
		target: DefaultRenderTarget,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Component{
		id:       uuid.NewString(),
		doc:      doc,
		template: tpl,
		opts:     o,
	}
	c.container = doc.CreateElement("div")
	c.container.SetID(c.id)
	c.container.SetStyle("display", "contents")
	c.ref = c.container

	if err := c.UpdateDOM(); err != nil {
		c.opts.logger.Error("initial render failed", "component_id", c.id, "error", err)
	}
	return c
}

// Tracked creates a component whose container re-renders whenever a signal
// read by tpl changes.
func Tracked(doc *dom.Document, tpl Template, opts ...Option) *Component {
	return New(doc, tpl, opts...).Track()
}

// Track subscribes UpdateDOM to every signal the template reads. Calling it
// again has no effect.
func (c *Component) Track() *Component {
	if c.tracker != nil {
		return c
	}
	c.tracker = reactive.Track(func() {
		if err := c.UpdateDOM(); err != nil {
			c.opts.logger.Error("re-render failed", "component_id", c.id, "error", err)
		}
	})
	return c
}

// Tracker returns the computation re-rendering the component, or nil for an
// untracked component.
func (c *Component) Tracker() *reactive.Computation {
	return c.tracker
}

// ID returns the container id.
func (c *Component) ID() string { return c.id }

// Target returns the id of the element the component mounts under.
func (c *Component) Target() string { return c.opts.target }

// Ref returns the container as of the latest render.
func (c *Component) Ref() *dom.Element { return c.ref }

// UpdateDOM replaces the container's markup with a fresh render.
func (c *Component) UpdateDOM() error {
	out := c.template()
	if c.opts.sanitizer != nil {
		out = c.opts.sanitizer.Sanitize(out)
	}
	if err := c.container.SetInnerHTML(out); err != nil {
		return microerrors.New("M008").
			WithDetailf("component %s: %v", c.id, err).
			Wrap(ErrRender)
	}
	c.ref = c.container
	return nil
}

// Render mounts the component under targetID, or under its remembered
// target when none is given, and attaches its event bindings.
func (c *Component) Render(targetID ...string) (*Component, error) {
	if err := c.mount(targetID); err != nil {
		return c, err
	}
	return c, nil
}

// StaticRender mounts the component like Render.
func (c *Component) StaticRender(targetID ...string) error {
	return c.mount(targetID)
}

// Effect mounts the component, then tracks fn as a separate computation.
func (c *Component) Effect(fn func()) (*Component, error) {
	if err := c.mount(nil); err != nil {
		return c, err
	}
	reactive.Track(fn)
	return c, nil
}

// OnMounted mounts the component and passes the container to cb.
func (c *Component) OnMounted(cb func(container *dom.Element), targetID ...string) (*Component, error) {
	if err := c.mount(targetID); err != nil {
		return c, err
	}
	cb(c.container)
	return c, nil
}

func (c *Component) mount(targetID []string) error {
	if len(targetID) > 0 && targetID[0] != "" {
		c.opts.target = targetID[0]
	}

	target := c.doc.GetElementByID(c.opts.target)
	switch {
	case target == nil && c.opts.policy == MountError:
		return microerrors.New("M004").
			WithDetailf("no element with id %q for component %s", c.opts.target, c.id).
			Wrap(ErrMountTarget)
	case target == nil:
		c.opts.logger.Debug("mount target not found", "component_id", c.id, "target", c.opts.target)
	default:
		if err := target.AppendChild(c.container); err != nil {
			return microerrors.New("M004").
				WithDetailf("cannot mount component %s under %q", c.id, c.opts.target).
				Wrap(err)
		}
	}

	c.MountEvent()
	return nil
}
