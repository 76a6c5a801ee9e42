package todo

import (
	"context"
	_ "embed"
	"log/slog"
	"strconv"
	"time"

	"github.com/vango-dev/micro/pkg/component"
	"github.com/vango-dev/micro/pkg/dom"
	"github.com/vango-dev/micro/pkg/markup"
	"github.com/vango-dev/micro/pkg/storage"
)

// Stylesheet is the app CSS.
//
//go:embed style.css
var Stylesheet string

// Option configures Mount.
type Option func(*options)

type options struct {
	now        func() time.Time
	logger     *slog.Logger
	sanitizer  markup.Sanitizer
	components []component.Option
}

// WithClock sets the clock used for record ids.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the app logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSanitizer sets the filter applied to record text. The default strips
// all markup.
func WithSanitizer(s markup.Sanitizer) Option {
	return func(o *options) {
		o.sanitizer = s
	}
}

// WithComponentOptions passes options to every component of the app, such
// as a mount policy.
func WithComponentOptions(opts ...component.Option) Option {
	return func(o *options) {
		o.components = append(o.components, opts...)
	}
}

// App is a mounted to-do list.
type App struct {
	doc       *dom.Document
	state     *state
	ids       *idSource
	sanitizer markup.Sanitizer
	logger    *slog.Logger

	shell *component.Component
	head  *component.Component
	list  *component.Component
}

// Mount loads the stored list and renders the app under the element with
// id "app".
func Mount(ctx context.Context, doc *dom.Document, reg *storage.Registry, opts ...Option) (*App, error) {
	o := options{
		now:       time.Now,
		logger:    slog.Default(),
		sanitizer: markup.StrictSanitizer(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("component", "todo")

	st, err := newState(ctx, reg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		doc:       doc,
		state:     st,
		ids:       newIDSource(o.now, st.todos.Peek()),
		sanitizer: o.sanitizer,
		logger:    logger,
	}

	a.shell = component.New(doc, shellView, o.components...)
	if _, err := a.shell.Render(); err != nil {
		return nil, err
	}

	a.head = component.Tracked(doc, a.headView, o.components...).
		AddEvent(func(container *dom.Element) component.Binding {
			return component.Binding{
				Name:     "submit",
				Type:     "submit",
				TargetID: FormID,
				Handler:  func(ev *dom.Event) { a.submit(ev, container) },
			}
		}).
		AddEvent(func(*dom.Element) component.Binding {
			return component.Binding{
				Name:     "display",
				Type:     "click",
				TargetID: DisplayButtonID,
				Handler:  a.changeDisplay,
			}
		})
	if _, err := a.head.Render(HeadID); err != nil {
		return nil, err
	}

	a.list = component.Tracked(doc, a.listView, o.components...).
		AddEvent(func(*dom.Element) component.Binding {
			return component.Binding{Name: "remove", Type: "click", TargetID: RemoveButtonID, Handler: a.remove}
		}).
		AddEvent(func(*dom.Element) component.Binding {
			return component.Binding{Name: "complete", Type: "click", TargetID: CompleteButtonID, Handler: a.toggleCompleted}
		}).
		AddEvent(func(*dom.Element) component.Binding {
			return component.Binding{Name: "edit", Type: "click", TargetID: EditButtonID, Handler: a.edit}
		})
	if _, err := a.list.Render(ListID); err != nil {
		return nil, err
	}

	logger.Debug("todo mounted", "todos", len(st.todos.Peek()))
	return a, nil
}

// Todos returns the current list.
func (a *App) Todos() []Todo { return a.state.todos.Peek() }

// Display returns the current filter.
func (a *App) Display() Display { return a.state.display.Peek() }

// Focused returns the id of the record being edited, or NotFocused.
func (a *App) Focused() int64 { return a.state.focused.Peek() }

// Input returns the text of the input signal.
func (a *App) Input() string { return a.state.input.Peek() }

// Head returns the form and totals component.
func (a *App) Head() *component.Component { return a.head }

// List returns the record list component.
func (a *App) List() *component.Component { return a.list }

func (a *App) submit(ev *dom.Event, container *dom.Element) {
	ev.PreventDefault()

	if text := a.inputValue(container); text != "" {
		if id := a.state.focused.Peek(); id == NotFocused {
			a.state.setTodos(func(todos []Todo) []Todo {
				return Add(todos, Todo{ID: a.ids.next(), Text: text})
			})
			a.state.input.Reset()
		} else {
			a.state.setTodos(func(todos []Todo) []Todo {
				return UpdateText(todos, id, text)
			})
			a.state.input.Reset()
			a.state.focused.Reset()
		}
	}

	if input := firstInput(container); input != nil {
		input.Focus()
	}
}

func (a *App) inputValue(container *dom.Element) string {
	if input := firstInput(container); input != nil {
		return input.Value()
	}
	return ""
}

func firstInput(container *dom.Element) *dom.Element {
	inputs := container.GetElementsByTagName("input")
	if len(inputs) == 0 {
		return nil
	}
	return inputs[0]
}

func (a *App) changeDisplay(ev *dom.Event) {
	d, err := ParseDisplay(ev.Target.Attr("data-display"))
	if err != nil {
		a.logger.Warn("ignoring display click", "error", err)
		return
	}
	a.state.display.Set(d)
}

func (a *App) remove(ev *dom.Event) {
	id, ok := a.targetID(ev)
	if !ok {
		return
	}
	a.state.setTodos(func(todos []Todo) []Todo { return Remove(todos, id) })
}

func (a *App) toggleCompleted(ev *dom.Event) {
	id, ok := a.targetID(ev)
	if !ok {
		return
	}
	a.state.setTodos(func(todos []Todo) []Todo { return ToggleCompleted(todos, id) })
}

// edit enters edit mode for the clicked record, or leaves it when the
// record is already being edited.
func (a *App) edit(ev *dom.Event) {
	id, ok := a.targetID(ev)
	if !ok {
		return
	}
	t, found := Find(a.state.todos.Peek(), id)
	if !found {
		return
	}

	if a.state.focused.Peek() == t.ID {
		a.state.focused.Reset()
		a.state.input.Reset()
		return
	}

	a.state.focused.Set(t.ID)
	a.state.input.Set(t.Text)
	if input := firstInput(a.doc.Body()); input != nil {
		input.Select()
	}
}

func (a *App) targetID(ev *dom.Event) (int64, bool) {
	raw := ev.Target.Attr("data-id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.logger.Warn("ignoring click without a record id", "data_id", raw)
		return 0, false
	}
	return id, true
}
