package todo

import (
	"strconv"

	"github.com/vango-dev/micro/pkg/markup"
)

// Element ids used by the views and their event bindings.
const (
	HeadID           = "todo-list-head"
	ListID           = "todo-list-render"
	FormID           = "form"
	DisplayButtonID  = "display"
	RemoveButtonID   = "remove-btn"
	CompleteButtonID = "update-completed-btn"
	EditButtonID     = "update-text-btn"
	TextID           = "update-todo-text"
)

type displayButton struct {
	display Display
	text    string
	emoji   string
}

var displayButtons = []displayButton{
	{DisplayAll, "All", "🗂️"},
	{DisplayUncompleted, "Do", "📚"},
	{DisplayCompleted, "Done", "🎉"},
}

func shellView() string {
	return markup.HTML(
		`<div class="container">`,
		`<div id="`, HeadID, `" class="head-container"></div>`,
		`<div id="`, ListID, `" class="list-container"></div>`,
		`</div>`,
	)
}

func (a *App) headView() string {
	return markup.HTML(
		`<form id="`, FormID, `" class="form">`,
		`<input placeholder="Add Todo" value="`, markup.EscapeAttr(a.state.input.Get()), `" class="input" autofocus>`,
		`</form>`,
		a.totalsView(),
	)
}

func (a *App) totalsView() string {
	todos := a.state.todos.Get()
	display := a.state.display.Get()

	return markup.HTML(
		`<div class="total-state">`,
		`<div class="state">`,
		`<span>Total `, len(todos), `</span>`,
		`<span>Done `, CountCompleted(todos), `</span>`,
		`</div>`,
		`<div class="controls">`,
		markup.Map(displayButtons, func(b displayButton) string {
			return Button(ButtonProps{
				Text:  b.text,
				Emoji: b.emoji,
				Class: markup.If(display == b.display, "focused"),
				Attributes: markup.Attributes{
					"id":           markup.Str(DisplayButtonID),
					"data-display": markup.Str(string(b.display)),
				},
			})
		}),
		`</div>`,
		`</div>`,
	)
}

func (a *App) listView() string {
	todos := Filter(a.state.todos.Get(), a.state.display.Get())
	focused := a.state.focused.Get()

	return markup.HTML(
		`<div class="list-col">`,
		`<div id="todo-list" class="list">`,
		markup.Map(todos, func(t Todo) string {
			return a.itemView(t, t.ID == focused)
		}),
		`</div>`,
		`</div>`,
	)
}

func (a *App) itemView(t Todo, isFocused bool) string {
	id := markup.Str(strconv.FormatInt(t.ID, 10))

	completeText := "◽️"
	if t.IsCompleted {
		completeText = "☑️"
	}
	editText := "🖋️"
	if isFocused {
		editText = "⚪️"
	}

	return markup.HTML(
		`<div class="`, markup.Class("todo", markup.If(isFocused, "todo-active")), `">`,
		`<div id="`, TextID, `" data-id="`, *id, `" class="`, markup.Class("todo-text", markup.If(isFocused, "todo-text-focused")), `">`,
		a.sanitizer.Sanitize(t.Text),
		`</div>`,
		`<div class="todo-actions">`,
		Button(ButtonProps{
			Text:       completeText,
			Class:      markup.If(t.IsCompleted, "completed"),
			Attributes: markup.Attributes{"id": markup.Str(CompleteButtonID), "data-id": id},
		}),
		Button(ButtonProps{
			Text:       editText,
			Class:      markup.If(isFocused, "focused"),
			Attributes: markup.Attributes{"id": markup.Str(EditButtonID), "data-id": id},
		}),
		Button(ButtonProps{
			Text:       "🗑️",
			Class:      "removed",
			Attributes: markup.Attributes{"id": markup.Str(RemoveButtonID), "data-id": id},
		}),
		`</div>`,
		`</div>`,
	)
}
