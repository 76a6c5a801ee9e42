// Package micro is the public API of the micro UI framework.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/micro"
//
// Usage:
//
//	count := micro.NewSignal(0)
//	c := micro.Tracked(doc, func() string {
//	    return micro.HTML(`<button id="inc">`, count.Get(), `</button>`)
//	}).AddEvent(func(*micro.Element) micro.Binding {
//	    return micro.Binding{Type: "click", TargetID: "inc", Handler: func(*micro.Event) {
//	        count.Update(func(n int) int { return n + 1 })
//	    }}
//	})
//	_, err := c.Render()
package micro

import (
	"context"

	"github.com/vango-dev/micro/pkg/component"
	"github.com/vango-dev/micro/pkg/dom"
	"github.com/vango-dev/micro/pkg/markup"
	"github.com/vango-dev/micro/pkg/reactive"
	"github.com/vango-dev/micro/pkg/storage"
)

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// Signal is a reactive value container.
type Signal[T any] = reactive.Signal[T]

// Update is a write applied to a signal.
type Update[T any] = reactive.Update[T]

// Computation is a tracked function.
type Computation = reactive.Computation

// NewSignal creates a signal holding initial.
func NewSignal[T any](initial T) *Signal[T] {
	return reactive.NewSignal(initial)
}

// Use creates a signal and returns its get, set, reset and get-previous
// accessors.
func Use[T any](initial T) (reactive.Getter[T], reactive.Setter[T], reactive.Resetter, reactive.Getter[T]) {
	return reactive.Use(initial)
}

// Replace is a write storing v.
func Replace[T any](v T) Update[T] { return reactive.Replace(v) }

// Derive is a write computing the next value from the current one.
func Derive[T any](fn func(prev T) T) Update[T] { return reactive.Derive(fn) }

// Track runs fn now and again after every write to a signal it read.
var Track = reactive.Track

// Untrack runs fn without subscribing to the signals it reads.
var Untrack = reactive.Untrack

// ErrUpdateCycle is matched by runaway write cascades.
var ErrUpdateCycle = reactive.ErrUpdateCycle

// =============================================================================
// Documents and components
// =============================================================================

// Document is a headless HTML document.
type Document = dom.Document

// Element is a document element.
type Element = dom.Element

// Event is a dispatched DOM event.
type Event = dom.Event

// Component is a rendered template bound to a container element.
type Component = component.Component

// Binding declares an event listener of a component.
type Binding = component.Binding

// Template renders a component's markup.
type Template = component.Template

// NewDocument creates an empty document.
var NewDocument = dom.New

// NewEvent creates an event of the given type.
var NewEvent = dom.NewEvent

// NewComponent creates an untracked component.
var NewComponent = component.New

// Tracked creates a component that re-renders when its signals change.
var Tracked = component.Tracked

// =============================================================================
// Markup helpers (re-export from pkg/markup)
// =============================================================================

// HTML concatenates markup parts.
var HTML = markup.HTML

// Escape escapes text for element content.
var Escape = markup.Escape

// EscapeAttr escapes text for a quoted attribute value.
var EscapeAttr = markup.EscapeAttr

// Map renders every item and joins the results.
func Map[T any](items []T, fn func(T) string) string {
	return markup.Map(items, fn)
}

// =============================================================================
// Storage (re-export from pkg/storage)
// =============================================================================

// Storage is a typed JSON value under one registered key.
type Storage[T any] = storage.Storage[T]

// NewStorage registers key in reg and returns its typed accessor.
func NewStorage[T any](reg *storage.Registry, key string) (*Storage[T], error) {
	return storage.New[T](reg, key)
}

// UseStorage registers key and returns get, set and reset closures bound
// to ctx.
func UseStorage[T any](ctx context.Context, reg *storage.Registry, key string) (storage.Getter[T], storage.Setter[T], storage.Resetter, error) {
	return storage.Use[T](ctx, reg, key)
}
