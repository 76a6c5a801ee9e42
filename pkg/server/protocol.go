package server

import (
	"encoding/json"
)

// Frame types.
const (
	FrameEvent  = "event"
	FrameRender = "render"
	FrameError  = "error"
)

// ClientMessage is a frame sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`

	// Event is the DOM event type.
	Event string `json:"event"`

	// Path locates the originating element. It is ignored for window
	// events.
	Path []int `json:"path,omitempty"`

	// Window marks events that did not originate inside the document.
	Window bool `json:"window,omitempty"`

	// Focus locates the element focused in the browser, if any.
	Focus []int `json:"focus,omitempty"`

	// Inputs carries the current value of every form field.
	Inputs []InputValue `json:"inputs,omitempty"`

	// Detail carries event data such as the pressed key.
	Detail map[string]string `json:"detail,omitempty"`
}

// InputValue is the browser-side value of one form field.
type InputValue struct {
	Path  []int  `json:"path"`
	Value string `json:"value"`
}

// ServerMessage is a frame sent to the browser.
type ServerMessage struct {
	Type string `json:"type"`

	// HTML is the document body markup.
	HTML string `json:"html,omitempty"`

	// Focus locates the element to focus after rendering.
	Focus []int `json:"focus,omitempty"`

	// Select asks the browser to select the focused field's text.
	Select bool `json:"select,omitempty"`

	// Events lists the event types with element listeners.
	Events []string `json:"events,omitempty"`

	// WindowEvents lists the event types with window listeners.
	WindowEvents []string `json:"windowEvents,omitempty"`

	// Code and Message describe an error frame.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeClientMessage parses and validates a browser frame.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, protocolError("decode frame: %v", err)
	}
	if msg.Type != FrameEvent {
		return ClientMessage{}, protocolError("unknown frame type %q", msg.Type)
	}
	if msg.Event == "" {
		return ClientMessage{}, protocolError("event frame without an event type")
	}
	return msg, nil
}
