// Package dom provides the headless document that micro components render into.
//
// A Document is an HTML node tree (golang.org/x/net/html) with the small part
// of the browser DOM the framework relies on: lookup by id, markup
// assignment through SetInnerHTML, element creation and attachment, event
// listeners, bubbling dispatch and a window target.
//
//	doc := dom.New()
//	app := doc.CreateElement("div")
//	app.SetID("app")
//	doc.Body().AppendChild(app)
//
//	app.AddEventListener("click", func(ev *dom.Event) {
//	    fmt.Println("clicked", ev.Target.ID())
//	})
//	_ = app.SetInnerHTML(`<button id="ok">OK</button>`)
//	_ = doc.Dispatch(doc.GetElementByID("ok"), dom.NewEvent("click"))
//
// # Dispatch
//
// The propagation path is computed before any listener runs: the target,
// each ancestor up to the document, then the window when the target is
// connected. Listeners added to a node during dispatch do not run for the
// current event. A listener panic stops the dispatch and is returned as an
// error.
//
// # Identity
//
// Element values are thin handles; two handles for the same node compare
// equal with Is. Replacing markup with SetInnerHTML detaches the old child
// nodes and drops their listeners.
//
// A Document is not safe for concurrent use. It belongs to the one goroutine
// running its UI event loop.
package dom
