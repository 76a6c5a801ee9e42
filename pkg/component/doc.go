// Package component renders templates into containers of a headless
// document and keeps them in sync with the signals they read.
//
// A Component owns one container element, a transparent <div> with a unique
// id, and a template function. Tracked components subscribe their re-render
// to every signal the template reads:
//
//	count := reactive.NewSignal(0)
//	c := component.Tracked(doc, func() string {
//	    return markup.HTML(`<button id="inc">`, count.Get(), `</button>`)
//	})
//	c.AddEvent(func(*dom.Element) component.Binding {
//	    return component.Binding{
//	        Type:     "click",
//	        TargetID: "inc",
//	        Handler:  func(*dom.Event) { count.Update(func(n int) int { return n + 1 }) },
//	    }
//	})
//	_, err := c.Render("app")
//
// # Events
//
// Bindings are declared with AddEvent and attached when the component is
// mounted. A binding with a TargetID is a delegated listener on the
// container: it forwards only events whose originating element carries that
// id, so it survives re-renders of the container's content. Mounting again
// detaches the listeners of the previous mount first.
//
// # Mount targets
//
// By default a missing mount target makes the mount a silent no-op. Use
// WithMountPolicy(MountError) to get an error instead.
package component
