package dom

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const shell = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is a headless HTML document.
type Document struct {
	root *html.Node
	body *html.Node

	window *Window

	// listeners maps element nodes to their listeners in attachment order.
	listeners map[*html.Node][]*listener

	lastListener ListenerID

	active   *html.Node
	selected bool
}

// New creates an empty document with a head and a body.
func New() *Document {
	root, err := html.Parse(strings.NewReader(shell))
	if err != nil {
		// The shell is a constant; the parser accepts any input.
		panic(fmt.Sprintf("dom: parse shell: %v", err))
	}

	d := &Document{
		root:      root,
		listeners: make(map[*html.Node][]*listener),
	}
	d.window = &Window{doc: d}
	d.body = findFirst(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	return d
}

// Parse creates a document whose body holds the given markup.
func Parse(body string) (*Document, error) {
	d := New()
	if err := d.Body().SetInnerHTML(body); err != nil {
		return nil, err
	}
	return d, nil
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// Window returns the document's window.
func (d *Document) Window() *Window {
	return d.window
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// GetElementByID returns the first connected element with the given id, in
// document order, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.wrap(findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	}))
}

// GetElementsByTagName returns all connected elements with the given tag.
func (d *Document) GetElementsByTagName(tag string) []*Element {
	return d.wrap(d.root).GetElementsByTagName(tag)
}

// ActiveElement returns the focused element, or nil when nothing connected
// has focus.
func (d *Document) ActiveElement() *Element {
	if d.active == nil || !d.connected(d.active) {
		return nil
	}
	return d.wrap(d.active)
}

// SelectionActive reports whether the focused element's text was selected
// by Select.
func (d *Document) SelectionActive() bool {
	return d.ActiveElement() != nil && d.selected
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	var b strings.Builder
	_ = html.Render(&b, d.root)
	return b.String()
}

// BodyHTML renders the children of the body.
func (d *Document) BodyHTML() string {
	return d.Body().InnerHTML()
}

// Path returns the element-child indexes leading from the body to el, or
// nil when el is not inside the body.
func (d *Document) Path(el *Element) []int {
	if el == nil {
		return nil
	}
	var path []int
	n := el.node
	for n != d.body {
		p := n.Parent
		if p == nil {
			return nil
		}
		idx := 0
		for c := p.FirstChild; c != n; c = c.NextSibling {
			if c.Type == html.ElementNode {
				idx++
			}
		}
		path = append(path, idx)
		n = p
	}
	slices.Reverse(path)
	if path == nil {
		path = []int{}
	}
	return path
}

// ElementAtPath resolves a path produced by Path. It returns nil when the
// path does not lead to an element.
func (d *Document) ElementAtPath(path []int) *Element {
	n := d.body
	for _, idx := range path {
		if idx < 0 {
			return nil
		}
		var next *html.Node
		i := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if i == idx {
				next = c
				break
			}
			i++
		}
		if next == nil {
			return nil
		}
		n = next
	}
	return d.wrap(n)
}

// ListenerTypes returns the sorted event types with listeners on connected
// elements.
func (d *Document) ListenerTypes() []string {
	var types []string
	for n, list := range d.listeners {
		if !d.connected(n) {
			continue
		}
		for _, l := range list {
			if !slices.Contains(types, l.typ) {
				types = append(types, l.typ)
			}
		}
	}
	slices.Sort(types)
	return types
}

// Dispatch fires ev at target and bubbles it to the document and, for a
// connected target, the window. A nil target dispatches on the window only.
// A panicking listener aborts the dispatch; its panic is returned.
func (d *Document) Dispatch(target *Element, ev *Event) error {
	if ev == nil || ev.Type == "" {
		return fmt.Errorf("dom: dispatch without an event type")
	}
	if target != nil && target.doc != d {
		return fmt.Errorf("dom: dispatch target belongs to another document")
	}

	type step struct {
		target    EventTarget
		listeners []*listener
	}

	// The path is fixed before any listener runs.
	var path []step
	toWindow := target == nil
	if target != nil {
		ev.Target = target
		for n := target.node; n != nil; n = n.Parent {
			if n.Type != html.ElementNode {
				continue
			}
			path = append(path, step{target: d.wrap(n), listeners: listenersOf(d.listeners[n], ev.Type)})
		}
		toWindow = d.connected(target.node)
	}
	if toWindow {
		path = append(path, step{target: d.window, listeners: listenersOf(d.window.listeners, ev.Type)})
	}

	for _, s := range path {
		ev.CurrentTarget = s.target
		for _, l := range s.listeners {
			if err := invoke(l, ev); err != nil {
				return err
			}
		}
		if ev.propagationStopped {
			break
		}
	}
	return nil
}

// invoke runs one listener, turning a panic into an error.
func invoke(l *listener, ev *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("dom: %s listener panicked: %w", ev.Type, e)
				return
			}
			err = fmt.Errorf("dom: %s listener panicked: %v", ev.Type, r)
		}
	}()
	l.fn(ev)
	return nil
}

func (d *Document) newListenerID() ListenerID {
	d.lastListener++
	return d.lastListener
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// connected reports whether n is part of the document tree.
func (d *Document) connected(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

// forget drops listeners and focus held by the subtree rooted at n.
func (d *Document) forget(n *html.Node) {
	walk(n, func(c *html.Node) {
		delete(d.listeners, c)
		if c == d.active {
			d.active = nil
			d.selected = false
		}
	})
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
