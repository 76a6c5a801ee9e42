package dom

import (
	"errors"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// ErrHierarchy is returned when an insertion would make a node its own
// ancestor or mix nodes of two documents.
var ErrHierarchy = errors.New("dom: hierarchy request")

// Element is a handle to an element node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Is reports whether e and other refer to the same node.
func (e *Element) Is(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.node == other.node
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// ID returns the id attribute.
func (e *Element) ID() string { return attr(e.node, "id") }

// SetID sets the id attribute.
func (e *Element) SetID(id string) { e.SetAttribute("id", id) }

// GetAttribute returns the named attribute and whether it is present.
func (e *Element) GetAttribute(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Attr returns the named attribute, or "" when it is absent.
func (e *Element) Attr(key string) string {
	v, _ := e.GetAttribute(key)
	return v
}

// HasAttribute reports whether the named attribute is present.
func (e *Element) HasAttribute(key string) bool {
	_, ok := e.GetAttribute(key)
	return ok
}

// SetAttribute sets or replaces the named attribute.
func (e *Element) SetAttribute(key, val string) {
	key = strings.ToLower(key)
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttribute deletes the named attribute.
func (e *Element) RemoveAttribute(key string) {
	e.node.Attr = slices.DeleteFunc(e.node.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// Dataset returns the data-* attributes keyed by their camel-cased names,
// so data-todo-id is reported as "todoId".
func (e *Element) Dataset() map[string]string {
	set := make(map[string]string)
	for _, a := range e.node.Attr {
		name, ok := strings.CutPrefix(a.Key, "data-")
		if !ok || a.Namespace != "" || name == "" {
			continue
		}
		set[camel(name)] = a.Val
	}
	return set
}

func camel(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		if r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}

// Style returns one declaration of the inline style attribute.
func (e *Element) Style(prop string) string {
	for _, d := range declarations(e.Attr("style")) {
		if d[0] == prop {
			return d[1]
		}
	}
	return ""
}

// SetStyle sets one declaration of the inline style attribute; an empty
// value removes it.
func (e *Element) SetStyle(prop, value string) {
	decls := declarations(e.Attr("style"))
	i := slices.IndexFunc(decls, func(d [2]string) bool { return d[0] == prop })
	switch {
	case value == "" && i >= 0:
		decls = slices.Delete(decls, i, i+1)
	case value == "":
	case i >= 0:
		decls[i][1] = value
	default:
		decls = append(decls, [2]string{prop, value})
	}

	if len(decls) == 0 {
		e.RemoveAttribute("style")
		return
	}
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d[0] + ": " + d[1]
	}
	e.SetAttribute("style", strings.Join(parts, "; "))
}

func declarations(style string) [][2]string {
	var out [][2]string
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out = append(out, [2]string{strings.TrimSpace(prop), strings.TrimSpace(val)})
	}
	return out
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the element children in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// IsConnected reports whether the element is part of the document tree.
func (e *Element) IsConnected() bool {
	return e.doc.connected(e.node)
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) error {
	if child == nil || child.doc != e.doc {
		return ErrHierarchy
	}
	for n := e.node; n != nil; n = n.Parent {
		if n == child.node {
			return ErrHierarchy
		}
	}
	if p := child.node.Parent; p != nil {
		p.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
	return nil
}

// Remove detaches the element from its parent. Its listeners stay attached.
func (e *Element) Remove() {
	if p := e.node.Parent; p != nil {
		p.RemoveChild(e.node)
	}
}

// SetInnerHTML replaces the element's children with the parsed markup.
// Listeners and focus held by the replaced nodes are dropped.
func (e *Element) SetInnerHTML(markup string) error {
	context := &html.Node{
		Type:      html.ElementNode,
		Data:      e.node.Data,
		DataAtom:  e.node.DataAtom,
		Namespace: e.node.Namespace,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return err
	}

	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		e.doc.forget(c)
		c = next
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&b, c)
	}
	return b.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	_ = html.Render(&b, e.node)
	return b.String()
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

// Query returns the descendants matching pred in document order.
func (e *Element) Query(pred func(*Element) bool) []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) {
			if n.Type != html.ElementNode {
				return
			}
			if el := e.doc.wrap(n); pred(el) {
				out = append(out, el)
			}
		})
	}
	return out
}

// QueryFirst returns the first descendant matching pred, or nil.
func (e *Element) QueryFirst(pred func(*Element) bool) *Element {
	if found := e.Query(pred); len(found) > 0 {
		return found[0]
	}
	return nil
}

// GetElementsByTagName returns the descendants with the given tag.
func (e *Element) GetElementsByTagName(tag string) []*Element {
	tag = strings.ToLower(tag)
	return e.Query(func(el *Element) bool { return el.Tag() == tag })
}

// Value returns the form value of an input-like element.
func (e *Element) Value() string {
	if e.node.Data == "textarea" {
		return e.TextContent()
	}
	return e.Attr("value")
}

// SetValue sets the form value of an input-like element.
func (e *Element) SetValue(v string) {
	if e.node.Data == "textarea" {
		for c := e.node.FirstChild; c != nil; {
			next := c.NextSibling
			e.node.RemoveChild(c)
			c = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		return
	}
	e.SetAttribute("value", v)
}

// Focus makes the element the document's active element.
func (e *Element) Focus() {
	e.doc.active = e.node
	e.doc.selected = false
}

// Select focuses the element and selects its text.
func (e *Element) Select() {
	e.Focus()
	e.doc.selected = true
}

// Blur clears focus if the element holds it.
func (e *Element) Blur() {
	if e.doc.active == e.node {
		e.doc.active = nil
		e.doc.selected = false
	}
}

// AddEventListener implements EventTarget.
func (e *Element) AddEventListener(typ string, fn Handler) ListenerID {
	id := e.doc.newListenerID()
	e.doc.listeners[e.node] = append(e.doc.listeners[e.node], &listener{id: id, typ: typ, fn: fn})
	return id
}

// RemoveEventListener implements EventTarget.
func (e *Element) RemoveEventListener(id ListenerID) bool {
	list, ok := removeListener(e.doc.listeners[e.node], id)
	if len(list) == 0 {
		delete(e.doc.listeners, e.node)
	} else {
		e.doc.listeners[e.node] = list
	}
	return ok
}

// ListenerCount returns the number of listeners attached for typ.
func (e *Element) ListenerCount(typ string) int {
	return len(listenersOf(e.doc.listeners[e.node], typ))
}
