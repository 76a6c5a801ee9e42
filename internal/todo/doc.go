// Package todo is a to-do list built on micro components.
//
// The app keeps four signals: the list of records, the display filter, the
// id of the record being edited and the text of the add/edit input. The list
// is stored under the "todo" storage key and written back on every change.
//
// Mount expects an element with id "app" in the document:
//
//	root := doc.CreateElement("div")
//	root.SetID("app")
//	_ = doc.Body().AppendChild(root)
//
//	app, err := todo.Mount(ctx, doc, registry)
package todo
