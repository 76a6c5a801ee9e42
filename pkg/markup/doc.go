// Package markup builds the markup strings component templates return.
//
// HTML concatenates literal segments and interpolated values without
// escaping, the way a template literal would:
//
//	markup.HTML(`<span>Total `, len(todos), `</span>`)
//
// Attrs renders an optional-attribute map into an attribute fragment and Map
// joins the markup of a list. Escaping is always explicit: use Escape,
// EscapeAttr or a Sanitizer on text that did not come from the program.
package markup
