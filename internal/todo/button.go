package todo

import "github.com/vango-dev/micro/pkg/markup"

// ButtonProps configures Button.
type ButtonProps struct {
	Text       string
	Emoji      string
	Class      string
	Attributes markup.Attributes
}

// Button renders a plain button. Text and Emoji are inserted verbatim.
func Button(p ButtonProps) string {
	return markup.HTML(
		`<button type="button" class="`, markup.Class("btn", p.Class), `"`, markup.Attrs(p.Attributes), `>`,
		`<span>`, p.Text, `</span>`,
		markup.If(p.Emoji != "", `<span>`+p.Emoji+`</span>`),
		`</button>`,
	)
}
