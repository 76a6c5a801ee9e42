package markup

import (
	"slices"
	"strings"
)

// Attributes maps attribute names to optional values. A nil value omits the
// attribute.
type Attributes map[string]*string

// Str returns a pointer to s for use in Attributes.
func Str(s string) *string {
	return &s
}

// Attrs renders the attributes in name order as ` name="value"` pairs.
// Values are inserted verbatim.
func Attrs(attrs Attributes) string {
	names := make([]string, 0, len(attrs))
	for name, v := range attrs {
		if v != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(*attrs[name])
		b.WriteByte('"')
	}
	return b.String()
}

// Class joins the non-empty class names with single spaces.
func Class(names ...string) string {
	return strings.Join(slices.DeleteFunc(slices.Clone(names), func(s string) bool {
		return strings.TrimSpace(s) == ""
	}), " ")
}
