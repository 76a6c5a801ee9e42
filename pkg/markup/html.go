package markup

import (
	"fmt"
	"strconv"
	"strings"
)

// HTML concatenates parts into one markup string. Strings are inserted
// verbatim, nil becomes the empty string and other values are stringified.
func HTML(parts ...any) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(Text(p))
	}
	return b.String()
}

// Text coerces one interpolated value to text.
func Text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// Map renders every item with fn and joins the results.
func Map[T any](items []T, fn func(T) string) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(fn(item))
	}
	return b.String()
}

// If returns markup when cond holds and the empty string otherwise.
func If(cond bool, markup string) string {
	if cond {
		return markup
	}
	return ""
}
