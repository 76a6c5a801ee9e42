package markup

import "github.com/microcosm-cc/bluemonday"

// Sanitizer cleans untrusted text before it is interpolated into markup.
type Sanitizer interface {
	Sanitize(s string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(string) string

// Sanitize implements Sanitizer.
func (f SanitizerFunc) Sanitize(s string) string { return f(s) }

// StrictSanitizer strips every tag and escapes the remaining text.
func StrictSanitizer() Sanitizer {
	return bluemonday.StrictPolicy()
}

// UGCSanitizer keeps the formatting markup of user generated content and
// drops scripts, handlers and unsafe URLs.
func UGCSanitizer() Sanitizer {
	return bluemonday.UGCPolicy()
}

// Verbatim returns text unchanged.
func Verbatim() Sanitizer {
	return SanitizerFunc(func(s string) string { return s })
}
