package markup

import (
	"errors"
	"strings"
	"testing"
)

type label string

func (l label) String() string { return "label:" + string(l) }

func TestHTML(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		want  string
	}{
		{"empty", nil, ""},
		{"literal", []any{"<p>hi</p>"}, "<p>hi</p>"},
		{"nil", []any{"<p>", nil, "</p>"}, "<p></p>"},
		{"zero", []any{"Total ", 0}, "Total 0"},
		{"int64", []any{int64(1700000000000)}, "1700000000000"},
		{"float", []any{1.5}, "1.5"},
		{"bool", []any{true, " ", false}, "true false"},
		{"stringer", []any{label("x")}, "label:x"},
		{"error", []any{errors.New("bad")}, "bad"},
		{"other", []any{uint8(7)}, "7"},
		{"no escaping", []any{`<b class="x">`, "&"}, `<b class="x">&`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTML(tt.parts...); got != tt.want {
				t.Errorf("HTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(n int) string { return HTML("<li>", n, "</li>") })
	if want := "<li>1</li><li>2</li><li>3</li>"; got != want {
		t.Errorf("Map() = %q, want %q", got, want)
	}
	if got := Map([]string(nil), func(s string) string { return s }); got != "" {
		t.Errorf("Map(nil) = %q", got)
	}
}

func TestIf(t *testing.T) {
	if If(true, "<span>") != "<span>" || If(false, "<span>") != "" {
		t.Error("If() did not select by condition")
	}
}

func TestAttrs(t *testing.T) {
	got := Attrs(Attributes{
		"id":        Str("remove-btn"),
		"data-id":   Str("42"),
		"disabled":  nil,
		"aria-busy": Str(""),
	})
	if want := ` aria-busy="" data-id="42" id="remove-btn"`; got != want {
		t.Errorf("Attrs() = %q, want %q", got, want)
	}
	if got := Attrs(nil); got != "" {
		t.Errorf("Attrs(nil) = %q", got)
	}
}

func TestClass(t *testing.T) {
	if got := Class("btn", "", "  ", "focused"); got != "btn focused" {
		t.Errorf("Class() = %q", got)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in, html, attr string
	}{
		{"plain", "plain", "plain"},
		{"a < b & c > d", "a &lt; b &amp; c &gt; d", "a &lt; b &amp; c > d"},
		{`say "hi"`, "say &#34;hi&#34;", "say &#34;hi&#34;"},
		{"it's", "it&#39;s", "it's"},
		{"a\nb\tc", "a\nb\tc", "a&#10;b&#9;c"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.html {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.html)
		}
		if got := EscapeAttr(tt.in); got != tt.attr {
			t.Errorf("EscapeAttr(%q) = %q, want %q", tt.in, got, tt.attr)
		}
	}
}

func TestSanitizers(t *testing.T) {
	strict := StrictSanitizer()
	if got := strict.Sanitize("<b>bold</b> text"); got != "bold text" {
		t.Errorf("strict Sanitize() = %q", got)
	}
	if got := strict.Sanitize(`<img src=x onerror="alert(1)">`); strings.Contains(got, "<img") {
		t.Errorf("strict Sanitize() kept the tag: %q", got)
	}

	ugc := UGCSanitizer()
	got := ugc.Sanitize(`<b>bold</b><script>alert(1)</script>`)
	if !strings.Contains(got, "<b>bold</b>") || strings.Contains(got, "script") {
		t.Errorf("ugc Sanitize() = %q", got)
	}

	if got := Verbatim().Sanitize("<b>x</b>"); got != "<b>x</b>" {
		t.Errorf("Verbatim() = %q", got)
	}
}
