package micro

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/micro/pkg/component"
	"github.com/vango-dev/micro/pkg/storage"
)

func TestCounter(t *testing.T) {
	doc := NewDocument()
	app := doc.CreateElement("div")
	app.SetID(component.DefaultRenderTarget)
	if err := doc.Body().AppendChild(app); err != nil {
		t.Fatal(err)
	}

	count := NewSignal(0)
	c := Tracked(doc, func() string {
		return HTML(`<button id="inc">`, count.Get(), `</button>`)
	}).AddEvent(func(*Element) Binding {
		return Binding{Type: "click", TargetID: "inc", Handler: func(*Event) {
			count.Apply(Derive(func(n int) int { return n + 1 }))
		}}
	})
	if _, err := c.Render(); err != nil {
		t.Fatal(err)
	}

	if err := doc.Dispatch(doc.GetElementByID("inc"), NewEvent("click")); err != nil {
		t.Fatal(err)
	}
	if got := doc.GetElementByID("inc").TextContent(); got != "1" {
		t.Errorf("count = %q, want 1", got)
	}
}

func TestUseStorage(t *testing.T) {
	ctx := context.Background()
	reg := storage.NewRegistry(storage.NewMemoryBackend())

	get, set, reset, err := UseStorage[[]string](ctx, reg, "names")
	if err != nil {
		t.Fatal(err)
	}
	if err := set([]string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	v, ok, err := get()
	if err != nil || !ok || strings.Join(v, ",") != "a,b" {
		t.Errorf("get() = %v, %v, %v", v, ok, err)
	}
	if err := reset(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := get(); ok {
		t.Error("value survived reset")
	}
}
