package reactive

import (
	"strings"
	"testing"
)

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalIDsAreUnique(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	if a.ID() == b.ID() {
		t.Fatalf("signals share id %d", a.ID())
	}
	if b.ID() <= a.ID() {
		t.Errorf("ids should increase: %d then %d", a.ID(), b.ID())
	}
}

func TestSignalPrevious(t *testing.T) {
	s := NewSignal("v0")

	if got := s.Previous(); got != "v0" {
		t.Errorf("before any write Previous() = %q, want original", got)
	}

	s.Set("v1")
	s.Set("v2")
	if got := s.Previous(); got != "v1" {
		t.Errorf("Previous() = %q, want v1", got)
	}

	s.Update(func(prev string) string { return prev + "!" })
	if got := s.Previous(); got != "v2" {
		t.Errorf("Previous() after Update = %q, want v2", got)
	}
}

func TestSignalReset(t *testing.T) {
	s := NewSignal(3)
	s.Set(4)
	s.Update(func(n int) int { return n + 10 })

	s.Reset()
	if s.Get() != 3 {
		t.Errorf("after Reset Get() = %d, want 3", s.Get())
	}
	if s.Previous() != 14 {
		t.Errorf("Reset is a write: Previous() = %d, want 14", s.Previous())
	}
	if s.Original() != 3 {
		t.Errorf("Original() = %d, want 3", s.Original())
	}
}

func TestSignalResetNotifies(t *testing.T) {
	s := NewSignal(1)
	c := Track(func() { _ = s.Get() })

	s.Reset()
	if c.Runs() != 2 {
		t.Errorf("Reset should notify, runs = %d", c.Runs())
	}
}

func TestSignalEveryWriteNotifies(t *testing.T) {
	s := NewSignal(7)
	c := Track(func() { _ = s.Get() })

	s.Set(7)
	s.Set(7)
	if c.Runs() != 3 {
		t.Errorf("writes of an equal value must still notify, runs = %d", c.Runs())
	}
}

func TestSignalOfFunctionCanBeReplaced(t *testing.T) {
	upper := func(s string) string { return strings.ToUpper(s) }
	lower := func(s string) string { return strings.ToLower(s) }

	fn := NewSignal(upper)
	fn.Set(lower)

	if got := fn.Get()("MiXeD"); got != "mixed" {
		t.Errorf("replaced function returned %q", got)
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	s := NewSignal(42)
	c := Track(func() {
		if s.Peek() != 42 {
			t.Error("Peek returned wrong value")
		}
	})

	s.Set(1)
	if c.Runs() != 1 {
		t.Errorf("Peek should not subscribe, runs = %d", c.Runs())
	}
	if len(s.Subscribers()) != 0 {
		t.Errorf("expected no subscribers, got %d", len(s.Subscribers()))
	}
}

func TestUseTuple(t *testing.T) {
	get, set, reset, previous := Use("")

	set(Replace("Buy milk"))
	set(Derive(strings.ToUpper))
	if get() != "BUY MILK" {
		t.Errorf("get() = %q", get())
	}
	if previous() != "Buy milk" {
		t.Errorf("previous() = %q", previous())
	}

	reset()
	if get() != "" {
		t.Errorf("after reset get() = %q", get())
	}
}

func TestDeriveNil(t *testing.T) {
	s := NewSignal(9)
	s.Apply(Derive[int](nil))
	if s.Get() != 9 {
		t.Errorf("nil Derive should keep the value, got %d", s.Get())
	}
	if !Derive[int](nil).IsDerive() || Replace(1).IsDerive() {
		t.Error("IsDerive mismatch")
	}
}
