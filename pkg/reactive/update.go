package reactive

// Update is the argument of a signal write: either a replacement value or a
// function deriving the next value from the previous one.
type Update[T any] struct {
	value  T
	derive func(T) T
}

// Replace returns an Update that stores v as is.
func Replace[T any](v T) Update[T] {
	return Update[T]{value: v}
}

// Derive returns an Update that computes the next value from the previous one.
// A nil fn leaves the value unchanged.
func Derive[T any](fn func(prev T) T) Update[T] {
	if fn == nil {
		fn = func(prev T) T { return prev }
	}
	return Update[T]{derive: fn}
}

// IsDerive reports whether the update derives from the previous value.
func (u Update[T]) IsDerive() bool {
	return u.derive != nil
}

func (u Update[T]) apply(prev T) T {
	if u.derive != nil {
		return u.derive(prev)
	}
	return u.value
}

// Getter reads a signal.
type Getter[T any] func() T

// Setter writes a signal.
type Setter[T any] func(Update[T])

// Resetter restores a signal's original value.
type Resetter func()

// Use creates a signal and returns its four accessors: get, set, reset and
// get-previous.
//
// Example:
//
//	input, setInput, resetInput, _ := reactive.Use("")
//	setInput(reactive.Replace("Buy milk"))
//	setInput(reactive.Derive(strings.ToUpper))
//	resetInput()
//	input() // ""
func Use[T any](initial T) (Getter[T], Setter[T], Resetter, Getter[T]) {
	s := NewSignal(initial)
	return s.Get, s.Apply, s.Reset, s.Previous
}
