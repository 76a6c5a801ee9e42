package reactive

import (
	"errors"
	"fmt"
)

// ErrUpdateCycle is matched by the *CycleError a write panics with when its
// cascade nests deeper than MaxUpdateDepth.
var ErrUpdateCycle = errors.New("reactive: update cycle detected")

// CycleError describes a runaway write cascade.
type CycleError struct {
	// SignalID is the signal whose write exceeded the limit.
	SignalID uint64

	// Depth is the nesting depth that was reached.
	Depth int
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("reactive: update cycle detected: signal %d re-entered at depth %d", e.SignalID, e.Depth)
}

// Is makes errors.Is(err, ErrUpdateCycle) report true.
func (e *CycleError) Is(target error) bool {
	return target == ErrUpdateCycle
}
