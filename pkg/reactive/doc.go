// Package reactive provides the signal and dependency-tracking core of micro.
//
// A Signal holds a value together with the value it had before its last
// write and the value it was created with. Reading a signal while a tracked
// computation runs subscribes that computation; writing the signal re-runs
// every subscriber synchronously, depth first, before Set returns.
//
//	count := reactive.NewSignal(0)
//	reactive.Track(func() {
//	    fmt.Println("count is", count.Get())
//	})                      // prints "count is 0"
//	count.Set(1)            // prints "count is 1"
//	count.Update(func(n int) int { return n + 1 })
//	count.Previous()        // 1
//	count.Reset()           // back to 0, prints again
//
// # Tracking
//
// Track pushes a new Computation onto the current goroutine's context stack,
// runs the function, and pops it again on every exit path. Re-runs triggered
// by writes push the same computation, so reads made during a re-run extend
// its dependency set. A computation is subscribed at most once per signal.
//
// # Updates
//
// A write is either Replace(value) or Derive(func(prev) next). The two are
// distinct types, so a Signal of a function type can still be replaced.
//
// # Cycles
//
// Writes are not batched or coalesced. A computation that writes a signal it
// depends on re-enters itself; once the nesting passes MaxUpdateDepth the
// write panics with a *CycleError (errors.Is(err, ErrUpdateCycle)).
//
// # Goroutines
//
// Each goroutine has its own context stack. A UI event loop owns one
// goroutine; reads and writes for its documents must happen there. Release
// drops the current goroutine's stack when the loop exits.
package reactive
