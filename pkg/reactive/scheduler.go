package reactive

import (
	"sync"

	"github.com/petermattis/goid"
)

// scheduler holds the reactive state for one goroutine: the stack of running
// computations and the nesting depth of write cascades.
type scheduler struct {
	// stack holds running computations, innermost last. A nil entry marks
	// an untracked region.
	stack []*Computation

	// depth counts write cascades currently in progress.
	depth int
}

// schedulers stores per-goroutine schedulers keyed by goroutine id.
var schedulers sync.Map

// current returns the scheduler of the calling goroutine, creating it on
// first use.
func current() *scheduler {
	gid := goid.Get()

	if s, ok := schedulers.Load(gid); ok {
		return s.(*scheduler)
	}

	s := &scheduler{}
	schedulers.Store(gid, s)
	return s
}

// Release drops the calling goroutine's scheduler. Event loops call it when
// they exit; a later reactive call on the same goroutine starts afresh.
func Release() {
	schedulers.Delete(goid.Get())
}

// top returns the innermost running computation, or nil when nothing is
// being tracked.
func (s *scheduler) top() *Computation {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// run executes c with c on top of the stack. The stack is restored to its
// previous height on every exit path, including panics.
func (s *scheduler) run(c *Computation) {
	n := len(s.stack)
	s.stack = append(s.stack, c)
	defer func() {
		s.stack[n] = nil
		s.stack = s.stack[:n]
	}()

	c.runs.Add(1)
	c.fn()
}

// untracked executes fn with tracking suspended.
func (s *scheduler) untracked(fn func()) {
	n := len(s.stack)
	s.stack = append(s.stack, nil)
	defer func() {
		s.stack = s.stack[:n]
	}()

	fn()
}

// enter opens a write cascade for signal id and returns the function that
// closes it. It panics with a *CycleError once the limit is passed.
func (s *scheduler) enter(id uint64) func() {
	s.depth++
	if s.depth > MaxUpdateDepth() {
		depth := s.depth
		s.depth--
		panic(&CycleError{SignalID: id, Depth: depth})
	}
	return func() { s.depth-- }
}

// Track runs fn once as a new tracked computation and returns it. Every
// signal read while fn runs subscribes the computation; later writes to
// those signals run fn again.
//
// Example:
//
//	c := Track(func() {
//	    label.SetInnerHTML(fmt.Sprint(count.Get()))
//	})
//	count.Set(2) // fn runs again before Set returns
//	c.Deps()     // [count.ID()]
func Track(fn func()) *Computation {
	c := newComputation(fn)
	current().run(c)
	return c
}

// Untrack runs fn without recording any dependency, even inside a tracked
// computation.
func Untrack(fn func()) {
	current().untracked(fn)
}

// Current returns the computation currently being tracked on this
// goroutine, or nil.
func Current() *Computation {
	return current().top()
}

// Depth returns the height of this goroutine's context stack. It is zero
// whenever no computation is running.
func Depth() int {
	return len(current().stack)
}
