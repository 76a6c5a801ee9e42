package reactive

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Computation is a tracked procedure together with the signals it depends on.
// It is created by Track and re-run by writes to any of its dependencies.
type Computation struct {
	id uint64

	// fn is the tracked procedure.
	fn func()

	// deps holds the ids of signals read during any run. It only grows.
	deps map[uint64]struct{}

	// sources are the signals this computation is subscribed to.
	sources []*signalBase

	mu sync.Mutex

	runs atomic.Int64

	disposed atomic.Bool
}

func newComputation(fn func()) *Computation {
	return &Computation{
		id:   nextID(),
		fn:   fn,
		deps: make(map[uint64]struct{}),
	}
}

// ID returns the unique identifier for this computation.
func (c *Computation) ID() uint64 {
	return c.id
}

// Deps returns the ids of the signals this computation depends on, sorted.
func (c *Computation) Deps() []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]uint64, 0, len(c.deps))
	for id := range c.deps {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DependsOn reports whether the computation has read signal id.
func (c *Computation) DependsOn(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.deps[id]
	return ok
}

// Runs returns how many times the computation has executed.
func (c *Computation) Runs() int {
	return int(c.runs.Load())
}

// Disposed reports whether Dispose has been called.
func (c *Computation) Disposed() bool {
	return c.disposed.Load()
}

// Dispose unsubscribes the computation from all of its signals. It is never
// run again.
func (c *Computation) Dispose() {
	if c.disposed.Swap(true) {
		return
	}

	c.mu.Lock()
	sources := c.sources
	c.sources = nil
	c.mu.Unlock()

	for _, s := range sources {
		s.unsubscribe(c)
	}
}

// addSource records a read of s. It returns false when s was already known.
func (c *Computation) addSource(s *signalBase) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.deps[s.id]; ok {
		return false
	}
	c.deps[s.id] = struct{}{}
	c.sources = append(c.sources, s)
	return true
}
