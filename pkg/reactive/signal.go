package reactive

import "sync"

// signalBase provides type-erased subscriber management.
type signalBase struct {
	id uint64

	// subs are the subscribed computations in subscription order.
	subs []*Computation

	// subIDs indexes subs by computation id.
	subIDs map[uint64]struct{}

	// subMu protects subs and subIDs.
	subMu sync.RWMutex
}

// subscribe adds c to the subscribers. A computation is subscribed at most
// once; later calls keep its original position.
func (s *signalBase) subscribe(c *Computation) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, ok := s.subIDs[c.id]; ok {
		return
	}
	if s.subIDs == nil {
		s.subIDs = make(map[uint64]struct{})
	}
	s.subIDs[c.id] = struct{}{}
	s.subs = append(s.subs, c)
}

// unsubscribe removes c from the subscribers, keeping the order of the rest.
func (s *signalBase) unsubscribe(c *Computation) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, ok := s.subIDs[c.id]; !ok {
		return
	}
	delete(s.subIDs, c.id)
	for i, existing := range s.subs {
		if existing == c {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// snapshot copies the subscribers so they can be run without holding the lock.
func (s *signalBase) snapshot() []*Computation {
	s.subMu.RLock()
	defer s.subMu.RUnlock()

	subs := make([]*Computation, len(s.subs))
	copy(subs, s.subs)
	return subs
}

// track subscribes the running computation, if any.
func (s *signalBase) track() {
	c := current().top()
	if c == nil || c.Disposed() {
		return
	}
	c.addSource(s)
	s.subscribe(c)
}

// notify re-runs every subscriber in order on the calling goroutine.
// Nested writes made by a subscriber cascade before the next subscriber runs.
func (s *signalBase) notify() {
	subs := s.snapshot()
	if len(subs) == 0 {
		return
	}

	sch := current()
	leave := sch.enter(s.id)
	defer leave()

	for _, c := range subs {
		if c.Disposed() {
			continue
		}
		sch.run(c)
	}
}

// Signal is a reactive value container.
// Reading a Signal with Get while a computation is tracked subscribes that
// computation; every write re-runs the subscribers.
type Signal[T any] struct {
	base signalBase

	// mu protects the values below.
	mu sync.RWMutex

	// original is the value the signal was created with.
	original T

	// current is the latest value.
	current T

	// previous is the value current held before the last write.
	previous T

	// written is set by the first write.
	written bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:     signalBase{id: nextID()},
		original: initial,
		current:  initial,
		previous: initial,
	}
}

// Get returns the current value and subscribes the running computation.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.current
	s.mu.RUnlock()

	// Track after releasing the value lock.
	s.base.track()

	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Previous returns the value held before the most recent write, or the
// original value if the signal was never written. It does not subscribe.
func (s *Signal[T]) Previous() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return s.original
	}
	return s.previous
}

// Original returns the value the signal was created with.
func (s *Signal[T]) Original() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.original
}

// Set replaces the value and re-runs the subscribers.
func (s *Signal[T]) Set(value T) {
	s.Apply(Replace(value))
}

// Update derives the next value from the current one and re-runs the
// subscribers.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Apply(Derive(fn))
}

// Reset writes the original value back. It notifies like any other write.
func (s *Signal[T]) Reset() {
	s.Apply(Replace(s.Original()))
}

// Apply performs a write. Every write notifies, even when the value is
// unchanged. Subscribers run synchronously before Apply returns.
func (s *Signal[T]) Apply(u Update[T]) {
	s.mu.RLock()
	prev := s.current
	s.mu.RUnlock()

	// Derive runs without the lock so it may read other signals or this one.
	next := u.apply(prev)

	s.mu.Lock()
	s.previous = s.current
	s.current = next
	s.written = true
	s.mu.Unlock()

	s.base.notify()
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Subscribers returns the subscribed computations in subscription order.
func (s *Signal[T]) Subscribers() []*Computation {
	return s.base.snapshot()
}
