package reactive

import (
	"slices"
	"sync"
)

type listener[T any] struct {
	fn func(T)
}

// Signal is an observable value. Writes notify dependents (computed values)
// first and listeners after, once per flush.
type Signal[T any] struct {
	mu sync.RWMutex

	value T
	equal func(a, b T) bool

	subs      []dependent
	listeners []*listener[T]

	// true while a notification for this signal sits in a queue
	pending bool
}

// NewSignal creates a signal that skips writes equal to the current value.
func NewSignal[T comparable](initial T) *Signal[T] {
	return NewSignalFunc(initial, func(a, b T) bool { return a == b })
}

// NewSignalFunc creates a signal using equal to detect no-op writes.
// A nil equal makes every write notify.
func NewSignalFunc[T any](initial T, equal func(a, b T) bool) *Signal[T] {
	return &Signal[T]{
		value: initial,
		equal: equal,
	}
}

// Read returns the current value, tracking the dependency if called from a computation.
func (s *Signal[T]) Read() T {
	if r, ok := lookupRuntime(); ok && r.tracker.ShouldTrack() {
		s.link(r.tracker.CurrentComputation())
	}

	return s.Peek()
}

// Peek returns the current value without tracking.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value
}

func (s *Signal[T]) Write(v T) {
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}

	s.value = v
	subs := slices.Clone(s.subs)

	notify := len(s.listeners) > 0 && !s.pending
	if notify {
		s.pending = true
	}
	s.mu.Unlock()

	r := GetRuntime()

	for _, sub := range subs {
		sub.invalidate(r)
	}

	if notify {
		r.effectQueue.Enqueue(EffectUser, s.notify)
	}

	r.Schedule()
	r.release()
}

// Subscribe registers fn to be called with the latest value after each change.
// The returned function removes the subscription.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	l := &listener[T]{fn: fn}

	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.listeners = slices.DeleteFunc(s.listeners, func(other *listener[T]) bool {
			return other == l
		})
	}
}

func (s *Signal[T]) notify() {
	s.mu.Lock()
	s.pending = false
	v := s.value
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(v)
	}
}

func (s *Signal[T]) link(d dependent) {
	s.mu.Lock()
	if slices.Contains(s.subs, d) {
		s.mu.Unlock()
		return
	}
	s.subs = append(s.subs, d)
	s.mu.Unlock()

	d.addSource(s)
}

func (s *Signal[T]) unlink(d dependent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = slices.DeleteFunc(s.subs, func(other dependent) bool {
		return other == d
	})
}
