// Package engine implements the real-time simulation core: frame timing,
// scheduling, collision detection, combo tracking, speed control and score
// aggregation. Components consume plain data and emit events through
// per-instance subscriber lists; they neither render nor persist.
//
// Engine instances are not goroutine-safe. Each component is owned by the
// scheduler-driven tick and all work inside a tick runs synchronously.
package engine

import "time"

// TimeSource supplies event timestamps. Components never read the wall
// clock directly; the source is injected so tests can control time. A nil
// source falls back to time.Now.
type TimeSource func() time.Time

func orSystemTime(now TimeSource) TimeSource {
	if now == nil {
		return time.Now
	}
	return now
}

// subscribers is an ordered per-instance callback list. Subscribing returns
// a disposer that removes the callback. A panicking callback is recovered so
// delivery continues to the remaining subscribers and the tick survives.
type subscribers[T any] struct {
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// add registers fn and returns its disposer. Disposing twice is harmless.
func (s *subscribers[T]) add(fn func(T)) func() {
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers v to every subscriber in registration order.
func (s *subscribers[T]) notify(v T) {
	// Iterate over a snapshot so callbacks may unsubscribe themselves.
	snapshot := make([]subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	for _, sub := range snapshot {
		deliver(sub.fn, v)
	}
}

func deliver[T any](fn func(T), v T) {
	defer func() {
		// A failing subscriber must not take down the tick or starve the
		// subscribers behind it.
		_ = recover()
	}()
	fn(v)
}

func (s *subscribers[T]) len() int {
	return len(s.subs)
}
