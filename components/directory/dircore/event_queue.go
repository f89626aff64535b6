package dircore

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// EventQueue passes events from transport goroutines to the owning goroutine.
//
// Remarks:
//   - Push never blocks, the queue is unbounded.
//   - Poll and Drain should be called by a single goroutine.
type EventQueue[T any] struct {
	clock  clock.Clock
	wakeCh chan struct{}

	mu     sync.Mutex
	events []T
}

// NewEventQueue is an initialization of EventQueue.
func NewEventQueue[T any](clk clock.Clock) *EventQueue[T] {
	if clk == nil {
		clk = clock.New()
	}

	return &EventQueue[T]{
		clock:  clk,
		wakeCh: make(chan struct{}, 1),
	}
}

// Push appends the event and wakes up the waiting Poll.
//
// Remarks:
//   - Can be used from multiple goroutines.
func (q *EventQueue[T]) Push(ev T) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.wakeCh <- struct{}{}:
	default:
	}
}

// Drain returns all queued events without waiting.
func (q *EventQueue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil

	return events
}

// Len returns the number of queued events.
func (q *EventQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}

// Poll returns the queued events, waiting up to timeout for the first one.
func (q *EventQueue[T]) Poll(timeout time.Duration) []T {
	if events := q.Drain(); len(events) > 0 || timeout <= 0 {
		return events
	}

	timer := q.clock.Timer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-q.wakeCh:
			if events := q.Drain(); len(events) > 0 {
				return events
			}

		case <-timer.C:
			return q.Drain()
		}
	}
}
