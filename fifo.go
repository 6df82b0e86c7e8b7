package boundedfifo

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/timzifer/bounded_fifo/internal/queue"
	"github.com/timzifer/bounded_fifo/internal/telemetry"
)

// entry pairs a stored value with the extent cost charged for it on insert.
// The cost is cached so removal never re-queries the item.
type entry[T any, E constraints.Signed] struct {
	value T
	cost  E
}

// FIFO is a bounded, thread-safe first-in-first-out queue. The extent type E
// is the unit fullness is measured in: item count for queues built with New,
// cumulative time.Duration for queues built with NewWeighted.
type FIFO[T any, E constraints.Signed] struct {
	mu      sync.Mutex
	buf     *queue.Deque[entry[T, E]]
	meter   capacityMeter[T, E]
	extent  E
	limit   E
	policy  OverflowPolicy
	release func(T) error

	// nonEmpty carries at most one pending wake. Push performs one
	// non-blocking send per insertion; a consumer that takes an item
	// re-signals while the buffer is non-empty, so a coalesced signal is
	// handed on to the next waiter instead of being lost.
	nonEmpty chan struct{}
}

// New creates a queue that holds at most capacity items. The policy decides
// what Push does once that bound is reached. New panics if capacity is not
// positive.
func New[T any](capacity int, policy OverflowPolicy, opts ...Option[T, int]) *FIFO[T, int] {
	return newFIFO[T, int](capacity, policy, countMeter[T]{}, opts)
}

// NewWeighted creates a queue whose fullness is the cumulative Weight of the
// resident items instead of their count. A single item whose own weight
// exceeds capacity is still accepted into an empty queue; the bound applies
// again on the next push. NewWeighted panics if capacity is not positive.
func NewWeighted[T Weighted](capacity time.Duration, policy OverflowPolicy, opts ...Option[T, time.Duration]) *FIFO[T, time.Duration] {
	return newFIFO[T, time.Duration](capacity, policy, durationMeter[T]{}, opts)
}

func newFIFO[T any, E constraints.Signed](limit E, policy OverflowPolicy, meter capacityMeter[T, E], opts []Option[T, E]) *FIFO[T, E] {
	if limit <= 0 {
		panic("boundedfifo: capacity must be positive")
	}
	f := &FIFO[T, E]{
		buf:      queue.New[entry[T, E]](),
		meter:    meter,
		limit:    limit,
		policy:   policy,
		nonEmpty: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Push appends value at the tail. It never blocks.
//
// Against a full queue the configured policy decides the outcome:
// OverflowReject returns PushRejected and leaves the queue untouched, the
// caller keeps the value; OverflowEvictOldest discards the head item,
// inserts the new one and returns PushEvicted. A non-nil error can only
// originate from the release hook of an evicted item; the insert completes
// regardless.
func (f *FIFO[T, E]) Push(value T) (PushOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.meter.full(f.buf.Len(), f.extent, f.limit) {
		f.insert(value)
		telemetry.DefaultQueueMetrics().RecordPush(false, false)
		return PushAccepted, nil
	}

	if f.policy == OverflowReject {
		telemetry.DefaultQueueMetrics().RecordPush(true, false)
		return PushRejected, nil
	}

	var err error
	if oldest, ok := f.buf.PopFront(); ok {
		f.extent -= oldest.cost
		if f.release != nil {
			err = f.release(oldest.value)
		}
	}
	f.insert(value)
	telemetry.DefaultQueueMetrics().RecordPush(false, true)
	return PushEvicted, err
}

// insert appends value and wakes one waiting consumer. Callers hold f.mu.
func (f *FIFO[T, E]) insert(value T) {
	cost := f.meter.weigh(value)
	f.buf.PushBack(entry[T, E]{value: value, cost: cost})
	f.extent += cost
	f.signal()
}

func (f *FIFO[T, E]) signal() {
	select {
	case f.nonEmpty <- struct{}{}:
	default:
	}
}

// take removes and returns the head entry. Callers hold f.mu and have
// checked that the buffer is non-empty.
func (f *FIFO[T, E]) take() T {
	e, _ := f.buf.PopFront()
	f.extent -= e.cost
	if f.buf.Len() > 0 {
		// hand the wake on to the next waiter
		f.signal()
	}
	return e.value
}

// Pull removes and returns the oldest item, blocking until one is
// available. Ownership of the returned item moves to the caller. A blocked
// Pull cannot be cancelled; consumers that need a bound use PullTimeout.
func (f *FIFO[T, E]) Pull() T {
	finish := telemetry.TracePull()
	f.mu.Lock()
	for f.buf.Len() == 0 {
		f.mu.Unlock()
		<-f.nonEmpty
		f.mu.Lock()
	}
	value := f.take()
	f.mu.Unlock()
	finish(false)
	return value
}

// PullTimeout is Pull bounded by a timeout. The boolean is false when the
// timeout elapsed with the queue still empty; nothing is consumed in that
// case. The emptiness check after the timer fires is authoritative, so a
// producer signal racing the timeout is kept for the next caller.
func (f *FIFO[T, E]) PullTimeout(timeout time.Duration) (T, bool) {
	finish := telemetry.TracePull()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	f.mu.Lock()
	for f.buf.Len() == 0 {
		f.mu.Unlock()
		select {
		case <-f.nonEmpty:
			f.mu.Lock()
		case <-timer.C:
			f.mu.Lock()
			if f.buf.Len() == 0 {
				f.mu.Unlock()
				finish(true)
				var zero T
				return zero, false
			}
			// a push beat the timer; fall through and consume it
		}
	}
	value := f.take()
	f.mu.Unlock()
	finish(false)
	return value, true
}

// Len returns the current number of resident items.
func (f *FIFO[T, E]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.Len()
}

// Extent reports how full the queue currently is: the item count for
// count-based queues, the cumulative weight for weighted ones.
func (f *FIFO[T, E]) Extent() E {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.extent
}

// Capacity returns the configured bound.
func (f *FIFO[T, E]) Capacity() E {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limit
}

// SetCapacity changes the bound. Shrinking below the current extent does not
// evict anything; the next Push observes the queue as full and applies the
// overflow policy. SetCapacity panics if limit is not positive.
func (f *FIFO[T, E]) SetCapacity(limit E) {
	if limit <= 0 {
		panic("boundedfifo: capacity must be positive")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
}

// IsFull reports whether a Push at this instant would hit the capacity
// bound.
func (f *FIFO[T, E]) IsFull() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meter.full(f.buf.Len(), f.extent, f.limit)
}

// Clear discards every resident item and resets the extent to zero. Each
// discarded item is handed to the release hook; all release errors are
// collected and joined rather than cutting the clear short.
func (f *FIFO[T, E]) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for {
		e, ok := f.buf.PopFront()
		if !ok {
			break
		}
		if f.release != nil {
			if err := f.release(e.value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	var zero E
	f.extent = zero
	return errors.Join(errs...)
}
