package boundedfifo

// OverflowPolicy defines how Push reacts when the queue is full. The policy
// is fixed for the lifetime of the queue.
type OverflowPolicy int

const (
	// OverflowReject refuses the new item and leaves the queue unchanged.
	// The caller keeps ownership of the item.
	OverflowReject OverflowPolicy = iota
	// OverflowEvictOldest discards the oldest resident item and appends the
	// new one at the tail.
	OverflowEvictOldest
)

// PushOutcome reports what Push did with an item. It carries both the action
// taken and whether the capacity bound was hit, so callers that only care
// about backpressure can use Overflowed while callers tracking item
// residency use Accepted.
type PushOutcome int

const (
	// PushAccepted means the item was inserted below capacity.
	PushAccepted PushOutcome = iota
	// PushRejected means the queue was full under OverflowReject and the
	// item was not inserted.
	PushRejected
	// PushEvicted means the queue was full under OverflowEvictOldest; the
	// oldest item was discarded and the new one inserted.
	PushEvicted
)

// Accepted reports whether the pushed item now resides in the queue.
func (o PushOutcome) Accepted() bool {
	return o != PushRejected
}

// Overflowed reports whether the push hit the capacity bound.
func (o PushOutcome) Overflowed() bool {
	return o != PushAccepted
}

func (o PushOutcome) String() string {
	switch o {
	case PushAccepted:
		return "accepted"
	case PushRejected:
		return "rejected"
	case PushEvicted:
		return "evicted"
	default:
		return "unknown"
	}
}
