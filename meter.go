package boundedfifo

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Weighted is the capability consumed from item types stored in a weighted
// queue. Weight must be non-negative and stable while the item is resident;
// the queue reads it once on insert and caches the result.
type Weighted interface {
	Weight() time.Duration
}

// capacityMeter decides how fullness is measured. weigh returns the extent
// charged for one item; full compares the current occupancy against the
// configured limit.
type capacityMeter[T any, E constraints.Signed] interface {
	weigh(value T) E
	full(count int, extent, limit E) bool
}

// countMeter measures fullness in items.
type countMeter[T any] struct{}

func (countMeter[T]) weigh(T) int { return 1 }

func (countMeter[T]) full(count int, _, limit int) bool { return count >= limit }

// durationMeter measures fullness as the cumulative weight of the resident
// items. A negative reported weight counts as zero.
type durationMeter[T Weighted] struct{}

func (durationMeter[T]) weigh(value T) time.Duration {
	if w := value.Weight(); w > 0 {
		return w
	}
	return 0
}

func (durationMeter[T]) full(_ int, extent, limit time.Duration) bool { return extent >= limit }
