package boundedfifo

import "golang.org/x/exp/constraints"

// Option configures a FIFO at construction time.
type Option[T any, E constraints.Signed] func(*FIFO[T, E])

// WithRelease installs a disposer for items the queue discards itself, on
// eviction or Clear. Items handed out by Pull are never released; their
// ownership moves to the caller. Release errors surface from Push and Clear.
func WithRelease[T any, E constraints.Signed](release func(T) error) Option[T, E] {
	return func(f *FIFO[T, E]) {
		f.release = release
	}
}
