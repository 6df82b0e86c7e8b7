// Package queue holds the unsynchronized buffer backing the public FIFO.
// All locking lives in the owning queue; a Deque itself is not safe for
// concurrent use.
package queue

type node[T any] struct {
	value T
	prev  *node[T]
	next  *node[T]
}

// Deque is a doubly-linked FIFO buffer.
type Deque[T any] struct {
	head *node[T]
	tail *node[T]
	len  int
}

// New creates an empty Deque.
func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

// PushBack appends value at the tail.
func (d *Deque[T]) PushBack(value T) {
	n := &node[T]{value: value}
	if d.len == 0 {
		d.head = n
		d.tail = n
	} else {
		n.prev = d.tail
		d.tail.next = n
		d.tail = n
	}
	d.len++
}

// PopFront removes and returns the head value.
func (d *Deque[T]) PopFront() (zero T, _ bool) {
	if d.len == 0 {
		return zero, false
	}

	current := d.head
	next := current.next
	if next != nil {
		next.prev = nil
	} else {
		d.tail = nil
	}
	d.head = next
	d.len--

	current.next = nil
	current.prev = nil

	return current.value, true
}

// Len returns the number of buffered values.
func (d *Deque[T]) Len() int {
	return d.len
}
