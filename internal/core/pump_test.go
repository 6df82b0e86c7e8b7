package core

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type sourceFunc[T any] func(timeout time.Duration) (T, bool)

func (f sourceFunc[T]) PullTimeout(timeout time.Duration) (T, bool) {
	return f(timeout)
}

func chanSource[T any](ch <-chan T) sourceFunc[T] {
	return func(timeout time.Duration) (zero T, _ bool) {
		select {
		case v, ok := <-ch:
			if !ok {
				return zero, false
			}
			return v, true
		case <-time.After(timeout):
			return zero, false
		}
	}
}

func TestPumpDrainsSourceUntilIdle(t *testing.T) {
	const items = 100

	ch := make(chan int, items)
	for i := 0; i < items; i++ {
		ch <- i
	}

	var seen atomic.Uint64
	pump := NewPump[int](4, 20*time.Millisecond)
	err := pump.Run(context.Background(), chanSource(ch), func(int) error {
		seen.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("expected clean drain, got %v", err)
	}
	if seen.Load() != items {
		t.Fatalf("expected %d items through the sink, got %d", items, seen.Load())
	}
	if pump.Drained() != items {
		t.Fatalf("expected %d drained, got %d", items, pump.Drained())
	}
}

func TestPumpSinkErrorCancelsRemainingWorkers(t *testing.T) {
	ch := make(chan int, 16)
	for i := 0; i < 16; i++ {
		ch <- i
	}

	sinkErr := errors.New("sink failed")
	var calls atomic.Int32
	pump := NewPump[int](2, 10*time.Millisecond)
	err := pump.Run(context.Background(), chanSource(ch), func(int) error {
		calls.Add(1)
		return sinkErr
	})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	// each worker can fail at most once before the shared cancel stops it
	if got := calls.Load(); got > 2 {
		t.Fatalf("expected at most 2 sink calls, got %d", got)
	}
	if pump.Drained() != 0 {
		t.Fatalf("expected no drained items, got %d", pump.Drained())
	}
}

func TestPumpStopsOnContextCancel(t *testing.T) {
	endless := sourceFunc[int](func(time.Duration) (int, bool) {
		time.Sleep(time.Millisecond)
		return 1, true
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	pump := NewPump[int](2, time.Second)
	go func() {
		done <- pump.Run(ctx, endless, func(int) error { return nil })
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("pump did not stop after context cancellation")
	}
}
