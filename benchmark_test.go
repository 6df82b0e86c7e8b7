package boundedfifo_test

import (
	"sync"
	"testing"
	"time"

	boundedfifo "github.com/timzifer/bounded_fifo"
)

func BenchmarkPushPullSingleThreaded(b *testing.B) {
	q := boundedfifo.New[int](1024, boundedfifo.OverflowReject)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(i)
		q.Pull()
	}
}

func BenchmarkPushEvictOldestFullQueue(b *testing.B) {
	q := boundedfifo.New[int](64, boundedfifo.OverflowEvictOldest)
	for i := 0; i < 64; i++ {
		q.Push(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(i)
	}
}

func BenchmarkWeightedPushPull(b *testing.B) {
	q := boundedfifo.NewWeighted[clip](time.Hour, boundedfifo.OverflowReject)
	c := clip{"bench", 40 * time.Millisecond}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Push(c)
		q.Pull()
	}
}

func BenchmarkContendedPushPull(b *testing.B) {
	q := boundedfifo.New[int](128, boundedfifo.OverflowReject)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < b.N; i++ {
			for {
				if _, ok := q.PullTimeout(time.Second); ok {
					break
				}
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for {
			outcome, _ := q.Push(i)
			if outcome.Accepted() {
				break
			}
		}
	}
	wg.Wait()
}
