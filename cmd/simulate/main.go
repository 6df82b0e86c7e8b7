// Command simulate runs a rate-mismatched producer/consumer pipeline over a
// weighted queue: producers generate frames faster than the consumers play
// them, so the queue fills up and starts evicting the oldest frames.
package main

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	boundedfifo "github.com/timzifer/bounded_fifo"
	"github.com/timzifer/bounded_fifo/internal/core"
	"github.com/timzifer/bounded_fifo/internal/telemetry"
)

const (
	producers     = 5
	framesEach    = 200
	frameDuration = 40 * time.Millisecond
	queueCapacity = 500 * time.Millisecond
	produceEvery  = 2 * time.Millisecond
	playEvery     = 5 * time.Millisecond
	consumers     = 2
	idleTimeout   = 250 * time.Millisecond
)

type frame struct {
	id       uuid.UUID
	producer int
	seq      int
	duration time.Duration
}

func (f frame) Weight() time.Duration { return f.duration }

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)

	telemetry.DefaultQueueMetrics().Reset()
	q := boundedfifo.NewWeighted[frame](queueCapacity, boundedfifo.OverflowEvictOldest)

	log.Info().
		Int("producers", producers).
		Int("consumers", consumers).
		Dur("capacity", queueCapacity).
		Dur("frame", frameDuration).
		Msg("starting simulation")

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for seq := 0; seq < framesEach; seq++ {
				f := frame{id: uuid.New(), producer: idx, seq: seq, duration: frameDuration}
				outcome, err := q.Push(f)
				if err != nil {
					log.Error().Err(err).Msg("push failed")
				}
				if outcome == boundedfifo.PushEvicted {
					log.Debug().
						Int("producer", idx).
						Int("seq", seq).
						Msg("oldest frame evicted")
				}
				time.Sleep(produceEvery)
			}
		}(p)
	}

	pump := core.NewPump[frame](consumers, idleTimeout)
	pumpDone := make(chan error, 1)
	go func() {
		pumpDone <- pump.Run(context.Background(), q, func(f frame) error {
			time.Sleep(playEvery)
			log.Debug().
				Str("frame", f.id.String()).
				Int("producer", f.producer).
				Int("seq", f.seq).
				Msg("frame played")
			return nil
		})
	}()

	wg.Wait()
	if err := <-pumpDone; err != nil {
		log.Error().Err(err).Msg("pump stopped with error")
	}

	s := telemetry.DefaultQueueMetrics().Snapshot()
	log.Info().
		Uint64("pushes", s.Pushes).
		Uint64("evicted", s.Evicted).
		Uint64("pulls", s.Pulls).
		Uint64("timeouts", s.Timeouts).
		Dur("avg_wait", s.AvgWait).
		Uint64("played", pump.Drained()).
		Int("left_over", q.Len()).
		Msg("simulation finished")
}
