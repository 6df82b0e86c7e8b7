package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// Source liefert Elemente mit einer begrenzten Wartezeit. Das zweite
// Rückgabeargument ist false, wenn innerhalb der Frist nichts verfügbar war.
type Source[T any] interface {
	PullTimeout(timeout time.Duration) (T, bool)
}

// Pump entleert eine Quelle mit mehreren Konsumenten. Jeder Konsument zieht
// Elemente, bis die Quelle länger als die Leerlauf-Frist nichts liefert oder
// der Kontext abgebrochen wird. Der erste Fehler der Senke bricht die
// übrigen Konsumenten ab.
type Pump[T any] struct {
	workers int
	idle    time.Duration
	drained atomic.Uint64
}

// NewPump erzeugt eine Pumpe mit der angegebenen Anzahl Konsumenten.
func NewPump[T any](workers int, idle time.Duration) *Pump[T] {
	if workers <= 0 {
		workers = 1
	}
	return &Pump[T]{workers: workers, idle: idle}
}

// Run blockiert, bis alle Konsumenten fertig sind, und liefert die
// gesammelten Senkenfehler beziehungsweise den Kontextfehler zurück.
func (p *Pump[T]) Run(ctx context.Context, src Source[T], sink func(T) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, p.workers)
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				value, ok := src.PullTimeout(p.idle)
				if !ok {
					return
				}
				if err := sink(value); err != nil {
					errs[slot] = err
					cancel()
					return
				}
				p.drained.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	return ctx.Err()
}

// Drained gibt die Anzahl erfolgreich verarbeiteter Elemente zurück.
func (p *Pump[T]) Drained() uint64 {
	return p.drained.Load()
}
