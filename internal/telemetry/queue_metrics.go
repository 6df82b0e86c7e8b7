package telemetry

import (
	"sync/atomic"
	"time"
)

// QueueMetrics fasst Messwerte zu Push- und Pull-Vorgängen zusammen.
type QueueMetrics struct {
	pushes       atomic.Uint64
	rejected     atomic.Uint64
	evicted      atomic.Uint64
	pulls        atomic.Uint64
	timeouts     atomic.Uint64
	waitDuration atomic.Int64
}

var defaultQueueMetrics QueueMetrics

// DefaultQueueMetrics liefert die globalen Metriken.
func DefaultQueueMetrics() *QueueMetrics {
	return &defaultQueueMetrics
}

// RecordPush zählt einen Push-Versuch samt Ablehnung oder Verdrängung.
func (m *QueueMetrics) RecordPush(rejected, evicted bool) {
	m.pushes.Add(1)
	if rejected {
		m.rejected.Add(1)
	}
	if evicted {
		m.evicted.Add(1)
	}
}

// TracePull startet eine Pull-Messung und liefert eine Abschlussfunktion,
// die Wartezeit und Timeout-Zustand meldet.
func TracePull() func(timedOut bool) {
	start := time.Now()
	return func(timedOut bool) {
		elapsed := time.Since(start)
		defaultQueueMetrics.pulls.Add(1)
		defaultQueueMetrics.waitDuration.Add(elapsed.Nanoseconds())
		if timedOut {
			defaultQueueMetrics.timeouts.Add(1)
		}
	}
}

// Summary enthält einen konsistenten Auszug der gesammelten Werte.
type Summary struct {
	Pushes   uint64
	Rejected uint64
	Evicted  uint64
	Pulls    uint64
	Timeouts uint64
	AvgWait  time.Duration
}

// Snapshot gibt die gesammelten Werte zurück.
func (m *QueueMetrics) Snapshot() Summary {
	s := Summary{
		Pushes:   m.pushes.Load(),
		Rejected: m.rejected.Load(),
		Evicted:  m.evicted.Load(),
		Pulls:    m.pulls.Load(),
		Timeouts: m.timeouts.Load(),
	}
	if s.Pulls > 0 {
		s.AvgWait = time.Duration(m.waitDuration.Load() / int64(s.Pulls))
	}
	return s
}

// Reset setzt alle Zähler zurück.
func (m *QueueMetrics) Reset() {
	m.pushes.Store(0)
	m.rejected.Store(0)
	m.evicted.Store(0)
	m.pulls.Store(0)
	m.timeouts.Store(0)
	m.waitDuration.Store(0)
}
