package app

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/mathstorm/internal/renderer/backend"
)

// Metrics tracks input handling for an editing session.
type Metrics struct {
	mu sync.Mutex

	// Input handling
	inputCount   atomic.Uint64
	inputTotalNs atomic.Int64
	inputMaxNs   atomic.Int64

	// Intent counts by kind
	intents map[backend.IntentKind]uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		intents:   make(map[backend.IntentKind]uint64),
		startTime: time.Now(),
	}
}

// RecordInput records the time taken to handle one intent.
func (m *Metrics) RecordInput(kind backend.IntentKind, duration time.Duration) {
	ns := duration.Nanoseconds()
	m.inputCount.Add(1)
	m.inputTotalNs.Add(ns)

	// Update max (atomic compare-and-swap loop)
	for {
		old := m.inputMaxNs.Load()
		if ns <= old {
			break
		}
		if m.inputMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}

	m.mu.Lock()
	m.intents[kind]++
	m.mu.Unlock()
}

// MetricsSnapshot is a point-in-time copy of the metrics.
type MetricsSnapshot struct {
	Uptime   time.Duration
	Inputs   uint64
	AvgInput time.Duration
	MaxInput time.Duration
	Intents  map[backend.IntentKind]uint64
}

// Snapshot returns the current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Uptime:   time.Since(m.startTime),
		Inputs:   m.inputCount.Load(),
		MaxInput: time.Duration(m.inputMaxNs.Load()),
		Intents:  make(map[backend.IntentKind]uint64),
	}
	if s.Inputs > 0 {
		s.AvgInput = time.Duration(m.inputTotalNs.Load() / int64(s.Inputs))
	}

	m.mu.Lock()
	for k, v := range m.intents {
		s.Intents[k] = v
	}
	m.mu.Unlock()
	return s
}
