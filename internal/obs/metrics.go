// Package obs collects lightweight pipeline counters and hosts the optional
// profiler hook.
package obs

import (
	"fmt"
	"sync/atomic"

	"main/internal/bus"
)

// Stage identifies one counted point in the pipeline.
type Stage uint8

const (
	StagePrice Stage = iota
	StageBookSnapshot
	StageExecution
	StageTrade
	StagePosition
	StageRisk
	StageQuote
	StageInquiry
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StagePrice:
		return "price"
	case StageBookSnapshot:
		return "book_snapshot"
	case StageExecution:
		return "execution"
	case StageTrade:
		return "trade"
	case StagePosition:
		return "position"
	case StageRisk:
		return "risk"
	case StageQuote:
		return "quote"
	case StageInquiry:
		return "inquiry"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Metrics counts events observed per pipeline stage.
type Metrics struct {
	counts [stageCount]uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc increments one stage counter.
func (m *Metrics) Inc(stage Stage) {
	if m == nil || int(stage) >= len(m.counts) {
		return
	}
	atomic.AddUint64(&m.counts[stage], 1)
}

// Count returns one stage counter.
func (m *Metrics) Count(stage Stage) uint64 {
	if m == nil || int(stage) >= len(m.counts) {
		return 0
	}
	return atomic.LoadUint64(&m.counts[stage])
}

// Snapshot returns all non-zero counters.
func (m *Metrics) Snapshot() map[Stage]uint64 {
	out := make(map[Stage]uint64, stageCount)
	for s := Stage(0); s < stageCount; s++ {
		if v := m.Count(s); v > 0 {
			out[s] = v
		}
	}
	return out
}

// CountingListener increments a stage counter for every add event. Register
// one on a service to measure its fan-out.
type CountingListener[V any] struct {
	bus.NopListener[V]
	metrics *Metrics
	stage   Stage
}

// NewCountingListener creates a counting listener for one stage.
func NewCountingListener[V any](metrics *Metrics, stage Stage) *CountingListener[V] {
	return &CountingListener[V]{metrics: metrics, stage: stage}
}

func (l *CountingListener[V]) OnAdd(V) {
	l.metrics.Inc(l.stage)
}
