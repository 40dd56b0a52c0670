package obs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"main/internal/schema"
)

func TestMetricsCounts(t *testing.T) {
	m := NewMetrics()
	m.Inc(StagePrice)
	m.Inc(StagePrice)
	m.Inc(StageRisk)

	assert.Equal(t, uint64(2), m.Count(StagePrice))
	assert.Equal(t, uint64(1), m.Count(StageRisk))
	assert.Equal(t, uint64(0), m.Count(StageTrade))

	snap := m.Snapshot()
	assert.Equal(t, map[Stage]uint64{StagePrice: 2, StageRisk: 1}, snap)
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.Inc(StageTrade)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(8000), m.Count(StageTrade))
}

func TestCountingListener(t *testing.T) {
	m := NewMetrics()
	l := NewCountingListener[schema.Price](m, StagePrice)

	l.OnAdd(schema.Price{})
	l.OnAdd(schema.Price{})
	l.OnRemove(schema.Price{})

	assert.Equal(t, uint64(2), m.Count(StagePrice))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.Inc(StagePrice)
	assert.Equal(t, uint64(0), m.Count(StagePrice))
}
