package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/bus"
	"main/internal/schema"
)

var testBond = schema.Bond{ID: "91282CFV8", Ticker: "T"}

func TestLastWriteWins(t *testing.T) {
	s := New()
	s.OnMessage(schema.Price{Product: testBond, Mid: 100.0, Spread: 1.0 / 128.0})
	s.OnMessage(schema.Price{Product: testBond, Mid: 100.5, Spread: 1.0 / 64.0})

	price, err := s.Get(testBond.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.5, price.Mid)
	assert.Equal(t, 1.0/64.0, price.Spread)
}

type capturingPriceListener struct {
	bus.NopListener[schema.Price]
	n int
}

func (l *capturingPriceListener) OnAdd(schema.Price) { l.n++ }

func TestEveryUpdateFansOut(t *testing.T) {
	s := New()
	l := &capturingPriceListener{}
	s.AddListener(l)

	s.OnMessage(schema.Price{Product: testBond, Mid: 100.0})
	s.OnMessage(schema.Price{Product: testBond, Mid: 100.0})

	assert.Equal(t, 2, l.n)
}

func TestGetUnknownProduct(t *testing.T) {
	_, err := New().Get("missing")
	assert.ErrorIs(t, err, bus.ErrNotFound)
}
