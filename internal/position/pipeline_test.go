package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/algoexec"
	"main/internal/booking"
	"main/internal/execution"
	"main/internal/marketdata"
	"main/internal/refdata"
	"main/internal/risk"
	"main/internal/schema"
)

// Wires the market-data leg the way the desk binary does and drives it with
// crossable book snapshots end to end.
func TestMarketDataLeg(t *testing.T) {
	bond, err := refdata.Lookup("91282CFV8")
	require.NoError(t, err)

	marketDataService := marketdata.New()
	algoExecService := algoexec.New()
	executionService := execution.New()
	bookingService := booking.New(nil)
	positionService := New()
	riskService := risk.New()

	marketDataService.AddListener(algoExecService.Listener())
	algoExecService.AddListener(executionService.Listener())
	executionService.AddListener(bookingService.Listener())
	bookingService.AddListener(positionService.Listener())
	positionService.AddListener(riskService.Listener())

	crossable := schema.OrderBook{
		Product: bond,
		Bids:    []schema.Order{{Price: 100.0, Quantity: 10_000_000, Side: schema.Bid}},
		Offers:  []schema.Order{{Price: 100.0 + 1.0/128.0, Quantity: 10_000_000, Side: schema.Offer}},
	}

	// First snapshot executes a buy into TRSY1, second a sell into TRSY2.
	marketDataService.OnMessage(crossable)
	marketDataService.OnMessage(crossable)

	pos, err := positionService.Get(bond.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000_000), pos.Quantity("TRSY1"))
	assert.Equal(t, int64(-10_000_000), pos.Quantity("TRSY2"))
	assert.Equal(t, int64(0), pos.Aggregate())

	// The double-dispatched trades book once each.
	_, err = bookingService.Get("TRADE-EXECUTE-0")
	require.NoError(t, err)
	_, err = bookingService.Get("TRADE-EXECUTE-1")
	require.NoError(t, err)

	pv, err := riskService.Get(bond.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0862, pv.Value)
	assert.Equal(t, int64(0), pv.Quantity)
}

// A wide book produces no executions and therefore no positions.
func TestMarketDataLegSkipsWideSpread(t *testing.T) {
	bond, err := refdata.Lookup("91282CFV8")
	require.NoError(t, err)

	marketDataService := marketdata.New()
	algoExecService := algoexec.New()
	executionService := execution.New()
	bookingService := booking.New(nil)
	positionService := New()

	marketDataService.AddListener(algoExecService.Listener())
	algoExecService.AddListener(executionService.Listener())
	executionService.AddListener(bookingService.Listener())
	bookingService.AddListener(positionService.Listener())

	marketDataService.OnMessage(schema.OrderBook{
		Product: bond,
		Bids:    []schema.Order{{Price: 100.0, Quantity: 10_000_000, Side: schema.Bid}},
		Offers:  []schema.Order{{Price: 100.0 + 1.0/64.0, Quantity: 10_000_000, Side: schema.Offer}},
	})

	_, err = positionService.Get(bond.ID)
	assert.Error(t, err)
}
