package mdg

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/booking"
	"main/internal/ingest"
	"main/internal/inquiry"
	"main/internal/marketdata"
	"main/internal/pricing"
	"main/internal/refdata"
)

func countLines(t *testing.T, buf *bytes.Buffer) int {
	t.Helper()
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return 0
	}
	return len(strings.Split(s, "\n"))
}

func TestWritePricesFeedsPriceConnector(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrices(&buf, 3))
	assert.Equal(t, 3*len(refdata.All()), countLines(t, &buf))

	svc := pricing.New()
	c := ingest.NewPriceConnector(svc, ingest.NewReader(0))
	require.NoError(t, c.Subscribe(context.Background(), &buf))

	price, err := svc.Get("91282CFV8")
	require.NoError(t, err)
	assert.Greater(t, price.Mid, 98.0)
	assert.Less(t, price.Mid, 102.0)
	assert.Greater(t, price.Spread, 0.0)
}

func TestWriteMarketDataFeedsMarketDataConnector(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarketData(&buf, 2))
	assert.Equal(t, 2*ingest.SnapshotSize*len(refdata.All()), countLines(t, &buf))

	svc := marketdata.New()
	c := ingest.NewMarketDataConnector(svc, ingest.NewReader(0))
	require.NoError(t, c.Subscribe(context.Background(), &buf))

	book, err := svc.Get("91282CFV8")
	require.NoError(t, err)
	assert.Len(t, book.Bids, 5)
	assert.Len(t, book.Offers, 5)

	bo := book.BestBidOffer()
	assert.Less(t, bo.Bid.Price, bo.Offer.Price)
}

func TestWriteTradesFeedsTradeConnector(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrades(&buf, 2, []string{"TRSY1", "TRSY2"}))

	svc := booking.New(nil)
	c := ingest.NewTradeConnector(svc, ingest.NewReader(0))
	require.NoError(t, c.Subscribe(context.Background(), &buf))

	trade, err := svc.Get("T1")
	require.NoError(t, err)
	assert.Equal(t, "TRSY1", trade.Book)
	assert.Equal(t, int64(1_000_000), trade.Quantity)
}

func TestWriteInquiriesFeedsInquiryConnector(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInquiries(&buf, 2))
	assert.Equal(t, 2*len(refdata.All()), countLines(t, &buf))

	// Ids are unique across the file.
	seen := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		id := strings.SplitN(line, ",", 2)[0]
		_, dup := seen[id]
		assert.False(t, dup, "duplicate inquiry id %s", id)
		seen[id] = struct{}{}
	}

	svc := inquiry.New()
	c := ingest.NewInquiryConnector(svc, ingest.NewReader(0))
	require.NoError(t, c.Subscribe(context.Background(), strings.NewReader(buf.String())))
}
