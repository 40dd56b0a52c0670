package ingest

import (
	"context"
	"io"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/marketdata"
	"main/internal/refdata"
	"main/internal/schema"
)

// SnapshotSize is the number of order records forming one order-book
// snapshot: five bid levels and five offer levels.
const SnapshotSize = 10

// MarketDataConnector feeds order-book snapshots into the market data
// service. Columns: productId, price (fractional), quantity, side; every
// SnapshotSize consecutive records form one snapshot.
type MarketDataConnector struct {
	service *marketdata.Service
	reader  *Reader
}

func NewMarketDataConnector(service *marketdata.Service, reader *Reader) *MarketDataConnector {
	return &MarketDataConnector{service: service, reader: reader}
}

// Publish is a no-op; this connector is subscribe-only.
func (c *MarketDataConnector) Publish(schema.OrderBook) error { return nil }

// Subscribe reads order records, assembling and delivering one snapshot per
// SnapshotSize lines. A trailing partial batch is dropped.
func (c *MarketDataConnector) Subscribe(ctx context.Context, src io.Reader) error {
	var (
		bids, offers []schema.Order
		product      schema.Bond
		inBatch      int
		snapshots    int
	)

	err := c.reader.Lines(ctx, src, func(n int, line string) error {
		fields, err := splitRecord(n, line, 4)
		if err != nil {
			return err
		}
		bond, err := refdata.Lookup(schema.ProductID(fields[0]))
		if err != nil {
			return errors.Wrapf(err, "line %d: product %q", n, fields[0])
		}
		price, err := parsePrice(n, fields[1])
		if err != nil {
			return err
		}
		quantity, err := parseQuantity(n, fields[2])
		if err != nil {
			return err
		}
		side, err := schema.ParsePricingSide(fields[3])
		if err != nil {
			return errors.Wrapf(ErrMalformedRecord, "line %d: %v", n, err)
		}

		order := schema.Order{Price: price, Quantity: quantity, Side: side}
		if side == schema.Bid {
			bids = append(bids, order)
		} else {
			offers = append(offers, order)
		}
		product = bond
		inBatch++

		if inBatch == SnapshotSize {
			c.service.OnMessage(schema.OrderBook{Product: product, Bids: bids, Offers: offers})
			bids, offers = nil, nil
			inBatch = 0
			snapshots++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if inBatch != 0 {
		logs.Warnf("market data connector: dropping partial snapshot of %d records", inBatch)
	}
	logs.Infof("market data connector: %d snapshots", snapshots)
	return nil
}
