package ingest

import (
	"context"
	"io"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/booking"
	"main/internal/refdata"
	"main/internal/schema"
)

// TradeConnector feeds externally sourced trades into the booking service.
// Columns: productId, tradeId, price (fractional), book, quantity, side.
type TradeConnector struct {
	service *booking.Service
	reader  *Reader
}

func NewTradeConnector(service *booking.Service, reader *Reader) *TradeConnector {
	return &TradeConnector{service: service, reader: reader}
}

// Publish is a no-op; this connector is subscribe-only.
func (c *TradeConnector) Publish(schema.Trade) error { return nil }

// Subscribe reads trade records until the source is exhausted.
func (c *TradeConnector) Subscribe(ctx context.Context, src io.Reader) error {
	count := 0
	err := c.reader.Lines(ctx, src, func(n int, line string) error {
		fields, err := splitRecord(n, line, 6)
		if err != nil {
			return err
		}
		product, err := refdata.Lookup(schema.ProductID(fields[0]))
		if err != nil {
			return errors.Wrapf(err, "line %d: product %q", n, fields[0])
		}
		price, err := parsePrice(n, fields[2])
		if err != nil {
			return err
		}
		quantity, err := parseQuantity(n, fields[4])
		if err != nil {
			return err
		}
		side, err := schema.ParseTradeSide(fields[5])
		if err != nil {
			return errors.Wrapf(ErrMalformedRecord, "line %d: %v", n, err)
		}

		c.service.OnMessage(schema.Trade{
			Product:  product,
			TradeID:  fields[1],
			Price:    price,
			Book:     fields[3],
			Quantity: quantity,
			Side:     side,
		})
		count++
		return nil
	})
	if err != nil {
		return err
	}
	logs.Infof("trade connector: %d records", count)
	return nil
}
