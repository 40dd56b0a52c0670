package ingest

import (
	"context"
	"io"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/pricing"
	"main/internal/refdata"
	"main/internal/schema"
)

// PriceConnector feeds price records into the pricing service.
// Columns: productId, mid, spread (prices fractional).
type PriceConnector struct {
	service *pricing.Service
	reader  *Reader
}

func NewPriceConnector(service *pricing.Service, reader *Reader) *PriceConnector {
	return &PriceConnector{service: service, reader: reader}
}

// Publish is a no-op; this connector is subscribe-only.
func (c *PriceConnector) Publish(schema.Price) error { return nil }

// Subscribe reads price records until the source is exhausted.
func (c *PriceConnector) Subscribe(ctx context.Context, src io.Reader) error {
	count := 0
	err := c.reader.Lines(ctx, src, func(n int, line string) error {
		fields, err := splitRecord(n, line, 3)
		if err != nil {
			return err
		}
		product, err := refdata.Lookup(schema.ProductID(fields[0]))
		if err != nil {
			return errors.Wrapf(err, "line %d: product %q", n, fields[0])
		}
		mid, err := parsePrice(n, fields[1])
		if err != nil {
			return err
		}
		spread, err := parsePrice(n, fields[2])
		if err != nil {
			return err
		}
		c.service.OnMessage(schema.Price{Product: product, Mid: mid, Spread: spread})
		count++
		return nil
	})
	if err != nil {
		return err
	}
	logs.Infof("price connector: %d records", count)
	return nil
}
