package ingest

import (
	"context"
	"io"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/inquiry"
	"main/internal/refdata"
	"main/internal/schema"
)

// InquiryConnector feeds customer inquiries into the inquiry service.
// Columns: inquiryId, productId, side, quantity, price (fractional), state.
type InquiryConnector struct {
	service *inquiry.Service
	reader  *Reader
}

func NewInquiryConnector(service *inquiry.Service, reader *Reader) *InquiryConnector {
	return &InquiryConnector{service: service, reader: reader}
}

// Publish is a no-op; the quote round trip is the inquiry service's own
// connector.
func (c *InquiryConnector) Publish(schema.Inquiry) error { return nil }

// Subscribe reads inquiry records until the source is exhausted.
func (c *InquiryConnector) Subscribe(ctx context.Context, src io.Reader) error {
	count := 0
	err := c.reader.Lines(ctx, src, func(n int, line string) error {
		fields, err := splitRecord(n, line, 6)
		if err != nil {
			return err
		}
		product, err := refdata.Lookup(schema.ProductID(fields[1]))
		if err != nil {
			return errors.Wrapf(err, "line %d: product %q", n, fields[1])
		}
		side, err := schema.ParseTradeSide(fields[2])
		if err != nil {
			return errors.Wrapf(ErrMalformedRecord, "line %d: %v", n, err)
		}
		quantity, err := parseQuantity(n, fields[3])
		if err != nil {
			return err
		}
		price, err := parsePrice(n, fields[4])
		if err != nil {
			return err
		}
		state, err := schema.ParseInquiryState(fields[5])
		if err != nil {
			return errors.Wrapf(ErrMalformedRecord, "line %d: %v", n, err)
		}

		c.service.OnMessage(schema.Inquiry{
			ID:       fields[0],
			Product:  product,
			Side:     side,
			Quantity: quantity,
			Price:    price,
			State:    state,
		})
		count++
		return nil
	})
	if err != nil {
		return err
	}
	logs.Infof("inquiry connector: %d records", count)
	return nil
}
