package inquiry

import (
	"context"
	"io"

	"main/internal/schema"
)

// QuoteConnector stands in for the external counterparty channel. Publishing
// a RECEIVED inquiry flips it to QUOTED and hands it straight back to the
// service, completing the quote round trip within the caller's stack.
type QuoteConnector struct {
	service *Service
	price   float64
}

// Publish sends the inquiry outward and feeds the quoted response back at
// the connector's quote price. A zero price leaves the inquiry's own price
// untouched.
func (c *QuoteConnector) Publish(inq schema.Inquiry) error {
	if inq.State != schema.Received {
		return nil
	}
	if c.price > 0 {
		inq.Price = c.price
	}
	inq.State = schema.Quoted
	c.service.OnMessage(inq)
	return nil
}

// Subscribe is a no-op; inquiry ingestion is a separate file connector.
func (c *QuoteConnector) Subscribe(context.Context, io.Reader) error {
	return nil
}
