package schema

import (
	"fmt"

	"main/internal/fractional"
)

// Inquiry is a customer inquiry moving through the negotiation state machine.
type Inquiry struct {
	ID       string
	Product  Bond
	Side     TradeSide
	Quantity int64
	Price    float64
	State    InquiryState
}

func (i Inquiry) Key() string { return i.ID }

// Render produces the historical-sink line body for an inquiry.
func (i Inquiry) Render() string {
	return fmt.Sprintf("Inquiry ID: %s, CUSIP: %s, Side: %s, Quantity: %d, Price: %s, State: %s",
		i.ID, i.Product.ID, i.Side, i.Quantity, fractional.Format(i.Price), i.State)
}
