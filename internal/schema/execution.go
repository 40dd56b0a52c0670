package schema

import (
	"fmt"

	"main/internal/fractional"
)

// ExecutionOrder is a synthetic order placed by the execution decision.
type ExecutionOrder struct {
	Product         Bond
	Side            PricingSide
	OrderID         string
	Type            OrderType
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	ParentOrderID   string
	IsChildOrder    bool
}

func (o ExecutionOrder) Key() string { return o.OrderID }

// Render produces the historical-sink line body for an execution order.
func (o ExecutionOrder) Render() string {
	return fmt.Sprintf("CUSIP: %s, Side: %s, Order ID: %s, Order type: %s, Price: %s, Visible quantity: %d, Hidden quantity: %d, Parent order ID: %s, Is child order: %t",
		o.Product.ID, o.Side, o.OrderID, o.Type,
		fractional.Format(o.Price), o.VisibleQuantity, o.HiddenQuantity,
		o.ParentOrderID, o.IsChildOrder)
}
