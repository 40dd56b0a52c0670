package schema

import (
	"fmt"

	"main/internal/fractional"
)

// Price is the current mid and bid/offer spread for one product.
// Last write wins; there is exactly one current value per product.
type Price struct {
	Product Bond
	Mid     float64
	Spread  float64
}

func (p Price) Key() string { return string(p.Product.ID) }

// PriceStreamOrder is one side of a two-sided published quote.
type PriceStreamOrder struct {
	Price           float64
	VisibleQuantity int64
	HiddenQuantity  int64
	Side            PricingSide
}

// PriceStream is a derived two-sided quote for one product.
type PriceStream struct {
	Product Bond
	Bid     PriceStreamOrder
	Offer   PriceStreamOrder
}

func (s PriceStream) Key() string { return string(s.Product.ID) }

// Render produces the historical-sink line body for a price stream.
func (s PriceStream) Render() string {
	return fmt.Sprintf("CUSIP: %s, Bid: %s, Visible quantity: %d, Hidden quantity: %d, Offer: %s, Visible quantity: %d, Hidden quantity: %d",
		s.Product.ID,
		fractional.Format(s.Bid.Price), s.Bid.VisibleQuantity, s.Bid.HiddenQuantity,
		fractional.Format(s.Offer.Price), s.Offer.VisibleQuantity, s.Offer.HiddenQuantity)
}
