package schema

// Order is a single priced order resting on one side of a book.
type Order struct {
	Price    float64
	Quantity int64
	Side     PricingSide
}

// BidOffer pairs the best bid and best offer of a book.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// OrderBook is the full bid/offer order stacks for one product. Each incoming
// snapshot replaces the previous book wholesale.
type OrderBook struct {
	Product Bond
	Bids    []Order
	Offers  []Order
}

// Sentinel extremes for the best bid/offer scan over a side with no orders.
const (
	emptyBestBidPrice   = 0.0
	emptyBestOfferPrice = 1000.0
)

// BestBidOffer scans for the maximum-price bid and minimum-price offer.
// Ties are broken by first occurrence.
func (b OrderBook) BestBidOffer() BidOffer {
	bestBid := Order{Price: emptyBestBidPrice, Side: Bid}
	for _, o := range b.Bids {
		if o.Price > bestBid.Price {
			bestBid = o
		}
	}
	bestOffer := Order{Price: emptyBestOfferPrice, Side: Offer}
	for _, o := range b.Offers {
		if o.Price < bestOffer.Price {
			bestOffer = o
		}
	}
	return BidOffer{Bid: bestBid, Offer: bestOffer}
}
