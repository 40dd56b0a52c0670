// Package marketdata maintains one order book per product and derives best
// bid/offer and price-aggregated views from the latest snapshot.
package marketdata

import (
	"github.com/tidwall/btree"

	"main/internal/bus"
	"main/internal/schema"
)

// Service is the keyed store of order books, one per product. Each incoming
// snapshot replaces the stored book wholesale; there is no incremental merge.
type Service struct {
	books     map[schema.ProductID]schema.OrderBook
	listeners bus.ListenerSet[schema.OrderBook]
}

var _ bus.Service[schema.ProductID, schema.OrderBook] = (*Service)(nil)

func New() *Service {
	return &Service{books: make(map[schema.ProductID]schema.OrderBook)}
}

// Get returns the current order book for a product.
func (s *Service) Get(id schema.ProductID) (schema.OrderBook, error) {
	book, ok := s.books[id]
	if !ok {
		return schema.OrderBook{}, bus.ErrNotFound
	}
	return book, nil
}

// OnMessage replaces the stored book with the new snapshot and fans it out.
func (s *Service) OnMessage(book schema.OrderBook) {
	s.books[book.Product.ID] = book
	s.listeners.AnnounceAdd(book)
}

func (s *Service) AddListener(l bus.Listener[schema.OrderBook]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.OrderBook] {
	return s.listeners.All()
}

// BestBidOffer returns the maximum-price bid and minimum-price offer of the
// stored book, ties broken by first occurrence.
func (s *Service) BestBidOffer(id schema.ProductID) (schema.BidOffer, error) {
	book, ok := s.books[id]
	if !ok {
		return schema.BidOffer{}, bus.ErrNotFound
	}
	return book.BestBidOffer(), nil
}

type level struct {
	price    float64
	quantity int64
}

// Aggregate groups the stored book's orders by exact price and sums quantity
// per side, producing a new, smaller book with bids sorted high-to-low and
// offers low-to-high. The stored book is not mutated.
func (s *Service) Aggregate(id schema.ProductID) (schema.OrderBook, error) {
	book, ok := s.books[id]
	if !ok {
		return schema.OrderBook{}, bus.ErrNotFound
	}

	bids := btree.NewBTreeG(func(a, b level) bool { return a.price > b.price })
	offers := btree.NewBTreeG(func(a, b level) bool { return a.price < b.price })
	accumulate := func(tree *btree.BTreeG[level], o schema.Order) {
		lv, ok := tree.Get(level{price: o.Price})
		if ok {
			lv.quantity += o.Quantity
		} else {
			lv = level{price: o.Price, quantity: o.Quantity}
		}
		tree.Set(lv)
	}
	for _, o := range book.Bids {
		accumulate(bids, o)
	}
	for _, o := range book.Offers {
		accumulate(offers, o)
	}

	collect := func(tree *btree.BTreeG[level], side schema.PricingSide) []schema.Order {
		orders := make([]schema.Order, 0, tree.Len())
		tree.Scan(func(lv level) bool {
			orders = append(orders, schema.Order{Price: lv.price, Quantity: lv.quantity, Side: side})
			return true
		})
		return orders
	}

	return schema.OrderBook{
		Product: book.Product,
		Bids:    collect(bids, schema.Bid),
		Offers:  collect(offers, schema.Offer),
	}, nil
}
