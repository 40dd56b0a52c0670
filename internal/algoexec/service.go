// Package algoexec decides whether to cross the spread on each order-book
// update and synthesizes market execution orders.
package algoexec

import (
	"strconv"

	"main/internal/bus"
	"main/internal/schema"
)

// CrossableSpread is the widest bid/offer gap that still triggers an
// execution: 1/128 price points.
const CrossableSpread = 1.0 / 128.0

// Service emits a market execution for every crossable book update,
// alternating buy and sell regardless of market direction.
type Service struct {
	executions map[schema.ProductID]schema.ExecutionOrder
	listeners  bus.ListenerSet[schema.ExecutionOrder]
	listener   *BookListener

	nextIsBuy    bool
	orderCounter int
}

var _ bus.Service[schema.ProductID, schema.ExecutionOrder] = (*Service)(nil)

func New() *Service {
	s := &Service{
		executions: make(map[schema.ProductID]schema.ExecutionOrder),
		nextIsBuy:  true,
	}
	s.listener = &BookListener{service: s}
	return s
}

// Get returns the latest execution order generated for a product.
func (s *Service) Get(id schema.ProductID) (schema.ExecutionOrder, error) {
	order, ok := s.executions[id]
	if !ok {
		return schema.ExecutionOrder{}, bus.ErrNotFound
	}
	return order, nil
}

// OnMessage stores the execution order by product and fans it out.
func (s *Service) OnMessage(order schema.ExecutionOrder) {
	s.executions[order.Product.ID] = order
	s.listeners.AnnounceAdd(order)
}

func (s *Service) AddListener(l bus.Listener[schema.ExecutionOrder]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.ExecutionOrder] {
	return s.listeners.All()
}

// Listener returns the order-book listener to register on the market data
// service.
func (s *Service) Listener() *BookListener {
	return s.listener
}

// ExecuteBook applies the spread-crossing decision to one book update.
// When the spread is wider than CrossableSpread no execution is emitted;
// that is a skip, not an error.
func (s *Service) ExecuteBook(book schema.OrderBook) {
	bidOffer := book.BestBidOffer()
	if bidOffer.Offer.Price-bidOffer.Bid.Price > CrossableSpread {
		return
	}

	order := schema.ExecutionOrder{
		Product:       book.Product,
		OrderID:       strconv.Itoa(s.orderCounter),
		Type:          schema.Market,
		ParentOrderID: "NA",
	}
	if s.nextIsBuy {
		// Buy by taking the offer.
		order.Side = schema.Bid
		order.Price = bidOffer.Offer.Price
		order.VisibleQuantity = bidOffer.Offer.Quantity
	} else {
		order.Side = schema.Offer
		order.Price = bidOffer.Bid.Price
		order.VisibleQuantity = bidOffer.Bid.Quantity
	}
	s.OnMessage(order)

	s.nextIsBuy = !s.nextIsBuy
	s.orderCounter++
}

// BookListener feeds order-book updates into the execution decision.
type BookListener struct {
	bus.NopListener[schema.OrderBook]
	service *Service
}

func (l *BookListener) OnAdd(book schema.OrderBook) {
	l.service.ExecuteBook(book)
}
