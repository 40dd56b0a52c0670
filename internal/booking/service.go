// Package booking converts execution orders into trades booked against a
// rotating set of books.
package booking

import (
	"main/internal/bus"
	"main/internal/schema"
)

// DefaultBooks is the standard book rotation.
var DefaultBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

// Service is the keyed store of booked trades, keyed by trade id.
type Service struct {
	trades    map[string]schema.Trade
	listeners bus.ListenerSet[schema.Trade]
	listener  *ExecutionListener

	books []string
	n     int
}

var _ bus.Service[string, schema.Trade] = (*Service)(nil)

// New creates a booking service rotating over the given books.
// An empty book list falls back to DefaultBooks.
func New(books []string) *Service {
	if len(books) == 0 {
		books = DefaultBooks
	}
	s := &Service{
		trades: make(map[string]schema.Trade),
		books:  books,
	}
	s.listener = &ExecutionListener{service: s}
	return s
}

// Get returns a booked trade by trade id.
func (s *Service) Get(tradeID string) (schema.Trade, error) {
	trade, ok := s.trades[tradeID]
	if !ok {
		return schema.Trade{}, bus.ErrNotFound
	}
	return trade, nil
}

// OnMessage stores the trade by trade id and fans it out. Re-delivery of an
// already stored trade id leaves the store unchanged; downstream consumers
// de-duplicate by the same key.
func (s *Service) OnMessage(trade schema.Trade) {
	s.trades[trade.TradeID] = trade
	s.listeners.AnnounceAdd(trade)
}

func (s *Service) AddListener(l bus.Listener[schema.Trade]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.Trade] {
	return s.listeners.All()
}

// Listener returns the listener to register on the execution service.
func (s *Service) Listener() *ExecutionListener {
	return s.listener
}

// AddTrade books a trade through the normal message path.
func (s *Service) AddTrade(trade schema.Trade) {
	s.OnMessage(trade)
}

// nextBook returns the book for the current rotation slot and advances the
// counter, one step per booked trade.
func (s *Service) nextBook() string {
	book := s.books[s.n%len(s.books)]
	s.n++
	return book
}

// ExecutionListener derives a trade from each execution order.
type ExecutionListener struct {
	bus.NopListener[schema.ExecutionOrder]
	service *Service
}

// OnAdd books the trade for an execution order. The trade is dispatched both
// through the listener chain and as a direct AddTrade on the service; both
// land on the same trade id, so the double dispatch is idempotent for the
// stored map and is absorbed downstream by trade-id de-duplication.
func (l *ExecutionListener) OnAdd(order schema.ExecutionOrder) {
	side := schema.Buy
	if order.Side == schema.Offer {
		side = schema.Sell
	}

	trade := schema.Trade{
		Product:  order.Product,
		TradeID:  "TRADE-EXECUTE-" + order.OrderID,
		Price:    order.Price,
		Book:     l.service.nextBook(),
		Quantity: order.VisibleQuantity + order.HiddenQuantity,
		Side:     side,
	}
	l.service.OnMessage(trade)
	l.service.AddTrade(trade)
}
