// Package position nets booked trades into per-book and aggregate positions
// per product.
package position

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service is the keyed store of positions, keyed by product.
type Service struct {
	positions map[schema.ProductID]schema.Position
	seen      map[string]struct{}
	listeners bus.ListenerSet[schema.Position]
	listener  *TradeListener
}

var _ bus.Service[schema.ProductID, schema.Position] = (*Service)(nil)

func New() *Service {
	s := &Service{
		positions: make(map[schema.ProductID]schema.Position),
		seen:      make(map[string]struct{}),
	}
	s.listener = &TradeListener{service: s}
	return s
}

// Get returns the current position for a product.
func (s *Service) Get(id schema.ProductID) (schema.Position, error) {
	pos, ok := s.positions[id]
	if !ok {
		return schema.Position{}, bus.ErrNotFound
	}
	return pos, nil
}

// OnMessage fans the updated position out to listeners as a full snapshot.
func (s *Service) OnMessage(pos schema.Position) {
	s.positions[pos.Product.ID] = pos
	s.listeners.AnnounceAdd(pos)
}

func (s *Service) AddListener(l bus.Listener[schema.Position]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.Position] {
	return s.listeners.All()
}

// Listener returns the listener to register on the trade booking service.
func (s *Service) Listener() *TradeListener {
	return s.listener
}

// AddTrade nets a trade into the product's position and publishes the
// updated snapshot. A trade id that was already applied is ignored, so
// re-delivery never double-counts.
func (s *Service) AddTrade(trade schema.Trade) {
	if _, dup := s.seen[trade.TradeID]; dup {
		return
	}
	s.seen[trade.TradeID] = struct{}{}

	pos, ok := s.positions[trade.Product.ID]
	if !ok {
		pos = schema.NewPosition(trade.Product)
		s.positions[trade.Product.ID] = pos
	}

	quantity := trade.Quantity
	if trade.Side == schema.Sell {
		quantity = -quantity
	}
	pos.Add(trade.Book, quantity)

	s.OnMessage(pos)
}

// TradeListener feeds booked trades into position netting.
type TradeListener struct {
	bus.NopListener[schema.Trade]
	service *Service
}

func (l *TradeListener) OnAdd(trade schema.Trade) {
	l.service.AddTrade(trade)
}
