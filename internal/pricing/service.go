// Package pricing holds the current mid and spread per product, fed from the
// external price source.
package pricing

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service is the keyed store of prices, keyed by product. Last write wins.
type Service struct {
	prices    map[schema.ProductID]schema.Price
	listeners bus.ListenerSet[schema.Price]
}

var _ bus.Service[schema.ProductID, schema.Price] = (*Service)(nil)

func New() *Service {
	return &Service{prices: make(map[schema.ProductID]schema.Price)}
}

// Get returns the current price for a product.
func (s *Service) Get(id schema.ProductID) (schema.Price, error) {
	price, ok := s.prices[id]
	if !ok {
		return schema.Price{}, bus.ErrNotFound
	}
	return price, nil
}

// OnMessage overwrites the stored price and fans it out.
func (s *Service) OnMessage(price schema.Price) {
	s.prices[price.Product.ID] = price
	s.listeners.AnnounceAdd(price)
}

func (s *Service) AddListener(l bus.Listener[schema.Price]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.Price] {
	return s.listeners.All()
}
