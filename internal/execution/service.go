// Package execution records execution orders and forwards them for booking.
package execution

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service is the keyed store of execution orders, keyed by product.
type Service struct {
	orders    map[schema.ProductID]schema.ExecutionOrder
	listeners bus.ListenerSet[schema.ExecutionOrder]
	listener  *AlgoListener
}

var _ bus.Service[schema.ProductID, schema.ExecutionOrder] = (*Service)(nil)

func New() *Service {
	s := &Service{orders: make(map[schema.ProductID]schema.ExecutionOrder)}
	s.listener = &AlgoListener{service: s}
	return s
}

// Get returns the latest recorded execution order for a product.
func (s *Service) Get(id schema.ProductID) (schema.ExecutionOrder, error) {
	order, ok := s.orders[id]
	if !ok {
		return schema.ExecutionOrder{}, bus.ErrNotFound
	}
	return order, nil
}

// OnMessage stores the execution order and fans it out.
func (s *Service) OnMessage(order schema.ExecutionOrder) {
	s.orders[order.Product.ID] = order
	s.listeners.AnnounceAdd(order)
}

func (s *Service) AddListener(l bus.Listener[schema.ExecutionOrder]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.ExecutionOrder] {
	return s.listeners.All()
}

// Listener returns the listener to register on the algo execution service.
func (s *Service) Listener() *AlgoListener {
	return s.listener
}

// ExecuteOrder records an order and notifies downstream consumers.
func (s *Service) ExecuteOrder(order schema.ExecutionOrder) {
	s.OnMessage(order)
}

// AlgoListener forwards algo-generated executions into the service.
type AlgoListener struct {
	bus.NopListener[schema.ExecutionOrder]
	service *Service
}

func (l *AlgoListener) OnAdd(order schema.ExecutionOrder) {
	l.service.ExecuteOrder(order)
}
