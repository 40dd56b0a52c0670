// Package inquiry runs the customer-inquiry negotiation state machine:
// RECEIVED -> QUOTED -> DONE, with REJECTED and CUSTOMER_REJECTED as
// explicit terminal states.
package inquiry

import (
	"errors"

	"main/internal/bus"
	"main/internal/schema"
)

var (
	ErrUnknownInquiry    = errors.New("inquiry not found")
	ErrInvalidTransition = errors.New("invalid inquiry state transition")
)

// Service is the keyed store of inquiries, keyed by inquiry id. The quote
// connector round-trips a published RECEIVED inquiry back as QUOTED inside
// the same OnMessage call; re-entry in QUOTED immediately lands in DONE.
type Service struct {
	inquiries map[string]schema.Inquiry
	listeners bus.ListenerSet[schema.Inquiry]
	connector bus.Connector[schema.Inquiry]
}

var _ bus.Service[string, schema.Inquiry] = (*Service)(nil)

// DefaultQuotePrice is the price the outward connector attaches to quotes.
const DefaultQuotePrice = 100.0

func New() *Service {
	s := &Service{inquiries: make(map[string]schema.Inquiry)}
	s.connector = &QuoteConnector{service: s, price: DefaultQuotePrice}
	return s
}

// SetQuotePrice rebuilds the outward connector with a different quote price.
func (s *Service) SetQuotePrice(price float64) {
	s.connector = &QuoteConnector{service: s, price: price}
}

// Get returns an inquiry by id.
func (s *Service) Get(id string) (schema.Inquiry, error) {
	inq, ok := s.inquiries[id]
	if !ok {
		return schema.Inquiry{}, bus.ErrNotFound
	}
	return inq, nil
}

// OnMessage dispatches on the inquiry state. A RECEIVED inquiry is stored,
// published outward, and announced; by the time listeners run, the quote
// round-trip has already driven the stored state to DONE, so listeners see
// the final state. A QUOTED inquiry transitions to DONE with no
// announcement. Terminal states are stored as-is.
func (s *Service) OnMessage(inq schema.Inquiry) {
	switch inq.State {
	case schema.Received:
		s.inquiries[inq.ID] = inq
		if s.connector != nil {
			_ = s.connector.Publish(inq)
		}
		s.listeners.AnnounceAdd(s.inquiries[inq.ID])
	case schema.Quoted:
		inq.State = schema.Done
		s.inquiries[inq.ID] = inq
	default:
		s.inquiries[inq.ID] = inq
	}
}

func (s *Service) AddListener(l bus.Listener[schema.Inquiry]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.Inquiry] {
	return s.listeners.All()
}

// Connector returns the outward quote connector.
func (s *Service) Connector() bus.Connector[schema.Inquiry] {
	return s.connector
}

// SetConnector swaps the outward connector. A nil connector leaves published
// inquiries in RECEIVED until an explicit quote or rejection.
func (s *Service) SetConnector(c bus.Connector[schema.Inquiry]) {
	s.connector = c
}

// SendQuote attaches a quoted price to an inquiry and re-dispatches it.
// Only an inquiry in RECEIVED accepts a quote.
func (s *Service) SendQuote(id string, price float64) error {
	inq, ok := s.inquiries[id]
	if !ok {
		return ErrUnknownInquiry
	}
	if inq.State != schema.Received {
		return ErrInvalidTransition
	}
	inq.Price = price
	s.OnMessage(inq)
	return nil
}

// RejectInquiry moves an inquiry from RECEIVED to REJECTED. The transition
// does not notify listeners. Terminal inquiries reject nothing further.
func (s *Service) RejectInquiry(id string) error {
	inq, ok := s.inquiries[id]
	if !ok {
		return ErrUnknownInquiry
	}
	if inq.State.Terminal() {
		return ErrInvalidTransition
	}
	inq.State = schema.Rejected
	s.inquiries[id] = inq
	return nil
}
