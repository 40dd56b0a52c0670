// Package streaming derives two-sided quotes from prices and republishes
// them to downstream consumers.
package streaming

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Quote sizing: visible quantity alternates between one and two lots on
// successive quotes for the same service instance, across all products.
const DefaultLotSize = 10_000_000

// AlgoService derives a two-sided quote from each price update.
type AlgoService struct {
	streams   map[schema.ProductID]schema.PriceStream
	listeners bus.ListenerSet[schema.PriceStream]
	listener  *PriceListener

	lot    int64
	parity bool
}

var _ bus.Service[schema.ProductID, schema.PriceStream] = (*AlgoService)(nil)

func NewAlgo() *AlgoService {
	s := &AlgoService{
		streams: make(map[schema.ProductID]schema.PriceStream),
		lot:     DefaultLotSize,
	}
	s.listener = &PriceListener{service: s}
	return s
}

// WithLotSize overrides the base visible lot. Non-positive lots are ignored.
func (s *AlgoService) WithLotSize(lot int64) *AlgoService {
	if lot > 0 {
		s.lot = lot
	}
	return s
}

// Get returns the latest derived stream for a product.
func (s *AlgoService) Get(id schema.ProductID) (schema.PriceStream, error) {
	stream, ok := s.streams[id]
	if !ok {
		return schema.PriceStream{}, bus.ErrNotFound
	}
	return stream, nil
}

// OnMessage stores the stream by product and fans it out.
func (s *AlgoService) OnMessage(stream schema.PriceStream) {
	s.streams[stream.Product.ID] = stream
	s.listeners.AnnounceAdd(stream)
}

func (s *AlgoService) AddListener(l bus.Listener[schema.PriceStream]) {
	s.listeners.Add(l)
}

func (s *AlgoService) Listeners() []bus.Listener[schema.PriceStream] {
	return s.listeners.All()
}

// Listener returns the listener to register on the pricing service.
func (s *AlgoService) Listener() *PriceListener {
	return s.listener
}

// PublishPrice derives the two-sided quote: bid = mid - spread/2, offer =
// mid + spread/2, hidden quantity twice the visible. The visible size parity
// is shared service state, not per-product.
func (s *AlgoService) PublishPrice(price schema.Price) {
	visible := s.lot
	if s.parity {
		visible = 2 * s.lot
	}
	s.parity = !s.parity

	bid := schema.PriceStreamOrder{
		Price:           price.Mid - price.Spread/2.0,
		VisibleQuantity: visible,
		HiddenQuantity:  2 * visible,
		Side:            schema.Bid,
	}
	offer := schema.PriceStreamOrder{
		Price:           price.Mid + price.Spread/2.0,
		VisibleQuantity: visible,
		HiddenQuantity:  2 * visible,
		Side:            schema.Offer,
	}
	s.OnMessage(schema.PriceStream{Product: price.Product, Bid: bid, Offer: offer})
}

// PriceListener feeds price updates into quote derivation.
type PriceListener struct {
	bus.NopListener[schema.Price]
	service *AlgoService
}

func (l *PriceListener) OnAdd(price schema.Price) {
	l.service.PublishPrice(price)
}
