package streaming

import (
	"main/internal/bus"
	"main/internal/schema"
)

// Service republishes derived two-sided quotes to downstream consumers.
type Service struct {
	streams   map[schema.ProductID]schema.PriceStream
	listeners bus.ListenerSet[schema.PriceStream]
	listener  *AlgoListener
}

var _ bus.Service[schema.ProductID, schema.PriceStream] = (*Service)(nil)

func New() *Service {
	s := &Service{streams: make(map[schema.ProductID]schema.PriceStream)}
	s.listener = &AlgoListener{service: s}
	return s
}

// Get returns the latest published stream for a product.
func (s *Service) Get(id schema.ProductID) (schema.PriceStream, error) {
	stream, ok := s.streams[id]
	if !ok {
		return schema.PriceStream{}, bus.ErrNotFound
	}
	return stream, nil
}

// OnMessage stores the stream by product and fans it out.
func (s *Service) OnMessage(stream schema.PriceStream) {
	s.streams[stream.Product.ID] = stream
	s.listeners.AnnounceAdd(stream)
}

func (s *Service) AddListener(l bus.Listener[schema.PriceStream]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.PriceStream] {
	return s.listeners.All()
}

// Listener returns the listener to register on the algo streaming service.
func (s *Service) Listener() *AlgoListener {
	return s.listener
}

// PublishPrice republishes a derived stream.
func (s *Service) PublishPrice(stream schema.PriceStream) {
	s.OnMessage(stream)
}

// AlgoListener forwards derived quotes into the streaming service.
type AlgoListener struct {
	bus.NopListener[schema.PriceStream]
	service *Service
}

func (l *AlgoListener) OnAdd(stream schema.PriceStream) {
	l.service.PublishPrice(stream)
}
