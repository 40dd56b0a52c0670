// Package gui throttles price updates and republishes the survivors to the
// GUI output file.
package gui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/yanun0323/logs"

	"main/internal/bus"
	"main/internal/history"
	"main/internal/schema"
)

// DefaultThrottle is the minimum gap between published price updates.
const DefaultThrottle = 300 * time.Millisecond

const lineTimeLayout = "2006-01-02 15:04:05.000000"

// Service drops any price update arriving within the throttle interval of
// the previous publish. Dropped updates are not queued or retried.
type Service struct {
	prices    map[schema.ProductID]schema.Price
	listeners bus.ListenerSet[schema.Price]
	listener  *PriceListener

	throttle    time.Duration
	lastPublish time.Time
	now         func() time.Time
	out         *history.AppendWriter
	dropped     uint64
}

var _ bus.Service[schema.ProductID, schema.Price] = (*Service)(nil)

// New creates a GUI service writing to the given append writer. A zero
// throttle falls back to DefaultThrottle.
func New(out *history.AppendWriter, throttle time.Duration) *Service {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	s := &Service{
		prices:   make(map[schema.ProductID]schema.Price),
		throttle: throttle,
		now:      time.Now,
		out:      out,
	}
	s.listener = &PriceListener{service: s}
	return s
}

// WithClock swaps the wall clock. Tests use this to drive the throttle.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Get returns the last published price for a product.
func (s *Service) Get(id schema.ProductID) (schema.Price, error) {
	price, ok := s.prices[id]
	if !ok {
		return schema.Price{}, bus.ErrNotFound
	}
	return price, nil
}

// OnMessage publishes the price only when the elapsed time since the last
// publish strictly exceeds the throttle interval; otherwise the update is
// dropped.
func (s *Service) OnMessage(price schema.Price) {
	now := s.now()
	if !s.lastPublish.IsZero() && now.Sub(s.lastPublish) <= s.throttle {
		s.dropped++
		return
	}
	s.lastPublish = now
	s.prices[price.Product.ID] = price
	s.publish(now, price)
	s.listeners.AnnounceAdd(price)
}

func (s *Service) AddListener(l bus.Listener[schema.Price]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.Price] {
	return s.listeners.All()
}

// Listener returns the listener to register on the pricing service.
func (s *Service) Listener() *PriceListener {
	return s.listener
}

// Dropped returns the count of throttled updates.
func (s *Service) Dropped() uint64 {
	return s.dropped
}

func (s *Service) publish(at time.Time, price schema.Price) {
	if s.out == nil {
		return
	}
	line := fmt.Sprintf("%s, %s, %s, %s",
		at.Format(lineTimeLayout),
		price.Product.ID,
		strconv.FormatFloat(price.Mid, 'f', -1, 64),
		strconv.FormatFloat(price.Spread, 'f', -1, 64))
	if err := s.out.WriteLine(line); err != nil {
		logs.Errorf("write gui line for %s: %v", price.Product.ID, err)
	}
}

// PriceListener feeds price updates into the throttle.
type PriceListener struct {
	bus.NopListener[schema.Price]
	service *Service
}

func (l *PriceListener) OnAdd(price schema.Price) {
	l.service.OnMessage(price)
}
