// Package history is the terminal persistence leg of the pipeline: generic
// sinks that timestamp and append every entity stream they observe.
package history

import (
	"time"

	"github.com/yanun0323/logs"

	"main/internal/bus"
	"main/internal/schema"
)

// Entity is anything the historical service can persist: it has a natural
// key and renders itself to a line body.
type Entity interface {
	Key() string
	Render() string
}

// Sink receives one timestamped record per persisted entity.
type Sink interface {
	Write(kind schema.PersistKind, at time.Time, key, body string) error
}

// Service stores the latest value per key and writes each incoming value
// straight through to the sink with a wall-clock timestamp. It is a pure
// write path: it never originates notifications and never reads history
// back.
type Service[V Entity] struct {
	kind      schema.PersistKind
	latest    map[string]V
	listeners bus.ListenerSet[V]
	sink      Sink
	now       func() time.Time
}

// New creates a historical sink service for one entity stream.
func New[V Entity](kind schema.PersistKind, sink Sink) *Service[V] {
	return &Service[V]{
		kind:   kind,
		latest: make(map[string]V),
		sink:   sink,
		now:    time.Now,
	}
}

// Get returns the latest persisted value for a key.
func (s *Service[V]) Get(key string) (V, error) {
	v, ok := s.latest[key]
	if !ok {
		var zero V
		return zero, bus.ErrNotFound
	}
	return v, nil
}

// OnMessage stores the latest value by key and persists it immediately.
func (s *Service[V]) OnMessage(v V) {
	s.latest[v.Key()] = v
	if s.sink == nil {
		return
	}
	if err := s.sink.Write(s.kind, s.now(), v.Key(), v.Render()); err != nil {
		logs.Errorf("persist %s record %s: %v", s.kind, v.Key(), err)
	}
}

func (s *Service[V]) AddListener(l bus.Listener[V]) {
	s.listeners.Add(l)
}

func (s *Service[V]) Listeners() []bus.Listener[V] {
	return s.listeners.All()
}

// Listener returns the listener to register on the upstream service.
func (s *Service[V]) Listener() *Listener[V] {
	return &Listener[V]{service: s}
}

// PersistData pushes one value through the write path explicitly.
func (s *Service[V]) PersistData(v V) {
	s.OnMessage(v)
}

// Listener feeds an upstream entity stream into the sink.
type Listener[V Entity] struct {
	bus.NopListener[V]
	service *Service[V]
}

func (l *Listener[V]) OnAdd(v V) {
	l.service.OnMessage(v)
}
