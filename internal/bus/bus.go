// Package bus defines the service/listener/connector contracts every desk
// service is built on. Delivery is synchronous: a service invokes each
// registered listener in registration order inside its own OnMessage call.
package bus

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("key not found")

// Listener receives add, remove, and update events from a service.
// This pipeline only ever replaces by add; remove and update stay no-ops.
type Listener[V any] interface {
	OnAdd(V)
	OnRemove(V)
	OnUpdate(V)
}

// Connector moves values across the service boundary: Publish pushes a value
// to an external sink, Subscribe feeds values from an external source back
// into the owning service's OnMessage.
type Connector[V any] interface {
	Publish(V) error
	Subscribe(ctx context.Context, src io.Reader) error
}

// Service is a keyed store that fans incoming values out to its listeners.
type Service[K comparable, V any] interface {
	Get(K) (V, error)
	OnMessage(V)
	AddListener(Listener[V])
	Listeners() []Listener[V]
}

// NopListener is an embeddable no-op implementation of Listener. Concrete
// listeners embed it and override only OnAdd.
type NopListener[V any] struct{}

func (NopListener[V]) OnAdd(V)    {}
func (NopListener[V]) OnRemove(V) {}
func (NopListener[V]) OnUpdate(V) {}

// ListenerSet holds a service's listeners in registration order.
type ListenerSet[V any] struct {
	listeners []Listener[V]
}

// Add appends a listener.
func (s *ListenerSet[V]) Add(l Listener[V]) {
	if l == nil {
		return
	}
	s.listeners = append(s.listeners, l)
}

// All returns the registered listeners in registration order.
func (s *ListenerSet[V]) All() []Listener[V] {
	return s.listeners
}

// AnnounceAdd delivers an add event to every listener, in registration order,
// before returning.
func (s *ListenerSet[V]) AnnounceAdd(v V) {
	for _, l := range s.listeners {
		l.OnAdd(v)
	}
}
