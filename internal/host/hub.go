package host

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rostart/rostart/internal/errdefs"
	"github.com/rostart/rostart/internal/log"
)

// DefaultBuffer is the channel size used when Subscribe is given zero.
const DefaultBuffer = 64

// Sink receives every dispatched intent. Sinks must return quickly; long
// running work belongs in a goroutine owned by the sink.
type Sink interface {
	Handle(ctx context.Context, in Intent) error
}

type SinkFunc func(ctx context.Context, in Intent) error

func (f SinkFunc) Handle(ctx context.Context, in Intent) error { return f(ctx, in) }

// Publisher pushes notifications towards the wizard.
type Publisher interface {
	Publish(n Notification)
}

// Subscription is a typed notification feed. It stays registered until
// Unsubscribe is called.
type Subscription struct {
	id   uint64
	ch   chan Notification
	hub  *Hub
	once sync.Once
}

// C delivers notifications in publish order. It is closed by Unsubscribe.
func (s *Subscription) C() <-chan Notification { return s.ch }

func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.remove(s.id)
	})
}

type namedSink struct {
	name string
	sink Sink
}

// Hub routes intents to sinks and notifications to subscribers.
type Hub struct {
	subMutex    sync.RWMutex
	subscribers map[uint64]*Subscription
	nextID      uint64

	sinkMutex sync.RWMutex
	sinks     []namedSink
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint64]*Subscription),
	}
}

func (h *Hub) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	h.subMutex.Lock()
	defer h.subMutex.Unlock()

	h.nextID++
	sub := &Subscription{
		id:  h.nextID,
		ch:  make(chan Notification, buffer),
		hub: h,
	}
	h.subscribers[sub.id] = sub
	return sub
}

func (h *Hub) remove(id uint64) {
	h.subMutex.Lock()
	if sub, ok := h.subscribers[id]; ok {
		close(sub.ch)
		delete(h.subscribers, id)
	}
	h.subMutex.Unlock()
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.subMutex.RLock()
	defer h.subMutex.RUnlock()
	return len(h.subscribers)
}

// Publish never blocks. A subscriber whose buffer is full misses n.
func (h *Hub) Publish(n Notification) {
	if n == nil {
		return
	}

	h.subMutex.RLock()
	defer h.subMutex.RUnlock()

	for id, sub := range h.subscribers {
		select {
		case sub.ch <- n:
		default:
			log.Warnf("Dropping %s notification for subscriber %d: buffer full", n.Kind(), id)
		}
	}
}

// AddSink registers s under name, replacing any sink with the same name.
func (h *Hub) AddSink(name string, s Sink) {
	h.sinkMutex.Lock()
	defer h.sinkMutex.Unlock()

	for i := range h.sinks {
		if h.sinks[i].name == name {
			h.sinks[i].sink = s
			return
		}
	}
	h.sinks = append(h.sinks, namedSink{name: name, sink: s})
}

func (h *Hub) RemoveSink(name string) {
	h.sinkMutex.Lock()
	defer h.sinkMutex.Unlock()

	for i := range h.sinks {
		if h.sinks[i].name == name {
			h.sinks = append(h.sinks[:i], h.sinks[i+1:]...)
			return
		}
	}
}

// Dispatch hands in to every registered sink. With no sinks the intent has
// nowhere to go and ErrHostUnavailable is returned.
func (h *Hub) Dispatch(ctx context.Context, in Intent) error {
	h.sinkMutex.RLock()
	sinks := make([]namedSink, len(h.sinks))
	copy(sinks, h.sinks)
	h.sinkMutex.RUnlock()

	log.Debugf("Dispatching %s (id=%s) to %d sink(s)", in.URL(), in.ID, len(sinks))

	if len(sinks) == 0 {
		return fmt.Errorf("%w: no sink for %s", errdefs.ErrHostUnavailable, in.Action)
	}

	var errs []error
	for _, s := range sinks {
		if err := s.sink.Handle(ctx, in); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every subscription.
func (h *Hub) Close() {
	h.subMutex.Lock()
	defer h.subMutex.Unlock()

	for id, sub := range h.subscribers {
		close(sub.ch)
		delete(h.subscribers, id)
	}
}
