// Package eventbus is the synchronous publish/subscribe channel a match uses
// to decouple simulation from presentation.
//
// A Bus belongs to one match. Emit delivers to every subscriber of the topic
// before it returns, in subscription order. A subscriber that panics is
// recovered and logged; the remaining subscribers still receive the event.
// The bus performs no cycle detection: a handler that re-emits the topic it
// is handling must bound the recursion itself.
package eventbus

import (
	"fmt"

	"github.com/automoto/doomerang-arena/shared/messages"
	"go.uber.org/zap"
)

// Handler receives an event payload.
type Handler func(payload any)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously. It is not safe for concurrent use;
// the simulation that owns it is single-threaded.
type Bus struct {
	subscribers map[messages.Topic][]subscriber
	nextID      uint64
	logger      *zap.Logger
}

// New creates an empty bus. A nil logger discards handler failures.
func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subscribers: make(map[messages.Topic][]subscriber),
		logger:      logger.Named("eventbus"),
	}
}

// Subscribe registers h for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic messages.Topic, h Handler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subscribers[topic] = append(b.subscribers[topic], subscriber{id: id, handler: h})

	return func() {
		subs := b.subscribers[topic]
		for i, s := range subs {
			if s.id == id {
				// Copy so an in-flight Emit keeps iterating its own snapshot.
				next := make([]subscriber, 0, len(subs)-1)
				next = append(next, subs[:i]...)
				next = append(next, subs[i+1:]...)
				b.subscribers[topic] = next
				return
			}
		}
	}
}

// Emit delivers payload to every subscriber of topic and returns how many
// handlers completed without panicking.
func (b *Bus) Emit(topic messages.Topic, payload any) int {
	subs := b.subscribers[topic]
	delivered := 0
	for _, s := range subs {
		if b.deliver(topic, s, payload) {
			delivered++
		}
	}
	return delivered
}

func (b *Bus) deliver(topic messages.Topic, s subscriber, payload any) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("subscriber panicked",
				zap.String("topic", string(topic)),
				zap.Uint64("subscriber", s.id),
				zap.String("panic", fmt.Sprint(r)),
			)
			ok = false
		}
	}()
	s.handler(payload)
	return true
}

// SubscriberCount returns the number of handlers registered for topic.
func (b *Bus) SubscriberCount(topic messages.Topic) int {
	return len(b.subscribers[topic])
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.subscribers = make(map[messages.Topic][]subscriber)
}

// On subscribes a typed handler. Payloads of another type are logged and
// skipped.
func On[T any](b *Bus, topic messages.Topic, fn func(T)) (unsubscribe func()) {
	return b.Subscribe(topic, func(payload any) {
		evt, ok := payload.(T)
		if !ok {
			var want T
			b.logger.Warn("payload type mismatch",
				zap.String("topic", string(topic)),
				zap.String("want", fmt.Sprintf("%T", want)),
				zap.String("got", fmt.Sprintf("%T", payload)),
			)
			return
		}
		fn(evt)
	})
}
