// Package event provides the synchronous publish/subscribe bus that carries
// view input, prompts, errors and document notifications between stormcad
// components.
//
// Delivery is synchronous and in subscription order. A subscription
// cancelled while an event is being delivered does not receive that event
// or any later one, which is what lets an input getter detach itself from
// the view at the exact moment its value is resolved.
package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/stormcad/internal/event/topic"
)

// Handler receives the payload of a published event.
type Handler func(t topic.Topic, payload any)

// PanicHandler is called when a handler panics.
type PanicHandler func(t topic.Topic, payload any, recovered any)

// Subscription represents an active event subscription.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() topic.Topic

	// IsActive returns true until the subscription is cancelled.
	IsActive() bool

	// Cancel permanently cancels the subscription. It is safe to call more
	// than once and from within a handler.
	Cancel()
}

type subscription struct {
	id      string
	pattern topic.Topic
	handler Handler
	active  atomic.Bool
	bus     *Bus
}

func (s *subscription) ID() string         { return s.id }
func (s *subscription) Topic() topic.Topic { return s.pattern }
func (s *subscription) IsActive() bool     { return s.active.Load() }

func (s *subscription) Cancel() {
	if s.active.Swap(false) {
		s.bus.remove(s)
	}
}

// Option configures a Bus.
type Option func(*Bus)

// WithPanicHandler sets the handler invoked when a subscriber panics.
// Without one, the panic is recovered and dropped.
func WithPanicHandler(h PanicHandler) Option {
	return func(b *Bus) {
		b.panicHandler = h
	}
}

// Bus is a synchronous topic-based event bus. It is safe for concurrent use.
type Bus struct {
	mu           sync.RWMutex
	subs         []*subscription
	panicHandler PanicHandler

	published atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler) (Subscription, error) {
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: handler,
		bus:     b,
	}
	sub.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub, nil
}

// SubscribeTyped registers fn for payloads of type T published on topics
// matching pattern. Payloads of other types are ignored.
func SubscribeTyped[T any](b *Bus, pattern topic.Topic, fn func(T)) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, func(_ topic.Topic, payload any) {
		if v, ok := payload.(T); ok {
			fn(v)
		}
	})
}

func (b *Bus) remove(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every active subscription whose pattern
// matches t and returns the number of handlers invoked.
func (b *Bus) Publish(t topic.Topic, payload any) int {
	b.published.Add(1)

	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if t.Matches(s.pattern) {
			targets = append(targets, s)
		}
	}
	b.mu.RUnlock()

	n := 0
	for _, s := range targets {
		if !s.IsActive() {
			continue
		}
		b.deliver(s, t, payload)
		n++
	}
	b.delivered.Add(uint64(n))
	return n
}

func (b *Bus) deliver(s *subscription, t topic.Topic, payload any) {
	defer func() {
		if r := recover(); r != nil && b.panicHandler != nil {
			b.panicHandler(t, payload, r)
		}
	}()
	s.handler(t, payload)
}

// SubscriberCount returns the number of active subscriptions matching t.
func (b *Bus) SubscriberCount(t topic.Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, s := range b.subs {
		if t.Matches(s.pattern) {
			n++
		}
	}
	return n
}

// Stats reports delivery counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	Subscriptions int
}

// Stats returns the current delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		Subscriptions: n,
	}
}
