package event

import (
	"sync"

	"github.com/dshills/stormcad/internal/event/topic"
)

// Subscriber groups subscriptions so they can be cancelled together.
type Subscriber struct {
	bus           *Bus
	mu            sync.Mutex
	subscriptions []Subscription
	closed        bool
}

// NewSubscriber creates a Subscriber on bus.
func NewSubscriber(bus *Bus) *Subscriber {
	return &Subscriber{bus: bus}
}

// Subscribe creates a tracked subscription.
func (s *Subscriber) Subscribe(pattern topic.Topic, handler Handler) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSubscriberClosed
	}

	sub, err := s.bus.Subscribe(pattern, handler)
	if err != nil {
		return nil, err
	}
	s.subscriptions = append(s.subscriptions, sub)
	return sub, nil
}

// Count returns the number of tracked subscriptions still active.
func (s *Subscriber) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sub := range s.subscriptions {
		if sub.IsActive() {
			n++
		}
	}
	return n
}

// Close cancels every tracked subscription. Further Subscribe calls fail.
func (s *Subscriber) Close() {
	s.mu.Lock()
	subs := s.subscriptions
	s.subscriptions = nil
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}
