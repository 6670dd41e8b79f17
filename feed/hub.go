// Package feed fans simulation events out to a session's live subscribers.
// Delivery is one-way and best-effort: a subscriber that stops draining its
// channel loses events rather than blocking the publisher.
package feed

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tifye/climateclock/assert"
)

type EventType string

const (
	// EventResult carries the end-of-horizon metrics after a recompute.
	EventResult EventType = "result"
	// EventWin fires once per transition into the winning region.
	EventWin EventType = "win"
)

type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

const subscriberBuffer = 8

type Subscriber struct {
	id uint64
	ch chan Event
}

// Events is the subscriber's receive channel. It is closed on Unsubscribe.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

type Hub struct {
	logger *log.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]*Subscriber
}

func NewHub(logger *log.Logger) *Hub {
	assert.AssertNotNil(logger)
	return &Hub{
		logger: logger,
		subs:   map[string]map[uint64]*Subscriber{},
	}
}

// Subscribe registers a new subscriber for a session's events.
func (h *Hub) Subscribe(sessionID string) *Subscriber {
	assert.AssertNotEmpty(sessionID)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscriber{
		id: h.nextID,
		ch: make(chan Event, subscriberBuffer),
	}

	if h.subs[sessionID] == nil {
		h.subs[sessionID] = map[uint64]*Subscriber{}
	}
	h.subs[sessionID][sub.id] = sub
	return sub
}

// Unsubscribe removes a subscriber and closes its channel. Unsubscribing
// twice or with an unknown session is a noop.
func (h *Hub) Unsubscribe(sessionID string, sub *Subscriber) {
	assert.AssertNotNil(sub)

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subs[sessionID]
	if !ok {
		return
	}
	if _, ok := subs[sub.id]; !ok {
		return
	}

	delete(subs, sub.id)
	if len(subs) == 0 {
		delete(h.subs, sessionID)
	}
	close(sub.ch)
}

// Publish delivers an event to every subscriber of a session. Subscribers
// with a full buffer are skipped.
func (h *Hub) Publish(sessionID string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[sessionID] {
		select {
		case sub.ch <- ev:
		default:
			h.logger.Debug("dropping event for slow subscriber", "session", sessionID, "type", ev.Type)
		}
	}
}

// SubscriberCount reports how many live subscribers a session has.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
