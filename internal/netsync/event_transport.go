package netsync

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-forms/internal/errors"
)

// EventFormSync is the bus event type carrying encoded payloads
const EventFormSync = "netsync.form_sync"

// ContextKeyPayload holds the encoded message in the event context
const ContextKeyPayload = "payload"

// peerEntity identifies a transport endpoint on the bus
type peerEntity struct {
	id string
}

func (p *peerEntity) GetID() string   { return p.id }
func (p *peerEntity) GetType() string { return "session" }

// EventTransport carries payloads between sessions that share an
// rpg-toolkit event bus in one process
type EventTransport struct {
	bus  events.EventBus
	peer *peerEntity

	mu            sync.Mutex
	subscriptions []string
}

// NewEventTransport creates a transport publishing as peerID on bus
func NewEventTransport(bus events.EventBus, peerID string) (*EventTransport, error) {
	if bus == nil {
		return nil, errors.InvalidArgument("event bus is required")
	}
	if peerID == "" {
		return nil, errors.InvalidArgument("peer id is required")
	}
	return &EventTransport{bus: bus, peer: &peerEntity{id: peerID}}, nil
}

// Send publishes payload to every subscriber, including this peer
func (t *EventTransport) Send(ctx context.Context, payload []byte) error {
	e := events.NewGameEvent(EventFormSync, t.peer, t.peer)
	e.Context().Set(ContextKeyPayload, append([]byte(nil), payload...))
	return t.bus.Publish(ctx, e)
}

// Subscribe registers deliver for every payload published on the bus
func (t *EventTransport) Subscribe(deliver func(payload []byte)) {
	id := t.bus.SubscribeFunc(EventFormSync, 0, func(_ context.Context, e events.Event) error {
		raw, ok := e.Context().Get(ContextKeyPayload)
		if !ok {
			return nil
		}
		if payload, ok := raw.([]byte); ok {
			deliver(payload)
		}
		return nil
	})

	t.mu.Lock()
	t.subscriptions = append(t.subscriptions, id)
	t.mu.Unlock()
}

// Close removes every subscription this transport registered
func (t *EventTransport) Close() error {
	t.mu.Lock()
	ids := t.subscriptions
	t.subscriptions = nil
	t.mu.Unlock()

	for _, id := range ids {
		if err := t.bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	return nil
}
