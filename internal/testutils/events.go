package testutils

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// RecordingBus is an events.EventBus that keeps every published event.
// OnPublish, when set, runs synchronously inside Publish.
type RecordingBus struct {
	mu        sync.Mutex
	published []events.Event
	OnPublish func(events.Event)
}

// Publish records the event
func (b *RecordingBus) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	b.published = append(b.published, e)
	hook := b.OnPublish
	b.mu.Unlock()

	if hook != nil {
		hook(e)
	}
	return nil
}

func (b *RecordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *RecordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *RecordingBus) Unsubscribe(_ string) error { return nil }
func (b *RecordingBus) Clear(_ string)             {}
func (b *RecordingBus) ClearAll()                  {}

// Events returns the published events of the given type, or all when eventType is empty
func (b *RecordingBus) Events(eventType string) []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []events.Event
	for _, e := range b.published {
		if eventType == "" || e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Types returns the type of every published event in order
func (b *RecordingBus) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.published))
	for i, e := range b.published {
		out[i] = e.Type()
	}
	return out
}

// Reset forgets every recorded event
func (b *RecordingBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = nil
}
