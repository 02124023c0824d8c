package transformation

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

// Event types published on the bus
const (
	EventAnnounced           = "transformation.announced"
	EventApplied             = "transformation.applied"
	EventCleared             = "transformation.cleared"
	EventAchievementUnlocked = "transformation.achievement_unlocked"
)

// Event context keys
const (
	ContextKeyEntityID = "entity_id"
	ContextKeyForm     = "form"
	ContextKeyText     = "text"
	ContextKeyColor    = "color"
	ContextKeyRemote   = "remote"
)

// NewAchievementUnlockedEvent builds the event an achievement source (an item,
// a quest) publishes to unlock form for entityID
func NewAchievementUnlockedEvent(entityID string, form entities.FormKey) events.Event {
	player := &entities.PlayerEntity{ID: entityID}
	e := events.NewGameEvent(EventAchievementUnlocked, player, player)
	e.Context().Set(ContextKeyEntityID, entityID)
	e.Context().Set(ContextKeyForm, string(form))
	return e
}

// FormFromEvent reads the form key carried by a transformation event
func FormFromEvent(e events.Event) (entities.FormKey, bool) {
	raw, ok := e.Context().Get(ContextKeyForm)
	if !ok {
		return "", false
	}
	form, ok := raw.(string)
	return entities.FormKey(form), ok && form != ""
}

// EntityFromEvent reads the player id carried by a transformation event
func EntityFromEvent(e events.Event) (string, bool) {
	raw, ok := e.Context().Get(ContextKeyEntityID)
	if !ok {
		return "", false
	}
	id, ok := raw.(string)
	return id, ok && id != ""
}

func (c *Controller) publish(ctx context.Context, eventType string, form entities.FormKey, extra map[string]any) {
	e := events.NewGameEvent(eventType, c.entity, c.entity)
	e.Context().Set(ContextKeyEntityID, c.entityID)
	e.Context().Set(ContextKeyForm, string(form))
	for k, v := range extra {
		e.Context().Set(k, v)
	}

	if err := c.bus.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish transformation event",
			"entity_id", c.entityID,
			"event_type", eventType,
			"form", form,
			"error", err,
		)
	}
}
