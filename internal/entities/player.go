package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// MasteryProgress is the persisted meter for one mastery track
type MasteryProgress struct {
	Level float64 `json:"level"`
	Timer int     `json:"timer"`
}

// PlayerRecord is the persisted portion of a player's transformation state
type PlayerRecord struct {
	EntityID     string                      `json:"entity_id"`
	Achievements map[FormKey]bool            `json:"achievements"`
	IsLegendary  bool                        `json:"is_legendary"`
	Mastery      map[FormKey]MasteryProgress `json:"mastery"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// NewPlayerRecord returns an empty record for a player seen for the first time
func NewPlayerRecord(entityID string) *PlayerRecord {
	return &PlayerRecord{
		EntityID:     entityID,
		Achievements: make(map[FormKey]bool),
		Mastery:      make(map[FormKey]MasteryProgress),
	}
}

// Clone returns a deep copy of the record
func (r *PlayerRecord) Clone() *PlayerRecord {
	if r == nil {
		return nil
	}

	out := &PlayerRecord{
		EntityID:     r.EntityID,
		IsLegendary:  r.IsLegendary,
		UpdatedAt:    r.UpdatedAt,
		Achievements: make(map[FormKey]bool, len(r.Achievements)),
		Mastery:      make(map[FormKey]MasteryProgress, len(r.Mastery)),
	}
	for k, v := range r.Achievements {
		out.Achievements[k] = v
	}
	for k, v := range r.Mastery {
		out.Mastery[k] = v
	}
	return out
}

// FormSnapshot is the read-only view of a player's form published at tick
// boundaries for observers such as the renderer or the admin API.
type FormSnapshot struct {
	EntityID       string   `json:"entity_id"`
	Tick           int64    `json:"tick"`
	ActiveForm     *FormKey `json:"active_form,omitempty"`
	Aura           AuraID   `json:"aura,omitempty"`
	IntensityLevel int      `json:"intensity_level"`
	IsTransforming bool     `json:"is_transforming"`
	Fatigued       bool     `json:"fatigued"`
	Exhausted      bool     `json:"exhausted"`
	Authoritative  bool     `json:"authoritative"`
}

var _ core.Entity = (*PlayerEntity)(nil)

// PlayerEntity identifies a player on the event bus
type PlayerEntity struct {
	ID string
}

// GetID returns the player's entity id
func (p *PlayerEntity) GetID() string {
	return p.ID
}

// GetType returns the entity type for rpg-toolkit
func (p *PlayerEntity) GetType() string {
	return "player"
}
