package transformation

import (
	"time"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

// State is one player's transformation state. Achievements, IsLegendary and
// Mastery are persisted; everything else is ephemeral and starts zeroed.
type State struct {
	Achievements map[entities.FormKey]bool
	IsLegendary  bool
	Mastery      map[entities.FormKey]*entities.MasteryProgress

	ActiveForm            *entities.FormKey
	IntensityLevel        int
	IntensityTimer        float64
	FatigueUntilTick      int64
	ExhaustionUntilTick   int64
	TransformingUntilTick int64
	IsTransforming        bool
}

// NewState loads the persisted fields of record. A nil record yields a fresh state.
func NewState(record *entities.PlayerRecord) *State {
	s := &State{
		Achievements: make(map[entities.FormKey]bool),
		Mastery:      make(map[entities.FormKey]*entities.MasteryProgress),
	}
	if record == nil {
		return s
	}

	s.IsLegendary = record.IsLegendary
	for k, v := range record.Achievements {
		s.Achievements[k] = v
	}
	for k, v := range record.Mastery {
		progress := v
		s.Mastery[k] = &progress
	}
	return s
}

// Record returns the persisted view of the state
func (s *State) Record(entityID string, now time.Time) *entities.PlayerRecord {
	record := entities.NewPlayerRecord(entityID)
	record.IsLegendary = s.IsLegendary
	record.UpdatedAt = now
	for k, v := range s.Achievements {
		record.Achievements[k] = v
	}
	for k, v := range s.Mastery {
		if v != nil {
			record.Mastery[k] = *v
		}
	}
	return record
}

// Clone returns a deep copy
func (s *State) Clone() State {
	out := *s
	out.Achievements = make(map[entities.FormKey]bool, len(s.Achievements))
	for k, v := range s.Achievements {
		out.Achievements[k] = v
	}
	out.Mastery = make(map[entities.FormKey]*entities.MasteryProgress, len(s.Mastery))
	for k, v := range s.Mastery {
		if v != nil {
			progress := *v
			out.Mastery[k] = &progress
		}
	}
	if s.ActiveForm != nil {
		active := *s.ActiveForm
		out.ActiveForm = &active
	}
	return out
}

// clearIntensity zeroes the fields that only mean something while an
// intensity form is held
func (s *State) clearIntensity() {
	s.IntensityLevel = 0
	s.IntensityTimer = 0
}
