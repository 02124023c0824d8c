package transformation

import (
	"math"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
)

// ExhaustionManager applies the fatigue and exhaustion lockouts and advances
// mastery meters. Lockouts are stored as the tick they expire on; applying
// one again replaces its expiry rather than extending it.
type ExhaustionManager struct {
	ticks  clock.Ticks
	policy Policy
}

// NewExhaustionManager creates a manager reading time from ticks
func NewExhaustionManager(ticks clock.Ticks, policy Policy) *ExhaustionManager {
	return &ExhaustionManager{ticks: ticks, policy: policy}
}

// OnPowerDown clears the transforming phase. Powering down applies no lockout.
func (m *ExhaustionManager) OnPowerDown(state *State) {
	state.IsTransforming = false
	state.TransformingUntilTick = 0
}

// ApplyIntensityFatigue locks intensity forms out for ceil(timer × multiplier)
// ticks and resets the timer. It returns the lockout length.
func (m *ExhaustionManager) ApplyIntensityFatigue(state *State, multiplier float64) int64 {
	duration := int64(math.Ceil(state.IntensityTimer * multiplier))
	state.FatigueUntilTick = m.ticks.Current() + duration
	state.IntensityTimer = 0
	return duration
}

// ApplyTransformationExhaustion applies the fixed exhaustion lockout and
// returns its length
func (m *ExhaustionManager) ApplyTransformationExhaustion(state *State) int64 {
	state.ExhaustionUntilTick = m.ticks.Current() + m.policy.ExhaustionTicks
	return m.policy.ExhaustionTicks
}

// IsFatigued reports whether the fatigue lockout is active
func (m *ExhaustionManager) IsFatigued(state *State) bool {
	return m.ticks.Current() < state.FatigueUntilTick
}

// IsExhausted reports whether the exhaustion lockout is active
func (m *ExhaustionManager) IsExhausted(state *State) bool {
	return m.ticks.Current() < state.ExhaustionUntilTick
}

// AdvanceMastery runs one tick of the mastery meter def trains. It reports
// whether the level went up.
func (m *ExhaustionManager) AdvanceMastery(state *State, def entities.Definition, hasSpecialTrait bool) bool {
	if !def.HasMasteryTrack() {
		return false
	}

	if state.Mastery == nil {
		state.Mastery = make(map[entities.FormKey]*entities.MasteryProgress)
	}
	progress, ok := state.Mastery[def.MasteryTrack]
	if !ok || progress == nil {
		progress = &entities.MasteryProgress{}
		state.Mastery[def.MasteryTrack] = progress
	}
	if progress.Level >= 1 {
		return false
	}

	threshold := m.policy.MasteryTicks
	if hasSpecialTrait {
		threshold = m.policy.MasteryTicksSpecialTrait
	}

	progress.Timer++
	if progress.Timer < threshold {
		return false
	}

	progress.Level = math.Min(1, progress.Level+m.policy.MasteryIncrement)
	progress.Timer = 0
	return true
}
