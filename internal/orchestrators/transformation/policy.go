package transformation

import "github.com/KirkDiggler/rpg-forms/internal/errors"

// Policy holds the tunable constants of the form rules
type Policy struct {
	// TransformTicks is how long the Transforming phase lasts
	TransformTicks int64
	// ExhaustionTicks is the fixed transformation exhaustion lockout
	ExhaustionTicks int64
	// FatigueMultiplier scales the intensity timer into a fatigue lockout
	FatigueMultiplier        float64
	MasteryTicks             int
	MasteryTicksSpecialTrait int
	MasteryIncrement         float64
	MaxIntensityLevel        int
}

// DefaultPolicy returns the stock tuning
func DefaultPolicy() Policy {
	return Policy{
		TransformTicks:           30,
		ExhaustionTicks:          600,
		FatigueMultiplier:        2,
		MasteryTicks:             300,
		MasteryTicksSpecialTrait: 150,
		MasteryIncrement:         0.01,
		MaxIntensityLevel:        20,
	}
}

// Validate checks every constant is usable
func (p Policy) Validate() error {
	vb := errors.NewValidationBuilder()

	if p.TransformTicks < 0 {
		vb.Field("TransformTicks", "must not be negative")
	}
	if p.ExhaustionTicks <= 0 {
		vb.Field("ExhaustionTicks", "must be greater than zero")
	}
	errors.ValidatePositive("FatigueMultiplier", p.FatigueMultiplier, vb)
	if p.MasteryTicks <= 0 {
		vb.Field("MasteryTicks", "must be greater than zero")
	}
	if p.MasteryTicksSpecialTrait <= 0 {
		vb.Field("MasteryTicksSpecialTrait", "must be greater than zero")
	}
	errors.ValidateFraction("MasteryIncrement", p.MasteryIncrement, vb)
	if p.MaxIntensityLevel < 1 {
		vb.Field("MaxIntensityLevel", "must be at least 1")
	}

	return vb.Build()
}
