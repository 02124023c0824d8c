package engine

import (
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
)

// Gate rejection reasons, attached as "reason" metadata
const (
	ReasonUnknownForm        = "unknown_form"
	ReasonNoGate             = "no_gate"
	ReasonAchievementMissing = "achievement_missing"
	ReasonLegendaryRequired  = "legendary_required"
	ReasonLegendaryForbidden = "legendary_forbidden"
	ReasonExhausted          = "exhausted"
	ReasonFatigued           = "fatigued"
	ReasonSourceRequired     = "source_form_required"
	ReasonUnauthorized       = "unauthorized"
	ReasonSameForm           = "same_form"
	ReasonBlocked            = "blocked"
)

// GateInput is everything a prerequisite predicate may look at
type GateInput struct {
	Definition   entities.Definition
	Achievements map[entities.FormKey]bool
	IsLegendary  bool
	Fatigued     bool
	Exhausted    bool
	Current      *entities.Definition
	Authorized   func() bool
}

// Gate is a prerequisite predicate. nil means the form may be entered.
type Gate func(in GateInput) error

// Gates maps each form to its prerequisite predicate
type Gates map[entities.FormKey]Gate

// Check evaluates the gate for in.Definition. Forms without a gate fail closed.
func (g Gates) Check(in GateInput) error {
	gate, ok := g[in.Definition.Key]
	if !ok || gate == nil {
		return reject(in, ReasonNoGate, "form has no prerequisite rule")
	}
	return gate(in)
}

func reject(in GateInput, reason, message string) *errors.Error {
	return errors.FailedPrecondition(message).
		WithMeta("form", string(in.Definition.Key)).
		WithMeta("reason", reason)
}

// All passes when every gate passes and reports the first rejection
func All(gates ...Gate) Gate {
	return func(in GateInput) error {
		for _, gate := range gates {
			if err := gate(in); err != nil {
				return err
			}
		}
		return nil
	}
}

// Achieved requires the achievement flag for key
func Achieved(key entities.FormKey) Gate {
	return func(in GateInput) error {
		if !in.Achievements[key] {
			return reject(in, ReasonAchievementMissing, "achievement "+string(key)+" not unlocked").
				WithMeta("achievement", string(key))
		}
		return nil
	}
}

// Legendary requires the legendary flag to equal want
func Legendary(want bool) Gate {
	return func(in GateInput) error {
		switch {
		case want && !in.IsLegendary:
			return reject(in, ReasonLegendaryRequired, "form requires the legendary trait")
		case !want && in.IsLegendary:
			return reject(in, ReasonLegendaryForbidden, "form is unavailable to legendary players")
		}
		return nil
	}
}

// NotExhausted rejects while a transformation exhaustion lockout is active
func NotExhausted() Gate {
	return func(in GateInput) error {
		if in.Exhausted {
			return reject(in, ReasonExhausted, "exhausted from transforming")
		}
		return nil
	}
}

// NotFatigued rejects while an intensity fatigue lockout is active
func NotFatigued() Gate {
	return func(in GateInput) error {
		if in.Fatigued {
			return reject(in, ReasonFatigued, "fatigued from intensity use")
		}
		return nil
	}
}

// HoldingOneOf requires the entity to currently hold one of keys
func HoldingOneOf(keys ...entities.FormKey) Gate {
	return func(in GateInput) error {
		if in.Current != nil {
			for _, key := range keys {
				if in.Current.Key == key {
					return nil
				}
			}
		}
		return reject(in, ReasonSourceRequired, "form must be entered from a source form")
	}
}

// Authorized defers to the external authorization check
func Authorized() Gate {
	return func(in GateInput) error {
		if in.Authorized == nil || !in.Authorized() {
			return errors.PermissionDenied("form requires authorization").
				WithMeta("form", string(in.Definition.Key)).
				WithMeta("reason", ReasonUnauthorized)
		}
		return nil
	}
}

// DefaultGates derives the gate table from each form's branch and tier
func DefaultGates(r *Registry) Gates {
	gates := make(Gates, r.Len())
	for _, def := range r.All() {
		gates[def.Key] = gateFor(r, def)
	}
	return gates
}

func gateFor(r *Registry, def entities.Definition) Gate {
	switch def.Branch {
	case entities.BranchEscalation:
		if prev, ok := r.Neighbor(def.Key, -1); ok {
			return All(Achieved(prev.Prerequisite), Achieved(def.Prerequisite), Legendary(false), NotExhausted())
		}
		return All(Achieved(def.Prerequisite), NotExhausted())
	case entities.BranchLegendaryEscalation:
		return All(Legendary(true), Achieved(def.Prerequisite), NotExhausted())
	case entities.BranchAscension:
		return All(HoldingOneOf(def.Sources...), Achieved(def.Prerequisite), NotExhausted())
	case entities.BranchIntensity:
		if def.Tier > 1 {
			return All(Achieved(def.Prerequisite), NotFatigued(), NotExhausted())
		}
		return All(Achieved(def.Prerequisite), NotFatigued())
	case entities.BranchRestricted:
		return Authorized()
	}
	return nil
}
