// Package engine holds the transformation catalog and the pure rules that
// walk it: the form registry, the prerequisite gate table and the
// progression resolver. Nothing in this package mutates player state.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-forms/internal/engine Progression

import "github.com/KirkDiggler/rpg-forms/internal/entities"

// Progression computes the next or previous form on an entity's ladder
type Progression interface {
	NextStep(view View) (Step, bool)
	PreviousStep(view View) (Step, bool)
}

// View is the read-only slice of player state the resolver needs
type View struct {
	Active       *entities.FormKey
	Achievements map[entities.FormKey]bool
	IsLegendary  bool
}

// Step is a resolved progression target
type Step struct {
	Form entities.Definition
	// ResetIntensity asks the caller to restart the intensity level at 1
	ResetIntensity bool
}
