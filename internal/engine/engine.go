package engine

import (
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
)

// Resolver walks branch ladders. It is pure: the same View always yields the
// same Step.
type Resolver struct {
	registry *Registry
}

// Config holds the dependencies for a Resolver
type Config struct {
	Registry *Registry
}

// Validate ensures the config is usable
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Registry == nil {
		vb.RequiredField("Registry")
	}
	return vb.Build()
}

// New creates a Resolver over the registry
func New(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{registry: cfg.Registry}, nil
}

// NextStep returns the form one step up from the active one
func (r *Resolver) NextStep(view View) (Step, bool) {
	if view.Active == nil {
		first, ok := r.registry.First(entities.BranchEscalation)
		return Step{Form: first}, ok
	}

	current, ok := r.registry.Get(*view.Active)
	if !ok {
		return Step{}, false
	}

	if current.Branch == entities.BranchIntensity {
		return r.amplify(current, view)
	}

	if !r.walkable(current, view) {
		return Step{}, false
	}
	next, ok := r.registry.Neighbor(current.Key, 1)
	return Step{Form: next}, ok
}

// PreviousStep returns the form one step down from the active one. Intensity
// forms never step down.
func (r *Resolver) PreviousStep(view View) (Step, bool) {
	if view.Active == nil {
		return Step{}, false
	}

	current, ok := r.registry.Get(*view.Active)
	if !ok || !r.walkable(current, view) {
		return Step{}, false
	}

	prev, ok := r.registry.Neighbor(current.Key, -1)
	return Step{Form: prev}, ok
}

// amplify moves from the base intensity form to the next intensity member
// once the escalation root has been earned.
func (r *Resolver) amplify(current entities.Definition, view View) (Step, bool) {
	root, ok := r.registry.First(entities.BranchEscalation)
	if !ok || !view.Achievements[root.Prerequisite] {
		return Step{}, false
	}

	next, ok := r.registry.Neighbor(current.Key, 1)
	if !ok {
		return Step{}, false
	}
	return Step{Form: next, ResetIntensity: true}, true
}

func (r *Resolver) walkable(current entities.Definition, view View) bool {
	switch current.Branch {
	case entities.BranchAscension:
		return true
	case entities.BranchLegendaryEscalation:
		return view.IsLegendary
	case entities.BranchEscalation:
		return !view.IsLegendary
	}
	return false
}
