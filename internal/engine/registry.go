package engine

import (
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
)

// Registry is the immutable catalog of form definitions grouped into branch
// ladders. Build one with NewRegistry and pass it to every component that
// needs it.
type Registry struct {
	defs    []entities.Definition
	byKey   map[entities.FormKey]int
	ladders map[entities.Branch][]int
}

// NewRegistry validates and indexes the given definitions. Insertion order is
// both the All order and the ladder order within each branch.
func NewRegistry(defs ...entities.Definition) (*Registry, error) {
	r := &Registry{
		defs:    make([]entities.Definition, 0, len(defs)),
		byKey:   make(map[entities.FormKey]int, len(defs)),
		ladders: make(map[entities.Branch][]int),
	}

	vb := errors.NewValidationBuilder()
	for i, def := range defs {
		field := string(def.Key)
		if def.Key == "" {
			vb.Fieldf("definitions", "entry %d has no key", i)
			continue
		}
		if _, exists := r.byKey[def.Key]; exists {
			vb.Field(field, "is registered more than once")
			continue
		}
		if !def.Branch.IsValid() {
			vb.InvalidField(field, "unknown branch "+string(def.Branch))
			continue
		}

		def.Sources = append([]entities.FormKey(nil), def.Sources...)
		r.byKey[def.Key] = len(r.defs)
		r.ladders[def.Branch] = append(r.ladders[def.Branch], len(r.defs))
		r.defs = append(r.defs, def)

		if def.Tier != len(r.ladders[def.Branch]) {
			vb.Fieldf(field, "tier %d does not match ladder position %d", def.Tier, len(r.ladders[def.Branch]))
		}
	}

	for _, def := range r.defs {
		r.validateReferences(def, vb)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Registry) validateReferences(def entities.Definition, vb *errors.ValidationBuilder) {
	field := string(def.Key)

	switch {
	case def.Branch == entities.BranchRestricted:
		if def.Prerequisite != "" {
			vb.Field(field, "restricted forms are gated by authorization, not an achievement")
		}
	case def.Prerequisite == "":
		vb.RequiredField(field + ".prerequisite")
	case !r.has(def.Prerequisite):
		vb.InvalidField(field+".prerequisite", "unknown form "+string(def.Prerequisite))
	}

	if def.Branch == entities.BranchAscension && len(def.Sources) == 0 {
		vb.RequiredField(field + ".sources")
	}
	if def.Branch != entities.BranchAscension && len(def.Sources) > 0 {
		vb.Field(field+".sources", "only ascension forms have source forms")
	}
	for _, src := range def.Sources {
		if !r.has(src) {
			vb.InvalidField(field+".sources", "unknown form "+string(src))
		}
	}

	if def.HasMasteryTrack() && !r.has(def.MasteryTrack) {
		vb.InvalidField(field+".mastery_track", "unknown form "+string(def.MasteryTrack))
	}
}

func (r *Registry) has(key entities.FormKey) bool {
	_, ok := r.byKey[key]
	return ok
}

// Get returns the definition for key. An unknown key reports false.
func (r *Registry) Get(key entities.FormKey) (entities.Definition, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return entities.Definition{}, false
	}
	return r.clone(idx), true
}

// All returns every definition in insertion order. Each call returns a fresh slice.
func (r *Registry) All() []entities.Definition {
	out := make([]entities.Definition, len(r.defs))
	for i := range r.defs {
		out[i] = r.clone(i)
	}
	return out
}

// Len returns the number of registered forms
func (r *Registry) Len() int {
	return len(r.defs)
}

// BranchMembers returns the ordered ladder for branch
func (r *Registry) BranchMembers(branch entities.Branch) []entities.Definition {
	ladder := r.ladders[branch]
	out := make([]entities.Definition, len(ladder))
	for i, idx := range ladder {
		out[i] = r.clone(idx)
	}
	return out
}

// Index returns the position of def within its ladder, or -1
func (r *Registry) Index(def entities.Definition) int {
	idx, ok := r.byKey[def.Key]
	if !ok {
		return -1
	}
	for pos, member := range r.ladders[r.defs[idx].Branch] {
		if member == idx {
			return pos
		}
	}
	return -1
}

// Neighbor returns the ladder member offset positions away from key.
// Walking past either end reports false; ladders never wrap.
func (r *Registry) Neighbor(key entities.FormKey, offset int) (entities.Definition, bool) {
	def, ok := r.Get(key)
	if !ok {
		return entities.Definition{}, false
	}
	pos := r.Index(def) + offset
	ladder := r.ladders[def.Branch]
	if pos < 0 || pos >= len(ladder) {
		return entities.Definition{}, false
	}
	return r.clone(ladder[pos]), true
}

// First returns the root of branch's ladder
func (r *Registry) First(branch entities.Branch) (entities.Definition, bool) {
	ladder := r.ladders[branch]
	if len(ladder) == 0 {
		return entities.Definition{}, false
	}
	return r.clone(ladder[0]), true
}

// Aura maps a form to the visual effect the renderer should draw
func (r *Registry) Aura(key entities.FormKey) (entities.AuraID, bool) {
	idx, ok := r.byKey[key]
	if !ok || r.defs[idx].Aura == "" {
		return "", false
	}
	return r.defs[idx].Aura, true
}

func (r *Registry) clone(idx int) entities.Definition {
	def := r.defs[idx]
	def.Sources = append([]entities.FormKey(nil), def.Sources...)
	return def
}
