package transformation

//go:generate mockgen -destination=mock/mock_collaborators.go -package=transformationmock github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation Conditions,Authorizer,TraitLookup,Broadcaster

import (
	"context"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

// Conditions reports external states that block transforming
type Conditions interface {
	IsImmobilized(entityID string) bool
	IsResourceDepleted(entityID string) bool
}

// Authorizer decides access to restricted forms
type Authorizer interface {
	IsAuthorized(entityID string, form entities.FormKey) bool
}

// TraitLookup reports player traits that change mastery pacing
type TraitLookup interface {
	HasSpecialTrait(entityID string) bool
}

// Broadcaster sends local form changes to peers. Delivery is fire-and-forget.
type Broadcaster interface {
	Broadcast(ctx context.Context, entityID string, form entities.FormKey, durationTicks int32)
}

type freeConditions struct{}

func (freeConditions) IsImmobilized(string) bool      { return false }
func (freeConditions) IsResourceDepleted(string) bool { return false }

type denyAll struct{}

func (denyAll) IsAuthorized(string, entities.FormKey) bool { return false }

type noTraits struct{}

func (noTraits) HasSpecialTrait(string) bool { return false }

type silent struct{}

func (silent) Broadcast(context.Context, string, entities.FormKey, int32) {}

// AllowList authorizes restricted forms for a fixed set of entity ids
type AllowList map[string]bool

// IsAuthorized reports whether entityID is on the list
func (a AllowList) IsAuthorized(entityID string, _ entities.FormKey) bool {
	return a[entityID]
}

// TraitSet marks the entity ids that carry the special mastery trait
type TraitSet map[string]bool

// HasSpecialTrait reports whether entityID carries the trait
func (t TraitSet) HasSpecialTrait(entityID string) bool {
	return t[entityID]
}
