// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"go.uber.org/mock/gomock"

	transformationmock "github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation/mock"
)

// ExpectConditions makes the conditions mock report the given state for entityID on every call
func ExpectConditions(mockConditions *transformationmock.MockConditions, entityID string, immobilized, depleted bool) {
	mockConditions.EXPECT().
		IsImmobilized(entityID).
		Return(immobilized).
		AnyTimes()
	mockConditions.EXPECT().
		IsResourceDepleted(entityID).
		Return(depleted).
		AnyTimes()
}

// ExpectTrait makes the trait mock report hasTrait for entityID on every call
func ExpectTrait(mockTraits *transformationmock.MockTraitLookup, entityID string, hasTrait bool) {
	mockTraits.EXPECT().
		HasSpecialTrait(entityID).
		Return(hasTrait).
		AnyTimes()
}
