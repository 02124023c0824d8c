package engine_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *engine.Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = engine.DefaultRegistry()
}

func (s *RegistryTestSuite) keys(defs []entities.Definition) []entities.FormKey {
	out := make([]entities.FormKey, len(defs))
	for i, def := range defs {
		out[i] = def.Key
	}
	return out
}

func (s *RegistryTestSuite) TestAllPreservesInsertionOrder() {
	expected := []entities.FormKey{
		engine.FormKaioken, engine.FormSuperKaioken,
		engine.FormSSJ1, engine.FormSSJ2, engine.FormSSJ3, engine.FormSSJG,
		engine.FormLSSJ, engine.FormLSSJ2,
		engine.FormASSJ, engine.FormUSSJ,
		engine.FormSpectrum,
	}
	s.Equal(expected, s.keys(s.registry.All()))
	s.Equal(len(expected), s.registry.Len())
}

func (s *RegistryTestSuite) TestAllIsRestartable() {
	first := s.registry.All()
	first[0].Key = "tampered"
	first[8].Sources[0] = "tampered"

	second := s.registry.All()
	s.Equal(engine.FormKaioken, second[0].Key)
	s.Equal(engine.FormSSJ1, second[8].Sources[0])
}

func (s *RegistryTestSuite) TestBranchMembers() {
	testCases := []struct {
		branch   entities.Branch
		expected []entities.FormKey
	}{
		{entities.BranchIntensity, []entities.FormKey{engine.FormKaioken, engine.FormSuperKaioken}},
		{entities.BranchEscalation, []entities.FormKey{engine.FormSSJ1, engine.FormSSJ2, engine.FormSSJ3, engine.FormSSJG}},
		{entities.BranchLegendaryEscalation, []entities.FormKey{engine.FormLSSJ, engine.FormLSSJ2}},
		{entities.BranchAscension, []entities.FormKey{engine.FormASSJ, engine.FormUSSJ}},
		{entities.BranchRestricted, []entities.FormKey{engine.FormSpectrum}},
	}

	for _, tc := range testCases {
		s.Run(tc.branch.String(), func() {
			s.Equal(tc.expected, s.keys(s.registry.BranchMembers(tc.branch)))
		})
	}

	s.Empty(s.registry.BranchMembers(entities.Branch("unknown")))
}

func (s *RegistryTestSuite) TestGet() {
	def, ok := s.registry.Get(engine.FormSSJ2)
	s.Require().True(ok)
	s.Equal(entities.BranchEscalation, def.Branch)
	s.Equal(2, def.Tier)
	s.True(def.HasMasteryTrack())

	_, ok = s.registry.Get("ssj9")
	s.False(ok)
}

func (s *RegistryTestSuite) TestIndexAndNeighbor() {
	def, _ := s.registry.Get(engine.FormSSJ3)
	s.Equal(2, s.registry.Index(def))
	s.Equal(-1, s.registry.Index(entities.Definition{Key: "missing"}))

	next, ok := s.registry.Neighbor(engine.FormSSJ3, 1)
	s.Require().True(ok)
	s.Equal(engine.FormSSJG, next.Key)

	_, ok = s.registry.Neighbor(engine.FormSSJG, 1)
	s.False(ok)
	_, ok = s.registry.Neighbor(engine.FormSSJ1, -1)
	s.False(ok)
	_, ok = s.registry.Neighbor("missing", 1)
	s.False(ok)
}

func (s *RegistryTestSuite) TestAura() {
	aura, ok := s.registry.Aura(engine.FormLSSJ)
	s.True(ok)
	s.Equal(entities.AuraID("aura_lssj"), aura)

	_, ok = s.registry.Aura("missing")
	s.False(ok)
}

func (s *RegistryTestSuite) TestNewRegistryValidation() {
	testCases := []struct {
		name  string
		defs  []entities.Definition
		field string
	}{
		{
			name:  "missing key",
			defs:  []entities.Definition{{Branch: entities.BranchEscalation, Tier: 1}},
			field: "definitions",
		},
		{
			name: "duplicate key",
			defs: []entities.Definition{
				{Key: "a", Branch: entities.BranchEscalation, Tier: 1, Prerequisite: "a"},
				{Key: "a", Branch: entities.BranchEscalation, Tier: 2, Prerequisite: "a"},
			},
			field: "a",
		},
		{
			name:  "unknown branch",
			defs:  []entities.Definition{{Key: "a", Branch: "sideways", Tier: 1, Prerequisite: "a"}},
			field: "a",
		},
		{
			name:  "tier out of order",
			defs:  []entities.Definition{{Key: "a", Branch: entities.BranchEscalation, Tier: 2, Prerequisite: "a"}},
			field: "a",
		},
		{
			name:  "missing prerequisite",
			defs:  []entities.Definition{{Key: "a", Branch: entities.BranchEscalation, Tier: 1}},
			field: "a.prerequisite",
		},
		{
			name:  "unknown mastery track",
			defs:  []entities.Definition{{Key: "a", Branch: entities.BranchEscalation, Tier: 1, Prerequisite: "a", MasteryTrack: "b"}},
			field: "a.mastery_track",
		},
		{
			name:  "ascension without sources",
			defs:  []entities.Definition{{Key: "a", Branch: entities.BranchAscension, Tier: 1, Prerequisite: "a"}},
			field: "a.sources",
		},
		{
			name: "unknown source",
			defs: []entities.Definition{
				{Key: "a", Branch: entities.BranchAscension, Tier: 1, Prerequisite: "a", Sources: []entities.FormKey{"z"}},
			},
			field: "a.sources",
		},
		{
			name:  "restricted with achievement",
			defs:  []entities.Definition{{Key: "a", Branch: entities.BranchRestricted, Tier: 1, Prerequisite: "a"}},
			field: "a",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			registry, err := engine.NewRegistry(tc.defs...)
			s.Require().Error(err)
			s.Nil(registry)
			s.True(errors.IsInvalidArgument(err))

			fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
			s.Contains(fields, tc.field)
		})
	}
}

func (s *RegistryTestSuite) TestNewRegistryEmpty() {
	registry, err := engine.NewRegistry()
	s.Require().NoError(err)
	s.Equal(0, registry.Len())

	_, ok := registry.First(entities.BranchEscalation)
	s.False(ok)
}
