package engine

import "github.com/KirkDiggler/rpg-forms/internal/entities"

// Form keys of the default catalog
const (
	FormKaioken      entities.FormKey = "kaioken"
	FormSuperKaioken entities.FormKey = "super_kaioken"
	FormSSJ1         entities.FormKey = "ssj1"
	FormSSJ2         entities.FormKey = "ssj2"
	FormSSJ3         entities.FormKey = "ssj3"
	FormSSJG         entities.FormKey = "ssjg"
	FormLSSJ         entities.FormKey = "lssj"
	FormLSSJ2        entities.FormKey = "lssj2"
	FormASSJ         entities.FormKey = "assj"
	FormUSSJ         entities.FormKey = "ussj"
	FormSpectrum     entities.FormKey = "spectrum"
)

// DefaultDefinitions returns the stock catalog in registry order
func DefaultDefinitions() []entities.Definition {
	return []entities.Definition{
		{
			Key:          FormKaioken,
			DisplayName:  "Kaioken",
			Branch:       entities.BranchIntensity,
			Tier:         1,
			Prerequisite: FormKaioken,
			Aura:         "aura_kaioken",
		},
		{
			Key:          FormSuperKaioken,
			DisplayName:  "Super Kaioken",
			Branch:       entities.BranchIntensity,
			Tier:         2,
			Prerequisite: FormKaioken,
			// the amplified intensity form trains the first escalation meter
			MasteryTrack: FormSSJ1,
			Announce:     entities.Announcement{Text: "Super Kaioken!", Color: "#ff3c3c"},
			Aura:         "aura_super_kaioken",
		},
		{
			Key:          FormSSJ1,
			DisplayName:  "Super Saiyan",
			Branch:       entities.BranchEscalation,
			Tier:         1,
			Prerequisite: FormSSJ1,
			MasteryTrack: FormSSJ1,
			Announce:     entities.Announcement{Text: "Super Saiyan!", Color: "#ffe14d"},
			Aura:         "aura_ssj1",
		},
		{
			Key:          FormSSJ2,
			DisplayName:  "Super Saiyan 2",
			Branch:       entities.BranchEscalation,
			Tier:         2,
			Prerequisite: FormSSJ2,
			MasteryTrack: FormSSJ2,
			Announce:     entities.Announcement{Text: "Super Saiyan 2!", Color: "#ffd21e"},
			Aura:         "aura_ssj2",
		},
		{
			Key:          FormSSJ3,
			DisplayName:  "Super Saiyan 3",
			Branch:       entities.BranchEscalation,
			Tier:         3,
			Prerequisite: FormSSJ3,
			MasteryTrack: FormSSJ3,
			Announce:     entities.Announcement{Text: "Super Saiyan 3!", Color: "#ffbe00"},
			Aura:         "aura_ssj3",
		},
		{
			Key:          FormSSJG,
			DisplayName:  "Super Saiyan God",
			Branch:       entities.BranchEscalation,
			Tier:         4,
			Prerequisite: FormSSJG,
			Announce:     entities.Announcement{Text: "Super Saiyan God!", Color: "#ff5078"},
			Aura:         "aura_ssjg",
		},
		{
			Key:          FormLSSJ,
			DisplayName:  "Legendary Super Saiyan",
			Branch:       entities.BranchLegendaryEscalation,
			Tier:         1,
			Prerequisite: FormLSSJ,
			MasteryTrack: FormLSSJ,
			Announce:     entities.Announcement{Text: "Legendary Super Saiyan!", Color: "#50ff50"},
			Aura:         "aura_lssj",
		},
		{
			Key:          FormLSSJ2,
			DisplayName:  "Legendary Super Saiyan 2",
			Branch:       entities.BranchLegendaryEscalation,
			Tier:         2,
			Prerequisite: FormLSSJ2,
			Announce:     entities.Announcement{Text: "Legendary Super Saiyan 2!", Color: "#28dc28"},
			Aura:         "aura_lssj2",
		},
		{
			Key:          FormASSJ,
			DisplayName:  "Ascended Super Saiyan",
			Branch:       entities.BranchAscension,
			Tier:         1,
			Prerequisite: FormASSJ,
			Sources:      []entities.FormKey{FormSSJ1, FormUSSJ},
			Announce:     entities.Announcement{Text: "Ascended Super Saiyan!", Color: "#ffeb64"},
			Aura:         "aura_assj",
		},
		{
			Key:          FormUSSJ,
			DisplayName:  "Ultra Super Saiyan",
			Branch:       entities.BranchAscension,
			Tier:         2,
			Prerequisite: FormUSSJ,
			Sources:      []entities.FormKey{FormASSJ},
			Announce:     entities.Announcement{Text: "Ultra Super Saiyan!", Color: "#fff08c"},
			Aura:         "aura_ussj",
		},
		{
			Key:         FormSpectrum,
			DisplayName: "Spectrum",
			Branch:      entities.BranchRestricted,
			Tier:        1,
			Announce:    entities.Announcement{Text: "Spectrum!", Color: "#b45aff"},
			Aura:        "aura_spectrum",
		},
	}
}

// DefaultRegistry builds the stock catalog. It panics only if the catalog
// above is malformed.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultDefinitions()...)
	if err != nil {
		panic(err)
	}
	return r
}
