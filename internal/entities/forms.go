package entities

// FormKey identifies a transformation form. It doubles as the achievement key.
type FormKey string

// AuraID identifies the visual effect the renderer draws for a form
type AuraID string

// Branch groups forms into a ladder
type Branch string

// Branches
const (
	BranchIntensity           Branch = "intensity"
	BranchEscalation          Branch = "escalation"
	BranchLegendaryEscalation Branch = "legendary_escalation"
	BranchAscension           Branch = "ascension"
	BranchRestricted          Branch = "restricted"
)

// Branches lists every branch in ladder-walk order
var Branches = []Branch{
	BranchIntensity,
	BranchEscalation,
	BranchLegendaryEscalation,
	BranchAscension,
	BranchRestricted,
}

// IsValid reports whether b is a known branch
func (b Branch) IsValid() bool {
	for _, known := range Branches {
		if b == known {
			return true
		}
	}
	return false
}

// String returns the branch name
func (b Branch) String() string {
	return string(b)
}

// PersistentDuration is the wire duration for a form that stays active until cleared
const PersistentDuration int32 = -1

// Announcement is shown when a form is entered
type Announcement struct {
	Text  string
	Color string
}

// Definition describes one transformation form. Definitions are immutable once
// registered.
type Definition struct {
	Key          FormKey
	DisplayName  string
	Branch       Branch
	Tier         int
	Prerequisite FormKey
	Sources      []FormKey
	MasteryTrack FormKey
	Announce     Announcement
	Aura         AuraID
}

// HasMasteryTrack reports whether holding the form advances a mastery meter
func (d Definition) HasMasteryTrack() bool {
	return d.MasteryTrack != ""
}

// IsIntensity reports whether the form belongs to the intensity branch
func (d Definition) IsIntensity() bool {
	return d.Branch == BranchIntensity
}

// HasSource reports whether key is one of the forms this one can be entered from
func (d Definition) HasSource(key FormKey) bool {
	for _, src := range d.Sources {
		if src == key {
			return true
		}
	}
	return false
}
