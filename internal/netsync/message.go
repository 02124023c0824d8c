// Package netsync replicates form changes between peers of a shared session.
//
// Only an entity's authoritative owner broadcasts. Receivers apply messages
// directly, bypassing gates, and never re-broadcast. Delivery is
// fire-and-forget: there are no acknowledgements, retries or ordering
// guarantees, so a lost message leaves peers diverged until the next change.
package netsync

import (
	"fmt"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

// Opcode identifies the message kind on the wire
type Opcode uint32

// Opcodes
const (
	OpUnspecified Opcode = 0
	OpFormSync    Opcode = 1
)

// String returns the opcode name
func (o Opcode) String() string {
	switch o {
	case OpFormSync:
		return "FormSync"
	case OpUnspecified:
		return "Unspecified"
	default:
		return fmt.Sprintf("Opcode(%d)", uint32(o))
	}
}

// Message announces that TargetEntityID now holds FormKey. DurationTicks 0
// clears the form; entities.PersistentDuration holds it until cleared.
type Message struct {
	Opcode         Opcode
	SenderEntityID string
	TargetEntityID string
	FormKey        entities.FormKey
	DurationTicks  int32
}

// IsClear reports whether the message removes the target's form
func (m Message) IsClear() bool {
	return m.DurationTicks == 0
}
