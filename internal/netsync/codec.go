package netsync

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
)

// Wire field numbers
const (
	fieldOpcode   protowire.Number = 1
	fieldSender   protowire.Number = 2
	fieldTarget   protowire.Number = 3
	fieldFormKey  protowire.Number = 4
	fieldDuration protowire.Number = 5
)

// Marshal encodes msg in protobuf wire format. Durations are zigzag encoded
// so the persistent sentinel stays one byte.
func Marshal(msg Message) ([]byte, error) {
	if msg.Opcode != OpFormSync {
		return nil, errors.InvalidArgumentf("cannot encode opcode %s", msg.Opcode)
	}
	if msg.TargetEntityID == "" {
		return nil, errors.InvalidArgument("target entity id is required")
	}

	b := make([]byte, 0, 16+len(msg.SenderEntityID)+len(msg.TargetEntityID)+len(msg.FormKey))
	b = protowire.AppendTag(b, fieldOpcode, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(msg.Opcode))
	b = appendString(b, fieldSender, msg.SenderEntityID)
	b = appendString(b, fieldTarget, msg.TargetEntityID)
	b = appendString(b, fieldFormKey, string(msg.FormKey))
	if msg.DurationTicks != 0 {
		b = protowire.AppendTag(b, fieldDuration, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(msg.DurationTicks)))
	}
	return b, nil
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// Unmarshal decodes a message. Unknown fields are skipped; a payload without
// the FormSync opcode is rejected.
func Unmarshal(b []byte) (Message, error) {
	var msg Message

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Message{}, malformed(protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldOpcode && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Message{}, malformed(protowire.ParseError(n))
			}
			msg.Opcode = Opcode(v)
			b = b[n:]
		case num == fieldDuration && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return Message{}, malformed(protowire.ParseError(n))
			}
			d := protowire.DecodeZigZag(v)
			if d < math.MinInt32 || d > math.MaxInt32 {
				return Message{}, errors.InvalidArgumentf("duration %d is out of range", d)
			}
			msg.DurationTicks = int32(d)
			b = b[n:]
		case (num == fieldSender || num == fieldTarget || num == fieldFormKey) && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return Message{}, malformed(protowire.ParseError(n))
			}
			switch num {
			case fieldSender:
				msg.SenderEntityID = v
			case fieldTarget:
				msg.TargetEntityID = v
			default:
				msg.FormKey = entities.FormKey(v)
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Message{}, malformed(protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if msg.Opcode != OpFormSync {
		return Message{}, errors.InvalidArgumentf("unexpected opcode %s", msg.Opcode)
	}
	if msg.TargetEntityID == "" {
		return Message{}, errors.InvalidArgument("target entity id is required")
	}
	return msg, nil
}

func malformed(err error) error {
	return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed form sync payload")
}
