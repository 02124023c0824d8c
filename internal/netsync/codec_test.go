package netsync_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/netsync"
)

type CodecTestSuite struct {
	suite.Suite
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) TestRoundTrip() {
	testCases := []struct {
		name string
		msg  netsync.Message
	}{
		{
			name: "persistent form",
			msg: netsync.Message{
				Opcode:         netsync.OpFormSync,
				SenderEntityID: "player-1",
				TargetEntityID: "player-1",
				FormKey:        "ssj2",
				DurationTicks:  entities.PersistentDuration,
			},
		},
		{
			name: "clear",
			msg: netsync.Message{
				Opcode:         netsync.OpFormSync,
				SenderEntityID: "player-1",
				TargetEntityID: "player-1",
				FormKey:        "kaioken",
			},
		},
		{
			name: "timed form",
			msg: netsync.Message{
				Opcode:         netsync.OpFormSync,
				TargetEntityID: "player-2",
				FormKey:        "lssj",
				DurationTicks:  54000,
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			b, err := netsync.Marshal(tc.msg)
			s.Require().NoError(err)

			got, err := netsync.Unmarshal(b)
			s.Require().NoError(err)
			s.Equal(tc.msg, got)
			s.Equal(tc.msg.DurationTicks == 0, got.IsClear())
		})
	}
}

func (s *CodecTestSuite) TestWireLayout() {
	b, err := netsync.Marshal(netsync.Message{
		Opcode:         netsync.OpFormSync,
		TargetEntityID: "p",
		DurationTicks:  -1,
	})
	s.Require().NoError(err)

	// opcode=1, target="p", duration=zigzag(-1)
	s.Equal([]byte{0x08, 0x01, 0x1a, 0x01, 'p', 0x28, 0x01}, b)
}

func (s *CodecTestSuite) TestUnknownFieldsAreSkipped() {
	b, err := netsync.Marshal(netsync.Message{
		Opcode:         netsync.OpFormSync,
		TargetEntityID: "player-1",
		FormKey:        "ssj1",
	})
	s.Require().NoError(err)

	b = protowire.AppendTag(b, 9, protowire.BytesType)
	b = protowire.AppendString(b, "future field")
	b = protowire.AppendTag(b, 10, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)

	got, err := netsync.Unmarshal(b)
	s.Require().NoError(err)
	s.Equal(entities.FormKey("ssj1"), got.FormKey)
}

func (s *CodecTestSuite) TestUnmarshalRejects() {
	withoutOpcode := protowire.AppendTag(nil, 3, protowire.BytesType)
	withoutOpcode = protowire.AppendString(withoutOpcode, "player-1")

	wrongOpcode := protowire.AppendTag(nil, 1, protowire.VarintType)
	wrongOpcode = protowire.AppendVarint(wrongOpcode, 7)
	wrongOpcode = append(wrongOpcode, withoutOpcode...)

	withoutTarget := protowire.AppendTag(nil, 1, protowire.VarintType)
	withoutTarget = protowire.AppendVarint(withoutTarget, 1)

	oversized := append([]byte{}, withoutTarget...)
	oversized = append(oversized, withoutOpcode...)
	oversized = protowire.AppendTag(oversized, 5, protowire.VarintType)
	oversized = protowire.AppendVarint(oversized, protowire.EncodeZigZag(math.MaxInt32+1))

	undersized := append([]byte{}, withoutTarget...)
	undersized = append(undersized, withoutOpcode...)
	undersized = protowire.AppendTag(undersized, 5, protowire.VarintType)
	undersized = protowire.AppendVarint(undersized, protowire.EncodeZigZag(math.MinInt32-1))

	testCases := []struct {
		name    string
		payload []byte
	}{
		{"empty", nil},
		{"missing opcode", withoutOpcode},
		{"wrong opcode", wrongOpcode},
		{"missing target", withoutTarget},
		{"truncated", []byte{0x1a, 0x05, 'a'}},
		{"bad tag", []byte{0x80}},
		{"duration above int32", oversized},
		{"duration below int32", undersized},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := netsync.Unmarshal(tc.payload)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *CodecTestSuite) TestMarshalRejects() {
	_, err := netsync.Marshal(netsync.Message{TargetEntityID: "p"})
	s.True(errors.IsInvalidArgument(err))

	_, err = netsync.Marshal(netsync.Message{Opcode: netsync.OpFormSync})
	s.True(errors.IsInvalidArgument(err))
}

func (s *CodecTestSuite) TestOpcodeString() {
	s.Equal("FormSync", netsync.OpFormSync.String())
	s.Equal("Unspecified", netsync.OpUnspecified.String())
	s.Equal("Opcode(9)", netsync.Opcode(9).String())
}
