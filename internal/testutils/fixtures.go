package testutils

import (
	"time"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

// Player progress stages for testing
const (
	StageFresh          = "fresh"
	StageEscalationRoot = "escalation_root"
	StageEscalationFull = "escalation_full"
	StageLegendary      = "legendary"

	// TestEntityID is the default player id for fixtures
	TestEntityID = "player-test-001"
)

// TestUpdatedAt is the timestamp stamped on fixture records
var TestUpdatedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// CreateTestPlayerRecord creates a record with the given achievements unlocked
func CreateTestPlayerRecord(entityID string, achieved ...entities.FormKey) *entities.PlayerRecord {
	record := entities.NewPlayerRecord(entityID)
	record.UpdatedAt = TestUpdatedAt
	for _, key := range achieved {
		record.Achievements[key] = true
	}
	return record
}

// CreateTestPlayerRecordAtStage creates a record at a known point of progression
func CreateTestPlayerRecordAtStage(entityID string, stage string) *entities.PlayerRecord {
	switch stage {
	case StageEscalationRoot:
		return CreateTestPlayerRecord(entityID, "kaioken", "ssj1")
	case StageEscalationFull:
		record := CreateTestPlayerRecord(entityID, "kaioken", "ssj1", "ssj2", "ssj3", "ssjg", "assj", "ussj")
		record.Mastery["ssj1"] = entities.MasteryProgress{Level: 0.5, Timer: 12}
		return record
	case StageLegendary:
		record := CreateTestPlayerRecord(entityID, "ssj1", "lssj", "lssj2")
		record.IsLegendary = true
		record.Mastery["lssj"] = entities.MasteryProgress{Level: 0.25}
		return record
	default:
		return CreateTestPlayerRecord(entityID)
	}
}
