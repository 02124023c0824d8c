// Package player provides persistence for the long-lived part of a player's
// transformation state: achievements, legendary status and mastery meters.
package player

//go:generate mockgen -destination=mock/mock_repository.go -package=playermock github.com/KirkDiggler/rpg-forms/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
)

// Repository defines the interface for player record persistence
type Repository interface {
	// Get retrieves a record by entity ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if no record exists
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save creates or replaces a record
	// Returns errors.InvalidArgument for a nil record or empty ID
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a record
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if no record exists
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every stored record ordered by entity ID
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for getting a record
type GetInput struct {
	EntityID string
}

// GetOutput defines the output for getting a record
type GetOutput struct {
	Record *entities.PlayerRecord
}

// SaveInput defines the input for saving a record
type SaveInput struct {
	Record *entities.PlayerRecord
}

// SaveOutput defines the output for saving a record
type SaveOutput struct {
	Record *entities.PlayerRecord
}

// DeleteInput defines the input for deleting a record
type DeleteInput struct {
	EntityID string
}

// DeleteOutput defines the output for deleting a record
type DeleteOutput struct{}

// ListInput defines the input for listing records
type ListInput struct{}

// ListOutput defines the output for listing records
type ListOutput struct {
	Records []*entities.PlayerRecord
}

const (
	errRecordNil     = "record cannot be nil"
	errEntityIDEmpty = "entity ID cannot be empty"
)
