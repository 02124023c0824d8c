package player

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.PlayerRecord
	clock clock.Clock
}

// NewMemory creates a new in-memory repository. A nil clock uses real time.
func NewMemory(c clock.Clock) *MemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &MemoryRepository{
		store: make(map[string]*entities.PlayerRecord),
		clock: c,
	}
}

// Get retrieves a copy of the stored record
func (r *MemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.store[input.EntityID]
	if !exists {
		return nil, errors.NotFoundf("player record %s not found", input.EntityID)
	}

	return &GetOutput{Record: record.Clone()}, nil
}

// Save stores a copy of the record
func (r *MemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	record, err := prepare(input.Record, r.clock)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[record.EntityID] = record.Clone()

	return &SaveOutput{Record: record}, nil
}

// Delete removes a record
func (r *MemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.EntityID]; !exists {
		return nil, errors.NotFoundf("player record %s not found", input.EntityID)
	}
	delete(r.store, input.EntityID)

	return &DeleteOutput{}, nil
}

// List returns copies of every record
func (r *MemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entities.PlayerRecord, 0, len(r.store))
	for _, record := range r.store {
		records = append(records, record.Clone())
	}
	sortRecords(records)

	return &ListOutput{Records: records}, nil
}

// prepare validates the record and returns a stamped copy
func prepare(record *entities.PlayerRecord, c clock.Clock) (*entities.PlayerRecord, error) {
	if record == nil {
		return nil, errors.InvalidArgument(errRecordNil)
	}
	if record.EntityID == "" {
		return nil, errors.InvalidArgument(errEntityIDEmpty)
	}

	out := record.Clone()
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = c.Now().UTC()
	}
	return out, nil
}

func sortRecords(records []*entities.PlayerRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].EntityID < records[j].EntityID
	})
}
