// Package session hosts the players of one simulation and drives their
// transformation controllers from a single tick loop.
//
// Every controller is mutated only while the session lock is held: by Step,
// Join, Leave and Do. Network payloads and achievement unlocks arriving from
// other goroutines are queued and applied at the start of the next Step.
// Observers read the snapshots published at the end of each Step.
package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/metrics"
	"github.com/KirkDiggler/rpg-forms/internal/netsync"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-forms/internal/repositories/player"
)

// Config holds the dependencies for a Session
type Config struct {
	Registry   *engine.Registry
	Repository player.Repository
	EventBus   events.EventBus

	// Optional; payloads are discarded when nil
	Transport netsync.Transport

	// Optional collaborators handed to every controller
	Conditions transformation.Conditions
	Authorizer transformation.Authorizer
	Traits     transformation.TraitLookup
	Metrics    metrics.Recorder
	Policy     *transformation.Policy

	// Optional; default to real time and UUID session ids
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Policy != nil {
		if err := c.Policy.Validate(); err != nil {
			vb.InvalidField("Policy", errors.GetMessage(err))
		}
	}

	return vb.Build()
}

type unlock struct {
	entityID string
	form     entities.FormKey
}

// Session owns the controllers of every player in one simulation
type Session struct {
	id         string
	registry   *engine.Registry
	repo       player.Repository
	bus        events.EventBus
	replicator *netsync.Replicator
	ticks      *clock.TickCounter
	clock      clock.Clock
	metrics    metrics.Recorder
	policy     *transformation.Policy

	conditions transformation.Conditions
	authorizer transformation.Authorizer
	traits     transformation.TraitLookup

	mu          sync.Mutex
	controllers map[string]*transformation.Controller

	inboxMu sync.Mutex
	inbox   [][]byte
	unlocks []unlock

	snapshots      atomic.Pointer[map[string]entities.FormSnapshot]
	subscriptionID string
}

// New creates a session and subscribes it to achievement unlocks on the bus
func New(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Session{
		registry:    cfg.Registry,
		repo:        cfg.Repository,
		bus:         cfg.EventBus,
		ticks:       clock.NewTickCounter(),
		clock:       cfg.Clock,
		metrics:     cfg.Metrics,
		policy:      cfg.Policy,
		conditions:  cfg.Conditions,
		authorizer:  cfg.Authorizer,
		traits:      cfg.Traits,
		controllers: make(map[string]*transformation.Controller),
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.metrics == nil {
		s.metrics = metrics.Noop{}
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("session")
	}
	s.id = gen.Generate()

	transport := cfg.Transport
	if transport == nil {
		transport = discard{}
	}
	replicator, err := netsync.NewReplicator(&netsync.Config{
		Transport: transport,
		Directory: directory{s},
		Metrics:   s.metrics,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create replicator")
	}
	s.replicator = replicator

	empty := make(map[string]entities.FormSnapshot)
	s.snapshots.Store(&empty)

	s.subscriptionID = s.bus.SubscribeFunc(transformation.EventAchievementUnlocked, 0, s.onAchievementUnlocked)

	return s, nil
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// Tick returns the current simulation tick
func (s *Session) Tick() int64 {
	return s.ticks.Current()
}

// Replicator returns the replicator that broadcasts for this session's owned players
func (s *Session) Replicator() *netsync.Replicator {
	return s.replicator
}

// JoinInput defines the input for adding a player
type JoinInput struct {
	EntityID string
	// Authoritative marks the player as owned by this process
	Authoritative bool
}

// JoinOutput defines the output for adding a player
type JoinOutput struct {
	Snapshot entities.FormSnapshot
	// Created is true when no persisted record existed
	Created bool
}

// Join loads the player's record and starts a controller with every
// ephemeral field zeroed
func (s *Session) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.controllers[input.EntityID]; exists {
		return nil, errors.AlreadyExistsf("player %s already joined session %s", input.EntityID, s.id)
	}

	created := false
	var record *entities.PlayerRecord
	out, err := s.repo.Get(ctx, player.GetInput{EntityID: input.EntityID})
	switch {
	case err == nil:
		record = out.Record
	case errors.IsNotFound(err):
		record = entities.NewPlayerRecord(input.EntityID)
		created = true
	default:
		return nil, errors.Wrapf(err, "failed to load player %s", input.EntityID)
	}

	ctrl, err := transformation.NewController(&transformation.Config{
		EntityID:      input.EntityID,
		Registry:      s.registry,
		Ticks:         s.ticks,
		EventBus:      s.bus,
		Conditions:    s.conditions,
		Authorizer:    s.authorizer,
		Traits:        s.traits,
		Broadcaster:   s.replicator,
		Metrics:       s.metrics,
		Authoritative: input.Authoritative,
		Policy:        s.policy,
		Record:        record,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create controller for %s", input.EntityID)
	}

	s.controllers[input.EntityID] = ctrl
	s.metrics.SessionEntities(len(s.controllers))
	s.publishSnapshots()

	slog.InfoContext(ctx, "Player joined session",
		"session_id", s.id,
		"entity_id", input.EntityID,
		"authoritative", input.Authoritative,
		"created", created,
	)

	return &JoinOutput{Snapshot: ctrl.Snapshot(), Created: created}, nil
}

// LeaveInput defines the input for removing a player
type LeaveInput struct {
	EntityID string
}

// LeaveOutput defines the output for removing a player
type LeaveOutput struct {
	// Record is the saved record; nil when the session held only a copy
	Record *entities.PlayerRecord
}

// Leave flushes the player's record when this session owns the player and
// drops the controller. Ephemeral state is discarded.
func (s *Session) Leave(ctx context.Context, input LeaveInput) (*LeaveOutput, error) {
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, exists := s.controllers[input.EntityID]
	if !exists {
		return nil, errors.NotFoundf("player %s is not in session %s", input.EntityID, s.id)
	}

	s.applyUnlocks(ctx)

	var saved *entities.PlayerRecord
	if ctrl.Authoritative() {
		record, err := s.flush(ctx, ctrl)
		if err != nil {
			return nil, err
		}
		saved = record
	}

	delete(s.controllers, input.EntityID)
	s.metrics.SessionEntities(len(s.controllers))
	s.publishSnapshots()

	slog.InfoContext(ctx, "Player left session",
		"session_id", s.id,
		"entity_id", input.EntityID,
		"saved", saved != nil,
	)

	return &LeaveOutput{Record: saved}, nil
}

// Deliver queues a received payload for the next Step. Safe for concurrent use.
func (s *Session) Deliver(payload []byte) {
	s.inboxMu.Lock()
	s.inbox = append(s.inbox, payload)
	s.inboxMu.Unlock()
}

// Step runs one simulation tick: queued payloads and unlocks are applied,
// every controller advances, then snapshots are published.
func (s *Session) Step(ctx context.Context) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks.Advance()

	for _, payload := range s.drainInbox() {
		s.replicator.HandlePayload(ctx, payload)
	}
	s.applyUnlocks(ctx)

	for _, id := range s.entityIDs() {
		s.controllers[id].Advance(ctx)
	}

	s.publishSnapshots()
	s.metrics.TickDuration(time.Since(start))
}

// Do runs fn against the player's controller under the session lock. It
// reports false when the player is not in the session.
func (s *Session) Do(entityID string, fn func(*transformation.Controller)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctrl, ok := s.controllers[entityID]
	if !ok {
		return false
	}
	fn(ctrl)
	return true
}

// Snapshot returns the player's view as of the last published tick
func (s *Session) Snapshot(entityID string) (entities.FormSnapshot, bool) {
	snap, ok := (*s.snapshots.Load())[entityID]
	return snap, ok
}

// Snapshots returns every player's view as of the last published tick
func (s *Session) Snapshots() []entities.FormSnapshot {
	current := *s.snapshots.Load()
	out := make([]entities.FormSnapshot, 0, len(current))
	for _, snap := range current {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntityID < out[j].EntityID
	})
	return out
}

// Entities returns the ids of every joined player
func (s *Session) Entities() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entityIDs()
}

// Run steps the session every interval until ctx is cancelled, then flushes
// every record
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.InvalidArgument("tick interval must be positive")
	}

	slog.InfoContext(ctx, "Session running",
		"session_id", s.id,
		"interval", interval,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx is done; flush with a fresh context so saves can complete
			return s.Flush(context.WithoutCancel(ctx))
		case <-ticker.C:
			s.Step(ctx)
		}
	}
}

// Flush saves the record of every player this session owns. It attempts
// every owned player and returns the first failure.
func (s *Session) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.applyUnlocks(ctx)

	var first error
	for _, id := range s.entityIDs() {
		ctrl := s.controllers[id]
		if !ctrl.Authoritative() {
			continue
		}
		if _, err := s.flush(ctx, ctrl); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close unsubscribes from the bus. Records are not flushed.
func (s *Session) Close() error {
	if err := s.bus.Unsubscribe(s.subscriptionID); err != nil {
		return errors.Wrap(err, "failed to unsubscribe from achievement events")
	}
	return nil
}

func (s *Session) flush(ctx context.Context, ctrl *transformation.Controller) (*entities.PlayerRecord, error) {
	out, err := s.repo.Save(ctx, player.SaveInput{Record: ctrl.Record(s.clock.Now().UTC())})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save player record",
			"session_id", s.id,
			"entity_id", ctrl.EntityID(),
			"error", err,
		)
		return nil, errors.Wrapf(err, "failed to save player %s", ctrl.EntityID())
	}
	return out.Record, nil
}

func (s *Session) onAchievementUnlocked(ctx context.Context, e events.Event) error {
	entityID, ok := transformation.EntityFromEvent(e)
	if !ok {
		return nil
	}
	form, ok := transformation.FormFromEvent(e)
	if !ok {
		return nil
	}

	s.inboxMu.Lock()
	s.unlocks = append(s.unlocks, unlock{entityID: entityID, form: form})
	s.inboxMu.Unlock()

	slog.DebugContext(ctx, "Achievement unlock queued",
		"session_id", s.id,
		"entity_id", entityID,
		"form", form,
	)
	return nil
}

// applyUnlocks requires s.mu
func (s *Session) applyUnlocks(ctx context.Context) {
	s.inboxMu.Lock()
	pending := s.unlocks
	s.unlocks = nil
	s.inboxMu.Unlock()

	for _, u := range pending {
		if ctrl, ok := s.controllers[u.entityID]; ok {
			ctrl.UnlockAchievement(ctx, u.form)
		}
	}
}

func (s *Session) drainInbox() [][]byte {
	s.inboxMu.Lock()
	defer s.inboxMu.Unlock()
	pending := s.inbox
	s.inbox = nil
	return pending
}

// entityIDs requires s.mu
func (s *Session) entityIDs() []string {
	ids := make([]string, 0, len(s.controllers))
	for id := range s.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// publishSnapshots requires s.mu
func (s *Session) publishSnapshots() {
	next := make(map[string]entities.FormSnapshot, len(s.controllers))
	for id, ctrl := range s.controllers {
		next[id] = ctrl.Snapshot()
	}
	s.snapshots.Store(&next)
}

// directory resolves replicated entities while Step holds s.mu
type directory struct {
	s *Session
}

func (d directory) Lookup(entityID string) (netsync.Peer, bool) {
	ctrl, ok := d.s.controllers[entityID]
	if !ok {
		return nil, false
	}
	return ctrl, true
}

type discard struct{}

func (discard) Send(context.Context, []byte) error { return nil }
