package netsync

//go:generate mockgen -destination=mock/mock_netsync.go -package=netsyncmock github.com/KirkDiggler/rpg-forms/internal/netsync Transport,EntityDirectory,Peer

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/metrics"
)

// Transport delivers encoded payloads to every peer in the session
type Transport interface {
	Send(ctx context.Context, payload []byte) error
}

// Peer is the local copy of an entity a message can be applied to
type Peer interface {
	Authoritative() bool
	ApplyRemote(ctx context.Context, form entities.FormKey, durationTicks int32) bool
}

// EntityDirectory resolves entity ids to their local copies
type EntityDirectory interface {
	Lookup(entityID string) (Peer, bool)
}

// Config holds the dependencies for a Replicator
type Config struct {
	Transport Transport
	Directory EntityDirectory
	Metrics   metrics.Recorder
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Transport == nil {
		vb.RequiredField("Transport")
	}
	if c.Directory == nil {
		vb.RequiredField("Directory")
	}

	return vb.Build()
}

// Replicator sends local form changes and applies received ones
type Replicator struct {
	transport Transport
	directory EntityDirectory
	metrics   metrics.Recorder
}

// NewReplicator creates a replicator
func NewReplicator(cfg *Config) (*Replicator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &Replicator{
		transport: cfg.Transport,
		directory: cfg.Directory,
		metrics:   cfg.Metrics,
	}
	if r.metrics == nil {
		r.metrics = metrics.Noop{}
	}
	return r, nil
}

// Broadcast tells every peer that entityID now holds form. Failures are
// logged and counted, never returned.
func (r *Replicator) Broadcast(ctx context.Context, entityID string, form entities.FormKey, durationTicks int32) {
	payload, err := Marshal(Message{
		Opcode:         OpFormSync,
		SenderEntityID: entityID,
		TargetEntityID: entityID,
		FormKey:        form,
		DurationTicks:  durationTicks,
	})
	if err != nil {
		r.metrics.Sync(metrics.SyncSendFailed)
		slog.WarnContext(ctx, "Failed to encode form sync",
			"entity_id", entityID,
			"form", form,
			"error", err,
		)
		return
	}

	if err := r.transport.Send(ctx, payload); err != nil {
		r.metrics.Sync(metrics.SyncSendFailed)
		slog.WarnContext(ctx, "Failed to send form sync",
			"entity_id", entityID,
			"form", form,
			"error", err,
		)
		return
	}

	r.metrics.Sync(metrics.SyncSent)
}

// OnReceive applies msg to its target. Messages for unknown entities and for
// entities this process owns are dropped. It reports whether msg was applied.
func (r *Replicator) OnReceive(ctx context.Context, msg Message) bool {
	peer, ok := r.directory.Lookup(msg.TargetEntityID)
	if !ok {
		r.metrics.Sync(metrics.SyncUnknownEntity)
		slog.DebugContext(ctx, "Dropping form sync for unknown entity",
			"entity_id", msg.TargetEntityID,
			"sender_id", msg.SenderEntityID,
		)
		return false
	}

	if peer.Authoritative() {
		r.metrics.Sync(metrics.SyncAuthoritative)
		return false
	}

	if !peer.ApplyRemote(ctx, msg.FormKey, msg.DurationTicks) {
		r.metrics.Sync(metrics.SyncMalformed)
		slog.DebugContext(ctx, "Dropping form sync for unknown form",
			"entity_id", msg.TargetEntityID,
			"form", msg.FormKey,
		)
		return false
	}

	r.metrics.Sync(metrics.SyncApplied)
	return true
}

// HandlePayload decodes and applies a received payload. Malformed payloads
// are dropped.
func (r *Replicator) HandlePayload(ctx context.Context, payload []byte) bool {
	msg, err := Unmarshal(payload)
	if err != nil {
		r.metrics.Sync(metrics.SyncMalformed)
		slog.DebugContext(ctx, "Dropping malformed form sync",
			"bytes", len(payload),
			"error", err,
		)
		return false
	}
	return r.OnReceive(ctx, msg)
}
