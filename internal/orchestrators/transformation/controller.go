// Package transformation implements the per-player form state machine.
//
// A Controller owns one player's State and is driven by a single simulation
// goroutine: collaborators call RequestTransform, RequestPowerDown and the
// step helpers, and the session calls Advance once per tick. Nothing in here
// locks; ownership is partitioned by entity.
package transformation

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/errors"
	"github.com/KirkDiggler/rpg-forms/internal/metrics"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
)

// Config holds the dependencies for a Controller
type Config struct {
	EntityID string
	Registry *engine.Registry
	Ticks    clock.Ticks
	EventBus events.EventBus

	// Optional; derived from Registry when nil
	Gates    engine.Gates
	Resolver engine.Progression

	// Optional; built from Ticks and Policy when nil
	Exhaustion *ExhaustionManager

	// Optional collaborators. Missing ones never block, never authorize,
	// report no traits and broadcast nothing.
	Conditions  Conditions
	Authorizer  Authorizer
	Traits      TraitLookup
	Broadcaster Broadcaster
	Metrics     metrics.Recorder

	// Authoritative marks the local owner of the entity. Only the owner broadcasts.
	Authoritative bool
	Policy        *Policy
	// Record seeds the persisted fields; nil starts fresh
	Record *entities.PlayerRecord
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("EntityID", c.EntityID, vb)
	if c.Registry == nil {
		vb.RequiredField("Registry")
	}
	if c.Ticks == nil {
		vb.RequiredField("Ticks")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.Record != nil && c.Record.EntityID != "" && c.Record.EntityID != c.EntityID {
		vb.InvalidField("Record", "belongs to "+c.Record.EntityID)
	}
	if c.Policy != nil {
		if err := c.Policy.Validate(); err != nil {
			vb.InvalidField("Policy", errors.GetMessage(err))
		}
	}

	return vb.Build()
}

// Controller is the state machine for one player's forms
type Controller struct {
	entityID      string
	entity        *entities.PlayerEntity
	authoritative bool
	policy        Policy

	registry   *engine.Registry
	gates      engine.Gates
	resolver   engine.Progression
	exhaustion *ExhaustionManager
	ticks      clock.Ticks
	bus        events.EventBus

	conditions  Conditions
	authorizer  Authorizer
	traits      TraitLookup
	broadcaster Broadcaster
	metrics     metrics.Recorder

	state *State
}

// NewController creates a controller with persisted fields loaded from
// cfg.Record and every ephemeral field zeroed
func NewController(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := &Controller{
		entityID:      cfg.EntityID,
		entity:        &entities.PlayerEntity{ID: cfg.EntityID},
		authoritative: cfg.Authoritative,
		policy:        DefaultPolicy(),
		registry:      cfg.Registry,
		gates:         cfg.Gates,
		resolver:      cfg.Resolver,
		exhaustion:    cfg.Exhaustion,
		ticks:         cfg.Ticks,
		bus:           cfg.EventBus,
		conditions:    cfg.Conditions,
		authorizer:    cfg.Authorizer,
		traits:        cfg.Traits,
		broadcaster:   cfg.Broadcaster,
		metrics:       cfg.Metrics,
		state:         NewState(cfg.Record),
	}
	if cfg.Policy != nil {
		c.policy = *cfg.Policy
	}

	if c.gates == nil {
		c.gates = engine.DefaultGates(cfg.Registry)
	}
	if c.resolver == nil {
		resolver, err := engine.New(&engine.Config{Registry: cfg.Registry})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create resolver")
		}
		c.resolver = resolver
	}
	if c.exhaustion == nil {
		c.exhaustion = NewExhaustionManager(cfg.Ticks, c.policy)
	}
	if c.conditions == nil {
		c.conditions = freeConditions{}
	}
	if c.authorizer == nil {
		c.authorizer = denyAll{}
	}
	if c.traits == nil {
		c.traits = noTraits{}
	}
	if c.broadcaster == nil {
		c.broadcaster = silent{}
	}
	if c.metrics == nil {
		c.metrics = metrics.Noop{}
	}

	return c, nil
}

// EntityID returns the id of the controlled player
func (c *Controller) EntityID() string {
	return c.entityID
}

// Authoritative reports whether this process owns the player
func (c *Controller) Authoritative() bool {
	return c.authoritative
}

// RequestTransform enters form key. It reports false, leaving the state
// untouched, when the form is unknown, the player is blocked or a
// prerequisite fails. Requesting the form already held is a no-op that
// reports true.
func (c *Controller) RequestTransform(ctx context.Context, key entities.FormKey) bool {
	def, same, err := c.decide(key)
	if same {
		return true
	}
	if err != nil {
		reason := errors.Reason(err)
		c.metrics.TransformRejected(string(key), reason)
		slog.DebugContext(ctx, "Transform rejected",
			"entity_id", c.entityID,
			"form", key,
			"reason", reason,
		)
		return false
	}

	c.enter(ctx, def)
	return true
}

// CheckTransform runs the RequestTransform decision without changing
// anything. A nil error means the request would succeed.
func (c *Controller) CheckTransform(key entities.FormKey) error {
	_, _, err := c.decide(key)
	return err
}

func (c *Controller) decide(key entities.FormKey) (entities.Definition, bool, error) {
	def, ok := c.registry.Get(key)
	if !ok {
		return def, false, errors.NotFoundf("form %s is not registered", key).
			WithMeta("form", string(key)).
			WithMeta("reason", engine.ReasonUnknownForm)
	}

	if c.state.ActiveForm != nil && *c.state.ActiveForm == key {
		return def, true, nil
	}

	if c.IsBlocked() {
		return def, false, errors.FailedPrecondition("player cannot transform right now").
			WithMeta("form", string(key)).
			WithMeta("reason", engine.ReasonBlocked)
	}

	in := engine.GateInput{
		Definition:   def,
		Achievements: c.state.Achievements,
		IsLegendary:  c.state.IsLegendary,
		Fatigued:     c.exhaustion.IsFatigued(c.state),
		Exhausted:    c.exhaustion.IsExhausted(c.state),
		Authorized: func() bool {
			return c.authorizer.IsAuthorized(c.entityID, key)
		},
	}
	if current, ok := c.active(); ok {
		in.Current = &current
	}

	return def, false, c.gates.Check(in)
}

// enter clears the held form and applies def as a persistent status
func (c *Controller) enter(ctx context.Context, def entities.Definition) {
	if current, ok := c.active(); ok {
		c.clear(ctx, current, &def)
	}

	key := def.Key
	c.state.ActiveForm = &key
	c.state.IsTransforming = true
	c.state.TransformingUntilTick = c.ticks.Current() + c.policy.TransformTicks
	if def.IsIntensity() {
		c.state.IntensityLevel = 1
	}

	if def.Announce.Text != "" {
		c.publish(ctx, EventAnnounced, key, map[string]any{
			ContextKeyText:  def.Announce.Text,
			ContextKeyColor: def.Announce.Color,
		})
	}
	c.publish(ctx, EventApplied, key, nil)
	c.metrics.TransformApplied(string(key), def.Branch.String())

	slog.InfoContext(ctx, "Form applied",
		"entity_id", c.entityID,
		"form", key,
		"branch", def.Branch,
	)

	if c.authoritative {
		c.broadcaster.Broadcast(ctx, c.entityID, key, entities.PersistentDuration)
	}
}

// clear removes current. Leaving the intensity branch, other than by
// swapping to the other intensity member, applies intensity fatigue.
func (c *Controller) clear(ctx context.Context, current entities.Definition, next *entities.Definition) {
	c.state.ActiveForm = nil
	c.exhaustion.OnPowerDown(c.state)

	if current.IsIntensity() && (next == nil || !next.IsIntensity()) {
		duration := c.exhaustion.ApplyIntensityFatigue(c.state, c.policy.FatigueMultiplier)
		c.state.clearIntensity()
		c.metrics.LockoutApplied(metrics.LockoutFatigue)
		slog.DebugContext(ctx, "Intensity fatigue applied",
			"entity_id", c.entityID,
			"ticks", duration,
		)
	}

	c.publish(ctx, EventCleared, current.Key, nil)
	c.metrics.FormCleared(string(current.Key))
}

// RequestPowerDown clears the held form. It always succeeds.
func (c *Controller) RequestPowerDown(ctx context.Context) {
	current, ok := c.active()
	if !ok {
		c.state.ActiveForm = nil
		c.exhaustion.OnPowerDown(c.state)
		return
	}

	c.clear(ctx, current, nil)

	slog.InfoContext(ctx, "Form cleared",
		"entity_id", c.entityID,
		"form", current.Key,
	)

	if c.authoritative {
		c.broadcaster.Broadcast(ctx, c.entityID, current.Key, 0)
	}
}

// StepUp moves one step up the current ladder
func (c *Controller) StepUp(ctx context.Context) bool {
	step, ok := c.resolver.NextStep(c.view())
	if !ok {
		return false
	}
	if !c.RequestTransform(ctx, step.Form.Key) {
		return false
	}
	if step.ResetIntensity {
		c.state.IntensityLevel = 1
	}
	return true
}

// StepDown moves one step down the current ladder
func (c *Controller) StepDown(ctx context.Context) bool {
	step, ok := c.resolver.PreviousStep(c.view())
	if !ok {
		return false
	}
	return c.RequestTransform(ctx, step.Form.Key)
}

// Advance runs one simulation tick: it ends the Transforming phase when due,
// accrues intensity usage and, on the owning host, trains mastery and
// reverts the form when the player's resource runs dry.
func (c *Controller) Advance(ctx context.Context) {
	if c.state.IsTransforming && c.ticks.Current() >= c.state.TransformingUntilTick {
		c.state.IsTransforming = false
		c.state.TransformingUntilTick = 0
	}

	current, ok := c.active()
	if !ok {
		return
	}

	if current.IsIntensity() {
		c.state.IntensityTimer++
	}

	// mastery is owner state; copies receive it through the persisted record
	if c.authoritative && c.exhaustion.AdvanceMastery(c.state, current, c.traits.HasSpecialTrait(c.entityID)) {
		c.metrics.MasteryAdvanced(string(current.MasteryTrack))
		slog.DebugContext(ctx, "Mastery advanced",
			"entity_id", c.entityID,
			"track", current.MasteryTrack,
			"level", c.state.Mastery[current.MasteryTrack].Level,
		)
	}

	if c.authoritative && c.conditions.IsResourceDepleted(c.entityID) {
		c.RequestPowerDown(ctx)
		if !current.IsIntensity() {
			c.Exhaust()
		}
	}
}

// Exhaust applies the transformation exhaustion lockout
func (c *Controller) Exhaust() {
	c.exhaustion.ApplyTransformationExhaustion(c.state)
	c.metrics.LockoutApplied(metrics.LockoutExhaustion)
}

// UnlockAchievement sets the achievement for key. It reports whether the
// flag was newly set.
func (c *Controller) UnlockAchievement(ctx context.Context, key entities.FormKey) bool {
	if _, ok := c.registry.Get(key); !ok {
		slog.DebugContext(ctx, "Ignoring unlock for unknown form",
			"entity_id", c.entityID,
			"form", key,
		)
		return false
	}
	if c.state.Achievements[key] {
		return false
	}

	c.state.Achievements[key] = true
	slog.InfoContext(ctx, "Achievement unlocked",
		"entity_id", c.entityID,
		"form", key,
	)
	return true
}

// SetLegendary switches which escalation ladder the player walks. Earned
// achievements are left alone.
func (c *Controller) SetLegendary(legendary bool) {
	c.state.IsLegendary = legendary
}

// SetIntensityLevel sets the multiplier level while an intensity form is held
func (c *Controller) SetIntensityLevel(level int) bool {
	current, ok := c.active()
	if !ok || !current.IsIntensity() {
		return false
	}

	switch {
	case level < 1:
		level = 1
	case level > c.policy.MaxIntensityLevel:
		level = c.policy.MaxIntensityLevel
	}
	c.state.IntensityLevel = level
	return true
}

// ApplyRemote installs a form received from the player's owner. It skips
// every gate and never broadcasts. A zero duration clears the held form.
func (c *Controller) ApplyRemote(ctx context.Context, key entities.FormKey, durationTicks int32) bool {
	if durationTicks == 0 {
		current, ok := c.active()
		c.state.ActiveForm = nil
		c.state.IsTransforming = false
		c.state.TransformingUntilTick = 0
		c.state.clearIntensity()
		if ok {
			c.publish(ctx, EventCleared, current.Key, map[string]any{ContextKeyRemote: true})
		}
		return true
	}

	def, ok := c.registry.Get(key)
	if !ok {
		return false
	}
	if c.state.ActiveForm != nil && *c.state.ActiveForm == key {
		return true
	}

	wasIntensity := false
	if current, ok := c.active(); ok {
		wasIntensity = current.IsIntensity()
	}

	c.state.ActiveForm = &key
	c.state.IsTransforming = false
	c.state.TransformingUntilTick = 0
	switch {
	case !def.IsIntensity():
		c.state.clearIntensity()
	case !wasIntensity || c.state.IntensityLevel < 1:
		c.state.IntensityLevel = 1
	}

	c.publish(ctx, EventApplied, key, map[string]any{ContextKeyRemote: true})
	return true
}

// CurrentForm returns the held form, skipping intensity forms when
// ignoreIntensity is set and every other branch when ignoreNonIntensity is set
func (c *Controller) CurrentForm(ignoreIntensity, ignoreNonIntensity bool) (entities.Definition, bool) {
	if c.state.ActiveForm == nil {
		return entities.Definition{}, false
	}

	for _, def := range c.registry.All() {
		if def.IsIntensity() && ignoreIntensity {
			continue
		}
		if !def.IsIntensity() && ignoreNonIntensity {
			continue
		}
		if def.Key == *c.state.ActiveForm {
			return def, true
		}
	}
	return entities.Definition{}, false
}

// IsBlocked reports whether the player is mid-transform, immobilized or out of resource
func (c *Controller) IsBlocked() bool {
	return c.state.IsTransforming ||
		c.conditions.IsImmobilized(c.entityID) ||
		c.conditions.IsResourceDepleted(c.entityID)
}

// Aura returns the visual effect of the held form
func (c *Controller) Aura() (entities.AuraID, bool) {
	if c.state.ActiveForm == nil {
		return "", false
	}
	return c.registry.Aura(*c.state.ActiveForm)
}

// Snapshot returns a read-only view for observers
func (c *Controller) Snapshot() entities.FormSnapshot {
	snap := entities.FormSnapshot{
		EntityID:       c.entityID,
		Tick:           c.ticks.Current(),
		IntensityLevel: c.state.IntensityLevel,
		IsTransforming: c.state.IsTransforming,
		Fatigued:       c.exhaustion.IsFatigued(c.state),
		Exhausted:      c.exhaustion.IsExhausted(c.state),
		Authoritative:  c.authoritative,
	}
	if c.state.ActiveForm != nil {
		active := *c.state.ActiveForm
		snap.ActiveForm = &active
		snap.Aura, _ = c.registry.Aura(active)
	}
	return snap
}

// Record returns the persisted fields stamped with now
func (c *Controller) Record(now time.Time) *entities.PlayerRecord {
	return c.state.Record(c.entityID, now)
}

// State returns a copy of the full state
func (c *Controller) State() State {
	return c.state.Clone()
}

func (c *Controller) active() (entities.Definition, bool) {
	if c.state.ActiveForm == nil {
		return entities.Definition{}, false
	}
	return c.registry.Get(*c.state.ActiveForm)
}

func (c *Controller) view() engine.View {
	return engine.View{
		Active:       c.state.ActiveForm,
		Achievements: c.state.Achievements,
		IsLegendary:  c.state.IsLegendary,
	}
}
