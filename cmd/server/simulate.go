package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/netsync"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation"
	"github.com/KirkDiggler/rpg-forms/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-forms/internal/repositories/player"
)

var (
	simTicks    int
	simInterval time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run two replicated sessions through a scripted fight",
	Long: `Simulate hosts two sessions in one process connected by an event bus transport.
Each session owns one player and mirrors the other, so every form change made by an owner
shows up in the peer's snapshot one tick later.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 120, "Number of ticks to run")
	simulateCmd.Flags().DurationVar(&simInterval, "tick-interval", 0, "Wall time between ticks; 0 runs as fast as possible")
}

const (
	simHero  = "player-hero"
	simRival = "player-rival"
)

// host is one simulated process
type host struct {
	name      string
	session   *session.Session
	bus       events.EventBus
	transport *netsync.EventTransport
}

// scriptStep runs action against owner's controller on the given tick
type scriptStep struct {
	tick   int64
	host   int
	entity string
	label  string
	action func(ctx context.Context, c *transformation.Controller) bool
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	policy := transformation.DefaultPolicy()
	policy.TransformTicks = 5
	registry := engine.DefaultRegistry()
	network := events.NewBus()
	ids := idgen.NewSequential("sim")

	records := []*entities.PlayerRecord{heroRecord(), rivalRecord()}
	owners := []string{simHero, simRival}

	hosts := make([]*host, 2)
	for i, name := range []string{"host-a", "host-b"} {
		repo := player.NewMemory(nil)
		for _, record := range records {
			if _, err := repo.Save(ctx, player.SaveInput{Record: record}); err != nil {
				return err
			}
		}

		transport, err := netsync.NewEventTransport(network, name)
		if err != nil {
			return err
		}
		bus := events.NewBus()
		sess, err := session.New(&session.Config{
			Registry:    registry,
			Repository:  repo,
			EventBus:    bus,
			Transport:   transport,
			Policy:      &policy,
			IDGenerator: ids,
		})
		if err != nil {
			return err
		}
		transport.Subscribe(sess.Deliver)

		for _, id := range owners {
			if _, err := sess.Join(ctx, session.JoinInput{EntityID: id, Authoritative: id == owners[i]}); err != nil {
				return err
			}
		}

		bus.SubscribeFunc(transformation.EventAnnounced, 0, func(_ context.Context, e events.Event) error {
			text, _ := e.Context().Get(transformation.ContextKeyText)
			id, _ := transformation.EntityFromEvent(e)
			fmt.Printf("  [%s] %s shouts %q\n", name, id, text)
			return nil
		})

		hosts[i] = &host{name: name, session: sess, bus: bus, transport: transport}
	}
	defer func() {
		for _, h := range hosts {
			_ = h.transport.Close()
			_ = h.session.Close()
		}
	}()

	script := []scriptStep{
		{tick: 2, host: 0, entity: simHero, label: "enter kaioken", action: request(engine.FormKaioken)},
		{tick: 4, host: 0, entity: simHero, label: "raise intensity to 5", action: func(_ context.Context, c *transformation.Controller) bool {
			return c.SetIntensityLevel(5)
		}},
		{tick: 6, host: 1, entity: simRival, label: "enter ssj1", action: request(engine.FormSSJ1)},
		{tick: 12, host: 1, entity: simRival, label: "step up", action: stepUp},
		{tick: 20, host: 0, entity: simHero, label: "power down", action: powerDown},
		{tick: 21, host: 0, entity: simHero, label: "enter ssj1 while fatigued", action: request(engine.FormSSJ1)},
		{tick: 30, host: 0, entity: simHero, label: "unlock ssj2 via event", action: func(ctx context.Context, _ *transformation.Controller) bool {
			return hosts[0].bus.Publish(ctx, transformation.NewAchievementUnlockedEvent(simHero, engine.FormSSJ2)) == nil
		}},
		{tick: 32, host: 0, entity: simHero, label: "enter ssj1", action: request(engine.FormSSJ1)},
		{tick: 40, host: 0, entity: simHero, label: "step up", action: stepUp},
		{tick: 50, host: 1, entity: simRival, label: "step down", action: stepDown},
		{tick: 60, host: 1, entity: simRival, label: "exhaust", action: func(ctx context.Context, c *transformation.Controller) bool {
			c.RequestPowerDown(ctx)
			c.Exhaust()
			return true
		}},
		{tick: 61, host: 1, entity: simRival, label: "enter ssj1 while exhausted", action: request(engine.FormSSJ1)},
	}

	var ticker *time.Ticker
	if simInterval > 0 {
		ticker = time.NewTicker(simInterval)
		defer ticker.Stop()
	}

	next := 0
	for tick := int64(1); tick <= int64(simTicks); tick++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}

		for _, h := range hosts {
			h.session.Step(ctx)
		}

		for next < len(script) && script[next].tick == tick {
			step := script[next]
			h := hosts[step.host]
			var ok bool
			h.session.Do(step.entity, func(c *transformation.Controller) {
				ok = step.action(ctx, c)
			})
			fmt.Printf("tick %3d  %s  %-14s %-28s ok=%v\n", tick, h.name, step.entity, step.label, ok)
			next++
		}
	}

	// One more step so the last broadcasts land
	for _, h := range hosts {
		h.session.Step(ctx)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOST\tENTITY\tOWNER\tFORM\tAURA\tINTENSITY\tFATIGUED\tEXHAUSTED")
	for _, h := range hosts {
		for _, snap := range h.session.Snapshots() {
			form := "-"
			if snap.ActiveForm != nil {
				form = string(*snap.ActiveForm)
			}
			fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%s\t%d\t%v\t%v\n",
				h.name, snap.EntityID, snap.Authoritative, form, orDash(string(snap.Aura)),
				snap.IntensityLevel, snap.Fatigued, snap.Exhausted)
		}
	}
	return w.Flush()
}

func request(form entities.FormKey) func(context.Context, *transformation.Controller) bool {
	return func(ctx context.Context, c *transformation.Controller) bool {
		return c.RequestTransform(ctx, form)
	}
}

func stepUp(ctx context.Context, c *transformation.Controller) bool {
	return c.StepUp(ctx)
}

func stepDown(ctx context.Context, c *transformation.Controller) bool {
	return c.StepDown(ctx)
}

func powerDown(ctx context.Context, c *transformation.Controller) bool {
	c.RequestPowerDown(ctx)
	return true
}

func heroRecord() *entities.PlayerRecord {
	record := entities.NewPlayerRecord(simHero)
	record.Achievements[engine.FormKaioken] = true
	record.Achievements[engine.FormSSJ1] = true
	return record
}

func rivalRecord() *entities.PlayerRecord {
	record := entities.NewPlayerRecord(simRival)
	record.IsLegendary = true
	record.Achievements[engine.FormSSJ1] = true
	record.Achievements[engine.FormLSSJ] = true
	return record
}
