package game

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/zeusync/skyfire/internal/config"
	"github.com/zeusync/skyfire/internal/core/clock"
	"github.com/zeusync/skyfire/internal/core/events/bus"
	"github.com/zeusync/skyfire/internal/core/models"
	inputs "github.com/zeusync/skyfire/internal/core/models/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/core/observability/metrics"
	"github.com/zeusync/skyfire/internal/core/system"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// Deps are the collaborators a Game is built from. Every field is optional:
// logs and metrics are discarded, input is idle and Rand is seeded from the
// configured seed.
type Deps struct {
	Logger   log.Log
	Recorder interfaces.Recorder
	Input    inputs.InputSource
	Rand     *rand.Rand
}

// Game is one headless simulation of the arcade shooter.
type Game struct {
	id       string
	cfg      *config.Config
	world    *World
	bus      *bus.Bus
	events   *Events
	assets   *Assets
	manager  *system.Manager
	life     *lifecycle
	factory  *factory
	controls *Controls
	logger   log.Log

	ship models.EntityID
}

// SeedRand derives a deterministic generator from a seed string.
func SeedRand(seed string) *rand.Rand {
	h := xxhash.Sum64String(seed)
	return rand.New(rand.NewPCG(h, h^0x9e3779b97f4a7c15))
}

// New validates the configuration, builds every system and spawns the ship
// and the enemy spawner.
func New(cfg *config.Config, deps Deps) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	assets, err := NewAssets(cfg.Assets)
	if err != nil {
		return nil, err
	}
	rows := make([]Weight, 0, len(cfg.Enemy.Variants))
	sizes := make(map[kinds.EnemyVariant]physics.Vec2, len(cfg.Enemy.Variants))
	for _, vc := range cfg.Enemy.Variants {
		rows = append(rows, Weight{Variant: vc.Variant, Weight: vc.Weight})
		sizes[vc.Variant] = size(vc.Size)
	}
	table, err := NewWeightedTable(rows...)
	if err != nil {
		return nil, err
	}

	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}
	if deps.Recorder == nil {
		deps.Recorder = metrics.Nop{}
	}
	if deps.Input == nil {
		deps.Input = inputs.StaticInput{}
	}
	if deps.Rand == nil {
		deps.Rand = SeedRand(cfg.Seed)
	}

	id := uuid.NewString()
	logger := deps.Logger.With(log.String("run_id", id))

	b := bus.New()
	b.AddObserver(bus.NewTelemetryObserver(deps.Recorder, logger))
	events, err := NewEvents(b)
	if err != nil {
		return nil, err
	}

	w := NewWorld()
	life := newLifecycle(w, deps.Recorder, logger)
	g := &Game{
		id:       id,
		cfg:      cfg,
		world:    w,
		bus:      b,
		events:   events,
		assets:   assets,
		life:     life,
		factory:  &factory{world: w, life: life, assets: assets, cfg: cfg},
		controls: &Controls{},
		logger:   logger,
	}

	g.manager = system.NewManager(deps.Recorder, logger, w.Registry)
	g.manager.OnTickEnd(b)

	arena := size(cfg.Arena)
	all := []systems.System{
		NewShipControlSystem(w, deps.Input, g.controls),
		NewFireControlSystem(w, events, g.controls),

		NewMotionSystem(w),
		NewArenaClampSystem(w, arena),
		NewMountSystem(w),
		NewCollisionSystem(w, events),

		NewCollisionResolver(w, life, events, cfg.ExplosionDuration(), deps.Recorder, logger),
		NewExpirySystem(w, life),
		NewOutOfBoundsSystem(w, life, arena),
		NewSpawnerSystem(w, events, deps.Rand, arena, sizes),
		NewSpawnConsumer("spawn_enemy", events.Enemies, g.factory.enemy),
		NewSpawnConsumer("spawn_laser", events.Lasers, g.factory.laser),
		NewSpawnConsumer("spawn_explosion", events.Explosions, g.factory.explosion),

		NewAnimationSystem(w),
		NewShipStateSystem(w),
	}
	for _, s := range all {
		if err = g.manager.RegisterSystem(s); err != nil {
			return nil, err
		}
	}

	if g.ship, err = g.factory.ship(g.manager.Now()); err != nil {
		return nil, fmt.Errorf("spawn ship: %w", err)
	}
	g.factory.spawner(table)

	logger.Info("simulation ready",
		log.String("seed", cfg.Seed),
		log.Int("systems", len(all)),
		log.Int("tick_rate", cfg.TickRate),
	)
	return g, nil
}

// ID identifies this simulation run in logs.
func (g *Game) ID() string { return g.id }

// Step advances the simulation by dt.
func (g *Game) Step(dt time.Duration) error {
	return g.manager.Tick(dt)
}

// Run steps the simulation at the configured tick rate until ctx is done.
// The delta of every step is measured on src and capped at MaxFrameDelta,
// so a stalled process resumes with one bounded step.
func (g *Game) Run(ctx context.Context, src clock.Source) error {
	ticker := time.NewTicker(g.cfg.TickInterval())
	defer ticker.Stop()

	last := src.Now()
	for {
		select {
		case <-ctx.Done():
			g.logger.Info("simulation stopped",
				log.Uint64("ticks", g.manager.Ticks()),
				log.Duration("simulated", g.manager.Now()),
			)
			return nil
		case <-ticker.C:
			now := src.Now()
			dt := min(now.Sub(last), g.cfg.MaxFrameDelta)
			last = now
			if err := g.Step(max(dt, 0)); err != nil {
				return err
			}
		}
	}
}

// Ship returns the player ship while it is alive.
func (g *Game) Ship() (models.EntityID, bool) {
	return g.ship, g.world.Registry.Alive(g.ship)
}

// Stats summarises the current state of the simulation.
type Stats struct {
	Tick       uint64
	Now        time.Duration
	Entities   int
	Enemies    int
	Lasers     int
	Explosions int
	ShipAlive  bool
	Streams    []bus.StreamInfo
}

func (g *Game) Stats() Stats {
	_, alive := g.Ship()
	return Stats{
		Tick:       g.manager.Ticks(),
		Now:        g.manager.Now(),
		Entities:   g.world.Registry.Len(),
		Enemies:    g.world.Enemies.Len(),
		Lasers:     g.world.Lasers.Len(),
		Explosions: g.world.Explosions.Len(),
		ShipAlive:  alive,
		Streams:    g.bus.Streams(),
	}
}

// EntityView is what a renderer needs to draw one entity.
type EntityView struct {
	ID          models.EntityID
	Kind        kinds.Kind
	Translation physics.Vec3
	Atlas       string
	Sprite      int
}

// Snapshot returns every drawable entity ordered by draw depth.
func (g *Game) Snapshot() []EntityView {
	out := make([]EntityView, 0, g.world.Sprites.Len())
	g.world.Sprites.Each(func(id models.EntityID, sp *Sprite) {
		t := g.world.Transforms.Get(id)
		if t == nil {
			return
		}
		out = append(out, EntityView{
			ID:          id,
			Kind:        g.world.KindOf(id),
			Translation: t.Translation,
			Atlas:       sp.Atlas.Path,
			Sprite:      sp.Index,
		})
	})
	slices.SortStableFunc(out, func(a, b EntityView) int {
		return cmp.Compare(a.Translation.Z, b.Translation.Z)
	})
	return out
}

// Assets returns the atlas registry the simulation spawns from.
func (g *Game) Assets() *Assets { return g.assets }
