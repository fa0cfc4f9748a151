package game

import (
	"time"

	"github.com/zeusync/skyfire/internal/core/clock"
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/core/world"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// Draw order of each entity kind; higher is drawn on top.
const (
	zLaser     = 0.0
	zEnemy     = 1.0
	zShip      = 2.0
	zExplosion = 3.0
)

// Transform places an entity in the arena. Scale only affects rendering.
type Transform struct {
	Translation physics.Vec3
	Scale       physics.Vec2
}

func at(translation physics.Vec3) Transform {
	return Transform{Translation: translation, Scale: physics.Vec2{X: 1, Y: 1}}
}

func depth(v physics.Vec3, z float64) physics.Vec3 {
	v.Z = z
	return v
}

// Velocity is in world units per second.
type Velocity struct {
	physics.Vec2
}

// HitBox is the full width and height of the collision rectangle, in world
// units, centered on the entity translation.
type HitBox struct {
	Size physics.Vec2
}

func (h HitBox) At(center physics.Vec3) physics.Box {
	return physics.Box{Center: center.XY(), Size: h.Size}
}

// Sprite is the visible frame of an entity.
type Sprite struct {
	Atlas Atlas
	Index int
}

// Animatable advances Sprite.Index by Delta, modulo Count, once per timer period.
type Animatable struct {
	Delta int
	Count int
	Timer clock.Timer
}

// ShipState drives the banking animation of a ship.
type ShipState struct {
	State          AnimationState
	LastTransition time.Duration
	Debounce       time.Duration
}

// Ship marks the player ship.
type Ship struct {
	Speed float64
}

type Enemy struct {
	Variant kinds.EnemyVariant
}

// Laser is a projectile. Source is the entity whose weapon fired it.
type Laser struct {
	Source  models.EntityID
	Faction kinds.Faction
}

type Explosion struct{}

// TimeToLive despawns its entity once the one-shot timer completes.
type TimeToLive struct {
	Timer clock.Timer
}

// ConstrainedToArena keeps an entity inside the play field.
type ConstrainedToArena struct{}

// Trigger decides when a weapon with an elapsed cooldown fires.
type Trigger uint8

const (
	// TriggerManual fires while the fire key is held.
	TriggerManual Trigger = iota
	// TriggerAuto fires as soon as the cooldown allows.
	TriggerAuto
)

// LaserTemplate is what a weapon puts into every SpawnLaser request.
type LaserTemplate struct {
	Velocity physics.Vec2
	HitBox   physics.Vec2
	TTL      time.Duration
	Sprite   int
}

// Weapon fires lasers from its mount point.
type Weapon struct {
	Cooldown clock.Timer
	Template LaserTemplate
	Faction  kinds.Faction
	Trigger  Trigger
}

// Mount attaches an entity to its owner at a fixed offset.
type Mount struct {
	Owner  models.EntityID
	Offset physics.Vec2
}

// EnemySpawner periodically requests a random enemy.
type EnemySpawner struct {
	Timer clock.Timer
	Table *WeightedTable
}

// World holds the registry and every component store of one simulation.
type World struct {
	Registry *world.Registry

	Kinds       *world.Store[kinds.Kind]
	Factions    *world.Store[kinds.Faction]
	Transforms  *world.Store[Transform]
	Velocities  *world.Store[Velocity]
	HitBoxes    *world.Store[HitBox]
	Sprites     *world.Store[Sprite]
	Animations  *world.Store[Animatable]
	ShipStates  *world.Store[ShipState]
	Ships       *world.Store[Ship]
	Enemies     *world.Store[Enemy]
	Lasers      *world.Store[Laser]
	Explosions  *world.Store[Explosion]
	Lifetimes   *world.Store[TimeToLive]
	Constrained *world.Store[ConstrainedToArena]
	Weapons     *world.Store[Weapon]
	Mounts      *world.Store[Mount]
	Spawners    *world.Store[EnemySpawner]
}

func NewWorld() *World {
	r := world.NewRegistry()
	return &World{
		Registry:    r,
		Kinds:       world.NewStore[kinds.Kind](r),
		Factions:    world.NewStore[kinds.Faction](r),
		Transforms:  world.NewStore[Transform](r),
		Velocities:  world.NewStore[Velocity](r),
		HitBoxes:    world.NewStore[HitBox](r),
		Sprites:     world.NewStore[Sprite](r),
		Animations:  world.NewStore[Animatable](r),
		ShipStates:  world.NewStore[ShipState](r),
		Ships:       world.NewStore[Ship](r),
		Enemies:     world.NewStore[Enemy](r),
		Lasers:      world.NewStore[Laser](r),
		Explosions:  world.NewStore[Explosion](r),
		Lifetimes:   world.NewStore[TimeToLive](r),
		Constrained: world.NewStore[ConstrainedToArena](r),
		Weapons:     world.NewStore[Weapon](r),
		Mounts:      world.NewStore[Mount](r),
		Spawners:    world.NewStore[EnemySpawner](r),
	}
}

// KindOf returns the kind an entity was spawned as.
func (w *World) KindOf(id models.EntityID) kinds.Kind {
	if k := w.Kinds.Get(id); k != nil {
		return *k
	}
	return 0
}
