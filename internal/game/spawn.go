package game

import (
	"fmt"
	"time"

	"github.com/zeusync/skyfire/internal/config"
	"github.com/zeusync/skyfire/internal/core/clock"
	"github.com/zeusync/skyfire/internal/core/events/bus"
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// Sprite animation of the spawned entities.
const (
	laserFrameStep = 2 // keeps ship and enemy bolts on their own frames
	enemyFrameStep = 1
	blastFrameStep = 1
)

func vec(v config.Vec) physics.Vec2   { return physics.Vec2{X: v.X, Y: v.Y} }
func size(s config.Size) physics.Vec2 { return physics.Vec2{X: s.Width, Y: s.Height} }

func laserTemplate(l config.LaserConfig) LaserTemplate {
	return LaserTemplate{
		Velocity: vec(l.Velocity),
		HitBox:   size(l.Size),
		TTL:      l.TTL,
		Sprite:   l.Sprite,
	}
}

// factory builds entities from templates. It only reads the configuration
// and the asset registry.
type factory struct {
	world  *World
	life   *lifecycle
	assets *Assets
	cfg    *config.Config
}

func (f *factory) animation(delta int, atlas Atlas) Animatable {
	return Animatable{
		Delta: delta,
		Count: atlas.Frames,
		Timer: clock.NewRepeating(f.cfg.AnimationInterval),
	}
}

// ship spawns the player ship and its weapon at the arena center.
func (f *factory) ship(now time.Duration) (models.EntityID, error) {
	w := f.world
	id := f.life.spawn(kinds.KindShip)
	hb := size(f.cfg.Ship.Size)
	w.Transforms.Insert(id, at(physics.Vec3{Z: zShip}))
	w.Velocities.Insert(id, Velocity{})
	w.HitBoxes.Insert(id, HitBox{Size: hb})
	w.Sprites.Insert(id, Sprite{Atlas: f.assets.Ship(), Index: Stabilized.SpriteIndex()})
	w.ShipStates.Insert(id, ShipState{
		State:          Stabilized,
		LastTransition: now,
		Debounce:       f.cfg.Ship.TransitionDelay,
	})
	w.Ships.Insert(id, Ship{Speed: f.cfg.Ship.Speed})
	w.Factions.Insert(id, kinds.Player)
	w.Constrained.Insert(id, ConstrainedToArena{})

	offset := physics.Vec2{Y: hb.Y / 2}
	if _, err := f.weapon(id, offset, f.cfg.ShipLaser, kinds.Player, TriggerManual); err != nil {
		return models.NoEntity, err
	}
	return id, nil
}

// weapon mounts a primed weapon on owner.
func (f *factory) weapon(owner models.EntityID, offset physics.Vec2, l config.LaserConfig, faction kinds.Faction, trigger Trigger) (models.EntityID, error) {
	w := f.world
	id, err := f.life.spawnChild(owner, kinds.KindWeapon)
	if err != nil {
		return models.NoEntity, fmt.Errorf("mount weapon: %w", err)
	}
	mount := Mount{Owner: owner, Offset: offset}
	origin, _ := mountPoint(w, &mount)
	w.Transforms.Insert(id, at(origin))
	w.Mounts.Insert(id, mount)

	cooldown := clock.NewOneShot(l.Cooldown)
	cooldown.Prime()
	w.Weapons.Insert(id, Weapon{
		Cooldown: cooldown,
		Template: laserTemplate(l),
		Faction:  faction,
		Trigger:  trigger,
	})
	return id, nil
}

func (f *factory) spawner(table *WeightedTable) models.EntityID {
	id := f.life.spawn(kinds.KindSpawner)
	f.world.Spawners.Insert(id, EnemySpawner{
		Timer: clock.NewRepeating(f.cfg.Enemy.SpawnInterval),
		Table: table,
	})
	return id
}

func (f *factory) enemy(ev SpawnEnemy) (models.EntityID, error) {
	vc, ok := f.cfg.Variant(ev.Variant)
	if !ok {
		panic(fmt.Sprintf("game: spawn requested for unconfigured variant %s", ev.Variant))
	}
	w := f.world
	atlas := f.assets.Enemy(ev.Variant)
	hb := size(vc.Size)

	id := f.life.spawn(kinds.KindEnemy)
	w.Transforms.Insert(id, at(depth(ev.Translation, zEnemy)))
	w.Velocities.Insert(id, Velocity{Vec2: vec(f.cfg.Enemy.Velocity)})
	w.HitBoxes.Insert(id, HitBox{Size: hb})
	w.Sprites.Insert(id, Sprite{Atlas: atlas})
	w.Animations.Insert(id, f.animation(enemyFrameStep, atlas))
	w.Enemies.Insert(id, Enemy{Variant: ev.Variant})
	w.Factions.Insert(id, kinds.Hostile)

	if vc.Armed {
		offset := physics.Vec2{Y: -hb.Y / 2}
		if _, err := f.weapon(id, offset, f.cfg.Enemy.Laser, kinds.Hostile, TriggerAuto); err != nil {
			return models.NoEntity, err
		}
	}
	return id, nil
}

func (f *factory) laser(ev SpawnLaser) (models.EntityID, error) {
	w := f.world
	atlas := f.assets.Laser()
	id := f.life.spawn(kinds.KindLaser)
	w.Transforms.Insert(id, at(depth(ev.Translation, zLaser)))
	w.Velocities.Insert(id, Velocity{Vec2: ev.Velocity})
	w.HitBoxes.Insert(id, HitBox{Size: ev.HitBox})
	w.Sprites.Insert(id, Sprite{Atlas: atlas, Index: ev.Sprite})
	w.Animations.Insert(id, f.animation(laserFrameStep, atlas))
	w.Lasers.Insert(id, Laser{Source: ev.Source, Faction: ev.Faction})
	w.Lifetimes.Insert(id, TimeToLive{Timer: clock.NewOneShot(ev.TTL)})
	return id, nil
}

func (f *factory) explosion(ev SpawnExplosion) (models.EntityID, error) {
	w := f.world
	atlas := f.assets.Explosion()
	id := f.life.spawn(kinds.KindExplosion)
	w.Transforms.Insert(id, at(depth(ev.Translation, zExplosion)))
	w.Sprites.Insert(id, Sprite{Atlas: atlas})
	w.Animations.Insert(id, f.animation(blastFrameStep, atlas))
	w.Explosions.Insert(id, Explosion{})
	w.Lifetimes.Insert(id, TimeToLive{Timer: clock.NewOneShot(ev.TTL)})
	return id, nil
}

// SpawnConsumer turns the requests of one stream into entities.
type SpawnConsumer[T any] struct {
	name   string
	reader *bus.Reader[T]
	build  func(T) (models.EntityID, error)
}

func NewSpawnConsumer[T any](name string, stream *bus.Stream[T], build func(T) (models.EntityID, error)) *SpawnConsumer[T] {
	return &SpawnConsumer[T]{name: name, reader: stream.NewReader(name), build: build}
}

func (c *SpawnConsumer[T]) Name() string                  { return c.name }
func (c *SpawnConsumer[T]) Phase() systems.ExecutionPhase { return systems.PhasePostUpdate }

func (c *SpawnConsumer[T]) Update(systems.Frame) error {
	for _, ev := range c.reader.Read() {
		if _, err := c.build(ev); err != nil {
			return err
		}
	}
	return nil
}
