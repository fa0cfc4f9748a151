package game

import (
	"time"

	"github.com/zeusync/skyfire/internal/core/events/bus"
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// Stream names, also used as metric labels.
const (
	StreamSpawnEnemy     = "spawn_enemy"
	StreamSpawnLaser     = "spawn_laser"
	StreamSpawnExplosion = "spawn_explosion"
	StreamCollision      = "collision"
)

// SpawnEnemy requests a new enemy of Variant at Translation.
type SpawnEnemy struct {
	Variant     kinds.EnemyVariant
	Translation physics.Vec3
}

// SpawnLaser requests a projectile fired by Source.
type SpawnLaser struct {
	Translation physics.Vec3
	Source      models.EntityID
	Faction     kinds.Faction
	Velocity    physics.Vec2
	HitBox      physics.Vec2
	TTL         time.Duration
	Sprite      int
}

// SpawnExplosion requests an explosion that disappears after TTL.
type SpawnExplosion struct {
	Translation physics.Vec3
	TTL         time.Duration
}

// Collision reports that Laser overlaps Target. Faction is the target's.
type Collision struct {
	Laser   models.EntityID
	Target  models.EntityID
	Faction kinds.Faction
}

// Events groups the streams of one simulation.
type Events struct {
	Enemies    *bus.Stream[SpawnEnemy]
	Lasers     *bus.Stream[SpawnLaser]
	Explosions *bus.Stream[SpawnExplosion]
	Collisions *bus.Stream[Collision]
}

func NewEvents(b *bus.Bus) (*Events, error) {
	var (
		e   Events
		err error
	)
	if e.Enemies, err = bus.NewStream[SpawnEnemy](b, StreamSpawnEnemy); err != nil {
		return nil, err
	}
	if e.Lasers, err = bus.NewStream[SpawnLaser](b, StreamSpawnLaser); err != nil {
		return nil, err
	}
	if e.Explosions, err = bus.NewStream[SpawnExplosion](b, StreamSpawnExplosion); err != nil {
		return nil, err
	}
	if e.Collisions, err = bus.NewStream[Collision](b, StreamCollision); err != nil {
		return nil, err
	}
	return &e, nil
}
