package game

import (
	"time"

	"github.com/zeusync/skyfire/internal/core/events/bus"
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// ExpirySystem despawns entities whose TimeToLive has run out. No explosion
// is spawned.
type ExpirySystem struct {
	world *World
	life  *lifecycle

	expired []models.EntityID
}

func NewExpirySystem(w *World, life *lifecycle) *ExpirySystem {
	return &ExpirySystem{world: w, life: life}
}

func (s *ExpirySystem) Name() string                  { return "expiry" }
func (s *ExpirySystem) Phase() systems.ExecutionPhase { return systems.PhasePostUpdate }

func (s *ExpirySystem) Update(f systems.Frame) error {
	s.expired = s.expired[:0]
	s.world.Lifetimes.Each(func(id models.EntityID, ttl *TimeToLive) {
		ttl.Timer.Tick(f.Delta)
		if ttl.Timer.JustFinished() {
			s.expired = append(s.expired, id)
		}
	})
	for _, id := range s.expired {
		s.life.despawn(id, interfaces.ReasonExpired)
	}
	return nil
}

// OutOfBoundsSystem silently despawns enemies that left the arena through
// the bottom, left or right edge. A box touching the edge from outside counts
// as gone. The top edge is never tested so enemies can fly in.
type OutOfBoundsSystem struct {
	world *World
	life  *lifecycle
	arena physics.Vec2

	gone []models.EntityID
}

func NewOutOfBoundsSystem(w *World, life *lifecycle, arena physics.Vec2) *OutOfBoundsSystem {
	return &OutOfBoundsSystem{world: w, life: life, arena: arena}
}

func (s *OutOfBoundsSystem) Name() string                  { return "out_of_bounds" }
func (s *OutOfBoundsSystem) Phase() systems.ExecutionPhase { return systems.PhasePostUpdate }

func (s *OutOfBoundsSystem) Update(systems.Frame) error {
	s.gone = s.gone[:0]
	s.world.Enemies.Each(func(id models.EntityID, _ *Enemy) {
		t := s.world.Transforms.Get(id)
		hb := s.world.HitBoxes.Get(id)
		if t == nil || hb == nil {
			return
		}
		if s.exited(hb.At(t.Translation)) {
			s.gone = append(s.gone, id)
		}
	})
	for _, id := range s.gone {
		s.life.despawn(id, interfaces.ReasonOutOfBounds)
	}
	return nil
}

func (s *OutOfBoundsSystem) exited(b physics.Box) bool {
	lo, hi := b.Min(), b.Max()
	return hi.Y <= -s.arena.Y/2 ||
		hi.X <= -s.arena.X/2 ||
		lo.X >= s.arena.X/2
}

// CollisionResolver despawns both sides of every collision and requests an
// explosion where the target was. Entities that are already gone are
// skipped on their own, so only a live target yields an explosion.
type CollisionResolver struct {
	world     *World
	life      *lifecycle
	reader    *bus.Reader[Collision]
	events    *Events
	explosion time.Duration
	recorder  interfaces.Recorder
	logger    log.Log
}

func NewCollisionResolver(w *World, life *lifecycle, events *Events, explosion time.Duration, recorder interfaces.Recorder, logger log.Log) *CollisionResolver {
	return &CollisionResolver{
		world:     w,
		life:      life,
		reader:    events.Collisions.NewReader("collision_resolver"),
		events:    events,
		explosion: explosion,
		recorder:  recorder,
		logger:    logger,
	}
}

func (s *CollisionResolver) Name() string                  { return "collision_resolver" }
func (s *CollisionResolver) Phase() systems.ExecutionPhase { return systems.PhasePostUpdate }

func (s *CollisionResolver) Update(f systems.Frame) error {
	for _, c := range s.reader.Read() {
		s.life.despawn(c.Laser, interfaces.ReasonCollision)

		if !s.world.Registry.Alive(c.Target) {
			continue
		}
		t := s.world.Transforms.Get(c.Target)
		if t == nil {
			continue
		}
		pos := t.Translation
		fields := []log.Field{
			log.Stringer("target", c.Target),
			log.Stringer("laser", c.Laser),
			log.Stringer("kind", s.world.KindOf(c.Target)),
			log.Uint64("tick", f.Tick),
		}
		if e := s.world.Enemies.Get(c.Target); e != nil {
			fields = append(fields, log.Stringer("variant", e.Variant))
		}

		s.life.despawn(c.Target, interfaces.ReasonCollision)
		s.recorder.Collision(c.Faction.String())
		if c.Faction == kinds.Player {
			s.logger.Info("ship destroyed", fields...)
		} else {
			s.logger.Info("enemy destroyed", fields...)
		}

		s.events.Explosions.Send(SpawnExplosion{Translation: pos, TTL: s.explosion})
	}
	return nil
}
