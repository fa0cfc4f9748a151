package game

import (
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// CollisionSystem tests every laser against every ship and enemy and reports
// overlapping pairs. A laser never hits its source or anything of its own
// faction. Pairs are reported again on every tick they still overlap.
type CollisionSystem struct {
	world  *World
	events *Events

	targets []target
}

type target struct {
	id      models.EntityID
	faction kinds.Faction
	box     physics.Box
}

func NewCollisionSystem(w *World, events *Events) *CollisionSystem {
	return &CollisionSystem{world: w, events: events}
}

func (s *CollisionSystem) Name() string                  { return "collision" }
func (s *CollisionSystem) Phase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (s *CollisionSystem) Update(systems.Frame) error {
	s.targets = s.targets[:0]
	collect := func(id models.EntityID) {
		t := s.world.Transforms.Get(id)
		hb := s.world.HitBoxes.Get(id)
		f := s.world.Factions.Get(id)
		if t == nil || hb == nil || f == nil {
			return
		}
		s.targets = append(s.targets, target{id: id, faction: *f, box: hb.At(t.Translation)})
	}
	s.world.Ships.Each(func(id models.EntityID, _ *Ship) { collect(id) })
	s.world.Enemies.Each(func(id models.EntityID, _ *Enemy) { collect(id) })
	if len(s.targets) == 0 {
		return nil
	}

	s.world.Lasers.Each(func(id models.EntityID, l *Laser) {
		t := s.world.Transforms.Get(id)
		hb := s.world.HitBoxes.Get(id)
		if t == nil || hb == nil {
			return
		}
		box := hb.At(t.Translation)
		for _, tg := range s.targets {
			if tg.id == l.Source || tg.faction == l.Faction {
				continue
			}
			if physics.Overlaps(box, tg.box) {
				s.events.Collisions.Send(Collision{Laser: id, Target: tg.id, Faction: tg.faction})
			}
		}
	})
	return nil
}
