package game

import (
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
)

// mountPoint returns owner translation + offset for a mounted entity.
func mountPoint(w *World, m *Mount) (physics.Vec3, bool) {
	owner := w.Transforms.Get(m.Owner)
	if owner == nil {
		return physics.Vec3{}, false
	}
	return owner.Translation.Add(m.Offset), true
}

// MountSystem moves mounted entities along with their owners.
type MountSystem struct {
	world *World
}

func NewMountSystem(w *World) *MountSystem { return &MountSystem{world: w} }

func (s *MountSystem) Name() string                  { return "mount" }
func (s *MountSystem) Phase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (s *MountSystem) Update(systems.Frame) error {
	s.world.Mounts.Each(func(id models.EntityID, m *Mount) {
		t := s.world.Transforms.Get(id)
		if t == nil {
			return
		}
		if p, ok := mountPoint(s.world, m); ok {
			t.Translation = p
		}
	})
	return nil
}

// FireControlSystem ticks weapon cooldowns and turns fire intents into
// SpawnLaser requests. Manual weapons need the fire key, automatic ones fire
// whenever their cooldown has elapsed.
type FireControlSystem struct {
	world    *World
	events   *Events
	controls *Controls
}

func NewFireControlSystem(w *World, events *Events, controls *Controls) *FireControlSystem {
	return &FireControlSystem{world: w, events: events, controls: controls}
}

func (s *FireControlSystem) Name() string                  { return "fire_control" }
func (s *FireControlSystem) Phase() systems.ExecutionPhase { return systems.PhaseInput }

func (s *FireControlSystem) Update(f systems.Frame) error {
	s.world.Weapons.Each(func(id models.EntityID, w *Weapon) {
		w.Cooldown.Tick(f.Delta)
		if !w.Cooldown.Finished() {
			return
		}
		if w.Trigger == TriggerManual && !s.controls.Input.Fire {
			return
		}
		m := s.world.Mounts.Get(id)
		if m == nil {
			return
		}
		origin, ok := mountPoint(s.world, m)
		if !ok {
			return
		}
		w.Cooldown.Reset()
		s.events.Lasers.Send(SpawnLaser{
			Translation: origin,
			Source:      m.Owner,
			Faction:     w.Faction,
			Velocity:    w.Template.Velocity,
			HitBox:      w.Template.HitBox,
			TTL:         w.Template.TTL,
			Sprite:      w.Template.Sprite,
		})
	})
	return nil
}
