package game

import (
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
)

// MotionSystem integrates velocity into translation.
type MotionSystem struct {
	world *World
}

func NewMotionSystem(w *World) *MotionSystem { return &MotionSystem{world: w} }

func (s *MotionSystem) Name() string                  { return "motion" }
func (s *MotionSystem) Phase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (s *MotionSystem) Update(f systems.Frame) error {
	dt := f.DeltaSeconds()
	s.world.Velocities.Each(func(id models.EntityID, v *Velocity) {
		if t := s.world.Transforms.Get(id); t != nil {
			t.Translation = t.Translation.Add(v.Scale(dt))
		}
	})
	return nil
}

// ArenaClampSystem keeps ConstrainedToArena entities inside the play field.
// Velocity is left alone so the entity keeps pushing against the wall.
type ArenaClampSystem struct {
	world *World
	arena physics.Vec2
}

func NewArenaClampSystem(w *World, arena physics.Vec2) *ArenaClampSystem {
	return &ArenaClampSystem{world: w, arena: arena}
}

func (s *ArenaClampSystem) Name() string                  { return "arena_clamp" }
func (s *ArenaClampSystem) Phase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (s *ArenaClampSystem) Update(systems.Frame) error {
	s.world.Constrained.Each(func(id models.EntityID, _ *ConstrainedToArena) {
		t := s.world.Transforms.Get(id)
		hb := s.world.HitBoxes.Get(id)
		if t == nil || hb == nil {
			return
		}
		t.Translation.X = physics.ClampAxis(t.Translation.X, s.arena.X, hb.Size.X)
		t.Translation.Y = physics.ClampAxis(t.Translation.Y, s.arena.Y, hb.Size.Y)
	})
	return nil
}
