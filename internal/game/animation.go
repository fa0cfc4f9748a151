package game

import (
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
)

// AnimationSystem cycles the sprite of every Animatable entity.
type AnimationSystem struct {
	world *World
}

func NewAnimationSystem(w *World) *AnimationSystem { return &AnimationSystem{world: w} }

func (s *AnimationSystem) Name() string                  { return "animation" }
func (s *AnimationSystem) Phase() systems.ExecutionPhase { return systems.PhaseLate }

func (s *AnimationSystem) Update(f systems.Frame) error {
	s.world.Animations.Each(func(id models.EntityID, a *Animatable) {
		a.Timer.Tick(f.Delta)
		if !a.Timer.JustFinished() || a.Count <= 0 {
			return
		}
		if sp := s.world.Sprites.Get(id); sp != nil {
			sp.Index = (sp.Index + a.Delta) % a.Count
		}
	})
	return nil
}

// ShipStateSystem banks ships toward their horizontal velocity, one state per
// debounce interval. The debounce gate compares timestamps and is only
// re-armed by an actual state change.
type ShipStateSystem struct {
	world *World
}

func NewShipStateSystem(w *World) *ShipStateSystem { return &ShipStateSystem{world: w} }

func (s *ShipStateSystem) Name() string                  { return "ship_state" }
func (s *ShipStateSystem) Phase() systems.ExecutionPhase { return systems.PhaseLate }

func (s *ShipStateSystem) Update(f systems.Frame) error {
	s.world.ShipStates.Each(func(id models.EntityID, st *ShipState) {
		v := s.world.Velocities.Get(id)
		if v == nil {
			return
		}
		next := st.State.Next(v.X)
		if next == st.State || f.Now-st.LastTransition < st.Debounce {
			return
		}
		st.State = next
		st.LastTransition = f.Now
		if sp := s.world.Sprites.Get(id); sp != nil {
			sp.Index = next.SpriteIndex()
		}
	})
	return nil
}
