package game

import (
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/models/interfaces"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
)

// Controls is the input sample of the current tick, shared by the systems
// that react to the player.
type Controls struct {
	Input models.Input
}

// ShipControlSystem samples the input once per tick and steers every ship.
type ShipControlSystem struct {
	world    *World
	source   interfaces.InputSource
	controls *Controls
}

func NewShipControlSystem(w *World, source interfaces.InputSource, controls *Controls) *ShipControlSystem {
	return &ShipControlSystem{world: w, source: source, controls: controls}
}

func (s *ShipControlSystem) Name() string                  { return "ship_control" }
func (s *ShipControlSystem) Phase() systems.ExecutionPhase { return systems.PhaseInput }

func (s *ShipControlSystem) Update(systems.Frame) error {
	in := s.source.ReadInput()
	s.controls.Input = in
	s.world.Ships.Each(func(id models.EntityID, ship *Ship) {
		if v := s.world.Velocities.Get(id); v != nil {
			v.Vec2 = physics.DirectionalVelocity(in.Horizontal(), in.Vertical(), ship.Speed)
		}
	})
	return nil
}
