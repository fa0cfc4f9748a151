package main

import "github.com/zeusync/skyfire/internal/core/models"

// autopilot sweeps the ship across the arena and keeps the trigger held.
// It counts reads, so the pattern follows the tick rate and not wall time.
type autopilot struct {
	sweep uint64
	reads uint64
}

func newAutopilot(sweep uint64) *autopilot {
	return &autopilot{sweep: max(sweep, 1)}
}

func (a *autopilot) ReadInput() models.Input {
	leg := a.reads / a.sweep
	a.reads++
	return models.Input{
		Left:  leg%2 == 0,
		Right: leg%2 == 1,
		Fire:  true,
	}
}
