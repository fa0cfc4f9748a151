package interfaces

import "time"

// Recorder receives simulation telemetry. Implementations must be cheap:
// they are called from inside the tick.
type Recorder interface {
	EntitySpawned(kind string)
	EntityDespawned(kind, reason string)
	Collision(target string)
	EntitiesAlive(n int)

	EventsPublished(stream string, n int)
	EventsMissed(stream, reader string, n int)

	TickDuration(d time.Duration)
	SystemDuration(system string, d time.Duration)
}

// Despawn reasons reported through Recorder.EntityDespawned.
const (
	ReasonCollision   = "collision"
	ReasonExpired     = "expired"
	ReasonOutOfBounds = "out_of_bounds"
	ReasonOwner       = "owner"
)
