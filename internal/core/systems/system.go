package systems

import "time"

// System is one per-tick processor. Systems run synchronously inside a tick,
// grouped by phase and, within a phase, in registration order.
type System interface {
	Name() string
	Phase() ExecutionPhase
	Update(Frame) error
}

// ExecutionPhase defines when a system runs within a tick.
type ExecutionPhase uint8

const (
	// PhaseInput samples input and turns intents into velocities and spawn requests.
	PhaseInput ExecutionPhase = iota
	// PhaseUpdate integrates motion and detects collisions.
	PhaseUpdate
	// PhasePostUpdate resolves collisions, reaps entities and applies spawn requests.
	PhasePostUpdate
	// PhaseLate updates purely visual state.
	PhaseLate
)

// Phases lists every phase in execution order.
var Phases = []ExecutionPhase{PhaseInput, PhaseUpdate, PhasePostUpdate, PhaseLate}

func (p ExecutionPhase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseLate:
		return "late"
	default:
		return "unknown"
	}
}

// Frame carries the timing of the tick being executed.
type Frame struct {
	// Tick is the 1-based index of the tick.
	Tick uint64
	// Delta is the simulated time since the previous tick.
	Delta time.Duration
	// Now is the monotonic simulated time at the end of this tick.
	Now time.Duration
}

// DeltaSeconds returns Delta in seconds for velocity integration.
func (f Frame) DeltaSeconds() float64 { return f.Delta.Seconds() }

// Func adapts a function to System.
type Func struct {
	SystemName  string
	SystemPhase ExecutionPhase
	Fn          func(Frame) error
}

func (f Func) Name() string             { return f.SystemName }
func (f Func) Phase() ExecutionPhase    { return f.SystemPhase }
func (f Func) Update(frame Frame) error { return f.Fn(frame) }

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount     uint64
	TotalExecutionTime time.Duration
	MaxExecutionTime   time.Duration
	LastExecutionTime  time.Duration
	ErrorCount         uint64
	LastError          error
}
