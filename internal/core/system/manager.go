package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/core/systems"
)

var (
	ErrSystemExists   = errors.New("system already registered")
	ErrSystemNotFound = errors.New("system not found")
	ErrNegativeDt     = errors.New("tick delta must not be negative")
)

// TickEnder is called once at the end of every tick, after all systems ran.
// The event bus implements it through Update.
type TickEnder interface {
	Update()
}

// Counter reports the number of live entities after a tick.
type Counter interface {
	Len() int
}

type entry struct {
	system  systems.System
	enabled bool
	metrics systems.Metrics
}

// Manager orchestrates all systems of a simulation.
// It handles execution order, timing and the end-of-tick bookkeeping.
type Manager struct {
	entries  []*entry
	byName   map[string]*entry
	enders   []TickEnder
	counter  Counter
	recorder interfaces.Recorder
	logger   log.Log

	tick uint64
	now  time.Duration
}

// NewManager creates an empty manager. counter may be nil.
func NewManager(recorder interfaces.Recorder, logger log.Log, counter Counter) *Manager {
	return &Manager{
		byName:   make(map[string]*entry),
		counter:  counter,
		recorder: recorder,
		logger:   logger.With(log.String("component", "system_manager")),
	}
}

// RegisterSystem appends s to its phase.
func (m *Manager) RegisterSystem(s systems.System) error {
	name := s.Name()
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrSystemExists, name)
	}
	e := &entry{system: s, enabled: true}
	m.entries = append(m.entries, e)
	m.byName[name] = e
	m.logger.Debug("system registered", log.String("system", name), log.Stringer("phase", s.Phase()))
	return nil
}

// OnTickEnd registers a hook run after every tick.
func (m *Manager) OnTickEnd(e TickEnder) {
	m.enders = append(m.enders, e)
}

func (m *Manager) EnableSystem(name string) error  { return m.setEnabled(name, true) }
func (m *Manager) DisableSystem(name string) error { return m.setEnabled(name, false) }

func (m *Manager) setEnabled(name string, enabled bool) error {
	e, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	e.enabled = enabled
	return nil
}

func (m *Manager) HasSystem(name string) bool {
	_, ok := m.byName[name]
	return ok
}

// GetExecutionOrder returns system names in the order Tick runs them.
func (m *Manager) GetExecutionOrder() []string {
	order := make([]string, 0, len(m.entries))
	for _, phase := range systems.Phases {
		for _, e := range m.entries {
			if e.system.Phase() == phase {
				order = append(order, e.system.Name())
			}
		}
	}
	return order
}

func (m *Manager) GetSystemMetrics(name string) (systems.Metrics, bool) {
	e, ok := m.byName[name]
	if !ok {
		return systems.Metrics{}, false
	}
	return e.metrics, true
}

// Now returns the simulated time at the end of the last tick.
func (m *Manager) Now() time.Duration { return m.now }

// Ticks returns how many ticks ran so far.
func (m *Manager) Ticks() uint64 { return m.tick }

// Tick runs one simulation step of length dt. A failing system does not stop
// the others; all errors are joined and returned.
func (m *Manager) Tick(dt time.Duration) error {
	if dt < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeDt, dt)
	}
	start := time.Now()
	m.tick++
	m.now += dt
	frame := systems.Frame{Tick: m.tick, Delta: dt, Now: m.now}

	var errs []error
	for _, phase := range systems.Phases {
		for _, e := range m.entries {
			if !e.enabled || e.system.Phase() != phase {
				continue
			}
			if err := m.run(e, frame); err != nil {
				errs = append(errs, err)
			}
		}
	}

	for _, ender := range m.enders {
		ender.Update()
	}
	if m.counter != nil {
		m.recorder.EntitiesAlive(m.counter.Len())
	}
	m.recorder.TickDuration(time.Since(start))
	return errors.Join(errs...)
}

func (m *Manager) run(e *entry, frame systems.Frame) error {
	name := e.system.Name()
	start := time.Now()
	err := e.system.Update(frame)
	took := time.Since(start)

	e.metrics.ExecutionCount++
	e.metrics.TotalExecutionTime += took
	e.metrics.LastExecutionTime = took
	if took > e.metrics.MaxExecutionTime {
		e.metrics.MaxExecutionTime = took
	}
	m.recorder.SystemDuration(name, took)

	if err != nil {
		e.metrics.ErrorCount++
		e.metrics.LastError = err
		m.logger.Error("system update failed",
			log.String("system", name),
			log.Uint64("tick", frame.Tick),
			log.Error(err),
		)
		return fmt.Errorf("system %s: %w", name, err)
	}
	return nil
}
