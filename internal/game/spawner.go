package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

var (
	ErrEmptyWeights      = errors.New("spawn table has no weight")
	ErrNonPositiveWeight = errors.New("spawn weight must be positive")
)

// Weight is one row of a spawn table.
type Weight struct {
	Variant kinds.EnemyVariant
	Weight  int
}

// WeightedTable draws enemy variants with probability proportional to
// their weight.
type WeightedTable struct {
	rows  []Weight
	total int
}

// NewWeightedTable validates rows. An empty or all-zero table fails with
// ErrEmptyWeights, any other non-positive weight with ErrNonPositiveWeight.
func NewWeightedTable(rows ...Weight) (*WeightedTable, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyWeights
	}
	total := 0
	for _, r := range rows {
		if r.Weight < 0 {
			return nil, fmt.Errorf("%w: %s has %d", ErrNonPositiveWeight, r.Variant, r.Weight)
		}
		total += r.Weight
	}
	if total == 0 {
		return nil, ErrEmptyWeights
	}
	for _, r := range rows {
		if r.Weight == 0 {
			return nil, fmt.Errorf("%w: %s has 0", ErrNonPositiveWeight, r.Variant)
		}
	}
	return &WeightedTable{rows: append([]Weight(nil), rows...), total: total}, nil
}

// Sample draws one variant.
func (t *WeightedTable) Sample(rng *rand.Rand) kinds.EnemyVariant {
	n := rng.IntN(t.total)
	for _, r := range t.rows {
		if n < r.Weight {
			return r.Variant
		}
		n -= r.Weight
	}
	return t.rows[len(t.rows)-1].Variant
}

// Total returns the sum of all weights.
func (t *WeightedTable) Total() int { return t.total }

// Rows returns a copy of the table.
func (t *WeightedTable) Rows() []Weight { return append([]Weight(nil), t.rows...) }

// SpawnerSystem ticks every EnemySpawner and, once per completed period,
// requests one enemy just above the top edge of the arena.
type SpawnerSystem struct {
	world  *World
	events *Events
	rng    *rand.Rand
	arena  physics.Vec2
	sizes  [len(kinds.Variants)]physics.Vec2
}

func NewSpawnerSystem(w *World, events *Events, rng *rand.Rand, arena physics.Vec2, sizes map[kinds.EnemyVariant]physics.Vec2) *SpawnerSystem {
	s := &SpawnerSystem{world: w, events: events, rng: rng, arena: arena}
	for v, size := range sizes {
		s.sizes[v] = size
	}
	return s
}

func (s *SpawnerSystem) Name() string                  { return "enemy_spawner" }
func (s *SpawnerSystem) Phase() systems.ExecutionPhase { return systems.PhasePostUpdate }

func (s *SpawnerSystem) Update(f systems.Frame) error {
	s.world.Spawners.Each(func(_ models.EntityID, sp *EnemySpawner) {
		sp.Timer.Tick(f.Delta)
		if !sp.Timer.JustFinished() {
			return
		}
		v := sp.Table.Sample(s.rng)
		s.events.Enemies.Send(SpawnEnemy{Variant: v, Translation: s.placement(v)})
	})
	return nil
}

// placement returns a uniformly random x that keeps the whole enemy inside
// the arena width, and a y just above the top edge.
func (s *SpawnerSystem) placement(v kinds.EnemyVariant) physics.Vec3 {
	size := s.sizes[v]
	half := physics.HalfRange(s.arena.X, size.X)
	return physics.Vec3{
		X: (s.rng.Float64()*2 - 1) * half,
		Y: (s.arena.Y + size.Y) / 2,
	}
}
