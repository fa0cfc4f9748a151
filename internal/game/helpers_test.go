package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/skyfire/internal/config"
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/models/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/core/observability/metrics"
	"github.com/zeusync/skyfire/internal/core/systems/physics"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

type harness struct {
	game     *Game
	input    *models.Input
	logs     *observer.ObservedLogs
	recorder *metrics.Prometheus
}

// newHarness builds a game whose spawner never fires on its own.
func newHarness(t *testing.T, mutate ...func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Enemy.SpawnInterval = time.Hour
	for _, m := range mutate {
		m(cfg)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	in := &models.Input{}
	rec := metrics.NewPrometheus()
	g, err := New(cfg, Deps{
		Logger:   log.NewWithCore(core),
		Recorder: rec,
		Input:    interfaces.InputFunc(func() models.Input { return *in }),
		Rand:     SeedRand("test"),
	})
	require.NoError(t, err)
	return &harness{game: g, input: in, logs: logs, recorder: rec}
}

func (h *harness) step(t *testing.T, n int, dt time.Duration) {
	t.Helper()
	for range n {
		require.NoError(t, h.game.Step(dt))
	}
}

func (h *harness) world() *World { return h.game.world }

func (h *harness) ship(t *testing.T) models.EntityID {
	t.Helper()
	id, ok := h.game.Ship()
	require.True(t, ok)
	return id
}

func (h *harness) position(t *testing.T, id models.EntityID) physics.Vec3 {
	t.Helper()
	tr := h.world().Transforms.Get(id)
	require.NotNil(t, tr, "entity %s has no transform", id)
	return tr.Translation
}

func (h *harness) spawnEnemy(t *testing.T, v kinds.EnemyVariant, x, y float64) models.EntityID {
	t.Helper()
	id, err := h.game.factory.enemy(SpawnEnemy{Variant: v, Translation: physics.Vec3{X: x, Y: y, Z: zEnemy}})
	require.NoError(t, err)
	return id
}

func (h *harness) spawnLaser(t *testing.T, source models.EntityID, faction kinds.Faction, x, y float64) models.EntityID {
	t.Helper()
	id, err := h.game.factory.laser(SpawnLaser{
		Translation: physics.Vec3{X: x, Y: y},
		Source:      source,
		Faction:     faction,
		HitBox:      physics.Vec2{X: 5, Y: 13},
		TTL:         3 * time.Second,
	})
	require.NoError(t, err)
	return id
}

func (h *harness) lasersFrom(source models.EntityID) []models.EntityID {
	var out []models.EntityID
	h.world().Lasers.Each(func(id models.EntityID, l *Laser) {
		if l.Source == source {
			out = append(out, id)
		}
	})
	return out
}
