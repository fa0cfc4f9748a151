package game

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/zeusync/skyfire/internal/core/events/bus"
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/systems"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

func detect(t *testing.T, w *World) []Collision {
	t.Helper()
	events, err := NewEvents(bus.New())
	require.NoError(t, err)
	r := events.Collisions.NewReader("test")
	require.NoError(t, NewCollisionSystem(w, events).Update(systems.Frame{}))
	return r.Read()
}

func TestCollisionSelfExclusion(t *testing.T) {
	h := newHarness(t)
	ship := h.ship(t)
	pos := h.position(t, ship)

	own := h.spawnLaser(t, ship, kinds.Player, pos.X, pos.Y)
	assert.Empty(t, detect(t, h.world()), "a ship's own laser never hits it")

	hostile := h.spawnLaser(t, models.NoEntity, kinds.Hostile, pos.X, pos.Y)
	got := detect(t, h.world())
	require.Len(t, got, 1)
	assert.Equal(t, Collision{Laser: hostile, Target: ship, Faction: kinds.Player}, got[0])
	assert.NotEqual(t, own, got[0].Laser)
}

func TestCollisionEnemyLasersSpareEnemies(t *testing.T) {
	h := newHarness(t)
	enemy := h.spawnEnemy(t, kinds.Medium, 0, 60)
	other := h.spawnEnemy(t, kinds.Small, 4, 60)

	h.spawnLaser(t, enemy, kinds.Hostile, 0, 60)
	assert.Empty(t, detect(t, h.world()))

	player := h.spawnLaser(t, h.ship(t), kinds.Player, 2, 60)
	got := detect(t, h.world())
	require.Len(t, got, 2, "one event per overlapping pair")
	targets := []models.EntityID{got[0].Target, got[1].Target}
	assert.ElementsMatch(t, []models.EntityID{enemy, other}, targets)
	for _, c := range got {
		assert.Equal(t, player, c.Laser)
		assert.Equal(t, kinds.Hostile, c.Faction)
	}
}

func TestCollisionRequiresStrictOverlap(t *testing.T) {
	h := newHarness(t)
	h.spawnEnemy(t, kinds.Small, 0, 60)
	// laser 5x13 and enemy 16x16 touch when centers are 10.5 apart on x.
	h.spawnLaser(t, h.ship(t), kinds.Player, 10.5, 60)
	assert.Empty(t, detect(t, h.world()))
	h.spawnLaser(t, h.ship(t), kinds.Player, 10.4, 60)
	assert.Len(t, detect(t, h.world()), 1)
}

func TestShipDestroyedByEnemyLaser(t *testing.T) {
	h := newHarness(t)
	ship := h.ship(t)
	weapon := h.world().Registry.Children(ship)[0]
	laser := h.spawnLaser(t, models.NoEntity, kinds.Hostile, 0, 0)

	h.step(t, 1, 10*time.Millisecond)

	_, alive := h.game.Ship()
	assert.False(t, alive)
	assert.False(t, h.world().Registry.Alive(weapon), "the ship's weapon goes with it")
	assert.False(t, h.world().Registry.Alive(laser))

	require.Equal(t, 1, h.world().Explosions.Len())
	h.world().Explosions.Each(func(id models.EntityID, _ *Explosion) {
		p := h.position(t, id)
		assert.Equal(t, 0.0, p.X)
		assert.Equal(t, 0.0, p.Y)
		assert.Equal(t, zExplosion, p.Z)
		ttl := h.world().Lifetimes.Get(id)
		assert.Equal(t, time.Second, ttl.Timer.Duration(), "five animation intervals")
	})

	destroyed := h.logs.FilterMessage("ship destroyed").All()
	require.Len(t, destroyed, 1)
	assert.Equal(t, zapcore.InfoLevel, destroyed[0].Level)

	expected := `
# HELP skyfire_collisions_total Resolved laser hits, by target faction.
# TYPE skyfire_collisions_total counter
skyfire_collisions_total{target="player"} 1
`
	require.NoError(t, testutil.GatherAndCompare(h.recorder.Registry(), strings.NewReader(expected), "skyfire_collisions_total"))
	assert.Equal(t, 1.0, counterValue(t, h, "skyfire_entities_despawned_total", `kind="weapon",reason="owner"`))
	assert.Equal(t, 1.0, counterValue(t, h, "skyfire_entities_despawned_total", `kind="ship",reason="collision"`))
}

// counterValue reads one sample from the text exposition of the recorder.
func counterValue(t *testing.T, h *harness, name, labels string) float64 {
	t.Helper()
	families, err := h.recorder.Registry().Gather()
	require.NoError(t, err)
	want := map[string]string{}
	for _, kv := range strings.Split(labels, ",") {
		k, v, _ := strings.Cut(kv, "=")
		want[k] = strings.Trim(v, `"`)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}
