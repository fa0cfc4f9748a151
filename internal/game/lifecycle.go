package game

import (
	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/observability/interfaces"
	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

// lifecycle is the single path through which entities are created and
// removed, so every spawn and despawn is counted and logged once.
type lifecycle struct {
	world    *World
	recorder interfaces.Recorder
	logger   log.Log

	root   models.EntityID
	reason string
}

func newLifecycle(w *World, recorder interfaces.Recorder, logger log.Log) *lifecycle {
	l := &lifecycle{world: w, recorder: recorder, logger: logger}
	w.Registry.OnDespawn(l.onDespawn)
	return l
}

func (l *lifecycle) spawn(kind kinds.Kind) models.EntityID {
	id := l.world.Registry.Spawn()
	l.spawned(id, kind)
	return id
}

func (l *lifecycle) spawnChild(parent models.EntityID, kind kinds.Kind) (models.EntityID, error) {
	id, err := l.world.Registry.SpawnChild(parent)
	if err != nil {
		return models.NoEntity, err
	}
	l.spawned(id, kind)
	return id, nil
}

func (l *lifecycle) spawned(id models.EntityID, kind kinds.Kind) {
	l.world.Kinds.Insert(id, kind)
	l.recorder.EntitySpawned(kind.String())
	l.logger.Debug("entity spawned", log.Stringer("entity", id), log.Stringer("kind", kind))
}

// despawn removes id and everything it owns. Stale ids are ignored.
func (l *lifecycle) despawn(id models.EntityID, reason string) bool {
	l.root, l.reason = id, reason
	defer func() { l.root, l.reason = models.NoEntity, "" }()
	return l.world.Registry.Despawn(id)
}

func (l *lifecycle) onDespawn(id models.EntityID) {
	reason := l.reason
	if id != l.root {
		reason = interfaces.ReasonOwner
	}
	kind := l.world.KindOf(id)
	l.recorder.EntityDespawned(kind.String(), reason)
	l.logger.Debug("entity despawned",
		log.Stringer("entity", id),
		log.Stringer("kind", kind),
		log.String("reason", reason),
	)
}
