package world

import (
	"fmt"
	"slices"

	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/models/interfaces"
)

var _ interfaces.EntityRegistry = (*Registry)(nil)

type record struct {
	parent   models.EntityID
	children []models.EntityID
}

// componentStore is the type-erased view of a Store the registry needs to
// drop components on despawn.
type componentStore interface {
	remove(models.EntityID)
}

// DespawnHook runs once for every entity removed, children first. It runs
// before the entity's components are dropped, so they can still be read.
type DespawnHook func(id models.EntityID)

// Registry allocates entity ids and tracks ownership between entities.
// It is not safe for concurrent use.
type Registry struct {
	next   models.EntityID
	alive  map[models.EntityID]*record
	stores []componentStore
	hooks  []DespawnHook
}

func NewRegistry() *Registry {
	return &Registry{alive: make(map[models.EntityID]*record)}
}

func (r *Registry) Spawn() models.EntityID {
	r.next++
	r.alive[r.next] = &record{}
	return r.next
}

func (r *Registry) SpawnChild(parent models.EntityID) (models.EntityID, error) {
	p, ok := r.alive[parent]
	if !ok {
		return models.NoEntity, fmt.Errorf("spawn child of %s: %w", parent, interfaces.ErrEntityNotFound)
	}
	id := r.Spawn()
	r.alive[id].parent = parent
	p.children = append(p.children, id)
	return id, nil
}

// Despawn removes id and, recursively, every entity it owns.
func (r *Registry) Despawn(id models.EntityID) bool {
	rec, ok := r.alive[id]
	if !ok {
		return false
	}
	if p, ok := r.alive[rec.parent]; ok {
		if i := slices.Index(p.children, id); i >= 0 {
			p.children = slices.Delete(p.children, i, i+1)
		}
	}
	r.despawn(id, rec)
	return true
}

func (r *Registry) despawn(id models.EntityID, rec *record) {
	for _, child := range rec.children {
		if c, ok := r.alive[child]; ok {
			r.despawn(child, c)
		}
	}
	for _, hook := range r.hooks {
		hook(id)
	}
	for _, s := range r.stores {
		s.remove(id)
	}
	delete(r.alive, id)
}

func (r *Registry) Alive(id models.EntityID) bool {
	_, ok := r.alive[id]
	return ok
}

// Len returns the number of live entities.
func (r *Registry) Len() int { return len(r.alive) }

// Parent returns the owner of id, or NoEntity for a root entity.
func (r *Registry) Parent(id models.EntityID) models.EntityID {
	if rec, ok := r.alive[id]; ok {
		return rec.parent
	}
	return models.NoEntity
}

// Children returns a copy of the entities directly owned by id.
func (r *Registry) Children(id models.EntityID) []models.EntityID {
	if rec, ok := r.alive[id]; ok {
		return slices.Clone(rec.children)
	}
	return nil
}

// OnDespawn registers a hook called for every despawned entity.
func (r *Registry) OnDespawn(hook DespawnHook) {
	r.hooks = append(r.hooks, hook)
}

func (r *Registry) attach(s componentStore) {
	r.stores = append(r.stores, s)
}
