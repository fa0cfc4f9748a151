package interfaces

import (
	"errors"

	"github.com/zeusync/skyfire/internal/core/models"
)

var ErrEntityNotFound = errors.New("entity not found")

// EntityRegistry is the narrow lifecycle boundary every spawn and despawn
// path goes through.
type EntityRegistry interface {
	// Spawn allocates a new root entity.
	Spawn() models.EntityID
	// SpawnChild allocates an entity owned by parent. Returns ErrEntityNotFound
	// when parent is not alive.
	SpawnChild(parent models.EntityID) (models.EntityID, error)
	// Despawn removes the entity, every entity it owns and all of their
	// components. It returns false, and does nothing, for an id that is
	// not alive.
	Despawn(models.EntityID) bool
	// Alive reports whether id refers to a live entity.
	Alive(models.EntityID) bool
}
