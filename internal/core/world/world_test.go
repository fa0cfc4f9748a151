package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skyfire/internal/core/models"
	"github.com/zeusync/skyfire/internal/core/models/interfaces"
)

type position struct{ X, Y float64 }

func TestRegistrySpawn(t *testing.T) {
	r := NewRegistry()
	a := r.Spawn()
	b := r.Spawn()
	require.NotEqual(t, a, b)
	require.False(t, a.IsZero())
	require.True(t, r.Alive(a))
	require.Equal(t, 2, r.Len())
}

func TestDespawnIsIdempotent(t *testing.T) {
	r := NewRegistry()
	pos := NewStore[position](r)
	keep := r.Spawn()
	gone := r.Spawn()
	pos.Insert(keep, position{X: 1})
	pos.Insert(gone, position{X: 2})

	require.True(t, r.Despawn(gone))
	lenAfterFirst, posAfterFirst := r.Len(), pos.Len()

	require.False(t, r.Despawn(gone), "second despawn of the same id is a no-op")
	assert.Equal(t, lenAfterFirst, r.Len())
	assert.Equal(t, posAfterFirst, pos.Len())
	assert.True(t, r.Alive(keep))
	assert.Equal(t, 1.0, pos.Get(keep).X)
	assert.Nil(t, pos.Get(gone))
}

func TestDespawnIsRecursive(t *testing.T) {
	r := NewRegistry()
	pos := NewStore[position](r)
	var despawned []models.EntityID
	var hadPosition []bool
	r.OnDespawn(func(id models.EntityID) {
		despawned = append(despawned, id)
		hadPosition = append(hadPosition, pos.Has(id))
	})

	owner := r.Spawn()
	child, err := r.SpawnChild(owner)
	require.NoError(t, err)
	grandchild, err := r.SpawnChild(child)
	require.NoError(t, err)
	pos.Insert(owner, position{})
	pos.Insert(grandchild, position{})

	require.Equal(t, owner, r.Parent(child))
	require.Equal(t, []models.EntityID{child}, r.Children(owner))

	require.True(t, r.Despawn(owner))
	assert.False(t, r.Alive(child))
	assert.False(t, r.Alive(grandchild))
	assert.Zero(t, pos.Len())
	assert.Equal(t, []models.EntityID{grandchild, child, owner}, despawned)
	assert.Equal(t, []bool{true, false, true}, hadPosition, "hooks see components before removal")
}

func TestDespawnChildDetachesFromParent(t *testing.T) {
	r := NewRegistry()
	owner := r.Spawn()
	child, err := r.SpawnChild(owner)
	require.NoError(t, err)

	require.True(t, r.Despawn(child))
	assert.Empty(t, r.Children(owner))
	assert.True(t, r.Alive(owner))
}

func TestSpawnChildOfDeadParent(t *testing.T) {
	r := NewRegistry()
	owner := r.Spawn()
	r.Despawn(owner)

	_, err := r.SpawnChild(owner)
	require.ErrorIs(t, err, interfaces.ErrEntityNotFound)
}

func TestStoreSwapRemove(t *testing.T) {
	r := NewRegistry()
	s := NewStore[position](r)
	ids := []models.EntityID{r.Spawn(), r.Spawn(), r.Spawn()}
	for i, id := range ids {
		s.Insert(id, position{X: float64(i)})
	}

	require.True(t, s.Remove(ids[0]))
	require.False(t, s.Remove(ids[0]))
	require.Equal(t, 2, s.Len())
	assert.ElementsMatch(t, []models.EntityID{ids[1], ids[2]}, s.IDs())
	assert.Equal(t, 2.0, s.Get(ids[2]).X)

	sum := 0.0
	s.Each(func(_ models.EntityID, p *position) { sum += p.X })
	assert.Equal(t, 3.0, sum)
}

func TestStoreInsertReplaces(t *testing.T) {
	r := NewRegistry()
	s := NewStore[position](r)
	id := r.Spawn()

	p := s.Insert(id, position{X: 1})
	s.Insert(id, position{X: 5})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 5.0, p.X, "pointer stays valid across replace")
	assert.True(t, s.Has(id))
}
