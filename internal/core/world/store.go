package world

import "github.com/zeusync/skyfire/internal/core/models"

// Store is a sparse set holding one component type. Iteration follows
// insertion order until an entry is removed, which swaps the last entry
// into the hole.
type Store[T any] struct {
	index map[models.EntityID]int
	ids   []models.EntityID
	data  []*T
}

// NewStore creates a store whose entries are dropped when their entity is
// despawned from r.
func NewStore[T any](r *Registry) *Store[T] {
	s := &Store[T]{index: make(map[models.EntityID]int)}
	r.attach(s)
	return s
}

// Insert sets the component of id, replacing any previous value, and returns
// a pointer to the stored copy.
func (s *Store[T]) Insert(id models.EntityID, v T) *T {
	if i, ok := s.index[id]; ok {
		*s.data[i] = v
		return s.data[i]
	}
	p := new(T)
	*p = v
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, p)
	return p
}

// Get returns a pointer to the component of id, or nil.
func (s *Store[T]) Get(id models.EntityID) *T {
	if i, ok := s.index[id]; ok {
		return s.data[i]
	}
	return nil
}

func (s *Store[T]) Has(id models.EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) Remove(id models.EntityID) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	s.remove(id)
	return true
}

func (s *Store[T]) remove(id models.EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.ids) - 1
	if i != last {
		s.ids[i] = s.ids[last]
		s.data[i] = s.data[last]
		s.index[s.ids[i]] = i
	}
	s.ids[last] = models.NoEntity
	s.data[last] = nil
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	delete(s.index, id)
}

func (s *Store[T]) Len() int { return len(s.ids) }

// Each calls fn for every entry. fn must not insert into or remove from s;
// collect ids first when the loop despawns entities.
func (s *Store[T]) Each(fn func(id models.EntityID, v *T)) {
	for i, id := range s.ids {
		fn(id, s.data[i])
	}
}

// IDs returns a snapshot of the ids currently in the store.
func (s *Store[T]) IDs() []models.EntityID {
	out := make([]models.EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}
