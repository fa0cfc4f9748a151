package bus

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Bus ties the streams of one simulation together so they can be advanced and
// inspected as a group.
type Bus struct {
	streams   []Updater
	names     map[string]struct{}
	observers []Observer
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{names: make(map[string]struct{})}
}

func (b *Bus) register(u Updater) error {
	name := u.Name()
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := b.names[name]; exists {
		return fmt.Errorf("%w: %s", ErrStreamExists, name)
	}
	b.names[name] = struct{}{}
	b.streams = append(b.streams, u)
	return nil
}

// AddObserver registers an observer for every stream of the bus.
func (b *Bus) AddObserver(obs Observer) {
	if obs == nil {
		return
	}
	b.observers = append(b.observers, obs)
}

// Update advances every stream by one tick.
func (b *Bus) Update() {
	for _, s := range b.streams {
		s.Update()
	}
}

// Streams returns a snapshot of all registered streams in registration order.
func (b *Bus) Streams() []StreamInfo {
	out := make([]StreamInfo, 0, len(b.streams))
	for _, s := range b.streams {
		out = append(out, s.Info())
	}
	return out
}

func (b *Bus) notifyPublish(stream string, n int) {
	for _, obs := range b.observers {
		obs.OnPublish(stream, n)
	}
}

func (b *Bus) notifyMissed(stream, reader string, n int) {
	for _, obs := range b.observers {
		obs.OnMissed(stream, reader, n)
	}
}

// Stream is a double-buffered queue of events of type T.
type Stream[T any] struct {
	bus     *Bus
	name    string
	events  []T
	base    uint64 // sequence number of events[0]
	mark    uint64 // sequence number at the last Update
	readers []*Reader[T]
}

// NewStream creates a stream and registers it on b.
func NewStream[T any](b *Bus, name string) (*Stream[T], error) {
	s := &Stream[T]{bus: b, name: name}
	if err := b.register(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stream[T]) Name() string { return s.name }

// Send appends events to the current tick.
func (s *Stream[T]) Send(events ...T) {
	if len(events) == 0 {
		return
	}
	s.events = append(s.events, events...)
	s.bus.notifyPublish(s.name, len(events))
}

// Len returns the number of buffered events (current and previous tick).
func (s *Stream[T]) Len() int { return len(s.events) }

// Update drops the events that were already buffered at the previous Update.
func (s *Stream[T]) Update() {
	if drop := int(s.mark - s.base); drop > 0 {
		n := copy(s.events, s.events[drop:])
		clear(s.events[n:])
		s.events = s.events[:n]
		s.base = s.mark
	}
	s.mark = s.base + uint64(len(s.events))
}

func (s *Stream[T]) Info() StreamInfo {
	info := StreamInfo{
		Name:      s.name,
		Pending:   len(s.events),
		Published: s.base + uint64(len(s.events)),
		Readers:   make([]ReaderInfo, 0, len(s.readers)),
	}
	for _, r := range s.readers {
		info.Readers = append(info.Readers, ReaderInfo{ID: r.id, Name: r.name, Cursor: r.cursor})
	}
	return info
}

// NewReader creates an independent consumer cursor. A new reader starts at
// the oldest buffered event.
func (s *Stream[T]) NewReader(name string) *Reader[T] {
	r := &Reader[T]{
		id:     uuid.NewString(),
		name:   name,
		stream: s,
		cursor: s.base,
	}
	s.readers = append(s.readers, r)
	return r
}

// Reader is one consumer's position in a Stream.
type Reader[T any] struct {
	id     string
	name   string
	stream *Stream[T]
	cursor uint64
}

func (r *Reader[T]) ID() string   { return r.id }
func (r *Reader[T]) Name() string { return r.name }

// Read returns every event this reader has not seen yet, oldest first, and
// advances the cursor past them. The returned slice is owned by the caller.
func (r *Reader[T]) Read() []T {
	s := r.stream
	r.catchUp()
	start := int(r.cursor - s.base)
	if start >= len(s.events) {
		return nil
	}
	out := slices.Clone(s.events[start:])
	r.cursor = s.base + uint64(len(s.events))
	return out
}

// Pending returns how many events Read would return.
func (r *Reader[T]) Pending() int {
	s := r.stream
	if r.cursor < s.base {
		return len(s.events)
	}
	return len(s.events) - int(r.cursor-s.base)
}

// Clear skips all pending events.
func (r *Reader[T]) Clear() {
	r.catchUp()
	r.cursor = r.stream.base + uint64(len(r.stream.events))
}

func (r *Reader[T]) catchUp() {
	s := r.stream
	if r.cursor < s.base {
		s.bus.notifyMissed(s.name, r.name, int(s.base-r.cursor))
		r.cursor = s.base
	}
}
