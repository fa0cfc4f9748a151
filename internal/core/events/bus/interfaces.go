package bus

import "errors"

// Bus owns a set of typed, double-buffered event streams.
//
// Key characteristics:
// - Append-only: producers Send into a Stream; nothing is delivered eagerly.
// - Pull-based fan-out: every consumer owns a Reader with its own cursor, so
//   one event is seen exactly once by each reader and never twice by the same one.
// - Bounded lifetime: an event sent during tick N stays readable through tick N+1
//   and is dropped by the second Update after it was sent.
// - Single-threaded: streams are meant to be driven from the simulation loop
//   and are not safe for concurrent use.
// - Optional observability: observers are told about publishes and about
//   events a reader lost because it did not read in time.

var (
	ErrStreamExists = errors.New("stream already registered")
	ErrEmptyName    = errors.New("stream name is required")
)

// Updater is the type-erased view of a Stream that the Bus drives each tick.
type Updater interface {
	// Name is the unique stream name.
	Name() string
	// Update ends the current tick for this stream and drops events older
	// than one full tick.
	Update()
	// Info returns a snapshot of the stream state.
	Info() StreamInfo
}

// Observer receives delivery telemetry from all streams of a Bus.
type Observer interface {
	// OnPublish is called after n events were appended to stream.
	OnPublish(stream string, n int)
	// OnMissed is called when reader skipped n events that had already been dropped.
	OnMissed(stream, reader string, n int)
}

// StreamInfo is a snapshot of one stream.
type StreamInfo struct {
	Name      string
	Pending   int
	Readers   []ReaderInfo
	Published uint64
}

// ReaderInfo identifies one consumer cursor.
type ReaderInfo struct {
	ID     string
	Name   string
	Cursor uint64
}
