package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/skyfire/internal/core/observability/log"
	"github.com/zeusync/skyfire/internal/core/observability/metrics"
)

type testObserver struct {
	published map[string]int
	missed    map[string]int
}

func newTestObserver() *testObserver {
	return &testObserver{published: map[string]int{}, missed: map[string]int{}}
}

func (o *testObserver) OnPublish(stream string, n int) {
	o.published[stream] += n
}

func (o *testObserver) OnMissed(stream, reader string, n int) {
	o.missed[stream+"/"+reader] += n
}

func TestStreamReadersAreIndependent(t *testing.T) {
	b := New()
	s, err := NewStream[int](b, "numbers")
	require.NoError(t, err)

	first := s.NewReader("first")
	second := s.NewReader("second")
	require.NotEqual(t, first.ID(), second.ID())

	s.Send(1, 2, 3)
	require.Equal(t, []int{1, 2, 3}, first.Read())
	require.Empty(t, first.Read(), "an event is consumed once per reader")

	s.Send(4)
	require.Equal(t, []int{4}, first.Read())
	require.Equal(t, []int{1, 2, 3, 4}, second.Read())
}

func TestStreamDoubleBuffering(t *testing.T) {
	b := New()
	s, err := NewStream[string](b, "words")
	require.NoError(t, err)
	late := s.NewReader("late")

	s.Send("tick0")
	b.Update()
	require.Equal(t, 1, s.Len(), "events survive the first update")

	s.Send("tick1")
	b.Update()
	require.Equal(t, 1, s.Len(), "events are dropped by the second update")

	assert.Equal(t, []string{"tick1"}, late.Read())
}

func TestReaderCreatedLateSeesBufferedEvents(t *testing.T) {
	b := New()
	s, err := NewStream[int](b, "late")
	require.NoError(t, err)

	s.Send(7)
	b.Update()
	r := s.NewReader("joiner")
	require.Equal(t, 1, r.Pending())
	require.Equal(t, []int{7}, r.Read())
	require.Equal(t, 0, r.Pending())
}

func TestMissedEventsAreReported(t *testing.T) {
	b := New()
	obs := newTestObserver()
	b.AddObserver(obs)
	s, err := NewStream[int](b, "lossy")
	require.NoError(t, err)
	slow := s.NewReader("slow")

	s.Send(1, 2)
	b.Update()
	b.Update()
	s.Send(3)

	require.Equal(t, []int{3}, slow.Read())
	assert.Equal(t, 3, obs.published["lossy"])
	assert.Equal(t, 2, obs.missed["lossy/slow"])
}

func TestReaderClear(t *testing.T) {
	b := New()
	s, err := NewStream[int](b, "clear")
	require.NoError(t, err)
	r := s.NewReader("r")

	s.Send(1, 2)
	r.Clear()
	require.Empty(t, r.Read())
	s.Send(3)
	require.Equal(t, []int{3}, r.Read())
}

func TestReadReturnsCopy(t *testing.T) {
	b := New()
	s, err := NewStream[int](b, "copy")
	require.NoError(t, err)
	a := s.NewReader("a")
	c := s.NewReader("c")

	s.Send(1)
	got := a.Read()
	got[0] = 42
	require.Equal(t, []int{1}, c.Read())
}

func TestStreamRegistration(t *testing.T) {
	b := New()
	_, err := NewStream[int](b, "dup")
	require.NoError(t, err)

	_, err = NewStream[string](b, "dup")
	require.ErrorIs(t, err, ErrStreamExists)

	_, err = NewStream[int](b, "")
	require.ErrorIs(t, err, ErrEmptyName)

	infos := b.Streams()
	require.Len(t, infos, 1)
	require.Equal(t, "dup", infos[0].Name)
}

func TestStreamInfo(t *testing.T) {
	b := New()
	s, err := NewStream[int](b, "info")
	require.NoError(t, err)
	r := s.NewReader("reader")

	s.Send(1, 2, 3)
	r.Read()
	b.Update()
	b.Update()

	info := s.Info()
	assert.Equal(t, 0, info.Pending)
	assert.Equal(t, uint64(3), info.Published)
	require.Len(t, info.Readers, 1)
	assert.Equal(t, uint64(3), info.Readers[0].Cursor)
	assert.Equal(t, "reader", info.Readers[0].Name)
}

type countingRecorder struct {
	metrics.Nop
	published int
	missed    int
}

func (r *countingRecorder) EventsPublished(_ string, n int) { r.published += n }
func (r *countingRecorder) EventsMissed(_, _ string, n int) { r.missed += n }

func TestTelemetryObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &countingRecorder{}
	b := New()
	b.AddObserver(NewTelemetryObserver(rec, log.NewWithCore(core)))

	s, err := NewStream[int](b, "telemetry")
	require.NoError(t, err)
	r := s.NewReader("slow")
	s.Send(1, 2)
	b.Update()
	b.Update()
	require.Empty(t, r.Read())

	assert.Equal(t, 2, rec.published)
	assert.Equal(t, 2, rec.missed)

	warnings := logs.FilterMessage("reader missed events").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, zapcore.WarnLevel, warnings[0].Level)
	assert.Equal(t, "slow", warnings[0].ContextMap()["reader"])
}
