package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneShotTimer(t *testing.T) {
	t.Run("finishes once and saturates", func(t *testing.T) {
		tm := NewOneShot(300 * time.Millisecond)

		tm.Tick(100 * time.Millisecond)
		tm.Tick(100 * time.Millisecond)
		require.False(t, tm.Finished())
		require.False(t, tm.JustFinished())

		tm.Tick(150 * time.Millisecond)
		require.True(t, tm.Finished())
		require.True(t, tm.JustFinished())
		require.Equal(t, 300*time.Millisecond, tm.Elapsed())

		tm.Tick(time.Second)
		require.True(t, tm.Finished())
		require.False(t, tm.JustFinished(), "a one-shot reports its edge exactly once")
		require.Equal(t, time.Duration(0), tm.Remaining())
	})

	t.Run("reset re-arms", func(t *testing.T) {
		tm := NewOneShot(time.Second)
		tm.Tick(time.Second)
		require.True(t, tm.Finished())

		tm.Reset()
		require.False(t, tm.Finished())
		require.Equal(t, time.Second, tm.Remaining())

		tm.Tick(999 * time.Millisecond)
		require.False(t, tm.Finished())
		tm.Tick(time.Millisecond)
		require.True(t, tm.JustFinished())
	})

	t.Run("prime marks elapsed without an edge", func(t *testing.T) {
		tm := NewOneShot(time.Second)
		tm.Prime()
		require.True(t, tm.Finished())
		require.False(t, tm.JustFinished())

		tm.Tick(16 * time.Millisecond)
		require.True(t, tm.Finished())
		require.False(t, tm.JustFinished())
	})
}

func TestRepeatingTimer(t *testing.T) {
	t.Run("one edge per period", func(t *testing.T) {
		tm := NewRepeating(200 * time.Millisecond)
		edges := 0
		for range 50 { // 50 * 40ms = 2s
			tm.Tick(40 * time.Millisecond)
			if tm.JustFinished() {
				edges++
			}
		}
		assert.Equal(t, 10, edges)
	})

	t.Run("finished is not sticky", func(t *testing.T) {
		tm := NewRepeating(100 * time.Millisecond)
		tm.Tick(100 * time.Millisecond)
		require.True(t, tm.Finished())
		tm.Tick(10 * time.Millisecond)
		require.False(t, tm.Finished())
	})

	t.Run("long pause fires once and keeps remainder", func(t *testing.T) {
		tm := NewRepeating(time.Second)
		tm.Tick(10*time.Second + 250*time.Millisecond)
		require.True(t, tm.JustFinished())
		require.Equal(t, 250*time.Millisecond, tm.Elapsed())

		tm.Tick(500 * time.Millisecond)
		require.False(t, tm.JustFinished())
		tm.Tick(250 * time.Millisecond)
		require.True(t, tm.JustFinished())
	})

	t.Run("negative delta is ignored", func(t *testing.T) {
		tm := NewRepeating(time.Second)
		tm.Tick(-time.Second)
		require.Equal(t, time.Duration(0), tm.Elapsed())
	})
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManual(start)
	require.Equal(t, start, c.Now())

	c.Advance(250 * time.Millisecond)
	require.Equal(t, start.Add(250*time.Millisecond), c.Now())

	c.Set(start)
	require.Equal(t, start, c.Now())

	var _ Source = c
	var _ Source = Real{}
}
