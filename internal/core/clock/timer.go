package clock

import "time"

// Mode selects how a Timer behaves once its duration has elapsed.
type Mode uint8

const (
	// OneShot timers saturate at their duration and stay finished until Reset.
	OneShot Mode = iota
	// Repeating timers wrap around and report one edge per completed period.
	Repeating
)

// Timer is a delta-driven countdown. It never reads the wall clock; callers
// feed it the frame delta through Tick.
type Timer struct {
	duration     time.Duration
	elapsed      time.Duration
	mode         Mode
	finished     bool
	justFinished bool
}

func NewOneShot(d time.Duration) Timer {
	return Timer{duration: d, mode: OneShot}
}

func NewRepeating(d time.Duration) Timer {
	return Timer{duration: d, mode: Repeating}
}

// Tick advances the timer by dt.
//
// A repeating timer whose period is exceeded several times by one large dt
// reports a single edge and keeps only the remainder, so a stalled frame never
// produces a burst of firings.
func (t *Timer) Tick(dt time.Duration) {
	t.justFinished = false
	if dt < 0 {
		dt = 0
	}

	switch t.mode {
	case Repeating:
		t.finished = false
		if t.duration <= 0 {
			t.finished, t.justFinished = true, true
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed %= t.duration
			t.finished, t.justFinished = true, true
		}
	default:
		if t.finished {
			return
		}
		t.elapsed += dt
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished, t.justFinished = true, true
		}
	}
}

// Finished reports whether the timer has completed. For repeating timers it is
// true only on the tick that completed a period.
func (t *Timer) Finished() bool { return t.finished }

// JustFinished is true only on the tick that completed the timer (or a period).
func (t *Timer) JustFinished() bool { return t.justFinished }

// Reset rewinds the timer to zero.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.justFinished = false
}

// Prime puts a one-shot timer in the finished state without an edge, as if
// its whole duration had already passed.
func (t *Timer) Prime() {
	t.elapsed = t.duration
	if t.mode == OneShot {
		t.finished = true
	}
	t.justFinished = false
}

func (t *Timer) Elapsed() time.Duration  { return t.elapsed }
func (t *Timer) Duration() time.Duration { return t.duration }

// Remaining returns the time left before the next completion.
func (t *Timer) Remaining() time.Duration {
	if t.mode == OneShot && t.finished {
		return 0
	}
	return t.duration - t.elapsed
}
