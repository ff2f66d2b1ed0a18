package core

import "time"

// TimerMode selects whether a Timer stops or wraps when it reaches its
// duration.
type TimerMode int

const (
	TimerOnce TimerMode = iota
	TimerRepeating
)

// Timer counts simulated time toward a duration. It is advanced explicitly
// with Tick so it only ever sees fixed simulation steps.
type Timer struct {
	duration time.Duration
	elapsed  time.Duration
	mode     TimerMode
	paused   bool
	finished bool
	times    int // completions during the last Tick
}

// NewTimer creates a running timer.
func NewTimer(d time.Duration, mode TimerMode) Timer {
	return Timer{duration: d, mode: mode}
}

// TimerFromSeconds creates a running timer from a duration in seconds.
func TimerFromSeconds(secs float64, mode TimerMode) Timer {
	return NewTimer(Seconds(secs), mode)
}

// Seconds converts float seconds to a time.Duration.
func Seconds(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}

// Tick advances the timer by d.
func (t *Timer) Tick(d time.Duration) {
	if t.paused {
		t.times = 0
		return
	}

	if t.mode == TimerOnce {
		if t.finished {
			t.times = 0
			return
		}
		t.elapsed += d
		if t.elapsed >= t.duration {
			t.elapsed = t.duration
			t.finished = true
			t.times = 1
		}
		return
	}

	// Repeating
	t.elapsed += d
	if t.duration > 0 && t.elapsed >= t.duration {
		t.times = int(t.elapsed / t.duration)
		t.elapsed %= t.duration
		t.finished = true
		return
	}
	t.finished = false
	t.times = 0
}

// Finished reports whether the timer has reached its duration. For repeating
// timers it is only true on the tick that wrapped.
func (t Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the last Tick completed the timer.
func (t Timer) JustFinished() bool {
	return t.times > 0
}

// TimesFinished returns how many times the last Tick completed the timer.
func (t Timer) TimesFinished() int {
	return t.times
}

// Elapsed returns the time counted so far.
func (t Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Duration returns the configured duration.
func (t Timer) Duration() time.Duration {
	return t.duration
}

// Percent returns elapsed/duration in [0, 1].
func (t Timer) Percent() float64 {
	if t.duration <= 0 {
		return 1
	}
	return ClampF(float64(t.elapsed)/float64(t.duration), 0, 1)
}

// PercentLeft returns 1 - Percent.
func (t Timer) PercentLeft() float64 {
	return 1 - t.Percent()
}

// Reset rewinds the timer without changing its paused flag.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = false
	t.times = 0
}

// Finish jumps to the end without reporting JustFinished.
func (t *Timer) Finish() {
	t.elapsed = t.duration
	t.finished = true
	t.times = 0
}

// Pause stops the timer from advancing.
func (t *Timer) Pause() {
	t.paused = true
}

// Unpause lets the timer advance again.
func (t *Timer) Unpause() {
	t.paused = false
}

// Paused reports whether the timer is paused.
func (t Timer) Paused() bool {
	return t.paused
}
