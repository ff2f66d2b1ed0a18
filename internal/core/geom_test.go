package core

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVecNormalizeOrZero(t *testing.T) {
	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"zero stays zero", Zero, Zero},
		{"axis", V(5, 0), UnitX},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
		{"negative", V(0, -2), V(0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.NormalizeOrZero()
			if !approx(got.X, tc.expected.X) || !approx(got.Y, tc.expected.Y) {
				t.Errorf("NormalizeOrZero(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestVecAngleTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec2
		expected float64
	}{
		{"same direction", UnitX, UnitX, 0},
		{"quarter counter-clockwise", UnitX, UnitY, math.Pi / 2},
		{"quarter clockwise", UnitX, UnitY.Neg(), -math.Pi / 2},
		{"opposite", UnitX, UnitX.Neg(), math.Pi},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.from.AngleTo(tc.to)
			if !approx(got, tc.expected) {
				t.Errorf("AngleTo() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVecRotate(t *testing.T) {
	got := UnitX.Rotate(FromAngle(Radians(45)))
	want := V(math.Sqrt2/2, math.Sqrt2/2)
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Errorf("Rotate() = %v, expected %v", got, want)
	}

	// Rotating back must restore the original vector
	back := got.Rotate(FromAngle(Radians(-45)))
	if !approx(back.X, 1) || !approx(back.Y, 0) {
		t.Errorf("inverse Rotate() = %v, expected %v", back, UnitX)
	}
}

func TestBoundsClamp(t *testing.T) {
	b := Bounds{Half: V(10, 5)}

	tests := []struct {
		name     string
		in       Vec2
		expected Vec2
	}{
		{"inside", V(1, 1), V(1, 1)},
		{"right", V(12, 0), V(10, 0)},
		{"bottom-left corner", V(-20, -9), V(-10, -5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Clamp(tc.in); got != tc.expected {
				t.Errorf("Clamp(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
			if !b.Contains(b.Clamp(tc.in)) {
				t.Errorf("clamped point %v not contained", b.Clamp(tc.in))
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d",
				tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestTimerOnce(t *testing.T) {
	timer := NewTimer(100*time.Millisecond, TimerOnce)

	timer.Tick(60 * time.Millisecond)
	if timer.Finished() || timer.JustFinished() {
		t.Fatal("timer finished too early")
	}

	timer.Tick(60 * time.Millisecond)
	if !timer.Finished() || !timer.JustFinished() {
		t.Fatal("timer should have just finished")
	}
	if timer.Elapsed() != 100*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected clamp to duration", timer.Elapsed())
	}

	timer.Tick(60 * time.Millisecond)
	if !timer.Finished() {
		t.Error("once timer should stay finished")
	}
	if timer.JustFinished() {
		t.Error("JustFinished() should only be true on the completing tick")
	}

	timer.Reset()
	if timer.Finished() || timer.Elapsed() != 0 {
		t.Error("Reset() should rewind the timer")
	}
}

func TestTimerRepeating(t *testing.T) {
	timer := NewTimer(time.Second, TimerRepeating)

	timer.Tick(2500 * time.Millisecond)
	if timer.TimesFinished() != 2 {
		t.Errorf("TimesFinished() = %d, expected 2", timer.TimesFinished())
	}
	if timer.Elapsed() != 500*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected 500ms carry", timer.Elapsed())
	}

	timer.Tick(100 * time.Millisecond)
	if timer.JustFinished() || timer.Finished() {
		t.Error("repeating timer should not report finished between wraps")
	}
}

func TestTimerPaused(t *testing.T) {
	timer := NewTimer(time.Second, TimerOnce)
	timer.Pause()
	timer.Tick(2 * time.Second)
	if timer.Finished() {
		t.Error("paused timer should not advance")
	}
	timer.Unpause()
	timer.Tick(2 * time.Second)
	if !timer.JustFinished() {
		t.Error("unpaused timer should finish")
	}
}
