package play

import (
	"math"
	"time"

	"github.com/vovakirdan/striker-ball/internal/core"
)

// restSpeed is the speed under which a free ball stops.
const restSpeed = 0.01

func (w *World) updateBall() {
	c := w.consts
	b := &w.Ball

	if owner, ok := b.Owner.Get(); ok {
		// Dribble
		p := w.Player(owner)
		target := p.Angle.Scale(c.PlayerRadius + c.BallRadius)
		diff := target.Sub(b.Dribble)
		movement := diff
		if diff.Len() > c.DribbleSmoothingThreshold {
			movement = diff.Div(c.DribbleSmoothing)
		}
		b.Dribble = b.Dribble.Add(movement)
		b.Pos = p.Pos.Add(b.Dribble)
		b.Bounced = false
	} else {
		if b.Bounced {
			b.Velocity = b.Velocity.Scale(c.BallFriction)
		}
		if b.Velocity.Len() < restSpeed {
			b.Velocity = core.Zero
		}
		b.Pos = b.Pos.Add(b.Velocity)
	}

	speed := b.Velocity.Len()
	b.AnimFPS = 10 * speed

	b.SpinTimer.Tick(time.Duration(speed * float64(time.Second)))
	if b.SpinTimer.JustFinished() {
		w.emit(SoundBallSpin)
	}

	w.bounceBall()

	// Keep the ball sliding along the side walls so it never rests on them
	bounds := c.BallBounds.Vec2()
	if b.Pos.X+2*c.BallRadius > bounds.X || b.Pos.X-2*c.BallRadius < -bounds.X {
		mag := math.Max(math.Abs(b.Velocity.X), c.BallBorderSlide)
		b.Velocity.X = math.Copysign(mag, b.Velocity.X)
	}
}

// bounceBall reflects the ball off each wall independently, so a corner can
// bounce both axes in one tick.
func (w *World) bounceBall() {
	c := w.consts
	b := &w.Ball
	inner := core.Bounds{Half: c.BallBounds.Vec2()}.Inset(c.BallRadius)

	bounce := func(v *float64) {
		*v = -*v * c.BallETransfer
		if b.Owner.None() {
			b.Bounced = true
			w.emit(SoundBallBounce)
		}
	}

	if b.Pos.Y > inner.Half.Y {
		b.Pos.Y = inner.Half.Y
		bounce(&b.Velocity.Y)
	}
	if b.Pos.Y < -inner.Half.Y {
		b.Pos.Y = -inner.Half.Y
		bounce(&b.Velocity.Y)
	}
	if b.Pos.X > inner.Half.X {
		b.Pos.X = inner.Half.X
		bounce(&b.Velocity.X)
	}
	if b.Pos.X < -inner.Half.X {
		b.Pos.X = -inner.Half.X
		bounce(&b.Velocity.X)
	}
}
