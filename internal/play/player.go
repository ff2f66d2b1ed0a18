package play

import (
	"math"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Spread is the half angle of the aim cone.
var Spread = core.Radians(45)

const (
	walkThreshold = 0.2
	// backwardsLimit snaps a shot to forward when facing further away.
	backwardsLimitDeg = 135
)

// Per-tick aim rotation steps.
var (
	aimClockwise        = core.V(1, 0.05).NormalizeOrZero()
	aimCounterClockwise = core.V(1, -0.05).NormalizeOrZero()
)

// newPlayerScheduler registers the player checks. Order matters: a check may
// act on a state set by an earlier check in the same pass.
func newPlayerScheduler(maxPasses int, c config.Constants) *fsm.Scheduler[*World] {
	return fsm.NewScheduler[*World](maxPasses).
		Add("free", freeTransition).
		Add("recieve", recieveTransition).
		Add("ball", ballTransition).
		Add("shoot", shootTransition).
		Add("turn", turnTransition).
		Add("kick timed", timedTransition(fsm.Kick, fsm.Free, c.KickFrames)).
		Add("tackle timed", timedTransition(fsm.Tackle, fsm.Free, c.TackleFrames)).
		Add("tackled timed", timedTransition(fsm.Tackled, fsm.Free, c.TackledFrames)).
		Add("pass timed", timedTransition(fsm.Pass, fsm.Free, c.PassFrames)).
		Add("recieve timed", timedTransition(fsm.Recieve, fsm.Free, c.RecieveFrames))
}

func timedTransition(from, to fsm.StateID, frames uint64) func(*World) {
	return func(w *World) {
		for i := range w.Players {
			st := &w.Players[i].State
			if st.Current == from && st.Age() >= frames {
				st.Current = to
			}
		}
	}
}

func freeTransition(w *World) {
	for i := range w.Players {
		p := &w.Players[i]
		if p.State.Current != fsm.Free {
			continue
		}
		if !w.toTackle(p) {
			w.toBall(p)
		}
	}
}

func recieveTransition(w *World) {
	for i := range w.Players {
		p := &w.Players[i]
		if p.State.Current == fsm.Recieve {
			w.toBall(p)
		}
	}
}

func ballTransition(w *World) {
	for i := range w.Players {
		p := &w.Players[i]
		if p.State.Current != fsm.Ball {
			continue
		}
		w.ballOut(p)
		w.toTackled(p)
	}
}

func shootTransition(w *World) {
	for i := range w.Players {
		p := &w.Players[i]
		if p.State.Current != fsm.Shoot {
			continue
		}
		w.shootOut(p)
		w.toTackled(p)
	}
}

func turnTransition(w *World) {
	for i := range w.Players {
		p := &w.Players[i]
		if p.State.Current == fsm.Turn && p.State.Age() >= w.consts.TurnFrames {
			p.State.Current = fsm.Kick
			w.kickBall(p)
		}
	}
}

// toTackle starts a tackle on a fresh pass press.
func (w *World) toTackle(p *Player) bool {
	if !w.client(p.Slot).Pass.JustPressed() {
		return false
	}
	p.State.Current = fsm.Tackle
	p.ActionAngle = p.Angle
	w.emit(SoundPlayerTackle)
	return true
}

// canTake reports whether p touches a free ball or already owns it.
func (w *World) canTake(p *Player) bool {
	b := &w.Ball
	reach := w.consts.PlayerRadius + w.consts.BallRadius
	return b.Owner.None() && b.Pos.Distance(p.Pos) <= reach || b.Owner.Is(p.Slot)
}

// toBall claims the ball and turns the player toward it.
func (w *World) toBall(p *Player) {
	if !w.canTake(p) {
		return
	}
	b := &w.Ball
	p.Angle = b.Pos.Sub(p.Pos).NormalizeOrZero()
	b.Velocity = core.Zero
	b.Owner = OwnedBy(p.Slot)
	b.Dribble = p.Angle.Scale(w.consts.PlayerRadius)
	p.State.Current = fsm.Ball
}

// ballOut handles the pass and shoot actions of a dribbling player. A pass
// that turns the player takes precedence over a shot pressed on the same tick.
func (w *World) ballOut(p *Player) {
	ctl := w.client(p.Slot)

	if ctl.Pass.JustPressed() {
		partner := w.Player(w.info.Partner(p.Slot))
		if partner.State.Current == fsm.Free {
			partner.State.Current = fsm.Recieve
			p.State.Current = fsm.Turn

			dir := partner.Pos.Sub(p.Pos).NormalizeOrZero()
			p.Angle = dir
			p.ActionAngle = dir
			partner.Angle = dir.Neg()
			partner.ActionAngle = dir.Neg()
		}
	}

	if p.State.Current != fsm.Ball || !ctl.Shoot.JustPressed() {
		return
	}
	p.State.Current = fsm.Shoot
	p.ActionAngle, p.Angle = aimCone(p.Team(), p.Angle)
}

// Forward returns the direction a team shoots toward.
func Forward(t roster.Team) core.Vec2 {
	if t == roster.TeamA {
		return core.UnitX
	}
	return core.UnitX.Neg()
}

// aimCone picks the locked action angle for a shot starting at angle, and
// the facing the shot starts from.
func aimCone(team roster.Team, angle core.Vec2) (action, facing core.Vec2) {
	target := Forward(team)
	a := target.AngleTo(angle)
	limit := core.Radians(backwardsLimitDeg)

	switch {
	case a > limit || a < -limit:
		return target, target
	case a > Spread:
		return target.Rotate(core.FromAngle(Spread)), angle
	case a < -Spread:
		return target.Rotate(core.FromAngle(-Spread)), angle
	}
	return angle, angle
}

// toTackled knocks p down when an opposing tackler reaches it. A knocked
// down owner loses the ball to the tackler.
func (w *World) toTackled(p *Player) {
	touch := w.consts.PlayerRadius * 2
	for i := range w.Players {
		t := &w.Players[i]
		if t.State.Current != fsm.Tackle || t.Team() == p.Team() || t.Pos.Distance(p.Pos) > touch {
			continue
		}
		p.State.Current = fsm.Tackled
		w.emit(SoundPlayerTackled)
		if w.Ball.Owner.Is(p.Slot) {
			w.Ball.Owner = OwnedBy(t.Slot)
		}
	}
}

// shootOut fires the shot when the shoot button is let go.
func (w *World) shootOut(p *Player) {
	if w.client(p.Slot).Shoot.Pressed() {
		return
	}
	p.State.Current = fsm.Kick
	if w.Ball.Owner.Is(p.Slot) {
		w.Ball.Owner = Owner{}
		w.Ball.Velocity = p.Angle.Scale(w.consts.KickPower)
	}
	w.emit(SoundBallKick)
}

// kickBall releases the ball along the player's facing.
func (w *World) kickBall(p *Player) {
	w.Ball.Owner = Owner{}
	w.Ball.Velocity = p.Angle.Scale(w.consts.KickPower)
	w.emit(SoundBallKick)
}

// updatePlayers runs each state's update over all players before the next
// state's, so free walkers are pushed apart before dribblers move.
func (w *World) updatePlayers() {
	for i := range w.Players {
		if p := &w.Players[i]; p.State.Current == fsm.Free {
			w.walk(p, w.consts.RunSpeed)
		}
	}
	for i := range w.Players {
		if p := &w.Players[i]; p.State.Current == fsm.Ball {
			w.walk(p, w.consts.DribbleSpeed)
		}
	}
	for i := range w.Players {
		if p := &w.Players[i]; p.State.Current == fsm.Shoot {
			w.aim(p)
		}
	}
	for i := range w.Players {
		if p := &w.Players[i]; p.State.Current == fsm.Tackle {
			w.tackle(p)
		}
	}
	for i := range w.Players {
		playerGraphics(&w.Players[i])
	}
}

func (w *World) walk(p *Player, speed float64) {
	dir := w.client(p.Slot).Axis
	if dir.Len() > walkThreshold {
		p.Animation = "walk"
		p.Angle = dir.NormalizeOrZero()
		p.Pos = p.Pos.Add(p.Angle.Scale(speed))
	} else {
		p.Animation = "idle"
	}
	w.clampToBounds(p)
	w.pushApart(p)
}

// aim turns a shooting player toward the stick a fixed step per tick and
// keeps the facing inside the aim cone around the action angle.
func (w *World) aim(p *Player) {
	dir := w.client(p.Slot).Axis
	if dir.Len() > walkThreshold {
		dir = dir.NormalizeOrZero()
		step := aimClockwise.AngleTo(core.UnitX)
		switch a := dir.AngleTo(p.Angle); {
		case a < step:
			p.Angle = p.Angle.Rotate(aimClockwise)
		case a > aimCounterClockwise.AngleTo(core.UnitX):
			p.Angle = p.Angle.Rotate(aimCounterClockwise)
		default:
			p.Angle = dir
		}
	}

	diff := p.ActionAngle.AngleTo(p.Angle)
	if math.Abs(diff) > Spread {
		p.Angle = p.ActionAngle.Rotate(core.FromAngle(math.Copysign(Spread, diff)))
	}
}

// tackle dashes along the action angle with a force that decays with the
// state's age, picking up the ball on contact.
func (w *World) tackle(p *Player) {
	force := math.Max(0, w.consts.TackleSpeed-float64(p.State.Age())*w.consts.TackleFriction)
	p.Pos = p.Pos.Add(p.ActionAngle.Scale(force))

	// Tacklers keep their heading when they scoop the ball
	if w.canTake(p) {
		w.Ball.Velocity = core.Zero
		w.Ball.Owner = OwnedBy(p.Slot)
		w.Ball.Dribble = p.Angle.Scale(w.consts.PlayerRadius)
	}
	w.clampToBounds(p)
	w.pushApart(p)
}

func (w *World) clampToBounds(p *Player) {
	bounds := core.Bounds{Half: w.consts.PlayerBounds.Vec2()}.Inset(w.consts.PlayerRadius)
	p.Pos = bounds.Clamp(p.Pos)
}

// pushApart moves p out of any overlapping player along the line of centres.
func (w *World) pushApart(p *Player) {
	touch := w.consts.PlayerRadius * 2
	for i := range w.Players {
		other := &w.Players[i]
		if other.Slot == p.Slot {
			continue
		}
		dist := p.Pos.Distance(other.Pos)
		if dist < touch {
			away := p.Pos.Sub(other.Pos).NormalizeOrZero()
			p.Pos = p.Pos.Add(away.Scale(touch - dist))
		}
	}
}

func playerGraphics(p *Player) {
	switch {
	case p.Angle.X > 0:
		p.FlipX = false
	case p.Angle.X < 0:
		p.FlipX = true
	}

	switch p.State.Current {
	case fsm.Tackle:
		p.Animation = "tackle"
	case fsm.Tackled, fsm.Lose:
		p.Animation = "tackled"
	case fsm.Grab:
		p.Animation = "grab"
	case fsm.Shoot:
		p.Animation = "shoot"
	case fsm.Pass, fsm.Kick:
		p.Animation = "kick"
	case fsm.Recieve, fsm.Wait:
		p.Animation = "idle"
	case fsm.Win:
		p.Animation = "winning"
	}
}
