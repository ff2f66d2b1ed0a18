package play

import (
	"math"

	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// PlayerView is the render state of one player.
type PlayerView struct {
	Slot        roster.Slot
	Number      int
	Pos         core.Vec2
	Angle       core.Vec2
	ActionAngle core.Vec2
	FlipX       bool
	Animation   string
	State       fsm.StateID
	// Age is the number of ticks spent in State.
	Age     uint64
	HasBall bool
	// Aim is set while the player is shooting.
	Aim *AimView
}

// AimView is the aim arrow and the cone it is locked into.
type AimView struct {
	Arrow     core.Vec2
	ConeLeft  core.Vec2
	ConeRight core.Vec2
}

// BallView is the render state of the ball.
type BallView struct {
	Pos      core.Vec2
	Velocity core.Vec2
	// Owner is only meaningful when Owned.
	Owner   roster.Slot
	Owned   bool
	Dribble core.Vec2
	AnimFPS float64
}

// PinView is the render state of a pin.
type PinView struct {
	Team      roster.Team
	Pos       core.Vec2
	Exploding bool
	Frame     int
}

// AttachmentView is the render state of a follower.
type AttachmentView struct {
	Kind   AttachmentKind
	Pos    core.Vec2
	Number int
}

// Overlays holds what the flow puts over the court.
type Overlays struct {
	// Countdown is the digit shown, 0 for "GO"; only valid when CountdownVisible.
	Countdown        int
	CountdownVisible bool
	FadeAlpha        float64
	ScoreVisible     bool
	Winner           roster.Team
	WinnerVisible    bool
	MatchDone        bool
	Choice           Decision
}

// Snapshot is everything a renderer reads after a tick.
type Snapshot struct {
	Tick        uint64
	Phase       Phase
	Court       core.Vec2
	Players     [roster.NumSlots]PlayerView
	Ball        BallView
	Pins        []PinView
	Attachments []AttachmentView
	Score       PinScore
	Target      uint8
	Overlays    Overlays
}

// Snapshot captures the current render state.
func (w *World) Snapshot() Snapshot {
	f := &w.Flow
	snap := Snapshot{
		Tick:  w.tick,
		Phase: f.Phase,
		Court: w.consts.Court.Vec2(),
		Ball: BallView{
			Pos:      w.Ball.Pos,
			Velocity: w.Ball.Velocity,
			Dribble:  w.Ball.Dribble,
			AnimFPS:  w.Ball.AnimFPS,
		},
		Score:  f.Score.Current,
		Target: f.Score.Target,
		Overlays: Overlays{
			Countdown:        f.Countdown.Number(),
			CountdownVisible: f.Countdown.Visible,
			FadeAlpha:        f.Fade.Alpha(),
			ScoreVisible:     f.ScoreVisible(),
			Winner:           f.Winner,
			WinnerVisible:    f.WinnerVisible,
			MatchDone:        f.MatchDone.Visible,
			Choice:           f.MatchDone.Choice,
		},
	}

	snap.Ball.Owner, snap.Ball.Owned = w.Ball.Owner.Get()

	for i := range w.Players {
		p := &w.Players[i]
		v := PlayerView{
			Slot:        p.Slot,
			Number:      p.Info.Number,
			Pos:         p.Pos,
			Angle:       p.Angle,
			FlipX:       p.FlipX,
			Animation:   p.Animation,
			State:       p.State.Current,
			Age:         p.State.Age(),
			ActionAngle: p.ActionAngle,
			HasBall:     w.Ball.Owner.Is(p.Slot),
		}
		if p.State.Current == fsm.Shoot {
			v.Aim = &AimView{
				Arrow:     p.Angle,
				ConeLeft:  p.ActionAngle.Rotate(core.FromAngle(Spread)),
				ConeRight: p.ActionAngle.Rotate(core.FromAngle(-Spread)),
			}
		}
		snap.Players[i] = v
	}

	snap.Pins = make([]PinView, 0, len(w.Pins))
	for _, pin := range w.Pins {
		snap.Pins = append(snap.Pins, PinView{
			Team:      pin.Team,
			Pos:       pin.Pos,
			Exploding: pin.Exploding,
			Frame:     pin.Frame,
		})
	}

	snap.Attachments = make([]AttachmentView, 0, len(w.Attachments))
	for _, a := range w.Attachments {
		if !a.Visible {
			continue
		}
		snap.Attachments = append(snap.Attachments, AttachmentView{
			Kind:   a.Kind,
			Pos:    a.Pos,
			Number: a.Number,
		})
	}
	return snap
}

// Hash folds the simulation state of the snapshot into one value for
// determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mix := func(v uint64) { h = h*31 + v }
	vec := func(v core.Vec2) {
		mix(math.Float64bits(v.X))
		mix(math.Float64bits(v.Y))
	}

	mix(uint64(snap.Phase))
	mix(uint64(snap.Score.A))
	mix(uint64(snap.Score.B))
	for _, p := range snap.Players {
		vec(p.Pos)
		vec(p.Angle)
		vec(p.ActionAngle)
		mix(uint64(p.State))
		mix(p.Age)
	}
	vec(snap.Ball.Pos)
	vec(snap.Ball.Velocity)
	vec(snap.Ball.Dribble)
	if snap.Ball.Owned {
		mix(uint64(snap.Ball.Owner) + 1)
	} else {
		mix(0)
	}
	for _, pin := range snap.Pins {
		vec(pin.Pos)
		if pin.Exploding {
			mix(1)
		}
	}
	return h
}
