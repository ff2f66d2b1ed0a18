package play

import (
	"time"

	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Pin explosion animation.
const (
	explodeFrames = 6
	explodeFPS    = 16
)

// Pin is a target on a team's back line. Knocking down a team's pin scores
// for the other team.
type Pin struct {
	ID        int
	Team      roster.Team
	Pos       core.Vec2
	Exploding bool
	// Frame is the explosion animation frame.
	Frame   int
	explode core.Timer
	removed bool
}

func (w *World) updatePins() {
	reach := w.consts.BallRadius + w.consts.PinRadius
	for i := range w.Pins {
		pin := &w.Pins[i]

		if !pin.Exploding {
			if w.Ball.Owner.None() && w.Ball.Pos.Distance(pin.Pos) <= reach {
				w.PinScore.Inc(pin.Team.Other())
				pin.Exploding = true
				pin.explode = core.NewTimer(explodeDuration(), core.TimerOnce)
				w.emit(SoundPinExplosion)
			}
			continue
		}

		pin.explode.Tick(w.step)
		pin.Frame = int(pin.explode.Elapsed() * explodeFPS / time.Second)
		if pin.Frame >= explodeFrames-1 && !pin.removed {
			pin.Frame = explodeFrames - 1
			pin.removed = true
			w.queue(Command{Kind: CmdRemovePin, ID: pin.ID})
		}
	}
}

// explodeDuration runs until the last frame shows.
func explodeDuration() time.Duration {
	return time.Duration(explodeFrames-1) * time.Second / explodeFPS
}
