package play

import (
	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Attachment offsets from the player position.
var (
	shadowOffset    = core.V(0, -4)
	indicatorOffset = core.V(0, 22)
	numberOffset    = core.V(0, -18)
)

func (w *World) spawn() {
	w.Ball = Ball{
		SpinTimer: core.TimerFromSeconds(w.cfg.Sounds.BallSpinBuffer, core.TimerRepeating),
	}

	infos := slotInfos(w.info)
	for _, s := range roster.Slots() {
		w.Players[s.Index()] = newPlayer(s, infos[s.Index()], w.consts)
		w.attachPlayer(s, infos[s.Index()])
	}
	w.Pins = spawnPins(w.consts)
}

// slotInfos resolves the roster entry driving each slot.
func slotInfos(info roster.PlayersInfo) [roster.NumSlots]roster.PlayerInfo {
	var out [roster.NumSlots]roster.PlayerInfo
	for _, team := range []roster.TeamInfo{info.TeamA, info.TeamB} {
		p, s := team.Primary, team.SecondaryPlayer()
		out[p.Slot.Index()] = p
		out[s.Slot.Index()] = s
	}
	return out
}

func newPlayer(s roster.Slot, info roster.PlayerInfo, c config.Constants) Player {
	angle := core.UnitX
	if s.Team() == roster.TeamB {
		angle = core.UnitX.Neg()
	}
	return Player{
		Slot:        s,
		Info:        info,
		Pos:         SpawnPosition(s, c),
		Angle:       angle,
		ActionAngle: core.UnitX,
		Animation:   "idle",
		State:       fsm.NewState(fsm.Wait),
	}
}

// SpawnPosition returns the kick-off position of slot: each player starts in
// the middle of its own quarter of the court.
func SpawnPosition(s roster.Slot, c config.Constants) core.Vec2 {
	pos := c.PlayerBounds.Vec2().Scale(0.5)
	switch s {
	case roster.A1:
		return pos.Mul(core.V(-1, 1))
	case roster.A2:
		return pos.Mul(core.V(-1, -1))
	case roster.B2:
		return pos.Mul(core.V(1, -1))
	}
	return pos
}

func (w *World) attachPlayer(s roster.Slot, info roster.PlayerInfo) {
	w.attach(Attachment{Kind: AttachShadow, Target: s, Offset: shadowOffset})
	if info.DualStick {
		w.attach(Attachment{Kind: AttachStickIndicator, Target: s, Offset: indicatorOffset})
	}
	w.attach(Attachment{
		Kind:     AttachNumber,
		Target:   s,
		Offset:   numberOffset,
		Lifetime: NewLifetime(core.Seconds(w.cfg.Flow.NumberIcon)),
		Number:   info.Number,
	})
}

// spawnPins lays out pin_count pins along each back line, team A on the left.
func spawnPins(c config.Constants) []Pin {
	if c.PinCount <= 0 {
		return nil
	}
	screen := c.Court.Vec2()
	half := screen.Scale(0.5)
	shift := (screen.Y - c.PinPadding.Y*2) / float64(c.PinCount)
	xPadding := c.PinRadius + c.PinPadding.X

	pins := make([]Pin, 0, c.PinCount*2)
	for n := 0; n < c.PinCount; n++ {
		y := -half.Y + c.PinPadding.Y + c.PinRadius*2 + shift*float64(n)
		pins = append(pins,
			Pin{ID: n * 2, Team: roster.TeamA, Pos: core.V(-half.X+xPadding, y)},
			Pin{ID: n*2 + 1, Team: roster.TeamB, Pos: core.V(half.X-xPadding, y)},
		)
	}
	return pins
}
