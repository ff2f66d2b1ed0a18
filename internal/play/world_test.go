package play

import (
	"math"
	"testing"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/input"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

const eps = 1e-9

func newTestWorld(t *testing.T, cfg config.Game) *World {
	t.Helper()
	w, err := NewWorld(cfg, roster.DefaultPlayersInfo())
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

// inPlay skips the countdown and leaves every player waiting, so a test only
// has to free the players it cares about.
func inPlay(w *World) {
	w.Flow.Phase = PhaseWaitForScore
	w.Flow.Countdown.Visible = false
	w.Flow.Countdown.timer.Finish()
	w.DrainSounds()
}

func press() input.Button {
	return input.NewButton(true, false, 0)
}

func step(t *testing.T, w *World, in input.Snapshot) {
	t.Helper()
	if err := w.Step(in); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

func near(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-6 && math.Abs(a.Y-b.Y) < 1e-6
}

func hasSound(events []SoundEvent, s Sound) bool {
	for _, e := range events {
		if e.Sound == s {
			return true
		}
	}
	return false
}

func TestNewWorldSpawn(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())

	for _, s := range roster.Slots() {
		p := w.Player(s)
		if p.Slot != s {
			t.Errorf("player %v has slot %v", s, p.Slot)
		}
		if p.State.Current != fsm.Wait {
			t.Errorf("player %v state = %v, want wait", s, p.State.Current)
		}
		if p.Pos != SpawnPosition(s, w.consts) {
			t.Errorf("player %v pos = %v, want spawn", s, p.Pos)
		}
	}
	if w.Player(roster.A1).Pos.X >= 0 || w.Player(roster.B1).Pos.X <= 0 {
		t.Error("team A should spawn left and team B right")
	}
	if got, want := len(w.Pins), 2*w.consts.PinCount; got != want {
		t.Errorf("pins = %d, want %d", got, want)
	}
	if !w.Ball.Owner.None() || !w.Ball.Pos.IsZero() {
		t.Errorf("ball should start free at the origin, got %v at %v", w.Ball.Owner, w.Ball.Pos)
	}
	if !hasSound(w.DrainSounds(), SoundMusic) {
		t.Error("round creation should start the music")
	}
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultGame()
	cfg.Runner.TickRate = 0
	if _, err := NewWorld(cfg, roster.DefaultPlayersInfo()); err == nil {
		t.Error("expected an error for a zero tick rate")
	}
}

func TestFreePlayerTakesBall(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	c := w.consts
	p := w.Player(roster.A1)
	p.Pos = core.V(c.PlayerRadius+c.BallRadius-1, 0)
	p.State = fsm.NewState(fsm.Free)

	step(t, w, input.Snapshot{})

	if p.State.Current != fsm.Ball {
		t.Fatalf("state = %v, want ball", p.State.Current)
	}
	if !w.Ball.Owner.Is(roster.A1) {
		t.Fatalf("owner = %v, want A1", w.Ball.Owner)
	}
	if !near(p.Angle, core.V(-1, 0)) {
		t.Errorf("angle = %v, want facing the ball", p.Angle)
	}
	if w.Ball.Dribble.X >= 0 || math.Abs(w.Ball.Dribble.Y) > eps {
		t.Errorf("dribble offset = %v, want along the facing", w.Ball.Dribble)
	}
	if !near(w.Ball.Pos, p.Pos.Add(w.Ball.Dribble)) {
		t.Errorf("ball pos = %v, want owner pos + dribble", w.Ball.Pos)
	}
}

func TestPassTurnsAndKicksToPartner(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	passer := w.Player(roster.A1)
	partner := w.Player(roster.A2)
	passer.Pos = core.Zero
	passer.State = fsm.NewState(fsm.Ball)
	partner.Pos = core.V(100, 0)
	partner.State = fsm.NewState(fsm.Free)
	w.Ball.Owner = OwnedBy(roster.A1)
	w.Ball.Pos = core.V(12, 0)

	var in input.Snapshot
	in.Clients[roster.A1.Index()].Pass = press()
	step(t, w, in)

	if passer.State.Current != fsm.Turn {
		t.Errorf("passer state = %v, want turn", passer.State.Current)
	}
	if partner.State.Current != fsm.Recieve {
		t.Errorf("partner state = %v, want recieve", partner.State.Current)
	}
	if !near(passer.ActionAngle, core.V(1, 0)) {
		t.Errorf("passer action angle = %v, want (1,0)", passer.ActionAngle)
	}
	if !near(partner.ActionAngle, core.V(-1, 0)) {
		t.Errorf("partner action angle = %v, want (-1,0)", partner.ActionAngle)
	}

	kicked := false
	for i := 0; i < 40 && !w.Ball.Owner.Is(roster.A2); i++ {
		step(t, w, input.Snapshot{})
		if passer.State.Current == fsm.Kick {
			kicked = true
		}
	}
	if !kicked {
		t.Error("passer never kicked after the turn")
	}
	if !w.Ball.Owner.Is(roster.A2) || partner.State.Current != fsm.Ball {
		t.Errorf("partner should receive the pass, owner = %v state = %v", w.Ball.Owner, partner.State.Current)
	}
}

func TestPassNeedsFreePartner(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	passer := w.Player(roster.A1)
	passer.Pos = core.Zero
	passer.State = fsm.NewState(fsm.Ball)
	w.Ball.Owner = OwnedBy(roster.A1)

	var in input.Snapshot
	in.Clients[roster.A1.Index()].Pass = press()
	step(t, w, in)

	if passer.State.Current != fsm.Ball {
		t.Errorf("state = %v, want ball while partner waits", passer.State.Current)
	}
}

func TestShootAndRelease(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	p := w.Player(roster.A1)
	p.Pos = core.Zero
	p.Angle = core.V(1, 0)
	p.State = fsm.NewState(fsm.Ball)
	w.Ball.Owner = OwnedBy(roster.A1)

	var in input.Snapshot
	in.Clients[roster.A1.Index()].Shoot = press()
	step(t, w, in)
	if p.State.Current != fsm.Shoot {
		t.Fatalf("state = %v, want shoot", p.State.Current)
	}
	if snap := w.Snapshot(); snap.Players[roster.A1.Index()].Aim == nil {
		t.Error("snapshot should carry the aim arrow while shooting")
	}

	in.Clients[roster.A1.Index()].Shoot = input.NewButton(true, true, 1)
	step(t, w, in)
	if p.State.Current != fsm.Shoot {
		t.Fatalf("state = %v, want shoot while held", p.State.Current)
	}

	step(t, w, input.Snapshot{})
	if p.State.Current != fsm.Kick {
		t.Fatalf("state = %v, want kick on release", p.State.Current)
	}
	if !w.Ball.Owner.None() {
		t.Errorf("owner = %v, want none after kick", w.Ball.Owner)
	}
	if w.Ball.Velocity.X <= 0 {
		t.Errorf("velocity = %v, want toward team B", w.Ball.Velocity)
	}
	if !hasSound(w.DrainSounds(), SoundBallKick) {
		t.Error("kick sound not emitted")
	}
}

func TestAimCone(t *testing.T) {
	deg := func(d float64) core.Vec2 { return core.FromAngle(core.Radians(d)) }

	tests := []struct {
		name       string
		team       roster.Team
		angle      core.Vec2
		wantAction core.Vec2
		wantFacing core.Vec2
	}{
		{"A forward", roster.TeamA, deg(0), deg(0), deg(0)},
		{"A inside cone", roster.TeamA, deg(30), deg(30), deg(30)},
		{"A above cone", roster.TeamA, deg(90), deg(45), deg(90)},
		{"A below cone", roster.TeamA, deg(-100), deg(-45), deg(-100)},
		{"A backwards", roster.TeamA, deg(170), deg(0), deg(0)},
		{"B forward", roster.TeamB, deg(180), deg(180), deg(180)},
		{"B backwards", roster.TeamB, deg(10), deg(180), deg(180)},
		{"B above cone", roster.TeamB, deg(100), deg(135), deg(100)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, facing := aimCone(tc.team, tc.angle)
			if !near(action, tc.wantAction) {
				t.Errorf("action = %v, want %v", action, tc.wantAction)
			}
			if !near(facing, tc.wantFacing) {
				t.Errorf("facing = %v, want %v", facing, tc.wantFacing)
			}
		})
	}
}

func TestTackleStealsBall(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	owner := w.Player(roster.A1)
	owner.Pos = core.Zero
	owner.State = fsm.NewState(fsm.Ball)
	w.Ball.Owner = OwnedBy(roster.A1)

	tackler := w.Player(roster.B1)
	tackler.Pos = core.V(14, 0)
	tackler.Angle = core.V(-1, 0)
	tackler.State = fsm.NewState(fsm.Free)

	var in input.Snapshot
	in.Clients[roster.B1.Index()].Pass = press()
	step(t, w, in)

	if tackler.State.Current != fsm.Tackle {
		t.Errorf("tackler state = %v, want tackle", tackler.State.Current)
	}
	if owner.State.Current != fsm.Tackled {
		t.Errorf("victim state = %v, want tackled", owner.State.Current)
	}
	if !w.Ball.Owner.Is(roster.B1) {
		t.Errorf("owner = %v, want B1", w.Ball.Owner)
	}

	sounds := w.DrainSounds()
	if !hasSound(sounds, SoundPlayerTackle) || !hasSound(sounds, SoundPlayerTackled) {
		t.Errorf("sounds = %v, want tackle and tackled", sounds)
	}
	for _, e := range sounds {
		if e.Sound == SoundPlayerTackle && e.Volume != w.cfg.Sounds.PlayerTackle*w.cfg.Sounds.Master {
			t.Errorf("tackle volume = %v", e.Volume)
		}
	}

	// Possession stays exclusive while the tackle dash runs out
	for i := 0; i < 40; i++ {
		step(t, w, input.Snapshot{})
		owners := 0
		for _, s := range roster.Slots() {
			if w.Ball.Owner.Is(s) {
				owners++
			}
		}
		if owners > 1 {
			t.Fatalf("tick %d: %d owners", i, owners)
		}
		if s, ok := w.Ball.Owner.Get(); ok && w.Player(s).State.Current == fsm.Tackled {
			t.Fatalf("tick %d: tackled player %v owns the ball", i, s)
		}
	}
}

func TestTackleForceDecays(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	p := w.Player(roster.A1)
	p.Pos = core.V(-50, 0)
	p.Angle = core.V(1, 0)
	p.State = fsm.NewState(fsm.Free)

	var in input.Snapshot
	in.Clients[roster.A1.Index()].Pass = press()
	step(t, w, in)

	var moves []float64
	last := p.Pos.X
	for i := 0; i < 5; i++ {
		step(t, w, input.Snapshot{})
		moves = append(moves, p.Pos.X-last)
		last = p.Pos.X
	}
	for i := 1; i < len(moves); i++ {
		if moves[i] >= moves[i-1] {
			t.Errorf("tackle moves %v should decay", moves)
			break
		}
	}
}

func TestFreeWalkersMoveBeforeDribblers(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)
	r := w.consts.PlayerRadius

	// A1 dribbles and comes first in slot order; B1 overlaps it
	w.Player(roster.A1).State.Current = fsm.Ball
	w.Player(roster.B1).State.Current = fsm.Free
	w.Player(roster.A2).State.Current = fsm.Wait
	w.Player(roster.B2).State.Current = fsm.Wait
	w.Player(roster.A1).Pos = core.V(0, 0)
	w.Player(roster.B1).Pos = core.V(r, 0)
	w.Player(roster.A2).Pos = core.V(-100, 50)
	w.Player(roster.B2).Pos = core.V(100, -50)

	w.updatePlayers()

	// The free player resolves the overlap, leaving nothing for the dribbler
	if got := w.Player(roster.B1).Pos; !near(got, core.V(2*r, 0)) {
		t.Errorf("free player at %v, want %v", got, core.V(2*r, 0))
	}
	if got := w.Player(roster.A1).Pos; !near(got, core.Zero) {
		t.Errorf("dribbler at %v, want it to stay put", got)
	}
}

func TestFreeBallFrictionClamp(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	w.Ball.Velocity = core.V(0.005, 0)
	w.Ball.Bounced = true
	step(t, w, input.Snapshot{})

	if w.Ball.Velocity != core.Zero {
		t.Errorf("velocity = %v, want exactly zero", w.Ball.Velocity)
	}
}

func TestBallBouncesOffWalls(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	c := w.consts
	limit := c.BallBounds.Y - c.BallRadius
	w.Ball.Pos = core.V(0, limit-1)
	w.Ball.Velocity = core.V(0, 5)
	step(t, w, input.Snapshot{})

	if w.Ball.Pos.Y != limit {
		t.Errorf("pos.y = %v, want clamped to %v", w.Ball.Pos.Y, limit)
	}
	if want := -5 * c.BallETransfer; math.Abs(w.Ball.Velocity.Y-want) > eps {
		t.Errorf("vel.y = %v, want %v", w.Ball.Velocity.Y, want)
	}
	if !w.Ball.Bounced {
		t.Error("free ball should be marked bounced")
	}
	if !hasSound(w.DrainSounds(), SoundBallBounce) {
		t.Error("bounce sound not emitted")
	}
}

func TestBallDriftsOffSideWall(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	c := w.consts
	w.Ball.Pos = core.V(c.BallBounds.X-c.BallRadius-1, 0)
	w.Ball.Velocity = core.V(-0.05, 0)
	step(t, w, input.Snapshot{})

	if w.Ball.Velocity.X != -c.BallBorderSlide {
		t.Errorf("vel.x = %v, want %v", w.Ball.Velocity.X, -c.BallBorderSlide)
	}
}

func TestPinScoreAttribution(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	var target *Pin
	for i := range w.Pins {
		if w.Pins[i].Team == roster.TeamA {
			target = &w.Pins[i]
			break
		}
	}
	id := target.ID
	w.Ball.Pos = target.Pos
	step(t, w, input.Snapshot{})

	if w.PinScore != (PinScore{A: 0, B: 1}) {
		t.Fatalf("score = %+v, want B scoring once", w.PinScore)
	}
	if !hasSound(w.DrainSounds(), SoundPinExplosion) {
		t.Error("explosion sound not emitted")
	}

	// Still touching the exploding pin
	step(t, w, input.Snapshot{})
	if w.PinScore != (PinScore{A: 0, B: 1}) {
		t.Fatalf("score = %+v after re-strike, want unchanged", w.PinScore)
	}

	for i := 0; i < 60; i++ {
		step(t, w, input.Snapshot{})
	}
	for _, p := range w.Pins {
		if p.ID == id {
			t.Fatalf("pin %d still present after exploding", id)
		}
	}
	if got, want := len(w.Pins), 2*w.consts.PinCount-1; got != want {
		t.Errorf("pins = %d, want %d", got, want)
	}
}

func TestOwnedBallDoesNotScore(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	pin := w.Pins[1]
	p := w.Player(roster.B1)
	p.State = fsm.NewState(fsm.Ball)
	w.Ball.Owner = OwnedBy(roster.B1)
	w.Ball.Pos = pin.Pos
	p.Pos = pin.Pos
	step(t, w, input.Snapshot{})

	if w.PinScore != (PinScore{}) {
		t.Errorf("score = %+v, want none for an owned ball", w.PinScore)
	}
}

func TestAttachmentsFollowAndExpire(t *testing.T) {
	cfg := config.DefaultGame()
	w := newTestWorld(t, cfg)

	count := func(kind AttachmentKind) int {
		n := 0
		for _, a := range w.Attachments {
			if a.Kind == kind {
				n++
			}
		}
		return n
	}
	if count(AttachShadow) != 4 || count(AttachStickIndicator) != 4 || count(AttachNumber) != 4 {
		t.Fatalf("attachments = %+v", w.Attachments)
	}

	p := w.Player(roster.A1)
	p.Pos = core.V(10, 10)
	step(t, w, input.Snapshot{})
	for _, a := range w.Attachments {
		if a.Target == roster.A1 && a.Pos != p.Pos.Add(a.Offset) {
			t.Errorf("%v at %v, want %v", a.Kind, a.Pos, p.Pos.Add(a.Offset))
		}
	}

	ticks := int(cfg.Flow.NumberIcon*float64(cfg.Runner.TickRate)) + 2
	for i := 0; i < ticks; i++ {
		step(t, w, input.Snapshot{})
	}
	if count(AttachNumber) != 0 {
		t.Errorf("number icons should expire, %d left", count(AttachNumber))
	}
	if count(AttachShadow) != 4 {
		t.Errorf("shadows should live forever, %d left", count(AttachShadow))
	}
}

func TestStickIndicatorHiddenWhileShooting(t *testing.T) {
	w := newTestWorld(t, config.DefaultGame())
	inPlay(w)

	p := w.Player(roster.A1)
	p.State = fsm.NewState(fsm.Shoot)
	w.Ball.Owner = OwnedBy(roster.A1)

	var in input.Snapshot
	in.Clients[roster.A1.Index()].Shoot = input.NewButton(true, true, 3)
	step(t, w, in)

	for _, a := range w.Attachments {
		if a.Kind == AttachStickIndicator && a.Target == roster.A1 && a.Visible {
			t.Error("stick indicator should hide while shooting")
		}
	}
}

func TestSingleDeviceRosterNoIndicator(t *testing.T) {
	info := roster.PlayersInfo{
		TeamA: roster.DoubleTeam(
			roster.PlayerInfo{Number: 0, Gamepad: 0, Slot: roster.A1},
			roster.PlayerInfo{Number: 1, Gamepad: 1, Slot: roster.A2},
		),
		TeamB: roster.SingleTeam(roster.PlayerInfo{Number: 2, Gamepad: 2, DualStick: true, Slot: roster.B1}),
	}
	w, err := NewWorld(config.DefaultGame(), info)
	if err != nil {
		t.Fatal(err)
	}
	indicators := 0
	for _, a := range w.Attachments {
		if a.Kind == AttachStickIndicator {
			indicators++
			if a.Target.Team() != roster.TeamB {
				t.Errorf("indicator on %v", a.Target)
			}
		}
	}
	if indicators != 2 {
		t.Errorf("indicators = %d, want 2", indicators)
	}
	if got := w.Player(roster.B2).Info.Gamepad; got != 2 {
		t.Errorf("B2 gamepad = %d, want the dual-stick device", got)
	}
}

func scriptedInput(i int) input.Snapshot {
	var in input.Snapshot
	a1 := &in.Clients[roster.A1.Index()]
	b1 := &in.Clients[roster.B1.Index()]
	switch {
	case i < 120:
		a1.Axis = core.V(1, 0.2)
		b1.Axis = core.V(-1, -0.3)
	case i == 150:
		a1.Shoot = press()
		b1.Pass = press()
	case i > 150 && i < 170:
		a1.Shoot = input.NewButton(true, true, uint32(i-150))
		a1.Axis = core.V(0, 1)
	case i%40 == 0:
		a1.Pass = press()
	}
	return in
}

func TestWorldDeterminism(t *testing.T) {
	run := func() Snapshot {
		w := newTestWorld(t, config.DefaultGame())
		for i := 0; i < 900; i++ {
			_ = w.Step(scriptedInput(i))
		}
		return w.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%+v, Run2=%+v", snap1.Score, snap2.Score)
	}
	if snap1.Ball.Pos != snap2.Ball.Pos {
		t.Errorf("Determinism failed: ball positions differ")
	}
}

func TestHashCoversHiddenState(t *testing.T) {
	tests := []struct {
		name   string
		modify func(w *World)
	}{
		{"ball velocity", func(w *World) { w.Ball.Velocity = core.V(0, 1e-9) }},
		{"ball owner", func(w *World) { w.Ball.Owner = OwnedBy(roster.B2) }},
		{"owner slot", func(w *World) { w.Ball.Owner = OwnedBy(roster.A2) }},
		{"dribble offset", func(w *World) { w.Ball.Dribble = core.V(1, 0) }},
		{"state age", func(w *World) { fsm.Tick(w) }},
		{"action angle", func(w *World) { w.Player(roster.A1).ActionAngle = core.V(0, 1) }},
	}

	base := newTestWorld(t, config.DefaultGame())
	base.Ball.Owner = OwnedBy(roster.A1)
	baseSnap := base.Snapshot()
	want := baseSnap.Hash()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, config.DefaultGame())
			w.Ball.Owner = OwnedBy(roster.A1)
			tc.modify(w)
			snap := w.Snapshot()
			if snap.Hash() == want {
				t.Errorf("hash unchanged after modifying %s", tc.name)
			}
		})
	}
}
