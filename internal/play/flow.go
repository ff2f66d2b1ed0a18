package play

import (
	"math"
	"time"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Phase is the round/match flow state.
type Phase uint8

const (
	PhaseCountdown Phase = iota
	PhaseWaitForScore
	PhaseScoreDisplay
	PhasePodium
	PhaseMatchDone
)

func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseWaitForScore:
		return "wait_for_score"
	case PhaseScoreDisplay:
		return "score_display"
	case PhasePodium:
		return "podium"
	case PhaseMatchDone:
		return "match_done"
	}
	return "unknown"
}

// Decision is the choice made on the match done menu.
type Decision uint8

const (
	DecisionPlayAgain Decision = iota
	DecisionTeamSelect
	DecisionQuit
	numDecisions
)

func (d Decision) String() string {
	switch d {
	case DecisionPlayAgain:
		return "play_again"
	case DecisionTeamSelect:
		return "team_select"
	case DecisionQuit:
		return "quit"
	}
	return "unknown"
}

// Score tracks the pin score seen by the flow against the last settled one.
type Score struct {
	Target   uint8
	Current  PinScore
	Previous PinScore
}

func (s *Score) UpdateCurrent(p PinScore) { s.Current = p }
func (s *Score) UpdatePrevious()          { s.Previous = s.Current }

// Scorer returns the team whose counter changed since the last update.
func (s Score) Scorer() (roster.Team, bool) {
	if s.Current.A != s.Previous.A {
		return roster.TeamA, true
	}
	if s.Current.B != s.Previous.B {
		return roster.TeamB, true
	}
	return 0, false
}

// Winner returns the team that reached the target.
func (s Score) Winner() (roster.Team, bool) {
	if s.Current.B >= s.Target {
		return roster.TeamB, true
	}
	if s.Current.A >= s.Target {
		return roster.TeamA, true
	}
	return 0, false
}

// Countdown is the 3-2-1-GO before play. Its timer runs faster than real
// time by speed.
type Countdown struct {
	Visible bool
	timer   core.Timer
	speed   float64
	marker  int
}

// Restart shows the countdown from the top.
func (c *Countdown) Restart() {
	c.Visible = true
	c.timer.Reset()
	c.marker = -1
}

func (c *Countdown) tick(d time.Duration) {
	c.timer.Tick(time.Duration(float64(d) * c.speed))
}

// Finished reports whether the countdown ran out.
func (c Countdown) Finished() bool {
	return c.timer.Finished()
}

// Number is the digit on screen; 0 means "GO".
func (c Countdown) Number() int {
	secs := c.timer.Duration().Seconds()
	return int(math.Ceil(c.timer.PercentLeft()*secs)) - 1
}

// Fade is the fade out, hold, fade in sequence around a score.
type Fade struct {
	out, wait, in core.Timer
}

func newFade(cfg config.Flow) Fade {
	f := Fade{
		out:  core.TimerFromSeconds(cfg.FadeOut, core.TimerOnce),
		wait: core.TimerFromSeconds(cfg.FadeWait, core.TimerOnce),
		in:   core.TimerFromSeconds(cfg.FadeIn, core.TimerOnce),
	}
	for _, t := range []*core.Timer{&f.out, &f.wait, &f.in} {
		t.Finish()
		t.Pause()
	}
	return f
}

// Restart starts fading out.
func (f *Fade) Restart() {
	f.out.Reset()
	f.out.Unpause()
	f.wait.Reset()
	f.wait.Pause()
	f.in.Reset()
	f.in.Pause()
}

func (f *Fade) tick(d time.Duration) {
	f.out.Tick(d)
	f.wait.Tick(d)
	f.in.Tick(d)

	if f.out.Finished() && !f.wait.Finished() && f.wait.Paused() {
		f.wait.Unpause()
	}
	if f.wait.Finished() && !f.in.Finished() && f.in.Paused() {
		f.in.Unpause()
	}
}

// Alpha is the overlay opacity in [0, 1].
func (f Fade) Alpha() float64 {
	switch {
	case !f.out.Finished():
		return f.out.Percent()
	case !f.wait.Finished():
		return 1
	}
	return f.in.PercentLeft()
}

// MatchDoneMenu is the rematch / team select / quit menu.
type MatchDoneMenu struct {
	Visible bool
	Choice  Decision
}

func (m *MatchDoneMenu) cycleUp() {
	m.Choice = (m.Choice + numDecisions - 1) % numDecisions
}

func (m *MatchDoneMenu) cycleDown() {
	m.Choice = (m.Choice + 1) % numDecisions
}

// Flow is the round/match state machine.
type Flow struct {
	Phase     Phase
	Score     Score
	Countdown Countdown
	Fade      Fade

	scoreDisplay core.Timer

	Winner        roster.Team
	WinnerVisible bool
	winnerTimer   core.Timer

	MatchDone MatchDoneMenu
	// Decided is set once a match done choice has been made.
	Decided  bool
	Decision Decision
}

func newFlow(cfg config.Flow) Flow {
	f := Flow{
		Phase: PhaseCountdown,
		Score: Score{Target: cfg.ScoreTarget},
		Countdown: Countdown{
			timer: core.TimerFromSeconds(cfg.Countdown, core.TimerOnce),
			speed: cfg.CountdownSpeed,
		},
		Fade:         newFade(cfg),
		scoreDisplay: core.TimerFromSeconds(cfg.ScoreDisplay, core.TimerOnce),
		winnerTimer:  core.TimerFromSeconds(cfg.Podium, core.TimerOnce),
	}
	f.Countdown.Restart()
	f.scoreDisplay.Finish()
	f.winnerTimer.Finish()
	return f
}

// ScoreVisible reports whether the score overlay is up.
func (f Flow) ScoreVisible() bool {
	return !f.scoreDisplay.Finished()
}

func (w *World) updateFlow() {
	f := &w.Flow
	f.Countdown.tick(w.step)
	f.Fade.tick(w.step)
	f.scoreDisplay.Tick(w.step)
	f.winnerTimer.Tick(w.step)
	w.countdownSounds()

	switch f.Phase {
	case PhaseCountdown:
		w.countdownUpdate()
	case PhaseWaitForScore:
		w.waitForScoreUpdate()
	case PhaseScoreDisplay:
		w.scoreDisplayUpdate()
	case PhasePodium:
		w.podiumUpdate()
	case PhaseMatchDone:
		w.matchDoneUpdate()
	}
}

// countdownSounds ticks once per remaining whole second and once at "GO".
func (w *World) countdownSounds() {
	c := &w.Flow.Countdown
	if !c.Visible {
		return
	}
	if c.Finished() {
		c.Visible = false
		return
	}
	n := c.Number()
	if n == c.marker {
		return
	}
	c.marker = n
	if n > 0 {
		w.emit(SoundCountdownTick)
	} else {
		w.emit(SoundCountdownFinal)
	}
}

func (w *World) countdownUpdate() {
	if !w.Flow.Countdown.Finished() {
		return
	}
	w.log.Info("freeing players", "tick", w.tick)
	w.setStates(func(*Player) fsm.StateID { return fsm.Free })
	w.Flow.Phase = PhaseWaitForScore
}

func (w *World) waitForScoreUpdate() {
	f := &w.Flow
	f.Score.UpdateCurrent(w.PinScore)

	scorer, ok := f.Score.Scorer()
	if !ok {
		return
	}
	w.log.Info("team scored", "team", scorer, "a", f.Score.Current.A, "b", f.Score.Current.B)
	w.setStates(func(p *Player) fsm.StateID {
		if p.Team() == scorer {
			return fsm.Win
		}
		return fsm.Lose
	})
	f.scoreDisplay.Reset()
	f.Fade.Restart()
	f.Phase = PhaseScoreDisplay
}

func (w *World) scoreDisplayUpdate() {
	f := &w.Flow

	if f.Fade.out.JustFinished() {
		w.log.Info("fade out for round restart, resetting positions")

		// The ball may have hit more pins while the score was up
		f.Score.UpdateCurrent(w.PinScore)
		_, won := f.Score.Winner()

		for i := range w.Players {
			p := &w.Players[i]
			p.Pos = SpawnPosition(p.Slot, w.consts)
			if !won {
				p.State.Current = fsm.Wait
			}
		}

		x := w.consts.Court.X / 10
		if scorer, ok := f.Score.Scorer(); ok && scorer == roster.TeamB {
			x = -x
		}
		w.Ball.Owner = Owner{}
		w.Ball.Velocity = core.Zero
		w.Ball.Dribble = core.Zero
		w.Ball.Bounced = false
		w.Ball.Pos = core.V(x, 0)
	}

	if f.Fade.in.JustFinished() {
		w.log.Info("fade in for round restart")
		if team, ok := f.Score.Winner(); ok {
			w.log.Info("winner found, showing winner", "team", team)
			f.Winner = team
			f.WinnerVisible = true
			f.winnerTimer.Reset()
			w.emit(SoundWinner)
			w.emit(SoundMusicStop)
			f.Phase = PhasePodium
		} else {
			w.log.Info("no winner, starting countdown")
			f.Countdown.Restart()
			f.Phase = PhaseCountdown
		}
		f.Score.UpdatePrevious()
	}
}

func (w *World) podiumUpdate() {
	f := &w.Flow
	if !f.winnerTimer.JustFinished() {
		return
	}
	w.log.Info("showing match done ui")
	f.WinnerVisible = false
	f.MatchDone = MatchDoneMenu{Visible: true}
	f.Phase = PhaseMatchDone
}

func (w *World) matchDoneUpdate() {
	f := &w.Flow
	if !f.MatchDone.Visible {
		return
	}
	menu := w.input.Menu

	if menu.Confirm.JustPressed() {
		f.MatchDone.Visible = false
		f.Decided = true
		f.Decision = f.MatchDone.Choice
		w.log.Info("match decision", "decision", f.Decision)
		if w.onDecision != nil {
			w.onDecision(f.Decision)
		}
		return
	}
	if menu.Up.JustPressed() {
		f.MatchDone.cycleUp()
	}
	if menu.Down.JustPressed() {
		f.MatchDone.cycleDown()
	}
}

func (w *World) setStates(next func(*Player) fsm.StateID) {
	for i := range w.Players {
		p := &w.Players[i]
		p.State.Current = next(p)
	}
}
