// Package play is the deterministic Striker Ball simulation: the player
// state machine, ball physics and possession, pin scoring and the
// round/match flow. A World is advanced one fixed tick at a time with Step
// and never calls into rendering or audio; it only records intents.
package play

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/input"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Player is one of the four fixed characters.
type Player struct {
	Slot roster.Slot
	Info roster.PlayerInfo
	Pos  core.Vec2
	// Angle is the unit facing direction.
	Angle core.Vec2
	// ActionAngle is frozen when a tackle or shot starts.
	ActionAngle core.Vec2
	FlipX       bool
	Animation   string
	State       fsm.State
}

// Team returns the player's team.
func (p *Player) Team() roster.Team {
	return p.Slot.Team()
}

// Owner is an optional reference to the player holding the ball.
type Owner struct {
	slot roster.Slot
	set  bool
}

// OwnedBy returns an owner reference to slot.
func OwnedBy(s roster.Slot) Owner {
	return Owner{slot: s, set: true}
}

// Get returns the owning slot, if any.
func (o Owner) Get() (roster.Slot, bool) { return o.slot, o.set }

// Is reports whether slot owns the ball.
func (o Owner) Is(s roster.Slot) bool { return o.set && o.slot == s }

// None reports whether the ball is free.
func (o Owner) None() bool { return !o.set }

func (o Owner) String() string {
	if !o.set {
		return "none"
	}
	return o.slot.String()
}

// Ball is the single ball of a round.
type Ball struct {
	Pos      core.Vec2
	Velocity core.Vec2
	Owner    Owner
	// Dribble is the smoothed offset from the owner while possessed.
	Dribble core.Vec2
	Bounced bool
	// SpinTimer ticks by speed and emits the spin sound on each wrap.
	SpinTimer core.Timer
	// AnimFPS is the spin animation rate.
	AnimFPS float64
}

// PinScore counts eliminated pins per scoring team.
type PinScore struct {
	A uint8
	B uint8
}

// Inc credits a point to team.
func (s *PinScore) Inc(team roster.Team) {
	if team == roster.TeamA {
		s.A++
		return
	}
	s.B++
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for flow transitions and warnings.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithDecisionHandler registers the callback that receives the match done
// choice.
func WithDecisionHandler(fn func(Decision)) Option {
	return func(w *World) { w.onDecision = fn }
}

// World holds every entity of one round. Players are indexed by slot.
type World struct {
	cfg    config.Game
	consts config.Constants
	info   roster.PlayersInfo
	step   time.Duration

	Players     [roster.NumSlots]Player
	Ball        Ball
	Pins        []Pin
	PinScore    PinScore
	Attachments []Attachment
	Flow        Flow

	tick       uint64
	input      input.Snapshot
	sched      *fsm.Scheduler[*World]
	states     []*fsm.State
	commands   []Command
	sounds     []SoundEvent
	nextID     int
	onDecision func(Decision)
	log        *log.Logger
}

// NewWorld spawns a round for the roster.
func NewWorld(cfg config.Game, info roster.PlayersInfo, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("play: %w", err)
	}

	w := &World{
		cfg:    cfg,
		consts: cfg.Constants,
		info:   info,
		step:   time.Second / time.Duration(cfg.Runner.TickRate),
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.states = make([]*fsm.State, 0, roster.NumSlots)
	for i := range w.Players {
		w.states = append(w.states, &w.Players[i].State)
	}
	w.sched = newPlayerScheduler(cfg.Runner.MaxPasses, cfg.Constants)

	w.spawn()
	w.Flow = newFlow(cfg.Flow)
	w.emit(SoundMusic)
	return w, nil
}

// States implements fsm.World.
func (w *World) States() []*fsm.State {
	return w.states
}

// Config returns the configuration the round was created with.
func (w *World) Config() config.Game {
	return w.cfg
}

// Roster returns the round's roster.
func (w *World) Roster() roster.PlayersInfo {
	return w.info
}

// Tick returns the number of ticks stepped so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// Player returns the player in slot.
func (w *World) Player(s roster.Slot) *Player {
	return &w.Players[s.Index()]
}

func (w *World) client(s roster.Slot) input.Client {
	return w.input.Client(s)
}

// Step advances the round by one fixed tick. A non-converging transition
// pass is logged and returned, but the tick still completes with the
// settled states.
func (w *World) Step(in input.Snapshot) error {
	w.input = in
	w.tick++

	fsm.Tick(w)
	passes, err := w.sched.Resolve(w)
	if err != nil {
		w.log.Warn("player transitions did not converge", "tick", w.tick, "passes", passes, "error", err)
	}

	w.updatePlayers()
	w.updateBall()
	w.updatePins()
	w.updateAttachments()
	w.updateFlow()
	w.drainCommands()
	return err
}

// DrainSounds returns and clears the sound intents recorded since the last
// call.
func (w *World) DrainSounds() []SoundEvent {
	out := w.sounds
	w.sounds = nil
	return out
}

func (w *World) newID() int {
	w.nextID++
	return w.nextID
}
