package session

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/input"
	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// ErrNoRound is returned when polling without an active round.
var ErrNoRound = errors.New("session: no active round")

// SoundSink receives the sound intents of each batch of ticks.
type SoundSink interface {
	Play(events []play.SoundEvent)
}

// ResultSaver persists finished rounds. The manager does not depend on the
// storage layer directly.
type ResultSaver interface {
	SaveResult(res Result) error
}

// EventHook observes every device event with the tick it will first affect.
type EventHook func(tick uint64, ev input.Event)

// Result summarises a finished round.
type Result struct {
	Score     play.PinScore
	Winner    roster.Team
	HasWinner bool
	Ticks     uint64
	Mode      string
	Decision  play.Decision
	Decided   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for the manager and its rounds.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithSoundSink sets where sound intents go.
func WithSoundSink(s SoundSink) Option {
	return func(m *Manager) { m.sink = s }
}

// WithDecisionHandler registers the owner callback for the match done
// choice. It runs after the poll that produced the decision, never mid-tick.
func WithDecisionHandler(fn func(play.Decision)) Option {
	return func(m *Manager) { m.onDecision = fn }
}

// WithResultSaver persists every round that ran at least one tick when it
// ends. Save failures are logged and otherwise ignored.
func WithResultSaver(s ResultSaver) Option {
	return func(m *Manager) { m.saver = s }
}

// WithEventHook registers an observer for applied device events.
func WithEventHook(h EventHook) Option {
	return func(m *Manager) { m.hook = h }
}

// Manager owns the devices for its lifetime and one round at a time. Rounds
// are created and torn down wholesale, never reset in place.
type Manager struct {
	cfg     config.Game
	devices *input.Devices
	runner  *Runner

	sink       SoundSink
	onDecision func(play.Decision)
	hook       EventHook
	saver      ResultSaver
	pending    []play.Decision
	log        *log.Logger
}

// NewManager creates a manager with no active round.
func NewManager(cfg config.Game, opts ...Option) *Manager {
	m := &Manager{
		cfg:     cfg,
		devices: input.NewDevices(cfg.Input.Stroke, cfg.Input.DeadZone),
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the configuration new rounds are created with.
func (m *Manager) Config() config.Game { return m.cfg }

// Devices returns the shared device table.
func (m *Manager) Devices() *input.Devices { return m.devices }

// Round returns the active round's runner, or nil.
func (m *Manager) Round() *Runner { return m.runner }

// CreateRound tears down any active round and spawns a new one for info.
func (m *Manager) CreateRound(info roster.PlayersInfo) (*Runner, error) {
	if m.runner != nil {
		m.EndRound()
	}

	w, err := play.NewWorld(m.cfg, info,
		play.WithLogger(m.log.WithPrefix("round")),
		play.WithDecisionHandler(func(d play.Decision) {
			m.pending = append(m.pending, d)
		}),
	)
	if err != nil {
		return nil, err
	}
	m.runner = NewRunner(w, m.devices)
	m.log.Info("round created", "mode", info.Mode(), "target", m.cfg.Flow.ScoreTarget)
	return m.runner, nil
}

// EndRound tears down the active round and reports its result.
func (m *Manager) EndRound() (Result, bool) {
	if m.runner == nil {
		return Result{}, false
	}
	res := m.result()
	m.runner = nil
	m.pending = nil
	m.log.Info("round ended", "a", res.Score.A, "b", res.Score.B, "ticks", res.Ticks)
	if m.saver != nil && res.Ticks > 0 {
		if err := m.saver.SaveResult(res); err != nil {
			m.log.Warn("failed to save match", "error", err)
		}
	}
	return res, true
}

// Result reports the active round's state without ending it.
func (m *Manager) Result() (Result, bool) {
	if m.runner == nil {
		return Result{}, false
	}
	return m.result(), true
}

func (m *Manager) result() Result {
	w := m.runner.World()
	f := w.Flow
	res := Result{
		Score:    w.PinScore,
		Ticks:    w.Tick(),
		Mode:     w.Roster().Mode(),
		Decision: f.Decision,
		Decided:  f.Decided,
	}
	res.Winner, res.HasWinner = f.Score.Winner()
	return res
}

// Apply feeds a device event to the shared devices.
func (m *Manager) Apply(ev input.Event) {
	if m.hook != nil && m.runner != nil {
		m.hook(m.runner.World().Tick()+1, ev)
	}
	m.devices.Apply(ev)
}

// Poll advances the active round to at, then forwards sound intents and any
// match decision.
func (m *Manager) Poll(at time.Duration) (int, error) {
	if m.runner == nil {
		return 0, ErrNoRound
	}
	r := m.runner
	ticks, err := r.Poll(at)
	if err != nil {
		m.log.Warn("tick error", "error", err)
	}

	sounds := r.World().DrainSounds()
	if m.sink != nil && len(sounds) > 0 {
		m.sink.Play(sounds)
	}

	decisions := m.pending
	m.pending = nil
	for _, d := range decisions {
		m.log.Info("match decision", "decision", d)
		if m.onDecision != nil {
			m.onDecision(d)
		}
	}
	return ticks, err
}
