package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/input"
	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/replay"
	"github.com/vovakirdan/striker-ball/internal/roster"
	"github.com/vovakirdan/striker-ball/internal/session"
)

// Options configures a Model.
type Options struct {
	Config config.Game
	// Saver persists finished rounds; nil disables history.
	Saver session.ResultSaver
	// Sink plays sound intents; nil discards them.
	Sink   session.SoundSink
	Logger *log.Logger
	// ReplayDir receives a replay file per finished round; empty disables
	// recording to disk.
	ReplayDir string
	// Roster skips team select and starts a match right away.
	Roster *roster.PlayersInfo
	// FrameRate is how often the screen polls and redraws; zero follows the
	// simulation tick rate.
	FrameRate int
	// Now is the wall clock; defaults to time.Now.
	Now func() time.Time
}

type screen int

const (
	screenTeamSelect screen = iota
	screenPlay
)

// matchState is shared with the session callbacks, which outlive any single
// copy of the Model.
type matchState struct {
	recorder  *replay.Recorder
	decisions []play.Decision
}

// Model is the Bubble Tea model for a local Striker Ball session: team
// select, the match and the match done choice.
type Model struct {
	opts     Options
	manager  *session.Manager
	match    *matchState
	keyboard *Keyboard
	keys     KeyMap
	help     help.Model
	log      *log.Logger

	screen   screen
	teams    roster.TeamSelect
	info     roster.PlayersInfo
	snap     play.Snapshot
	start    time.Time
	paused   bool
	width    int
	height   int
	quitting bool
}

// NewModel creates the model and, when a roster is given, its first round.
func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ms := &matchState{}
	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithDecisionHandler(func(d play.Decision) {
			ms.decisions = append(ms.decisions, d)
		}),
		session.WithEventHook(func(tick uint64, ev input.Event) {
			if ms.recorder != nil {
				ms.recorder.Record(tick, ev)
			}
		}),
	}
	if opts.Sink != nil {
		sessionOpts = append(sessionOpts, session.WithSoundSink(opts.Sink))
	}
	if opts.Saver != nil {
		sessionOpts = append(sessionOpts, session.WithResultSaver(opts.Saver))
	}

	m := Model{
		opts:     opts,
		manager:  session.NewManager(opts.Config, sessionOpts...),
		match:    ms,
		keyboard: NewKeyboard(opts.Config.Input.KeyHoldTicks),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		log:      logger,
		start:    opts.Now(),
		width:    80,
		height:   24,
	}
	if opts.Roster != nil {
		if err := m.startRound(*opts.Roster, 0); err != nil {
			m.log.Error("cannot start round", "error", err)
		}
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(frameInterval(m.opts.FrameRate, m.opts.Config.Runner.TickRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) elapsed(t time.Time) time.Duration {
	return t.Sub(m.start)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishRound()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.screen == screenTeamSelect {
		return m.handleTeamSelectKey(msg)
	}

	if key.Matches(msg, m.keys.Pause) {
		m.togglePause(m.elapsed(m.opts.Now()))
		return m, nil
	}
	if m.paused {
		return m, nil
	}
	if ev, ok := m.keyboard.Press(msg.String()); ok {
		m.manager.Apply(ev)
	}
	return m, nil
}

func (m Model) handleTeamSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Start) {
		if info, ok := m.teams.PlayersInfo(); ok {
			if err := m.startRound(info, m.elapsed(m.opts.Now())); err != nil {
				m.log.Error("cannot start round", "error", err)
			}
		}
		return m, nil
	}

	b, ok := Lookup(msg.String())
	if !ok {
		return m, nil
	}
	ts := &m.teams
	switch {
	case b.Control == input.South:
		if !isJoined(ts, b.Device) {
			ts.AddGamepad(b.Device)
		} else {
			ts.ReadyGamepad(b.Device)
		}
	case b.Control == input.West:
		ts.DualReady(b.Device)
	case b.Control == input.East:
		ts.ReverseGamepad(b.Device)
	case b.Control == input.LeftStickX && b.Value < 0:
		ts.LeftGamepad(b.Device)
	case b.Control == input.LeftStickX && b.Value > 0:
		ts.RightGamepad(b.Device)
	}
	return m, nil
}

func isJoined(ts *roster.TeamSelect, id uint32) bool {
	for _, j := range ts.Joins {
		if j.IsGamepad(id) {
			return true
		}
	}
	return false
}

// togglePause stops polling the runner. On resume the runner restarts at the
// current instant so the pause is not caught up.
func (m *Model) togglePause(at time.Duration) {
	r := m.manager.Round()
	if r == nil {
		return
	}
	if !m.paused {
		m.paused = true
		for _, ev := range m.keyboard.ReleaseAll() {
			m.manager.Apply(ev)
		}
		m.log.Info("paused", "tick", r.World().Tick())
		return
	}
	m.paused = false
	r.Restart(at)
	m.log.Info("resumed", "tick", r.World().Tick())
}

// handleTick polls the runner up to the tick time and reacts to decisions.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(frameInterval(m.opts.FrameRate, m.opts.Config.Runner.TickRate))
	r := m.manager.Round()
	if m.screen != screenPlay || m.paused || r == nil {
		return m, next
	}

	at := m.elapsed(t)
	before := r.World().Tick()
	if _, err := m.manager.Poll(at); err != nil {
		m.log.Warn("poll failed", "error", err)
	}
	m.snap = r.World().Snapshot()

	if m.manager.Round() == r {
		for _, ev := range m.keyboard.Advance(int(r.World().Tick() - before)) {
			m.manager.Apply(ev)
		}
	}

	decisions := m.match.decisions
	m.match.decisions = nil
	for _, d := range decisions {
		switch d {
		case play.DecisionPlayAgain:
			if err := m.startRound(m.info, at); err != nil {
				m.log.Error("cannot restart round", "error", err)
			}
		case play.DecisionTeamSelect:
			m.finishRound()
			m.screen = screenTeamSelect
			m.teams = roster.TeamSelect{}
		case play.DecisionQuit:
			m.finishRound()
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, next
}

// startRound ends any active round and spawns a new one, restarting its
// runner at the given instant.
func (m *Model) startRound(info roster.PlayersInfo, at time.Duration) error {
	m.finishRound()
	r, err := m.manager.CreateRound(info)
	if err != nil {
		return err
	}
	r.Restart(at)
	m.match.recorder = replay.NewRecorder(m.opts.Config, info)
	m.info = info
	m.snap = r.World().Snapshot()
	m.screen = screenPlay
	m.paused = false
	return nil
}

// finishRound ends the active round and writes its replay.
func (m *Model) finishRound() {
	r := m.manager.Round()
	if r == nil {
		return
	}
	for _, ev := range m.keyboard.ReleaseAll() {
		m.manager.Apply(ev)
	}
	ticks := r.World().Tick()
	m.manager.EndRound()

	rec := m.match.recorder
	m.match.recorder = nil
	if rec == nil || m.opts.ReplayDir == "" || ticks == 0 {
		return
	}
	if err := os.MkdirAll(m.opts.ReplayDir, 0o755); err != nil {
		m.log.Warn("cannot create replay directory", "error", err)
		return
	}
	name := fmt.Sprintf("match_%s.replay", m.opts.Now().Format("20060102_150405"))
	path := filepath.Join(m.opts.ReplayDir, name)
	if err := replay.Save(path, rec.Finish(ticks)); err != nil {
		m.log.Warn("cannot save replay", "error", err)
		return
	}
	m.log.Info("replay saved", "path", path, "ticks", ticks)
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.screen == screenTeamSelect {
		b.WriteString(renderTeamSelect(m.teams, m.width))
	} else {
		b.WriteString(renderHeader(m.snap, m.width, m.paused))
		b.WriteString("\n")
		b.WriteString(RenderCourt(m.snap, m.width, m.height-3).Render())
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// InMatch reports whether the model is in a match.
func (m Model) InMatch() bool {
	return m.screen == screenPlay
}

// Paused reports whether the match is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Snapshot returns the last rendered state.
func (m Model) Snapshot() play.Snapshot {
	return m.snap
}

// Teams returns the team select state.
func (m Model) Teams() roster.TeamSelect {
	return m.teams
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// NewFileLogger opens a log file so logging does not draw over the alt
// screen. The caller closes the returned file.
func NewFileLogger(path string, level log.Level) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("tui: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("tui: open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "striker",
		Level:           level,
	})
	return logger, f, nil
}
