package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/striker-ball/internal/config"
	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/replay"
	"github.com/vovakirdan/striker-ball/internal/roster"
	"github.com/vovakirdan/striker-ball/internal/session"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// fakeClock drives both key handling and tick messages.
type fakeClock struct {
	base time.Time
	now  time.Time
}

func newFakeClock() *fakeClock {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return &fakeClock{base: base, now: base}
}

func (c *fakeClock) Now() time.Time { return c.now }

// tick moves the clock to base+at and returns the matching tick message.
func (c *fakeClock) tick(at time.Duration) TickMsg {
	c.now = c.base.Add(at)
	return TickMsg(c.now)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func newTestModel(t *testing.T, clock *fakeClock, opts Options) Model {
	t.Helper()
	opts.Config = config.DefaultGame()
	opts.Now = clock.Now
	return NewModel(opts)
}

func TestTeamSelectStartsMatch(t *testing.T) {
	clock := newFakeClock()
	m := newTestModel(t, clock, Options{})

	if m.InMatch() {
		t.Fatal("should open on team select")
	}
	m = send(t, m,
		keyMsg("f"), keyMsg("a"), keyMsg("f"), keyMsg("g"),
		keyMsg("k"), keyMsg("right"), keyMsg("k"), keyMsg("l"),
	)
	teams := m.Teams()
	info, ok := teams.PlayersInfo()
	if !ok {
		t.Fatalf("teams not complete: %+v", m.Teams())
	}
	if info.TeamA.Primary.Gamepad != KeyboardLeft || info.TeamB.Primary.Gamepad != KeyboardRight {
		t.Errorf("roster = %+v", info)
	}
	if info.Mode() != "single/single" {
		t.Errorf("mode = %q", info.Mode())
	}

	m = send(t, m, keyMsg("enter"))
	if !m.InMatch() {
		t.Fatal("enter should start the match")
	}

	m = send(t, m, clock.tick(50*time.Millisecond))
	if got := m.Snapshot().Tick; got != 3 {
		t.Errorf("tick = %d, want 3", got)
	}
}

func TestStartNeedsCompleteTeams(t *testing.T) {
	clock := newFakeClock()
	m := newTestModel(t, clock, Options{})
	m = send(t, m, keyMsg("f"), keyMsg("a"), keyMsg("f"), keyMsg("enter"))
	if m.InMatch() {
		t.Error("a single team should not start a match")
	}
}

func TestKeysDriveDevices(t *testing.T) {
	clock := newFakeClock()
	info := roster.DefaultPlayersInfo()
	m := newTestModel(t, clock, Options{Roster: &info})

	m = send(t, m, keyMsg("d"))
	dev := m.manager.Devices().Device(KeyboardLeft)
	if dev.LeftStick.X != 1 {
		t.Fatalf("stick = %v", dev.LeftStick)
	}

	// Fewer ticks than the hold keep the key down
	m = send(t, m, clock.tick(4*m.manager.Round().Step()))
	if dev.LeftStick.X != 1 {
		t.Errorf("stick released after %d ticks", m.Snapshot().Tick)
	}
	m = send(t, m, clock.tick(8*m.manager.Round().Step()))
	if dev.LeftStick.X != 0 {
		t.Errorf("stick = %v, want released after the hold", dev.LeftStick)
	}
}

func TestPauseDoesNotCatchUp(t *testing.T) {
	clock := newFakeClock()
	info := roster.DefaultPlayersInfo()
	m := newTestModel(t, clock, Options{Roster: &info})

	m = send(t, m, clock.tick(50*time.Millisecond), keyMsg("p"))
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	m = send(t, m, clock.tick(5*time.Second))
	if got := m.Snapshot().Tick; got != 3 {
		t.Errorf("tick = %d while paused, want 3", got)
	}

	m = send(t, m, keyMsg("esc"))
	if m.Paused() {
		t.Fatal("esc should resume")
	}
	m = send(t, m, clock.tick(5*time.Second+50*time.Millisecond))
	if got := m.Snapshot().Tick; got != 6 {
		t.Errorf("tick = %d after resume, want 6", got)
	}
}

type memSaver struct {
	results []session.Result
}

func (s *memSaver) SaveResult(res session.Result) error {
	s.results = append(s.results, res)
	return nil
}

func TestDecisionReturnsToTeamSelect(t *testing.T) {
	clock := newFakeClock()
	info := roster.DefaultPlayersInfo()
	saver := &memSaver{}
	m := newTestModel(t, clock, Options{Roster: &info, Saver: saver})

	m = send(t, m, clock.tick(100*time.Millisecond))
	m.match.decisions = append(m.match.decisions, play.DecisionTeamSelect)
	m = send(t, m, clock.tick(120*time.Millisecond))

	if m.InMatch() || m.manager.Round() != nil {
		t.Error("team select decision should end the round")
	}
	if len(saver.results) != 1 {
		t.Errorf("saved %d results, want 1", len(saver.results))
	}
}

func TestPlayAgainRecreatesRound(t *testing.T) {
	clock := newFakeClock()
	info := roster.DefaultPlayersInfo()
	m := newTestModel(t, clock, Options{Roster: &info})

	m = send(t, m, clock.tick(time.Second))
	first := m.manager.Round()
	m.match.decisions = append(m.match.decisions, play.DecisionPlayAgain)
	m = send(t, m, clock.tick(time.Second+20*time.Millisecond))

	r := m.manager.Round()
	if r == nil || r == first {
		t.Fatal("play again should spawn a new round")
	}
	if r.World().Tick() != 0 {
		t.Errorf("new round at tick %d", r.World().Tick())
	}

	// The new runner starts at the decision instant, not at zero
	m = send(t, m, clock.tick(time.Second+70*time.Millisecond))
	if got := m.Snapshot().Tick; got != 3 {
		t.Errorf("tick = %d, want 3", got)
	}
}

func TestQuitWritesReplay(t *testing.T) {
	clock := newFakeClock()
	info := roster.DefaultPlayersInfo()
	dir := t.TempDir()
	m := newTestModel(t, clock, Options{Roster: &info, ReplayDir: dir})

	m = send(t, m, keyMsg("w"), clock.tick(500*time.Millisecond))
	want := m.Snapshot()

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.replay"))
	if err != nil || len(files) != 1 {
		t.Fatalf("replays = %v, %v", files, err)
	}
	rep, err := replay.Load(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if rep.Ticks != want.Tick {
		t.Errorf("replay ticks = %d, want %d", rep.Ticks, want.Tick)
	}

	got, err := replay.Play(rep)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hash() != want.Hash() {
		t.Errorf("replay hash = %d, want %d", got.Hash(), want.Hash())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "striker.log")
	logger, closer, err := NewFileLogger(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		name            string
		frame, tickRate int
		want            time.Duration
	}{
		{"follows tick rate", 0, 60, time.Second / 60},
		{"own rate", 30, 60, time.Second / 30},
		{"nothing set", 0, 0, time.Second / 60},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frameInterval(tc.frame, tc.tickRate); got != tc.want {
				t.Errorf("frameInterval(%d, %d) = %v, want %v", tc.frame, tc.tickRate, got, tc.want)
			}
		})
	}
}
