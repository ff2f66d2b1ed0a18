package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/striker-ball/internal/storage"
)

const maxHistory = 100

// HistorySource is the read side of the match store.
type HistorySource interface {
	RecentMatches(limit int) ([]storage.Match, error)
	TeamWins() (storage.TeamWins, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the match history screen.
type HistoryModel struct {
	matches  []storage.Match
	wins     storage.TeamWins
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	tickRate int
	width    int
	height   int
	quitting bool
}

// NewHistoryModel loads the history from src.
func NewHistoryModel(src HistorySource, tickRate, width, height int) HistoryModel {
	m := HistoryModel{
		help:     help.New(),
		keys:     DefaultHistoryKeyMap(),
		tickRate: tickRate,
		width:    width,
		height:   height,
	}
	if src != nil {
		m.matches, m.err = src.RecentMatches(maxHistory)
		if m.err == nil {
			m.wins, m.err = src.TeamWins()
		}
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Mode", Width: 14},
		{Title: "Score", Width: 7},
		{Title: "Winner", Width: 7},
		{Title: "Length", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, mt := range m.matches {
		winner := mt.Winner
		if winner == "" {
			winner = "-"
		}
		rows[i] = table.Row{
			mt.CreatedAt.Local().Format("Jan 02 15:04"),
			mt.Mode,
			fmt.Sprintf("%d-%d", mt.ScoreA, mt.ScoreB),
			winner,
			FormatTicks(mt.Ticks, m.tickRate),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// FormatTicks renders a round length as minutes and seconds.
func FormatTicks(ticks uint64, tickRate int) string {
	if tickRate <= 0 {
		tickRate = 60
	}
	d := time.Duration(ticks) * time.Second / time.Duration(tickRate)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("MATCH HISTORY")))
	b.WriteString("\n\n")

	wins := teamAStyle.Render(fmt.Sprintf("Team A %d", m.wins.A)) +
		mutedStyle.Render(fmt.Sprintf("   %d matches   ", m.wins.Total)) +
		teamBStyle.Render(fmt.Sprintf("%d Team B", m.wins.B))
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, wins))
	b.WriteString("\n\n")

	var content string
	switch {
	case m.err != nil:
		content = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error())
	case len(m.matches) == 0:
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No matches recorded yet.\nPlay a match to start the history!")
	default:
		content = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(content)))

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunHistory runs the history screen.
func RunHistory(src HistorySource, tickRate, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(src, tickRate, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
