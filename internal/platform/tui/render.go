package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/striker-ball/internal/core"
	"github.com/vovakirdan/striker-ball/internal/fsm"
	"github.com/vovakirdan/striker-ball/internal/play"
	"github.com/vovakirdan/striker-ball/internal/roster"
)

// Minimum court canvas size.
const (
	minCourtW = 32
	minCourtH = 12
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	teamAStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	teamBStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func teamColor(t roster.Team) Color {
	if t == roster.TeamA {
		return ColorTeamA
	}
	return ColorTeamB
}

func teamStyle(t roster.Team) lipgloss.Style {
	if t == roster.TeamA {
		return teamAStyle
	}
	return teamBStyle
}

// projection maps court coordinates (origin at the center, y up) to canvas
// cells inside the border.
type projection struct {
	court      core.Vec2
	cols, rows int
}

func (p projection) cell(pos core.Vec2) (int, int) {
	x := int(math.Floor((pos.X + p.court.X/2) / p.court.X * float64(p.cols)))
	y := int(math.Floor((p.court.Y/2 - pos.Y) / p.court.Y * float64(p.rows)))
	return core.Clamp(x, 0, p.cols-1) + 1, core.Clamp(y, 0, p.rows-1) + 1
}

// RenderCourt draws a snapshot onto a canvas of the given size.
func RenderCourt(snap play.Snapshot, width, height int) *Canvas {
	width = max(width, minCourtW)
	height = max(height, minCourtH)
	c := NewCanvas(width, height)
	if snap.Court.X <= 0 || snap.Court.Y <= 0 {
		return c
	}
	p := projection{court: snap.Court, cols: width - 2, rows: height - 2}

	c.Box(0, 0, width, height, ColorLine)
	mid, _ := p.cell(core.Zero)
	for y := 1; y < height-1; y++ {
		c.Set(mid, y, '┊', ColorDim)
	}

	for _, pin := range snap.Pins {
		x, y := p.cell(pin.Pos)
		if pin.Exploding {
			c.Set(x, y, '*', ColorExplode)
			continue
		}
		c.Set(x, y, 'I', teamColor(pin.Team))
	}

	for _, a := range snap.Attachments {
		x, y := p.cell(a.Pos)
		switch a.Kind {
		case play.AttachStickIndicator:
			c.Set(x, y, '·', ColorAccent)
		case play.AttachNumber:
			c.Text(x-1, y-1, fmt.Sprintf("P%d", a.Number+1), ColorAccent)
		}
	}

	for _, pv := range snap.Players {
		if pv.Aim == nil {
			continue
		}
		for _, d := range []float64{10, 20, 30} {
			x, y := p.cell(pv.Pos.Add(pv.Aim.Arrow.Scale(d)))
			c.Set(x, y, '•', ColorAccent)
		}
		for _, edge := range []core.Vec2{pv.Aim.ConeLeft, pv.Aim.ConeRight} {
			x, y := p.cell(pv.Pos.Add(edge.Scale(20)))
			c.Set(x, y, '·', ColorLine)
		}
	}

	for _, pv := range snap.Players {
		x, y := p.cell(pv.Pos)
		c.Set(x, y, playerGlyph(pv), teamColor(pv.Slot.Team()))
	}

	bx, by := p.cell(snap.Ball.Pos)
	c.Set(bx, by, 'o', ColorBall)

	drawOverlays(c, snap.Overlays, snap.Score)
	return c
}

func playerGlyph(pv play.PlayerView) rune {
	switch pv.State {
	case fsm.Tackled:
		return 'x'
	case fsm.Tackle:
		if pv.FlipX {
			return '«'
		}
		return '»'
	case fsm.Win:
		return '☺'
	case fsm.Lose:
		return '☹'
	}
	return rune('1' + pv.Slot.Index())
}

func drawOverlays(c *Canvas, o play.Overlays, score play.PinScore) {
	if o.FadeAlpha >= 0.99 {
		c.Clear()
		return
	}
	if o.FadeAlpha >= 0.5 {
		c.Recolor(ColorDim)
	}

	centerY := c.Height() / 2
	if o.CountdownVisible {
		text := "GO!"
		if o.Countdown > 0 {
			text = fmt.Sprintf(" %d ", o.Countdown)
		}
		c.TextCentered(centerY, text, ColorAccent)
	}
	if o.ScoreVisible {
		c.TextCentered(centerY-2, fmt.Sprintf(" A %d - %d B ", score.A, score.B), ColorAccent)
	}
	if o.WinnerVisible {
		c.TextCentered(centerY-2, fmt.Sprintf(" TEAM %v WINS! ", o.Winner), teamColor(o.Winner))
	}
	if o.MatchDone {
		choices := []struct {
			d     play.Decision
			label string
		}{
			{play.DecisionPlayAgain, "Play again"},
			{play.DecisionTeamSelect, "Team select"},
			{play.DecisionQuit, "Quit"},
		}
		for i, ch := range choices {
			line := "   " + ch.label + "   "
			col := ColorLine
			if ch.d == o.Choice {
				line = " > " + ch.label + " < "
				col = ColorAccent
			}
			c.TextCentered(centerY+i, line, col)
		}
	}
}

// renderHeader draws the score line above the court.
func renderHeader(snap play.Snapshot, width int, paused bool) string {
	left := teamAStyle.Render(fmt.Sprintf("TEAM A  %d", snap.Score.A))
	right := teamBStyle.Render(fmt.Sprintf("%d  TEAM B", snap.Score.B))
	middle := mutedStyle.Render(fmt.Sprintf("first to %d", snap.Target))
	if paused {
		middle = titleStyle.Render("PAUSED")
	}
	line := left + "   " + middle + "   " + right
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// renderTeamSelect draws the join screen.
func renderTeamSelect(ts roster.TeamSelect, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, titleStyle.Render("STRIKER BALL - TEAM SELECT")))
	b.WriteString("\n\n")

	teams := make([]string, 0, 2)
	for _, team := range []roster.Team{roster.TeamA, roster.TeamB} {
		var col strings.Builder
		col.WriteString(teamStyle(team).Render(fmt.Sprintf("Team %v", team)))
		col.WriteString("\n")
		for _, s := range roster.Slots() {
			if s.Team() != team {
				continue
			}
			col.WriteString(fmt.Sprintf("\n%v  %s", s, slotStatus(ts, s)))
		}
		teams = append(teams, boxStyle.Width(28).Render(col.String()))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, teams[0], "  ", teams[1])))
	b.WriteString("\n\n")

	var devices strings.Builder
	for _, j := range ts.Joins {
		if !j.IsJoined() {
			continue
		}
		devices.WriteString(fmt.Sprintf("%-8s %s\n", DeviceName(j.Gamepad), joinStatus(j)))
	}
	if devices.Len() == 0 {
		devices.WriteString(mutedStyle.Render("Press f or k to join") + "\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, devices.String()))

	if _, ok := ts.PlayersInfo(); ok {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, titleStyle.Render("Press enter to start")))
	}
	return b.String()
}

func slotStatus(ts roster.TeamSelect, s roster.Slot) string {
	switch {
	case ts.IsSlotReady(s):
		for _, j := range ts.Joins {
			if j.IsSlot(s.Partner()) && j.IsDualStick() {
				return "ready (dual stick)"
			}
		}
		return "ready"
	case ts.IsSlotSet(s):
		return "picked"
	}
	return mutedStyle.Render("open")
}

func joinStatus(j roster.Join) string {
	switch {
	case j.IsDualStick():
		return fmt.Sprintf("%v + %v dual stick", j.Slot, j.Slot.Partner())
	case j.IsReady():
		return fmt.Sprintf("%v ready", j.Slot)
	case j.IsSet():
		return fmt.Sprintf("%v, shoot to ready", j.Slot)
	}
	return "joined, pick a side with left/right"
}
