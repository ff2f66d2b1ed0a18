package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color is a palette entry of the canvas.
type Color uint8

const (
	ColorDefault Color = iota
	ColorLine
	ColorDim
	ColorTeamA
	ColorTeamB
	ColorBall
	ColorAccent
	ColorExplode
)

// colorStyles maps Color to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault: lipgloss.NewStyle(),
	ColorLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	ColorTeamA:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	ColorTeamB:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	ColorBall:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	ColorExplode: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

type cell struct {
	r rune
	c Color
}

// Canvas is a 2D buffer of colored runes. Drawing outside of it is
// silently clipped.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

// NewCanvas creates a blank canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{width: width, height: height}
	c.cells = make([][]cell, height)
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
	}
	c.Clear()
	return c
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in characters.
func (c *Canvas) Height() int { return c.height }

// Clear fills the canvas with spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
}

// Set places a rune at the given position.
func (c *Canvas) Set(x, y int, r rune, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = cell{r: r, c: col}
}

// Get returns the rune and color at the given position.
func (c *Canvas) Get(x, y int) (rune, Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' ', ColorDefault
	}
	cl := c.cells[y][x]
	return cl.r, cl.c
}

// Text writes a string horizontally starting at (x, y).
func (c *Canvas) Text(x, y int, s string, col Color) {
	i := 0
	for _, r := range s {
		c.Set(x+i, y, r, col)
		i++
	}
}

// TextCentered writes a string centered on row y.
func (c *Canvas) TextCentered(y int, s string, col Color) {
	c.Text((c.width-len([]rune(s)))/2, y, s, col)
}

// Box draws a box outline.
func (c *Canvas) Box(x, y, w, h int, col Color) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	c.Set(x, y, '┌', col)
	c.Set(right, y, '┐', col)
	c.Set(x, bottom, '└', col)
	c.Set(right, bottom, '┘', col)
	for i := x + 1; i < right; i++ {
		c.Set(i, y, '─', col)
		c.Set(i, bottom, '─', col)
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, '│', col)
		c.Set(right, j, '│', col)
	}
}

// Recolor paints every non-blank cell with col.
func (c *Canvas) Recolor(col Color) {
	for y := range c.cells {
		for x := range c.cells[y] {
			if c.cells[y][x].r != ' ' {
				c.cells[y][x].c = col
			}
		}
	}
}

// String returns the canvas without styling.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)
	for y := range c.cells {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, cl := range c.cells[y] {
			sb.WriteRune(cl.r)
		}
	}
	return sb.String()
}

// Render converts the canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (c *Canvas) Render() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height*2 + c.height)

	for y := range c.cells {
		if y > 0 {
			sb.WriteRune('\n')
		}
		row := c.cells[y]
		x := 0
		for x < len(row) {
			start := row[x].c
			var run strings.Builder
			for x < len(row) && row[x].c == start {
				run.WriteRune(row[x].r)
				x++
			}
			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
