package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StyleKey identifies a visual style. Render maps keys to lipgloss styles.
type StyleKey int

const (
	StyleBackground StyleKey = iota
	StyleGrid
	StylePoint
	StyleQuery
	StyleMatch
)

// Cell is a single character with its style
type Cell struct {
	Ch    rune
	Style StyleKey
}

// Canvas is a grid of styled cells, indexed [row][col]
type Canvas struct {
	W, H  int
	Cells [][]Cell
}

// NewCanvas creates a blank canvas. Negative sizes are treated as zero.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range c.Cells {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: StyleBackground}
		}
		c.Cells[y] = row
	}
	return c
}

func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.W && y >= 0 && y < c.H
}

// Set writes a character; writes outside the canvas are ignored.
func (c *Canvas) Set(x, y int, ch rune, style StyleKey) {
	if c.InBounds(x, y) {
		c.Cells[y][x] = Cell{Ch: ch, Style: style}
	}
}

// At returns the cell at (x, y), or a blank cell outside the canvas.
func (c *Canvas) At(x, y int) Cell {
	if !c.InBounds(x, y) {
		return Cell{Ch: ' ', Style: StyleBackground}
	}
	return c.Cells[y][x]
}

// SetStyle restyles a cell without changing its character
func (c *Canvas) SetStyle(x, y int, style StyleKey) {
	if c.InBounds(x, y) {
		c.Cells[y][x].Style = style
	}
}

// HLine draws a horizontal border segment, merging with vertical ones.
func (c *Canvas) HLine(x0, x1, y int, style StyleKey) {
	for x := x0; x <= x1; x++ {
		ch := '─'
		if cur := c.At(x, y).Ch; cur == '│' || cur == '┼' {
			ch = '┼'
		}
		c.Set(x, y, ch, style)
	}
}

// VLine draws a vertical border segment, merging with horizontal ones.
func (c *Canvas) VLine(x, y0, y1 int, style StyleKey) {
	for y := y0; y <= y1; y++ {
		ch := '│'
		if cur := c.At(x, y).Ch; cur == '─' || cur == '┼' {
			ch = '┼'
		}
		c.Set(x, y, ch, style)
	}
}

// Plain returns the characters without any styling
func (c *Canvas) Plain() string {
	lines := make([]string, c.H)
	for y, row := range c.Cells {
		runes := make([]rune, len(row))
		for x, cell := range row {
			runes[x] = cell.Ch
		}
		lines[y] = string(runes)
	}
	return strings.Join(lines, "\n")
}

// Render converts the canvas into a styled string. Consecutive cells sharing
// a style are rendered with a single Style.Render call.
func (c *Canvas) Render(styles map[StyleKey]lipgloss.Style) string {
	if c.W == 0 || c.H == 0 {
		return ""
	}

	lines := make([]string, c.H)
	for y, row := range c.Cells {
		var sb strings.Builder
		runStart := 0
		for x := 1; x <= c.W; x++ {
			if x < c.W && row[x].Style == row[runStart].Style {
				continue
			}
			chunk := make([]rune, x-runStart)
			for i := runStart; i < x; i++ {
				chunk[i-runStart] = row[i].Ch
			}
			if s, ok := styles[row[runStart].Style]; ok {
				sb.WriteString(s.Render(string(chunk)))
			} else {
				sb.WriteString(string(chunk))
			}
			runStart = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
