// Package viz is an interactive terminal view of a quadtree. It draws every
// node boundary and point, and lets the user drag a query rectangle with the
// mouse while the matching points are highlighted.
package viz

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kass/go-quadtree/pkg/geo"
	"github.com/kass/go-quadtree/pkg/quadtree"
	"github.com/kass/go-quadtree/pkg/sample"
)

const (
	// AddBatch is the number of points the add key inserts
	AddBatch = 50

	headerLines = 1
	statusLines = 1
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1FA8C"))

	canvasStyles = map[StyleKey]lipgloss.Style{
		StyleGrid:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")),
		StylePoint: lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F8F2")),
		StyleQuery: lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Background(lipgloss.Color("#44475A")),
		StyleMatch: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50FA7B")).Background(lipgloss.Color("#44475A")),
	}
)

// Options configures the tree behind the view
type Options struct {
	Bounds   geo.Rectangle
	Capacity int
	MaxDepth int
	Points   int
	Seed     int64
	// Clustered generates clustered instead of uniform points
	Clustered bool
}

// Model is the bubbletea model of the visualizer
type Model struct {
	opts  Options
	state State
	seed  int64

	keys     keyMap
	help     help.Model
	width    int
	height   int
	dragging bool
}

// New builds a tree from opts.Points uniform points and returns the model.
func New(opts Options) Model {
	m := Model{
		opts:   opts,
		seed:   opts.Seed,
		keys:   keys,
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.state = NewState(m.buildTree())
	return m
}

func (m Model) buildTree() *quadtree.Node {
	tree := quadtree.NewWithMaxDepth(m.opts.Bounds, m.opts.Capacity, m.opts.MaxDepth)
	tree.InsertPoints(m.sample(m.opts.Points))
	return tree
}

func (m Model) sample(n int) []geo.Point {
	if m.opts.Clustered {
		return sample.Clustered(n, m.opts.Bounds, m.seed, 8, 0)
	}
	return sample.Uniform(n, m.opts.Bounds, m.seed, 0)
}

// State returns the current frame state
func (m Model) State() State {
	return m.state
}

// Viewport returns the mapping between the world and the canvas area.
func (m Model) Viewport() Viewport {
	footer := statusLines + lipgloss.Height(m.help.View(m.keys))
	rows := m.height - headerLines - footer
	if rows < 1 {
		rows = 1
	}
	cols := m.width
	if cols < 1 {
		cols = 1
	}
	return Viewport{World: m.opts.Bounds, Cols: cols, Rows: rows}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.state.ClearQuery()
		case key.Matches(msg, m.keys.Reseed):
			m.seed++
			m.state.Tree = m.buildTree()
			m.state.Refresh()
		case key.Matches(msg, m.keys.Add):
			m.seed++
			m.state.Tree.InsertPoints(m.sample(AddBatch))
			m.state.Refresh()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	p, ok := m.worldAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return m
		}
		m.dragging = true
		m.state.SetFirstCorner(p)
	case tea.MouseActionMotion:
		if m.dragging && ok {
			m.state.SetSecondCorner(p)
		}
	case tea.MouseActionRelease:
		if m.dragging && ok {
			m.state.SetSecondCorner(p)
		}
		m.dragging = false
	}
	return m
}

// worldAt converts a terminal cell to world coordinates. Cells outside the
// canvas area report false.
func (m Model) worldAt(x, y int) (geo.Point, bool) {
	vp := m.Viewport()
	row := y - headerLines
	if x < 0 || x >= vp.Cols || row < 0 || row >= vp.Rows {
		return geo.Point{}, false
	}
	return vp.Unproject(x, row), true
}

func (m Model) View() string {
	vp := m.Viewport()
	canvas := Render(m.state, vp)

	title := titleStyle.Render("qtree demo")
	return title + "\n" + canvas.Render(canvasStyles) + "\n" +
		statusStyle.Render(m.status()) + "\n" + m.help.View(m.keys)
}

func (m Model) status() string {
	stats := m.state.Tree.Stats()
	s := fmt.Sprintf("points: %d  nodes: %d  height: %d", stats.Points, stats.Nodes, stats.Height)
	if query, ok := m.state.Query(); ok {
		s += fmt.Sprintf("  query: %s  matches: %d", query, len(m.state.Matches))
	}
	return s
}

// Run starts the visualizer in the alternate screen with mouse tracking.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("visualizer failed: %w", err)
	}
	return nil
}
