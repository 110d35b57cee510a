// Package viz renders the simulation in the terminal with a braille canvas
// driven by bubbletea. A left click inside the canvas pops the balloon.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/balloonsim/internal/balloon"
)

const (
	canvasW = 72
	canvasH = 22

	historyCap = 360
	frameRate  = 60
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(11)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	poppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).Width(44)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the bubbletea model wrapping one balloon simulation.
type Model struct {
	state  *balloon.State
	params balloon.Params
	dt     float64

	canvas     *Canvas
	paused     bool
	energyHist []float64
	status     string

	// world window mapped onto the canvas
	minX, maxX float64
	minY, maxY float64
}

func NewModel(state *balloon.State, dt float64) Model {
	p := state.Params
	extent := 1.6
	return Model{
		state:  state,
		params: p,
		dt:     dt,
		canvas: NewCanvas(canvasW, canvasH),
		minX:   p.Center.X - extent,
		maxX:   p.Center.X + extent,
		minY:   p.GroundHeight - 0.08,
		maxY:   p.Center.Y + 1.0,
		status: "intact",
	}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			if st, err := balloon.New(m.params); err == nil {
				m.state = st
				m.energyHist = nil
				m.status = "intact"
			}
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if pt, ok := m.cellToWorld(msg.X, msg.Y); ok {
				if m.state.HandleClick(pt) {
					m.status = "popped"
				}
			}
		}
	case TickMsg:
		if !m.paused {
			m.state.Step(m.dt)
			m.energyHist = append(m.energyHist, m.state.Energy())
			if len(m.energyHist) > historyCap {
				m.energyHist = m.energyHist[len(m.energyHist)-historyCap:]
			}
		}
		return m, tick()
	}
	return m, nil
}

// cellToWorld maps a terminal cell inside the canvas block to world
// coordinates at the cell's center.
func (m Model) cellToWorld(cx, cy int) (balloon.Vec2, bool) {
	if cx < 0 || cx >= canvasW || cy < 0 || cy >= canvasH {
		return balloon.Vec2{}, false
	}
	sx := float64(cx*2) + 1
	sy := float64(cy*4) + 2
	wx := m.minX + (sx/float64(canvasW*2))*(m.maxX-m.minX)
	wy := m.maxY - (sy/float64(canvasH*4))*(m.maxY-m.minY)
	return balloon.Vec2{X: wx, Y: wy}, true
}

func (m Model) worldToPixel(p balloon.Vec2) (int, int) {
	x := (p.X - m.minX) / (m.maxX - m.minX) * float64(canvasW*2)
	y := (m.maxY - p.Y) / (m.maxY - m.minY) * float64(canvasH*4)
	return int(x), int(y)
}

func (m Model) View() string {
	m.canvas.Clear()

	_, gy := m.worldToPixel(balloon.Vec2{X: m.minX, Y: m.params.GroundHeight})
	m.canvas.HLine(gy)

	for pos := range m.state.Positions() {
		x, y := m.worldToPixel(pos)
		m.canvas.Set(x, y)
	}
	for _, b := range m.state.Bullets {
		x, y := m.worldToPixel(b.Pos)
		m.canvas.FillCircle(x, y, 2)
	}

	unbroken := 0
	for _, sp := range m.state.Springs {
		if !sp.Broken {
			unbroken++
		}
	}

	phase := valueStyle.Render(m.state.Phase.String())
	if m.state.Phase == balloon.PhaseRuptured {
		phase = poppedStyle.Render(m.state.Phase.String())
	}

	rows := []string{
		headerStyle.Render("water balloon"),
		"",
		labelStyle.Render("phase") + phase,
		labelStyle.Render("time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.state.Time)),
		labelStyle.Render("particles") + valueStyle.Render(fmt.Sprintf("%d", len(m.state.Particles))),
		labelStyle.Render("springs") + valueStyle.Render(fmt.Sprintf("%d/%d", unbroken, len(m.state.Springs))),
		labelStyle.Render("energy") + valueStyle.Render(fmt.Sprintf("%.2f J", m.state.Energy())),
	}
	if m.paused {
		rows = append(rows, "", poppedStyle.Render("paused"))
	}

	stats := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if len(m.energyHist) > 2 {
		graph := asciigraph.Plot(m.energyHist,
			asciigraph.Height(6), asciigraph.Width(36), asciigraph.Caption("energy"))
		stats = lipgloss.JoinVertical(lipgloss.Left, stats, graphStyle.Render(graph))
	}
	stats = lipgloss.JoinVertical(lipgloss.Left, stats,
		helpStyle.Render("click: pop  space: pause  r: reset  q: quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), statsStyle.Render(stats))
}

// Run starts the terminal frontend and blocks until the user quits.
func Run(state *balloon.State, dt float64) error {
	p := tea.NewProgram(NewModel(state, dt), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
