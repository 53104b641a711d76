// Package tui is the terminal front-end: a bubbletea program that steps
// the fluid solver, draws it on a Braille canvas and feeds key presses to
// the viewer controller.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/fluidview/internal/fluid"
	"github.com/san-kum/fluidview/internal/viewer"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 30
	historyCapacity = 300
)

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model owns the controller and both of its collaborators.
type Model struct {
	ctrl    *viewer.Controller
	sim     *fluid.Solver
	display *Display
	log     *log.Logger

	fps           int
	width, height int

	frames   int
	fpsMark  time.Time
	measured float64
	energy   []float64
	pressure []float64
}

// NewModel builds the controller from opts and starts the first
// simulation.
func NewModel(opts viewer.Options, fps int) (Model, error) {
	if fps <= 0 {
		return Model{}, fmt.Errorf("fps must be positive, got %d", fps)
	}
	sim := fluid.New()
	display := NewDisplay(defaultWidth-statsWidth, defaultHeight)
	ctrl, err := viewer.New(sim, display, opts)
	if err != nil {
		return Model{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctrl.Apply(true)
	logger.Info("viewer started", "scene", ctrl.Scene().Name, "grid", sim.GridSize(), "particles", len(sim.Particles()))

	return Model{
		ctrl:     ctrl,
		sim:      sim,
		display:  display,
		log:      logger,
		fps:      fps,
		width:    defaultWidth,
		height:   defaultHeight,
		energy:   make([]float64, 0, historyCapacity),
		pressure: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Controller() *viewer.Controller { return m.ctrl }

func (m Model) Solver() *fluid.Solver { return m.sim }

func (m Model) Display() *Display { return m.display }

func (m Model) Init() tea.Cmd { return tick(m.fps) }

// Update routes single characters to the controller and steps the solver
// on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.display.Resize(msg.Width-statsWidth, msg.Height)
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.log.Info("viewer stopped", "steps", m.sim.Steps(), "time", m.sim.Time())
			return m, tea.Quit
		case tea.KeyRunes:
			if len(msg.Runes) == 1 && !msg.Alt {
				m.ctrl.HandleKey(msg.Runes[0])
			}
		}
	case tickMsg:
		m.step(time.Time(msg))
		return m, tick(m.fps)
	}
	return m, nil
}

func (m *Model) step(now time.Time) {
	// a reset restarts the step counter
	if m.sim.Steps() == 0 {
		m.energy, m.pressure = m.energy[:0], m.pressure[:0]
	}
	m.sim.Step(1 / float64(m.fps))
	m.energy = appendCapped(m.energy, m.sim.KineticEnergy())
	m.pressure = appendCapped(m.pressure, m.sim.MeanPressure())

	m.frames++
	if m.fpsMark.IsZero() {
		m.fpsMark = now
	}
	if elapsed := now.Sub(m.fpsMark); elapsed >= time.Second {
		m.measured = float64(m.frames) / elapsed.Seconds()
		m.frames, m.fpsMark = 0, now
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m Model) View() string {
	m.display.BeginFrame()
	m.ctrl.Draw(m.display)
	scene := m.display.Render(m.sim)
	return lipgloss.JoinHorizontal(lipgloss.Top, scene, statsStyle.Render(m.stats()))
}

func (m Model) stats() string {
	var s strings.Builder
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}

	s.WriteString(headerStyle.Render("FLUIDVIEW") + "\n")
	row("Scene", m.ctrl.Scene().Name)
	row("Grid", fmt.Sprintf("%d^2", m.sim.GridSize()))
	row("Particles", fmt.Sprintf("%d", len(m.sim.Particles())))
	row("Time", fmt.Sprintf("%.2fs", m.sim.Time()))
	row("Steps", fmt.Sprintf("%d", m.sim.Steps()))
	row("Solver", solverFlags(m.sim.Settings()))
	if m.display.Visible(viewer.FrameRate) {
		row("FPS", fmt.Sprintf("%.1f", m.measured))
	}
	if m.display.Visible(viewer.MatrixConnections) {
		row("Matrix", fmt.Sprintf("%d nnz", m.sim.MatrixNonZeros()))
	}
	if m.display.Visible(viewer.Pressure) {
		row("Pressure", fmt.Sprintf("%.1f", m.sim.MeanPressure()))
		s.WriteString(sparkline(m.pressure, statsWidth-4) + "\n")
		if len(m.energy) > 1 {
			chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("Kinetic energy"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	help := m.ctrl.Keys().Controller[viewer.ActionHelp].Help().Key
	s.WriteString("\n" + hintStyle.Render(help+": help  esc: quit"))
	return s.String()
}

// solverFlags abbreviates the settings the solver is running with.
func solverFlags(st fluid.Settings) string {
	parts := []string{fmt.Sprintf("o%d", st.BoundaryOrder), fmt.Sprintf("c%d", st.Correction)}
	if st.Variational {
		parts = append(parts, "var")
	}
	if st.Adaptive {
		parts = append(parts, "ada")
	}
	if st.Remesh {
		parts = append(parts, "rem")
	}
	return strings.Join(parts, " ")
}

// Run blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
