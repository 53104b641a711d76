package tui

import (
	"maps"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/fluidview/internal/config"
	"github.com/san-kum/fluidview/internal/fluid"
	"github.com/san-kum/fluidview/internal/viewer"
)

func newTestModel(t *testing.T, mutate func(*config.Config)) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	opts, err := cfg.Options(nil)
	if err != nil {
		t.Fatalf("options failed: %v", err)
	}
	m, err := NewModel(opts, cfg.FPS)
	if err != nil {
		t.Fatalf("new model failed: %v", err)
	}
	return m
}

func press(m Model, r rune) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model), cmd
}

func tickAt(m Model, now time.Time) Model {
	next, _ := m.Update(tickMsg(now))
	return next.(Model)
}

func TestNewModelStartsSimulation(t *testing.T) {
	m := newTestModel(t, nil)

	if got := m.Solver().GridSize(); got != config.DefaultResolution {
		t.Errorf("expected grid %d, got %d", config.DefaultResolution, got)
	}
	if len(m.Solver().Particles()) == 0 {
		t.Error("expected seeded particles")
	}
	if !m.Display().Visible(viewer.FrameRate) || m.Display().Visible(viewer.GridVelocity) {
		t.Error("display layers do not match the default config")
	}
	if m.Display().Mesher() != 0 {
		t.Errorf("expected mesher 0, got %d", m.Display().Mesher())
	}
}

func TestNewModelRejectsBadFPS(t *testing.T) {
	opts, err := config.DefaultConfig().Options(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewModel(opts, 0); err == nil {
		t.Error("expected error for zero fps")
	}
}

func TestKeysReachController(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = press(m, 'h')
	if !m.Controller().Store().Flag(viewer.SlotHelp) {
		t.Error("h should show help")
	}
	m, _ = press(m, 'F')
	if m.Display().Visible(viewer.FrameRate) {
		t.Error("F should hide the frame rate")
	}
	m, _ = press(m, '+')
	if got := m.Solver().GridSize(); got != config.DefaultResolution+1 {
		t.Errorf("expected grid %d, got %d", config.DefaultResolution+1, got)
	}
	m, _ = press(m, 'x')
	if m.Display().Mesher() != 1 {
		t.Errorf("expected mesher 1, got %d", m.Display().Mesher())
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t, nil)
		_, cmd := m.Update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("%s: expected a quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestTickStepsSolver(t *testing.T) {
	m := newTestModel(t, nil)

	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
	if m.Solver().Steps() != 1 {
		t.Errorf("expected 1 step, got %d", m.Solver().Steps())
	}
	if len(m.energy) != 1 {
		t.Errorf("expected 1 energy sample, got %d", len(m.energy))
	}
}

func TestResetClearsHistory(t *testing.T) {
	m := newTestModel(t, nil)
	now := time.Now()
	for i := 0; i < 3; i++ {
		m = tickAt(m, now.Add(time.Duration(i)*time.Millisecond))
	}
	if len(m.energy) != 3 {
		t.Fatalf("expected 3 energy samples, got %d", len(m.energy))
	}

	m, _ = press(m, 'r')
	m = tickAt(m, now.Add(time.Second))
	if len(m.energy) != 1 {
		t.Errorf("expected history cleared on reset, got %d samples", len(m.energy))
	}
}

func TestFrameRateMeasured(t *testing.T) {
	m := newTestModel(t, nil)
	start := time.Now()
	for i := 0; i <= 10; i++ {
		m = tickAt(m, start.Add(time.Duration(i)*100*time.Millisecond))
	}
	if m.measured < 10.99 || m.measured > 11.01 {
		t.Errorf("expected about 11 fps, got %f", m.measured)
	}
}

func TestOverlayLayout(t *testing.T) {
	m := newTestModel(t, func(c *config.Config) { c.Controller.Help = true })

	m.View()
	overlay := m.Display().Overlay()
	rows := map[int]string{
		1:  "H Toggle help.",
		12: "X Change external surface reconstructor. ( Current: Ours )",
		14: "F Toggle frame-rate visibility. ( Current: shown )",
		23: "J Toggle external mesh visibility. ( Current: shown )",
	}
	for row, want := range rows {
		if overlay[row] != want {
			t.Errorf("row %d: expected %q, got %q", row, want, overlay[row])
		}
	}
	if _, ok := overlay[13]; ok {
		t.Error("row 13 separates the keyspaces and should be empty")
	}
	if m.Display().shade != 0.5 {
		t.Errorf("expected shade 0.5, got %f", m.Display().shade)
	}

	m, _ = press(m, 'h')
	m.View()
	if got := m.Display().Overlay(); !maps.Equal(got, map[int]string{1: "H Toggle help."}) {
		t.Errorf("expected only the help line, got %v", got)
	}
	if m.Display().shade != 0 {
		t.Errorf("expected no shade, got %f", m.Display().shade)
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, nil)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)
	w, h := m.Display().Size()
	if w != (100-statsWidth)*colPx || h != 30*rowPx {
		t.Errorf("unexpected surface size %dx%d", w, h)
	}
}

func TestRenderAllLayers(t *testing.T) {
	m := newTestModel(t, nil)
	d := m.Display()
	for v := viewer.Visibility(0); v < viewer.NumVisibility; v++ {
		if !d.Visible(v) {
			m, _ = press(m, []rune(m.Controller().Keys().Visibility[v].Help().Key)[0])
		}
	}
	for v := viewer.Visibility(0); v < viewer.NumVisibility; v++ {
		if !d.Visible(v) {
			t.Fatalf("layer %s still hidden", v)
		}
	}

	now := time.Now()
	for i := 0; i < 2; i++ {
		m = tickAt(m, now.Add(time.Duration(i)*time.Millisecond))
	}
	out := d.Render(m.Solver())
	if got := strings.Count(out, "\n"); got != defaultHeight-1 {
		t.Errorf("expected %d line breaks, got %d", defaultHeight-1, got)
	}
	if !strings.Contains(m.View(), "Kinetic energy") {
		t.Error("expected the energy chart with pressure shown")
	}
}

func TestCanvasDots(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Dot(0, 0.99)
	c.Dot(2, 0.5)
	rows := c.Rows()
	if rows[0][0] != 0x2801 {
		t.Errorf("expected top-left dot, got %U", rows[0][0])
	}
	if rows[0][1] != brailleBlank {
		t.Errorf("out of range dot should be dropped, got %U", rows[0][1])
	}

	c.Clear()
	c.Segment(0, 0.99, 0.99, 0.99)
	for i, r := range c.Rows()[0] {
		if r == brailleBlank {
			t.Errorf("cell %d: segment left a gap", i)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline(nil, 3); got != "───" {
		t.Errorf("expected flat line, got %q", got)
	}
	if sparkline([]float64{1, 2, 3}, 8) == "" {
		t.Error("expected a sparkline")
	}
}

func TestSolverFlags(t *testing.T) {
	tests := []struct {
		st       fluid.Settings
		expected string
	}{
		{fluid.Settings{BoundaryOrder: 2, Correction: 1, Adaptive: true}, "o2 c1 ada"},
		{fluid.Settings{BoundaryOrder: 1, Variational: true, Remesh: true}, "o1 c0 var rem"},
	}
	for _, tt := range tests {
		if got := solverFlags(tt.st); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
