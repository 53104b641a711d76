package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	fluidStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00a8cc"))
	shadedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#224455"))
	overlayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0f0ff")).Bold(true)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(statsWidth - 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline renders the last width values, scaled to their own range.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		norm := (v - lo) / rng
		c := string(sparkChars[min(int(norm*float64(len(sparkChars)-1)), len(sparkChars)-1)])
		switch {
		case norm > 0.7:
			b.WriteString(sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(sparkMid.Render(c))
		default:
			b.WriteString(sparkLow.Render(c))
		}
	}
	return b.String()
}
