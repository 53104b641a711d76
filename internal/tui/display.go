package tui

import (
	"math"
	"strings"

	"github.com/san-kum/fluidview/internal/fluid"
	"github.com/san-kum/fluidview/internal/viewer"
)

// A terminal row counts as one overlay line pitch; a column as a third of it.
const (
	rowPx = 30
	colPx = 10

	neighborLimit         = 400
	gridVelocityScale     = 0.05
	particleVelocityScale = 0.02
)

var (
	_ viewer.Renderer = (*Display)(nil)
	_ viewer.Surface  = (*Display)(nil)
)

type overlayText struct {
	col  int
	text string
}

// Display is the terminal render target. It records the layer flags and
// mesher pushed by the controller and collects the overlay drawn on it
// each frame.
type Display struct {
	layers [viewer.NumVisibility]bool
	mesher int

	cols, rows int
	canvas     *Canvas
	shade      float64
	text       map[int]overlayText
}

func NewDisplay(cols, rows int) *Display {
	d := &Display{text: make(map[int]overlayText)}
	d.Resize(cols, rows)
	return d
}

// Resize sets the scene area in terminal cells.
func (d *Display) Resize(cols, rows int) {
	d.cols, d.rows = max(cols, 1), max(rows, 1)
	d.canvas = NewCanvas(d.cols, d.rows)
}

func (d *Display) Visible(v viewer.Visibility) bool { return d.layers[v] }

func (d *Display) Mesher() int { return d.mesher }

func (d *Display) SetFrameRateVisibility(on bool)          { d.layers[viewer.FrameRate] = on }
func (d *Display) SetGridLineVisibility(on bool)           { d.layers[viewer.GridLines] = on }
func (d *Display) SetGridVelocityVisibility(on bool)       { d.layers[viewer.GridVelocity] = on }
func (d *Display) SetLevelSetVisibility(on bool)           { d.layers[viewer.LevelSet] = on }
func (d *Display) SetParticleVelocityVisibility(on bool)   { d.layers[viewer.ParticleVelocity] = on }
func (d *Display) SetPressureVisibility(on bool)           { d.layers[viewer.Pressure] = on }
func (d *Display) SetNeighborVisibility(on bool)           { d.layers[viewer.Neighbors] = on }
func (d *Display) SetParticleAnisotropyVisibility(on bool) { d.layers[viewer.ParticleAnisotropy] = on }
func (d *Display) SetMatrixConnectionVisibility(on bool)   { d.layers[viewer.MatrixConnections] = on }
func (d *Display) SetExternalMeshVisibility(on bool)       { d.layers[viewer.ExternalMesh] = on }
func (d *Display) SetSurfaceExtractor(variant int)         { d.mesher = variant }

func (d *Display) Size() (int, int) { return d.cols * colPx, d.rows * rowPx }

func (d *Display) Shade(alpha float64) { d.shade = alpha }

// DrawText snaps the text to the terminal cell containing (x, y). Text
// falling outside the scene area is dropped.
func (d *Display) DrawText(x, y, _ float64, text string) {
	w, h := d.Size()
	row := int(math.Floor((1 - y) * float64(h) / rowPx))
	col := int(math.Round(x * float64(w) / colPx))
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return
	}
	d.text[row] = overlayText{col: col, text: text}
}

// BeginFrame drops the overlay collected for the previous frame.
func (d *Display) BeginFrame() {
	d.shade = 0
	clear(d.text)
}

// Overlay returns the overlay text collected this frame, by row.
func (d *Display) Overlay() map[int]string {
	out := make(map[int]string, len(d.text))
	for r, t := range d.text {
		out[r] = t.text
	}
	return out
}

// Frame returns the Braille cells of the last rendered scene, without the
// overlay.
func (d *Display) Frame() [][]rune { return d.canvas.Rows() }

// Render draws the solver state with every enabled layer and lays the
// overlay over it.
func (d *Display) Render(s *fluid.Solver) string {
	c := d.canvas
	c.Clear()
	nb := s.Buckets()

	if d.layers[viewer.GridLines] {
		drawGrid(c, nb)
	}
	if d.layers[viewer.MatrixConnections] {
		drawMatrix(c, s, nb)
	}
	if d.layers[viewer.LevelSet] {
		drawSurface(c, s.SurfaceField(0), nb)
	}
	if d.layers[viewer.ExternalMesh] {
		drawSurface(c, s.SurfaceField(d.mesher), nb)
	}
	if d.layers[viewer.GridVelocity] {
		drawGridVelocity(c, s, nb)
	}
	if d.layers[viewer.Neighbors] {
		for _, pair := range s.NeighborPairs(neighborLimit) {
			p, q := s.Particles()[pair[0]], s.Particles()[pair[1]]
			c.Segment(p.X, p.Y, q.X, q.Y)
		}
	}
	drawParticles(c, s, d.layers[viewer.ParticleAnisotropy], d.layers[viewer.ParticleVelocity])

	return d.compose(c.Rows())
}

func (d *Display) compose(rows [][]rune) string {
	dots := fluidStyle
	if d.shade > 0 {
		dots = shadedStyle
	}
	lines := make([]string, len(rows))
	for r, row := range rows {
		t, ok := d.text[r]
		if !ok {
			lines[r] = dots.Render(string(row))
			continue
		}
		text := []rune(t.text)
		if len(text) > len(row)-t.col {
			text = text[:len(row)-t.col]
		}
		end := t.col + len(text)
		lines[r] = dots.Render(string(row[:t.col])) + overlayStyle.Render(string(text)) + dots.Render(string(row[end:]))
	}
	return strings.Join(lines, "\n")
}

func drawGrid(c *Canvas, nb int) {
	w, _ := c.Size()
	step := max(1, 2*nb/max(w, 1))
	for i := step; i < nb; i += step {
		f := float64(i) / float64(nb)
		c.Segment(f, 0, f, 1)
		c.Segment(0, f, 1, f)
	}
}

func center(i, j, nb int) (float64, float64) {
	return (float64(i) + 0.5) / float64(nb), (float64(j) + 0.5) / float64(nb)
}

// drawMatrix links every occupied bucket to its occupied right and upper
// neighbors, the off-diagonal couplings of the pressure matrix.
func drawMatrix(c *Canvas, s *fluid.Solver, nb int) {
	for j := 0; j < nb; j++ {
		for i := 0; i < nb; i++ {
			if !s.Occupied(i, j) {
				continue
			}
			x, y := center(i, j, nb)
			if s.Occupied(i+1, j) {
				c.Segment(x, y, x+1/float64(nb), y)
			}
			if s.Occupied(i, j+1) {
				c.Segment(x, y, x, y+1/float64(nb))
			}
		}
	}
}

// drawSurface outlines the liquid cells of field.
func drawSurface(c *Canvas, field [][]float64, nb int) {
	inside := func(i, j int) bool {
		return i >= 0 && j >= 0 && i < nb && j < nb && field[j][i] >= fluid.SurfaceThreshold
	}
	cell := 1 / float64(nb)
	for j := 0; j < nb; j++ {
		for i := 0; i < nb; i++ {
			if !inside(i, j) {
				continue
			}
			x0, y0 := float64(i)*cell, float64(j)*cell
			x1, y1 := x0+cell, y0+cell
			if i > 0 && !inside(i-1, j) {
				c.Segment(x0, y0, x0, y1)
			}
			if i < nb-1 && !inside(i+1, j) {
				c.Segment(x1, y0, x1, y1)
			}
			if j > 0 && !inside(i, j-1) {
				c.Segment(x0, y0, x1, y0)
			}
			if j < nb-1 && !inside(i, j+1) {
				c.Segment(x0, y1, x1, y1)
			}
		}
	}
}

func drawGridVelocity(c *Canvas, s *fluid.Solver, nb int) {
	for j := 0; j < nb; j++ {
		for i := 0; i < nb; i++ {
			if !s.Occupied(i, j) {
				continue
			}
			x, y := center(i, j, nb)
			vx, vy := s.CellVelocity(i, j)
			c.Segment(x, y, x+vx*gridVelocityScale, y+vy*gridVelocityScale)
		}
	}
}

// drawParticles plots each particle. Anisotropic particles are stretched
// along their velocity.
func drawParticles(c *Canvas, s *fluid.Solver, anisotropy, velocity bool) {
	half := 0.5 * s.KernelRadius()
	for _, p := range s.Particles() {
		speed := math.Hypot(p.VX, p.VY)
		if anisotropy && speed > 1e-9 {
			k := half / speed
			c.Segment(p.X-p.VX*k, p.Y-p.VY*k, p.X+p.VX*k, p.Y+p.VY*k)
		} else {
			c.Dot(p.X, p.Y)
		}
		if velocity {
			c.Segment(p.X, p.Y, p.X+p.VX*particleVelocityScale, p.Y+p.VY*particleVelocityScale)
		}
	}
}
