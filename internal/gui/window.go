//go:build raylib

package gui

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/fluidview/internal/fluid"
	"github.com/san-kum/fluidview/internal/viewer"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	// Height in font units of the stroke font the overlay scale refers to.
	strokeFontHeight = 119.05

	neighborLimit         = 2000
	gridVelocityScale     = 0.05
	particleVelocityScale = 0.02
)

var (
	colBg       = rl.NewColor(10, 10, 10, 255)
	colGrid     = rl.NewColor(40, 40, 40, 255)
	colParticle = rl.NewColor(0, 168, 204, 255)
	colVelocity = rl.NewColor(255, 204, 0, 255)
	colSurface  = rl.NewColor(224, 240, 255, 255)
	colMesh     = rl.NewColor(255, 107, 107, 255)
	colNeighbor = rl.NewColor(80, 80, 120, 255)
	colMatrix   = rl.NewColor(95, 208, 104, 255)
	colText     = rl.RayWhite
)

// Display is the raylib render target for the controller.
type Display struct {
	layers [viewer.NumVisibility]bool
	mesher int
	font   rl.Font
}

var (
	_ viewer.Renderer = (*Display)(nil)
	_ viewer.Surface  = (*Display)(nil)
)

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

func (d *Display) Size() (int, int) { return rl.GetScreenWidth(), rl.GetScreenHeight() }

func (d *Display) Shade(alpha float64) {
	w, h := d.Size()
	rl.DrawRectangle(0, 0, int32(w), int32(h), rl.Fade(rl.Black, float32(alpha)))
}

func (d *Display) DrawText(x, y, scale float64, text string) {
	w, h := d.Size()
	size := float32(scale * strokeFontHeight * float64(h))
	pos := rl.NewVector2(float32(x*float64(w)), float32((1-y)*float64(h))-size)
	rl.DrawTextEx(d.font, text, pos, size, 1, colText)
}

// view maps the unit square onto the largest centered square of the window.
type view struct {
	side, ox, oy float32
}

func newView(w, h int) view {
	side := float32(min(w, h))
	return view{side: side, ox: (float32(w) - side) / 2, oy: (float32(h) + side) / 2}
}

func (v view) at(x, y float64) rl.Vector2 {
	return rl.NewVector2(v.ox+float32(x)*v.side, v.oy-float32(y)*v.side)
}

func (v view) line(x0, y0, x1, y1 float64, c rl.Color) {
	rl.DrawLineV(v.at(x0, y0), v.at(x1, y1), c)
}

func (d *Display) render(s *fluid.Solver) {
	v := newView(d.Size())
	nb := s.Buckets()
	cell := 1 / float64(nb)

	if d.layers[viewer.Pressure] {
		drawPressure(v, s, nb)
	}
	if d.layers[viewer.GridLines] {
		for i := 0; i <= nb; i++ {
			f := float64(i) * cell
			v.line(f, 0, f, 1, colGrid)
			v.line(0, f, 1, f, colGrid)
		}
	}
	if d.layers[viewer.MatrixConnections] {
		for j := 0; j < nb; j++ {
			for i := 0; i < nb; i++ {
				if !s.Occupied(i, j) {
					continue
				}
				x, y := (float64(i)+0.5)*cell, (float64(j)+0.5)*cell
				if s.Occupied(i+1, j) {
					v.line(x, y, x+cell, y, colMatrix)
				}
				if s.Occupied(i, j+1) {
					v.line(x, y, x, y+cell, colMatrix)
				}
			}
		}
	}
	if d.layers[viewer.LevelSet] {
		drawSurface(v, s.SurfaceField(0), nb, colSurface)
	}
	if d.layers[viewer.ExternalMesh] {
		drawSurface(v, s.SurfaceField(d.mesher), nb, colMesh)
	}
	if d.layers[viewer.GridVelocity] {
		for j := 0; j < nb; j++ {
			for i := 0; i < nb; i++ {
				if !s.Occupied(i, j) {
					continue
				}
				x, y := (float64(i)+0.5)*cell, (float64(j)+0.5)*cell
				vx, vy := s.CellVelocity(i, j)
				v.line(x, y, x+vx*gridVelocityScale, y+vy*gridVelocityScale, colVelocity)
			}
		}
	}
	ps := s.Particles()
	if d.layers[viewer.Neighbors] {
		for _, pair := range s.NeighborPairs(neighborLimit) {
			p, q := ps[pair[0]], ps[pair[1]]
			v.line(p.X, p.Y, q.X, q.Y, colNeighbor)
		}
	}

	radius := float32(0.25 * s.KernelRadius() * float64(v.side))
	half := 0.5 * s.KernelRadius()
	for _, p := range ps {
		if speed := math.Hypot(p.VX, p.VY); d.layers[viewer.ParticleAnisotropy] && speed > 1e-9 {
			k := half / speed
			rl.DrawLineEx(v.at(p.X-p.VX*k, p.Y-p.VY*k), v.at(p.X+p.VX*k, p.Y+p.VY*k), radius, colParticle)
		} else {
			rl.DrawCircleV(v.at(p.X, p.Y), radius, colParticle)
		}
		if d.layers[viewer.ParticleVelocity] {
			v.line(p.X, p.Y, p.X+p.VX*particleVelocityScale, p.Y+p.VY*particleVelocityScale, colVelocity)
		}
	}

	if d.layers[viewer.FrameRate] {
		w, _ := d.Size()
		rl.DrawFPS(int32(w-100), 10)
	}
}

// drawPressure fills each occupied bucket with a color scaled to the
// highest bucket pressure.
func drawPressure(v view, s *fluid.Solver, nb int) {
	peak := 0.0
	for j := 0; j < nb; j++ {
		for i := 0; i < nb; i++ {
			peak = math.Max(peak, s.CellPressure(i, j))
		}
	}
	if peak <= 0 {
		return
	}
	cell := 1 / float64(nb)
	size := rl.NewVector2(float32(cell)*v.side, float32(cell)*v.side)
	for j := 0; j < nb; j++ {
		for i := 0; i < nb; i++ {
			p := s.CellPressure(i, j) / peak
			if p <= 0 {
				continue
			}
			col := rl.ColorAlpha(rl.NewColor(uint8(255*p), 40, uint8(255*(1-p)), 255), 0.5)
			rl.DrawRectangleV(v.at(float64(i)*cell, float64(j+1)*cell), size, col)
		}
	}
}

func drawSurface(v view, field [][]float64, nb int, c rl.Color) {
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
				v.line(x0, y0, x0, y1, c)
			}
			if i < nb-1 && !inside(i+1, j) {
				v.line(x1, y0, x1, y1, c)
			}
			if j > 0 && !inside(i, j-1) {
				v.line(x0, y0, x1, y0, c)
			}
			if j < nb-1 && !inside(i, j+1) {
				v.line(x0, y1, x1, y1, c)
			}
		}
	}
}

// Run opens the window and blocks until it is closed.
func Run(opts viewer.Options, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sim := fluid.New()
	display := &Display{}
	ctrl, err := viewer.New(sim, display, opts)
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, "fluidview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(fps))
	display.font = rl.GetFontDefault()

	ctrl.Apply(true)
	logger.Info("window opened", "scene", ctrl.Scene().Name, "grid", sim.GridSize())

	dt := 1 / float64(fps)
	for !rl.WindowShouldClose() {
		for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
			ctrl.HandleKey(rune(ch))
		}
		sim.Step(dt)

		rl.BeginDrawing()
		rl.ClearBackground(colBg)
		display.render(sim)
		ctrl.Draw(display)
		rl.EndDrawing()
	}
	logger.Info("window closed", "steps", sim.Steps(), "time", sim.Time())
	return nil
}
