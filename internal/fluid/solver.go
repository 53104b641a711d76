// Package fluid provides the SPH liquid solver driven by the viewer.
//
// The solver works on the unit square. Its grid resolution sets the
// particle spacing (two particles per cell per axis) and, through the
// kernel radius, the neighbor bucket grid used for density and force
// evaluation and for the display fields.
package fluid

import (
	"math"
	"math/rand"
)

const (
	// MaxParticles caps the seeded particle count; past it the spacing
	// grows instead.
	MaxParticles = 6000

	restDensity = 1000.0
	stiffness   = 50.0
	viscosity   = 0.05
	gravity     = 9.81
	restitution = 0.5
	cfl         = 0.4
	maxSubsteps = 16

	// Without remeshing the bucket grid is rebuilt every few substeps.
	rebucketEvery = 4

	jitter = 0.01
	seed   = 1
)

type Particle struct {
	X, Y, VX, VY float64
}

// Settings mirrors the controller flags last pushed to the solver.
type Settings struct {
	BoundaryOrder int
	Variational   bool
	Correction    int
	Adaptive      bool
	Remesh        bool
}

// Solver implements viewer.Simulation.
type Solver struct {
	gn        int
	settings  Settings
	particles []Particle
	spacing   float64
	h         float64
	mass      float64
	timescale float64
	time      float64
	steps     int

	nb       int
	buckets  [][]int
	density  []float64
	pressure []float64
	ax, ay   []float64
}

// New returns a solver with no particles. Init must be called before Step
// has any effect.
func New() *Solver {
	return &Solver{settings: Settings{BoundaryOrder: 2}, timescale: 1}
}

func (s *Solver) SetBoundaryAccuracy(order int) { s.settings.BoundaryOrder = order }
func (s *Solver) SetVariation(on bool)          { s.settings.Variational = on }
func (s *Solver) SetCorrection(mode int)        { s.settings.Correction = mode }
func (s *Solver) SetAdaptiveSampling(on bool)   { s.settings.Adaptive = on }
func (s *Solver) SetRemesh(on bool)             { s.settings.Remesh = on }

func (s *Solver) GridSize() int      { return s.gn }
func (s *Solver) Settings() Settings { return s.settings }
func (s *Solver) Time() float64      { return s.time }
func (s *Solver) Steps() int         { return s.steps }

// Particles returns the live particle slice; callers must not modify it.
func (s *Solver) Particles() []Particle { return s.particles }

// Buckets is the side length of the neighbor grid the display fields are
// sampled on.
func (s *Solver) Buckets() int { return s.nb }

// KernelRadius is the smoothing length h.
func (s *Solver) KernelRadius() float64 { return s.h }

// Init seeds a water column p0 wide and p1 tall (fractions of the domain)
// in the lower left corner, on a grid of resolution cells per axis.
func (s *Solver) Init(resolution int, p0, p1, timescale float64) {
	if resolution < 1 {
		resolution = 1
	}
	w, hgt := clampFrac(p0), clampFrac(p1)
	s.gn = resolution
	s.timescale = timescale
	s.time, s.steps = 0, 0

	spacing := 0.5 / float64(resolution)
	if w*hgt/(spacing*spacing) > MaxParticles {
		spacing = math.Sqrt(w * hgt / MaxParticles)
	}
	s.spacing = spacing
	s.h = 2 * spacing
	s.mass = restDensity * spacing * spacing
	s.nb = max(1, int(1/s.h))

	rng := rand.New(rand.NewSource(seed))
	cols, rows := int(w/spacing), int(hgt/spacing)
	s.particles = make([]Particle, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s.particles = append(s.particles, Particle{
				X: (float64(c)+0.5)*spacing + (rng.Float64()-0.5)*jitter*spacing,
				Y: (float64(r)+0.5)*spacing + (rng.Float64()-0.5)*jitter*spacing,
			})
		}
	}
	n := len(s.particles)
	s.density = make([]float64, n)
	s.pressure = make([]float64, n)
	s.ax, s.ay = make([]float64, n), make([]float64, n)
	s.rebucket()
	s.computeDensity()
}

func clampFrac(f float64) float64 {
	if f <= 0 || f > 1 || math.IsNaN(f) {
		return 1
	}
	return f
}

// Step advances the simulation by dt scaled by the init timescale.
func (s *Solver) Step(dt float64) {
	if len(s.particles) == 0 || dt <= 0 {
		return
	}
	dt *= s.timescale
	n := 1
	if s.settings.Adaptive {
		if v := s.maxSpeed(); v > 0 {
			n = int(math.Ceil(dt * v / (cfl * s.h)))
		}
		n = min(max(n, 1), maxSubsteps)
	}
	sub := dt / float64(n)
	for i := 0; i < n; i++ {
		s.substep(sub)
	}
	s.time += dt
}

func (s *Solver) substep(dt float64) {
	if s.settings.Remesh || s.steps%rebucketEvery == 0 {
		s.rebucket()
	}
	s.computeDensity()
	s.computeForces()
	// no particle may cross more than half a kernel radius per substep
	vmax := 0.5 * s.h / dt
	for i := range s.particles {
		p := &s.particles[i]
		p.VX += dt * s.ax[i]
		p.VY += dt * s.ay[i]
		if v := math.Hypot(p.VX, p.VY); v > vmax {
			p.VX, p.VY = p.VX*vmax/v, p.VY*vmax/v
		}
		p.X += dt * p.VX
		p.Y += dt * p.VY
	}
	s.enforceBoundary()
	if s.settings.Correction == 1 {
		s.springCorrect()
	}
	s.steps++
}

func (s *Solver) bucketOf(x, y float64) (int, int) {
	i := min(max(int(x*float64(s.nb)), 0), s.nb-1)
	j := min(max(int(y*float64(s.nb)), 0), s.nb-1)
	return i, j
}

func (s *Solver) rebucket() {
	if len(s.buckets) != s.nb*s.nb {
		s.buckets = make([][]int, s.nb*s.nb)
	}
	for k := range s.buckets {
		s.buckets[k] = s.buckets[k][:0]
	}
	for idx, p := range s.particles {
		i, j := s.bucketOf(p.X, p.Y)
		s.buckets[j*s.nb+i] = append(s.buckets[j*s.nb+i], idx)
	}
}

// forNeighbors calls fn for every particle in the buckets within reach
// cells of (x, y).
func (s *Solver) forNeighbors(x, y float64, reach int, fn func(j int)) {
	ci, cj := s.bucketOf(x, y)
	for dj := -reach; dj <= reach; dj++ {
		for di := -reach; di <= reach; di++ {
			i, j := ci+di, cj+dj
			if i < 0 || j < 0 || i >= s.nb || j >= s.nb {
				continue
			}
			for _, k := range s.buckets[j*s.nb+i] {
				fn(k)
			}
		}
	}
}

// 2D kernels
func poly6(r2, h float64) float64 {
	h2 := h * h
	if r2 >= h2 {
		return 0
	}
	d := h2 - r2
	return 4 / (math.Pi * math.Pow(h, 8)) * d * d * d
}

func spikyGrad(r, h float64) float64 {
	if r >= h || r < 1e-12 {
		return 0
	}
	return -30 / (math.Pi * math.Pow(h, 5)) * (h - r) * (h - r)
}

func viscLap(r, h float64) float64 {
	if r >= h {
		return 0
	}
	return 40 / (math.Pi * math.Pow(h, 5)) * (h - r)
}

func (s *Solver) computeDensity() {
	for i, p := range s.particles {
		rho := 0.0
		s.forNeighbors(p.X, p.Y, 1, func(j int) {
			q := s.particles[j]
			dx, dy := p.X-q.X, p.Y-q.Y
			rho += s.mass * poly6(dx*dx+dy*dy, s.h)
		})
		s.density[i] = rho
		s.pressure[i] = max(0, stiffness*(rho-restDensity))
	}
	if s.settings.Variational {
		s.weightPressure()
	}
}

// weightPressure scales pressure by the fluid fraction of the particle's
// cell so sparsely filled cells near the surface push less.
func (s *Solver) weightPressure() {
	full := (1 / float64(s.nb)) * (1 / float64(s.nb)) / (s.spacing * s.spacing)
	for i, p := range s.particles {
		ci, cj := s.bucketOf(p.X, p.Y)
		frac := math.Min(1, float64(len(s.buckets[cj*s.nb+ci]))/full)
		s.pressure[i] *= frac
	}
}

func (s *Solver) computeForces() {
	for i, p := range s.particles {
		fx, fy := 0.0, -gravity*s.density[i]
		s.forNeighbors(p.X, p.Y, 1, func(j int) {
			if i == j {
				return
			}
			q := s.particles[j]
			dx, dy := p.X-q.X, p.Y-q.Y
			r := math.Sqrt(dx*dx + dy*dy)
			if r >= s.h || r < 1e-12 || s.density[j] == 0 {
				return
			}
			fp := -s.mass * (s.pressure[i] + s.pressure[j]) / (2 * s.density[j]) * spikyGrad(r, s.h)
			fx += fp * dx / r
			fy += fp * dy / r

			fv := viscosity * s.mass * viscLap(r, s.h) / s.density[j]
			fx += fv * (q.VX - p.VX)
			fy += fv * (q.VY - p.VY)
		})
		if s.density[i] > 0 {
			s.ax[i], s.ay[i] = fx/s.density[i], fy/s.density[i]
		} else {
			s.ax[i], s.ay[i] = 0, -gravity
		}
	}
}

// enforceBoundary keeps particles in the unit square. First order clamps
// and kills the normal velocity; second order reflects it with damping.
func (s *Solver) enforceBoundary() {
	lo, hi := 0.5*s.spacing, 1-0.5*s.spacing
	bounce := 0.0
	if s.settings.BoundaryOrder == 2 {
		bounce = -restitution
	}
	for i := range s.particles {
		p := &s.particles[i]
		if p.X < lo {
			p.X, p.VX = lo, p.VX*bounce
		} else if p.X > hi {
			p.X, p.VX = hi, p.VX*bounce
		}
		if p.Y < lo {
			p.Y, p.VY = lo, p.VY*bounce
		} else if p.Y > hi {
			p.Y, p.VY = hi, p.VY*bounce
		}
	}
}

// springCorrect pushes apart pairs closer than half the seed spacing.
func (s *Solver) springCorrect() {
	minDist := 0.5 * s.spacing
	for i := range s.particles {
		p := &s.particles[i]
		s.forNeighbors(p.X, p.Y, 1, func(j int) {
			if j <= i {
				return
			}
			q := &s.particles[j]
			dx, dy := p.X-q.X, p.Y-q.Y
			r := math.Sqrt(dx*dx + dy*dy)
			if r >= minDist || r < 1e-12 {
				return
			}
			push := 0.25 * (minDist - r) / r
			p.X, p.Y = p.X+dx*push, p.Y+dy*push
			q.X, q.Y = q.X-dx*push, q.Y-dy*push
		})
	}
	s.enforceBoundary()
}

func (s *Solver) maxSpeed() float64 {
	v := 0.0
	for _, p := range s.particles {
		v = math.Max(v, math.Hypot(p.VX, p.VY))
	}
	return v
}
