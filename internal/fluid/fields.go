package fluid

import "math"

// NumSurfaceVariants is the number of surface reconstructions SurfaceField
// knows. Variants differ in the kernel radius used to splat particles.
const NumSurfaceVariants = 4

var surfaceRadius = [NumSurfaceVariants]float64{1.0, 1.5, 2.0, 2.5}

// SurfaceThreshold is the field level treated as the liquid surface.
const SurfaceThreshold = 0.5

func (s *Solver) cell(i, j int) []int {
	if i < 0 || j < 0 || i >= s.nb || j >= s.nb || len(s.buckets) == 0 {
		return nil
	}
	return s.buckets[j*s.nb+i]
}

// Occupied reports whether bucket (i, j) holds any particle.
func (s *Solver) Occupied(i, j int) bool { return len(s.cell(i, j)) > 0 }

// CellVelocity is the mean particle velocity in bucket (i, j).
func (s *Solver) CellVelocity(i, j int) (vx, vy float64) {
	idx := s.cell(i, j)
	if len(idx) == 0 {
		return 0, 0
	}
	for _, k := range idx {
		vx += s.particles[k].VX
		vy += s.particles[k].VY
	}
	n := float64(len(idx))
	return vx / n, vy / n
}

// CellPressure is the mean particle pressure in bucket (i, j).
func (s *Solver) CellPressure(i, j int) float64 {
	idx := s.cell(i, j)
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, k := range idx {
		sum += s.pressure[k]
	}
	return sum / float64(len(idx))
}

func (s *Solver) MeanPressure() float64 {
	if len(s.pressure) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range s.pressure {
		sum += p
	}
	return sum / float64(len(s.pressure))
}

func (s *Solver) KineticEnergy() float64 {
	e := 0.0
	for _, p := range s.particles {
		e += 0.5 * s.mass * (p.VX*p.VX + p.VY*p.VY)
	}
	return e
}

// NeighborPairs returns up to limit particle index pairs closer than the
// kernel radius.
func (s *Solver) NeighborPairs(limit int) [][2]int {
	var pairs [][2]int
	h2 := s.h * s.h
	for i, p := range s.particles {
		if len(pairs) >= limit {
			break
		}
		s.forNeighbors(p.X, p.Y, 1, func(j int) {
			if j <= i || len(pairs) >= limit {
				return
			}
			q := s.particles[j]
			dx, dy := p.X-q.X, p.Y-q.Y
			if dx*dx+dy*dy < h2 {
				pairs = append(pairs, [2]int{i, j})
			}
		})
	}
	return pairs
}

// MatrixNonZeros counts the entries of the five-point pressure matrix over
// the occupied buckets.
func (s *Solver) MatrixNonZeros() int {
	nnz := 0
	for j := 0; j < s.nb; j++ {
		for i := 0; i < s.nb; i++ {
			if !s.Occupied(i, j) {
				continue
			}
			nnz++
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				if s.Occupied(i+d[0], j+d[1]) {
					nnz++
				}
			}
		}
	}
	return nnz
}

// SurfaceField samples a normalized liquid indicator at every bucket
// center using the reconstruction selected by variant. Values at or above
// SurfaceThreshold are inside the liquid.
func (s *Solver) SurfaceField(variant int) [][]float64 {
	if variant < 0 || variant >= NumSurfaceVariants {
		variant = 0
	}
	field := make([][]float64, s.nb)
	if len(s.particles) == 0 {
		for j := range field {
			field[j] = make([]float64, s.nb)
		}
		return field
	}
	radius := surfaceRadius[variant] * s.h
	reach := int(math.Ceil(radius * float64(s.nb)))
	norm := poly6(0, radius) * s.spacing * s.spacing
	for j := range field {
		field[j] = make([]float64, s.nb)
		for i := range field[j] {
			cx, cy := (float64(i)+0.5)/float64(s.nb), (float64(j)+0.5)/float64(s.nb)
			sum := 0.0
			s.forNeighbors(cx, cy, reach, func(k int) {
				p := s.particles[k]
				dx, dy := cx-p.X, cy-p.Y
				sum += poly6(dx*dx+dy*dy, radius) * s.spacing * s.spacing
			})
			// a particle sitting on the center alone reaches the threshold
			field[j][i] = math.Min(1, SurfaceThreshold*sum/norm)
		}
	}
	return field
}
