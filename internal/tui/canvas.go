package tui

import "math"

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBlank = 0x2800

var dotBits = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas maps the unit square onto a grid of Braille cells. Coordinates
// passed to Dot and Segment are domain coordinates with y pointing up.
type Canvas struct {
	cols, rows int
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: max(cols, 1), rows: max(rows, 1)}
	c.cells = make([][]rune, c.rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, c.cols)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for i := range row {
			row[i] = brailleBlank
		}
	}
}

// Size is the dot resolution of the canvas.
func (c *Canvas) Size() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *Canvas) toDots(x, y float64) (int, int) {
	w, h := c.Size()
	return int(math.Floor(x * float64(w))), int(math.Floor((1 - y) * float64(h)))
}

func (c *Canvas) set(px, py int) {
	if px < 0 || py < 0 {
		return
	}
	col, row := px/2, py/4
	if col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row][col] |= dotBits[py%4][px%2]
}

func (c *Canvas) Dot(x, y float64) {
	c.set(c.toDots(x, y))
}

// Segment rasterizes a line with Bresenham's algorithm.
func (c *Canvas) Segment(x0, y0, x1, y1 float64) {
	ax, ay := c.toDots(x0, y0)
	bx, by := c.toDots(x1, y1)
	dx, dy := absInt(bx-ax), absInt(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx - dy
	for {
		c.set(ax, ay)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// Rows returns a copy of each cell row.
func (c *Canvas) Rows() [][]rune {
	out := make([][]rune, c.rows)
	for i, row := range c.cells {
		out[i] = append([]rune(nil), row...)
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
