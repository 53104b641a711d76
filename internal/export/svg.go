// Package export writes viewer frames and solver time series as SVG.
package export

import (
	"fmt"
	"strings"
)

const (
	brailleBlank = 0x2800
	background   = "#0a0a0a"
)

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func header(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// FrameSVG draws one circle per set dot of a Braille frame. scale is the
// dot pitch in SVG units.
func FrameSVG(rows [][]rune, scale float64, fill string) string {
	if len(rows) == 0 {
		return ""
	}
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	var sb strings.Builder
	header(&sb, float64(cols)*scale*2, float64(len(rows))*scale*4)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", fill)

	radius := scale * 0.4
	for r, row := range rows {
		for c, ch := range row {
			if ch <= brailleBlank {
				continue
			}
			pattern := ch - brailleBlank
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotBits[dy][dx] == 0 {
						continue
					}
					cx := (float64(c*2+dx) + 0.5) * scale
					cy := (float64(r*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, radius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesSVG plots values against their index as a polyline, padded by a
// tenth of the value range.
func SeriesSVG(values []float64, width, height int, stroke string) string {
	if len(values) < 2 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	lo -= rng * 0.1
	rng *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/rng*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
