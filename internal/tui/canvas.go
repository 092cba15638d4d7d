package tui

import (
	"math"

	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/relativity"
)

const (
	bOutOfPage  = '⊙'
	bIntoPage   = '⊗'
	bThreshold  = 0.3
	minCanvasW  = 24
	minCanvasH  = 7
	originShaft = '┃'
	shaft       = '│'
)

// drawPanel renders one frame's field: E arrows around the axis, the
// direction of B underneath, then the one-wavelength ruler.
func drawPanel(p lab.Panel, w, h int) []string {
	if w < minCanvasW {
		w = minCanvasW
	}
	if h < minCanvasH {
		h = minCanvasH
	}

	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = make([]rune, w)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	fieldH := h - 2
	axis := fieldH / 2
	reach := min(axis, fieldH-1-axis)
	for x := 0; x < w; x++ {
		set(canvas, x, axis, '─', w, h)
	}

	if len(p.Samples) > 0 {
		amp := p.Amplitude
		if amp == 0 {
			amp = relativity.FieldAmplitude
		}
		xmin := p.Samples[0].X
		span := p.Wavelength
		if n := len(p.Samples); n > 1 {
			step := p.Samples[1].X - p.Samples[0].X
			span = p.Samples[n-1].X + step - xmin
		}
		col := func(x float64) int {
			return int((x - xmin) / span * float64(w))
		}

		for _, s := range p.Samples {
			c := col(s.X)
			e := s.E.Y / amp
			bar := int(math.Round(e * float64(reach)))
			ch := shaft
			if s.Origin {
				ch = originShaft
			}
			switch {
			case bar > 0:
				for y := axis - 1; y > axis-bar; y-- {
					set(canvas, c, y, ch, w, h)
				}
				set(canvas, c, axis-bar, '▲', w, h)
			case bar < 0:
				for y := axis + 1; y < axis-bar; y++ {
					set(canvas, c, y, ch, w, h)
				}
				set(canvas, c, axis-bar, '▼', w, h)
			}
			if s.Origin {
				set(canvas, c, axis, '●', w, h)
			}

			b := s.B.Z * relativity.SpeedOfLight / amp
			switch {
			case b > bThreshold:
				set(canvas, c, fieldH, bOutOfPage, w, h)
			case b < -bThreshold:
				set(canvas, c, fieldH, bIntoPage, w, h)
			default:
				set(canvas, c, fieldH, '·', w, h)
			}
		}

		c0, c1 := col(p.Ruler.Points[2].X), col(p.Ruler.Points[3].X)
		for x := c0 + 1; x < c1; x++ {
			set(canvas, x, h-1, '─', w, h)
		}
		set(canvas, c0, h-1, '├', w, h)
		set(canvas, c1, h-1, '┤', w, h)
	}

	rows := make([]string, h)
	for i, row := range canvas {
		rows[i] = string(row)
	}
	return rows
}

func set(canvas [][]rune, x, y int, c rune, w, h int) {
	if x >= 0 && x < w && y >= 0 && y < h {
		canvas[y][x] = c
	}
}
