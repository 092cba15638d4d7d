package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/redshift/internal/lab"
	"github.com/san-kum/redshift/internal/relativity"
)

const (
	eColor      = "#ff8700"
	originColor = "#ff0000"
	bColor      = "#00ccff"
	rulerColor  = "#00ff00"
	textColor   = "#cccccc"
)

// FrameToSVG draws both panels of a frame stacked vertically. E arrows are
// vertical, B is drawn as a short horizontal tick below the axis since it
// points out of the page.
func FrameToSVG(f lab.Frame, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	half := float64(height) / 2
	writePanel(&sb, "The emitted wave", f.Emitted, 0, float64(width), half)
	writePanel(&sb, "The observed wave", f.Observed, half, float64(width), half)

	sb.WriteString("</svg>")
	return sb.String()
}

func writePanel(sb *strings.Builder, title string, p lab.Panel, top, w, h float64) {
	sb.WriteString(fmt.Sprintf(`<text x="8" y="%.1f" fill="%s" font-family="monospace" font-size="14">%s</text>
`, top+18, textColor, html.EscapeString(title)))

	if len(p.Samples) == 0 {
		return
	}

	// the canvas spans the sample window; the status text gets the right third
	plotW := w * 2 / 3
	axis := top + h*0.45
	reach := h * 0.3

	xmin := p.Samples[0].X
	span := p.Wavelength
	if n := len(p.Samples); n > 1 {
		span = p.Samples[n-1].X + (p.Samples[1].X - xmin) - xmin
	}
	col := func(x float64) float64 { return (x - xmin) / span * plotW }

	amp := p.Amplitude
	if amp == 0 {
		amp = 1
	}

	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#444466"/>
`, axis, plotW, axis))

	for _, s := range p.Samples {
		x := col(s.X)
		y := axis - s.E.Y/amp*reach
		color := eColor
		if s.Origin {
			color = originColor
		}
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>
`, x, axis, x, y, color))

		bx := s.B.Z * relativity.SpeedOfLight / amp * 4
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>
`, x, axis+reach+12, x+bx, axis+reach+12, bColor))
	}

	ry := axis + reach + 28
	x0, x1 := col(p.Ruler.Points[2].X), col(p.Ruler.Points[3].X)
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="2" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>
`, rulerColor, x0, ry-6, x0, ry+6, x0, ry, x1, ry, x1, ry-6, x1, ry+6))

	for i, line := range strings.Split(p.Status, "\n") {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12">%s</text>
`, plotW+16, top+48+float64(i)*18, bColor, html.EscapeString(line)))
	}
}
