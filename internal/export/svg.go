package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/eigensim/internal/quantum"
	"github.com/san-kum/eigensim/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ffff">
`, width, height, width, height)

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Curve is one polyline of a plot.
type Curve struct {
	Label  string
	Y      []float64
	Stroke string
}

var palette = []string{"#00ffff", "#ff00ff", "#ffcc00", "#00ff88", "#ff4444", "#8888ff"}

// WavefunctionSVG plots curves sampled at x on shared axes, with a dashed
// zero line and one legend entry per curve.
func WavefunctionSVG(x []float64, curves []Curve, width, height int) (string, error) {
	if len(x) < 2 {
		return "", quantum.Invalid("need at least 2 samples, got %d", len(x))
	}
	if len(curves) == 0 {
		return "", quantum.Invalid("no curves to plot")
	}
	minX, maxX := x[0], x[len(x)-1]
	minY, maxY := 0.0, 0.0
	for i, c := range curves {
		if len(c.Y) != len(x) {
			return "", fmt.Errorf("curve %d: %w", i, quantum.ErrDimensionMismatch)
		}
		for _, y := range c.Y {
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	px := func(v float64) float64 { return (v - minX) / rangeX * float64(width) }
	py := func(v float64) float64 { return float64(height) - (v-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, width, height, width, height, py(0), width, py(0))

	for i, c := range curves {
		stroke := c.Stroke
		if stroke == "" {
			stroke = palette[i%len(palette)]
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for j, y := range c.Y {
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", px(x[j]), py(y))
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", px(x[j]), py(y))
			}
		}
		sb.WriteString("\"/>\n")
		if c.Label != "" {
			fmt.Fprintf(&sb, "<text x=\"8\" y=\"%d\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
				16*(i+1), stroke, escape(c.Label))
		}
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
