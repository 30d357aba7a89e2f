package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PlotLine draws values as an asciigraph line plot.
func PlotLine(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}
