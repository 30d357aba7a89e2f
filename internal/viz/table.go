package viz

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// EigenTable renders one row per eigenvalue. exact may be nil; metrics are
// the "<name>[i]" observables of a spectrum and become extra columns.
func EigenTable(values, exact []float64, metrics map[string]float64) string {
	names := metricNames(metrics)

	headers := []string{"n", "energy"}
	if exact != nil {
		headers = append(headers, "exact", "rel.err")
	}
	headers = append(headers, names...)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Muted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Bold(true).Foreground(CurrentTheme.Primary)
			case col == 1:
				return s.Foreground(CurrentTheme.Secondary)
			}
			return s.Foreground(CurrentTheme.Text)
		})

	for i, v := range values {
		row := []string{strconv.Itoa(i), fmt.Sprintf("%.8f", v)}
		if exact != nil {
			if i < len(exact) {
				rel := math.Abs(v - exact[i])
				if exact[i] != 0 {
					rel /= math.Abs(exact[i])
				}
				row = append(row, fmt.Sprintf("%.6f", exact[i]), fmt.Sprintf("%.2e", rel))
			} else {
				row = append(row, "-", "-")
			}
		}
		for _, name := range names {
			val, ok := metrics[fmt.Sprintf("%s[%d]", name, i)]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.5g", val))
		}
		t.Row(row...)
	}
	return t.Render()
}

// metricNames returns the distinct observable names in keys "<name>[i]".
func metricNames(metrics map[string]float64) []string {
	seen := map[string]bool{}
	for key := range metrics {
		if i := strings.IndexByte(key, '['); i > 0 {
			seen[key[:i]] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
