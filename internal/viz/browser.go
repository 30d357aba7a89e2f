package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
)

var axisNames = []string{"x", "y", "z"}

// Browser is a Bubble Tea model for stepping through the eigenstates of a run.
type Browser struct {
	title         string
	g             *grid.Grid
	values        []float64
	states        [][]float64
	index, axis   int
	density       bool
	squared       bool
	width, height int
}

// NewBrowser checks that every state lives on g.
func NewBrowser(title string, g *grid.Grid, values []float64, states [][]float64) (Browser, error) {
	if len(states) == 0 {
		return Browser{}, quantum.Invalid("no states to browse")
	}
	for i, s := range states {
		if len(s) != g.Size() {
			return Browser{}, fmt.Errorf("state %d: %w", i, quantum.ErrDimensionMismatch)
		}
	}
	return Browser{
		title:  title,
		g:      g,
		values: values,
		states: states,
		width:  80,
		height: 24,
	}, nil
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return b, tea.Quit
	case "right", "l", "down", "j":
		if b.index < len(b.states)-1 {
			b.index++
		}
	case "left", "h", "up", "k":
		if b.index > 0 {
			b.index--
		}
	case "a":
		b.axis = (b.axis + 1) % b.g.Dims()
	case "d":
		if b.g.Dims() >= 2 {
			b.density = !b.density
		}
	case "s":
		b.squared = !b.squared
	case "t":
		CurrentTheme = nextTheme()
	}
	return b, nil
}

// Index returns the state currently shown.
func (b Browser) Index() int { return b.index }

func (b Browser) View() string {
	var s strings.Builder
	psi := b.states[b.index]

	s.WriteString("\n  " + Title(strings.ToUpper(b.title)) + "  ")
	s.WriteString(MetricLabel.Render(fmt.Sprintf("state %d/%d", b.index+1, len(b.states))))
	if b.index < len(b.values) {
		s.WriteString("  " + MetricLabel.Render("E = ") + MetricValue.Render(fmt.Sprintf("%.8f", b.values[b.index])))
	}
	s.WriteString("\n  " + SparklineChart(b.values, min(len(b.values), 40)) + "\n\n")

	plotW := max(b.width-14, 20)
	plotH := max(b.height-10, 6)
	if b.density {
		s.WriteString(b.densityView(psi, plotW, plotH))
	} else {
		s.WriteString(b.lineView(psi, plotW, plotH))
	}

	s.WriteString("\n\n  " + Separator(plotW) + "\n  " + Hints("h/l", "state", "a", "axis", "d", "density", "s", "square", "t", "theme", "q", "quit") + "\n")
	return s.String()
}

func (b Browser) lineView(psi []float64, w, h int) string {
	line, err := b.g.Line(psi, b.axis, b.g.Center())
	if err != nil {
		return err.Error()
	}
	label := "ψ"
	if b.squared {
		label = "|ψ|²"
		for i, v := range line {
			line[i] = v * v
		}
	}
	return PlotLine(line, w, h, fmt.Sprintf("%s%d along %s", label, b.index, axisNames[b.axis]))
}

func (b Browser) densityView(psi []float64, w, h int) string {
	sq := make([]float64, len(psi))
	for i, v := range psi {
		sq[i] = v * v
	}
	other := (b.axis + 1) % b.g.Dims()
	field, err := b.g.Slice2D(sq, b.axis, other, b.g.Center())
	if err != nil {
		return err.Error()
	}
	c := DensityMap(field, w/2, h/2)
	caption := fmt.Sprintf("|ψ%d|² in the %s%s plane", b.index, axisNames[b.axis], axisNames[other])
	return GlassPanel.Render(c.String()) + "\n  " + Subtle.Render(caption)
}

// RunBrowser runs b full screen until the user quits.
func RunBrowser(b Browser) error {
	_, err := tea.NewProgram(b, tea.WithAltScreen()).Run()
	return err
}
