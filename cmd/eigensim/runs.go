package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/eigensim/internal/analysis"
	"github.com/san-kum/eigensim/internal/export"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
	"github.com/san-kum/eigensim/internal/storage"
	"github.com/san-kum/eigensim/internal/viz"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOTENTIAL\tTIME\tGRID\tK\tMETHOD\tSTATES")

	for _, run := range runs {
		shape := make([]int, len(run.Axes))
		for d, a := range run.Axes {
			shape[d] = a.Count
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\t%s\t%t\n",
			run.ID,
			run.Potential,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			shape,
			run.K,
			run.Method,
			run.HasStates,
		)
	}

	return w.Flush()
}

// loadRun returns a run's metadata, grid and eigenvalues.
func loadRun(st *storage.Store, runID string) (*storage.RunMetadata, *grid.Grid, []float64, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	g, err := meta.Grid()
	if err != nil {
		return nil, nil, nil, err
	}
	values, err := st.LoadEigenvalues(runID)
	if err != nil {
		return nil, nil, nil, err
	}
	return meta, g, values, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if asJSON {
		return st.ExportJSON(os.Stdout, runID)
	}

	meta, g, values, err := loadRun(st, runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("potential: %s %s\n", meta.Potential, formatParams(meta.Params))
	fmt.Printf("grid: %v (%d points)\n", g.Shape(), g.Size())
	fmt.Printf("method: %s  target: %g  seed: %d  time: %.3fms\n\n", meta.Method, meta.Target, meta.Seed, meta.ElapsedMS)
	fmt.Println(viz.EigenTable(values, nil, meta.Metrics))

	if !plot {
		return nil
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if plotAxis < 0 || plotAxis >= g.Dims() {
		return quantum.Invalid("axis %d out of range for a %dD run", plotAxis, g.Dims())
	}
	for i, psi := range states.Psi {
		line, err := g.Line(psi, plotAxis, g.Center())
		if err != nil {
			return err
		}
		fmt.Println(viz.PlotLine(line, 80, 10, fmt.Sprintf("ψ%d  E=%.6f", i, values[i])))
		fmt.Println()
	}
	return nil
}

func momentumRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, g, values, err := loadRun(st, runID)
	if err != nil {
		return err
	}
	if g.Dims() != 1 {
		return quantum.Invalid("momentum needs a 1D run, %s is %dD", runID, g.Dims())
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if stateIndex < 0 || stateIndex >= len(states.Psi) {
		return quantum.Invalid("state %d out of range [0, %d)", stateIndex, len(states.Psi))
	}

	k, rho, err := analysis.Momentum(states.Psi[stateIndex], g.Axis(0).Step())
	if err != nil {
		return err
	}
	dk := k[1] - k[0]
	meanK2 := 0.0
	for i := range k {
		meanK2 += k[i] * k[i] * rho[i] * dk
	}

	fmt.Printf("run: %s  potential: %s  state: %d  E=%.6f\n", meta.ID, meta.Potential, stateIndex, values[stateIndex])
	fmt.Printf("<k²> = %.6f (kinetic energy)  k range: ±%.3f\n\n", meanK2, math.Abs(k[0]))

	// the interesting part of a bound state sits well inside the Nyquist range
	lo, hi := len(k)/4, 3*len(k)/4
	fmt.Println(viz.PlotLine(rho[lo:hi], 80, 12,
		fmt.Sprintf("|φ(k)|² for k in [%.2f, %.2f]", k[lo], k[hi-1])))
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	_, g, values, err := loadRun(st, runID)
	if err != nil {
		return err
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if plotAxis < 0 || plotAxis >= g.Dims() {
		return quantum.Invalid("axis %d out of range for a %dD run", plotAxis, g.Dims())
	}

	var svg string
	if density {
		if g.Dims() < 2 {
			return quantum.Invalid("density map needs a 2D or 3D run")
		}
		if len(stateList) == 0 || stateList[0] < 0 || stateList[0] >= len(states.Psi) {
			return quantum.Invalid("density map needs one state in [0, %d)", len(states.Psi))
		}
		sq := make([]float64, g.Size())
		for i, v := range states.Psi[stateList[0]] {
			sq[i] = v * v
		}
		field, err := g.Slice2D(sq, plotAxis, (plotAxis+1)%g.Dims(), g.Center())
		if err != nil {
			return err
		}
		svg = export.CanvasToSVG(viz.DensityMap(field, 60, 30), 4)
	} else {
		curves := make([]export.Curve, 0, len(stateList))
		for _, i := range stateList {
			if i < 0 || i >= len(states.Psi) {
				return quantum.Invalid("state %d out of range [0, %d)", i, len(states.Psi))
			}
			line, err := g.Line(states.Psi[i], plotAxis, g.Center())
			if err != nil {
				return err
			}
			curves = append(curves, export.Curve{Label: fmt.Sprintf("ψ%d  E=%.6f", i, values[i]), Y: line})
		}
		svg, err = export.WavefunctionSVG(g.Axis(plotAxis).Points(), curves, 800, 400)
		if err != nil {
			return err
		}
	}

	path := outFile
	if path == "" {
		path = runID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func browseRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, g, values, err := loadRun(st, runID)
	if err != nil {
		return err
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if theme != "" {
		viz.SetTheme(theme)
	}
	b, err := viz.NewBrowser(meta.Potential, g, values, states.Psi)
	if err != nil {
		return err
	}
	return viz.RunBrowser(b)
}
