package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/eigensim/internal/analysis"
	"github.com/san-kum/eigensim/internal/config"
	"github.com/san-kum/eigensim/internal/grid"
	"github.com/san-kum/eigensim/internal/quantum"
	"github.com/san-kum/eigensim/internal/solver"
	"github.com/san-kum/eigensim/internal/storage"
	"github.com/san-kum/eigensim/internal/sweep"
	"github.com/san-kum/eigensim/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig layers preset or config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	potential := ""
	if len(args) > 0 {
		potential = args[0]
	}

	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(potential, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(potential))
		}
	default:
		cfg = config.DefaultConfig()
	}
	if potential != "" && potential != cfg.Potential {
		cfg.Potential = potential
		cfg.Params = nil
	}

	flags := cmd.Flags()
	if flags.Changed("axis") {
		cfg.Axes = nil
		for _, s := range axisSpecs {
			a, err := grid.ParseAxis(s)
			if err != nil {
				return nil, err
			}
			cfg.Axes = append(cfg.Axes, a)
		}
	}
	if flags.Changed("param") {
		params, err := parseAssignments(paramSpecs)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		for k, v := range params {
			cfg.Params[k] = v
		}
	}
	if flags.Changed("k") {
		cfg.K = numStates
	}
	if flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Changed("vectors") {
		cfg.Vectors = vectors
	}
	if flags.Changed("observables") {
		cfg.Observables = observables
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("tol") {
		cfg.Solver.Tol = tol
	}
	if flags.Changed("seed") {
		cfg.Solver.Seed = seed
	}
	return cfg, cfg.Validate()
}

func parseAssignments(specs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(specs))
	for _, s := range specs {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return nil, quantum.Invalid("parameter %q is not name=value", s)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, quantum.Invalid("parameter %s: %v", name, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

func formatParams(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, params[k])
	}
	return strings.Join(parts, " ")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if plot {
		cfg.Vectors = true
	}
	p, err := cfg.Problem()
	if err != nil {
		return err
	}

	sp, err := solver.Solve(context.Background(), p)
	if err != nil {
		return err
	}

	fmt.Printf("potential: %s %s\n", cfg.Potential, formatParams(p.Potential.(quantum.Configurable).GetParams()))
	fmt.Printf("grid: %v (%d points)\n", sp.Grid.Shape(), sp.Grid.Size())
	fmt.Printf("method: %s  target: %g  solves: %d  restarts: %d  time: %s\n\n",
		sp.Method, cfg.Target, sp.Applications, sp.Restarts, sp.Elapsed.Round(time.Microsecond))

	fmt.Println(viz.EigenTable(sp.Values, exactLevels(p, sp), sp.Metrics))
	printLevels(sp.Values)

	if plot {
		for i := 0; i < min(sp.Len(), 3); i++ {
			line, err := sp.Grid.Line(sp.State(i), 0, sp.Grid.Center())
			if err != nil {
				return err
			}
			fmt.Println(viz.PlotLine(line, 80, 10, fmt.Sprintf("ψ%d  E=%.6f", i, sp.Values[i])))
			fmt.Println()
		}
	}

	if save {
		st := storage.New(dataDir)
		m, err := cfg.Model()
		if err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Potential: cfg.Potential,
			Params:    m.GetParams(),
			Axes:      cfg.Axes,
			Target:    cfg.Target,
			Seed:      cfg.Solver.Seed,
		}, sp)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}
	return nil
}

// exactLevels returns closed-form levels when the potential has them and
// the request targets the bottom of the spectrum.
func exactLevels(p solver.Problem, sp *solver.Spectrum) []float64 {
	an, ok := p.Potential.(quantum.Analytic)
	if !ok || sp.Len() == 0 || p.Target > sp.Values[0] {
		return nil
	}
	return an.Levels(sp.Len(), len(p.Axes))
}

func printLevels(values []float64) {
	if len(values) == 0 {
		return
	}
	scale := math.Max(1, math.Abs(values[len(values)-1]-values[0]))
	var parts []string
	for _, lvl := range analysis.Levels(values, 1e-3*scale) {
		parts = append(parts, fmt.Sprintf("%.5f×%d", lvl.Energy, lvl.Degeneracy))
	}
	fmt.Printf("levels: %s\n", strings.Join(parts, "  "))
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.Vectors = false
	cfg.Observables = false

	points, err := sweep.Sweep(context.Background(), cfg, sweepParam, sweepValues, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(sweepParam)}
	for i := 0; i < cfg.K; i++ {
		header = append(header, fmt.Sprintf("E%d", i))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	ground := make([]float64, len(points))
	for i, pt := range points {
		row := []string{strconv.FormatFloat(pt.Value, 'g', 6, 64)}
		for _, v := range pt.Spectrum.Values {
			row = append(row, fmt.Sprintf("%.6f", v))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
		ground[i] = pt.Spectrum.Values[0]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(points) > 1 {
		fmt.Println()
		fmt.Println(viz.PlotLine(ground, 80, 10, fmt.Sprintf("E0 vs %s", sweepParam)))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.Vectors = false
	cfg.Observables = false

	names := make([]string, 0, len(gridSpecs))
	ranges := make([][]float64, 0, len(gridSpecs))
	for _, s := range gridSpecs {
		name, list, ok := strings.Cut(s, "=")
		if !ok {
			return quantum.Invalid("grid %q is not name=v1,v2,...", s)
		}
		var vals []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return quantum.Invalid("grid %s: %v", name, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	best, dist, err := sweep.NewGridSearch(names, ranges).Search(context.Background(), cfg, searchLevel, searchGoal)
	if err != nil {
		return err
	}
	fmt.Printf("best: %s\n", formatParams(best))
	fmt.Printf("|E%d - %g| = %.6g\n", searchLevel, searchGoal, dist)
	return nil
}
