package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/eigensim/internal/config"
	"github.com/san-kum/eigensim/internal/eigen"
	"github.com/san-kum/eigensim/internal/logging"
	"github.com/san-kum/eigensim/internal/potentials"
	"github.com/san-kum/eigensim/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	dataDir  string
	logLevel string

	axisSpecs   []string
	paramSpecs  []string
	numStates   int
	target      float64
	vectors     bool
	observables bool
	method      string
	tol         float64
	seed        int64
	configFile  string
	preset      string
	save        bool
	plot        bool

	sweepParam  string
	sweepValues []float64
	workers     int

	gridSpecs   []string
	searchLevel int
	searchGoal  float64

	stateIndex int
	plotAxis   int
	asJSON     bool
	outFile    string
	density    bool
	stateList  []int
	theme      string
)

// newEnv returns a viper instance reading EIGENSIM_* variables, with each
// key falling back to the flag it is bound to.
func newEnv(flags *pflag.FlagSet, keys map[string]string) (*viper.Viper, error) {
	env := viper.New()
	env.SetEnvPrefix("eigensim")
	env.AutomaticEnv()
	for key, name := range keys {
		if err := env.BindPFlag(key, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind %s to --%s: %w", key, name, err)
		}
	}
	return env, nil
}

// main registers the eigensim commands and exits with status 1 on error.
func main() {
	var env *viper.Viper
	rootCmd := &cobra.Command{
		Use:          "eigensim",
		Short:        "stationary Schrödinger equation solver",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			dataDir = env.GetString("data")
			return logging.SetLevel(env.GetString("log_level"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".eigensim", "data directory (env EIGENSIM_DATA)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug|info|warn|error (env EIGENSIM_LOG_LEVEL)")
	var err error
	env, err = newEnv(rootCmd.PersistentFlags(), map[string]string{"data": "data", "log_level": "log-level"})
	cobra.CheckErr(err)

	solveCmd := &cobra.Command{
		Use:   "solve [potential]",
		Short: "compute the eigenvalues closest to a target energy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addProblemFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	solveCmd.Flags().BoolVar(&plot, "plot", false, "plot the states along the first axis (implies --vectors)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&plot, "plot", false, "plot the stored states")
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as JSON")
	showCmd.Flags().IntVar(&plotAxis, "axis", 0, "axis to plot along")

	momentumCmd := &cobra.Command{
		Use:   "momentum [run_id]",
		Short: "momentum distribution of a stored 1D state",
		Args:  cobra.ExactArgs(1),
		RunE:  momentumRun,
	}
	momentumCmd.Flags().IntVar(&stateIndex, "state", 0, "state index")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write stored states as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntSliceVar(&stateList, "states", []int{0}, "state indices to draw")
	exportSVGCmd.Flags().IntVar(&plotAxis, "axis", 0, "axis to plot along")
	exportSVGCmd.Flags().BoolVar(&density, "density", false, "draw a density map of the first state (2D/3D)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [potential]",
		Short: "solve over a range of one potential parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addProblemFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "sweep", "", "parameter to vary")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "parameter values, comma separated")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent solves (0 = GOMAXPROCS)")
	sweepCmd.MarkFlagRequired("sweep")
	sweepCmd.MarkFlagRequired("values")

	searchCmd := &cobra.Command{
		Use:   "search [potential]",
		Short: "find parameters placing a level at a given energy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	addProblemFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "parameter grid name=v1,v2,... (repeatable)")
	searchCmd.Flags().IntVar(&searchLevel, "level", 0, "level index to match")
	searchCmd.Flags().Float64Var(&searchGoal, "energy", 0, "energy the level should have")
	searchCmd.MarkFlagRequired("grid")

	potentialsCmd := &cobra.Command{
		Use:   "potentials",
		Short: "list model potentials and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range potentials.Names() {
				m, _ := potentials.New(name)
				fmt.Printf("  %-12s %-36s %s\n", name, potentials.Describe(name), formatParams(m.GetParams()))
			}
			fmt.Printf("\nmethods: %s\n", strings.Join(eigen.Methods(), ", "))
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [potential]",
		Short: "list available presets for a potential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for potential: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-12s %dD  k=%d  %s\n", p, len(cfg.Axes), cfg.K, formatParams(cfg.Params))
			}
			return nil
		},
	}

	browseCmd := &cobra.Command{
		Use:   "browse [run_id]",
		Short: "step through stored states interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  browseRun,
	}
	browseCmd.Flags().StringVar(&theme, "theme", "", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	rootCmd.AddCommand(solveCmd, listCmd, showCmd, momentumCmd, exportSVGCmd, sweepCmd, searchCmd, potentialsCmd, presetsCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVar(&axisSpecs, "axis", nil, "grid axis min:max:count (repeat per dimension)")
	f.StringArrayVar(&paramSpecs, "param", nil, "potential parameter name=value (repeatable)")
	f.IntVarP(&numStates, "k", "k", config.DefaultK, "number of eigenvalues")
	f.Float64Var(&target, "target", 0, "energy the eigenvalues should be closest to")
	f.BoolVar(&vectors, "vectors", false, "compute eigenvectors")
	f.BoolVar(&observables, "observables", false, "measure norm, positions, energy and IPR per state")
	f.StringVar(&method, "method", "lanczos", "eigensolver: "+strings.Join(eigen.Methods(), ", "))
	f.Float64Var(&tol, "tol", eigen.DefaultTol, "convergence tolerance")
	f.Int64Var(&seed, "seed", eigen.DefaultSeed, "start vector seed")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}
