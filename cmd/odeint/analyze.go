package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/odeint/internal/analysis"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/optim"
	"github.com/san-kum/odeint/internal/viz"
	"github.com/spf13/cobra"
)

func newLyapunovCmd() *cobra.Command {
	var (
		rf         runFlags
		transient  int
		separation float64
	)
	cmd := &cobra.Command{
		Use:     "lyapunov [system]",
		Short:   "estimate the largest Lyapunov exponent",
		Example: "  odeint lyapunov lorenz --steps 20000 --transient 1000",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd, args)
			if err != nil {
				return err
			}
			if !cfg.Fixed() {
				return fmt.Errorf("lyapunov needs a fixed-step integrator, got %s", cfg.Integrator)
			}
			steps := cfg.Steps
			if steps == 0 {
				steps = int(math.Ceil(cfg.Duration/cfg.Dt - 1e-9))
			}

			registry := experiment.NewRegistry()
			prob, err := registry.Problem(cfg)
			if err != nil {
				return err
			}
			ref, err := registry.Stepper(cfg)
			if err != nil {
				return err
			}
			comp, err := registry.Stepper(cfg)
			if err != nil {
				return err
			}

			logger.Info("estimating", "system", cfg.System, "integrator", cfg.Integrator, "steps", steps)
			lambda, err := analysis.LyapunovExponent(prob, ref, comp, analysis.LyapunovConfig{
				Dt:         cfg.Dt,
				Steps:      steps,
				Transient:  transient,
				Separation: separation,
			})
			if err != nil {
				return err
			}

			verdict := "regular"
			if lambda > 0.01 {
				verdict = "chaotic"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "largest lyapunov exponent: %.6g (%s)\n", lambda, verdict)
			return err
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVar(&transient, "transient", 0, "steps to take before measuring")
	cmd.Flags().Float64Var(&separation, "separation", 0, "distance between the two trajectories (0 for 1e-8)")
	return cmd
}

// runOnce runs cfg and logs a recoverable stop.
func runOnce(cfg *config.Config) (*experiment.Result, error) {
	res, err := experiment.New(cfg, experiment.NewRegistry()).WithLogger(logger, verbose).Run()
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		logger.Warn("integration stopped early", "err", res.Err, "samples", res.Trajectory.Len())
	}
	return res, nil
}

func newSpectrumCmd() *cobra.Command {
	var (
		rf  runFlags
		col int
		top int
	)
	cmd := &cobra.Command{
		Use:     "spectrum [system]",
		Short:   "print the strongest frequencies of one component",
		Example: "  odeint spectrum oscillator -p k=4 --steps 4096 --dt 0.01",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd, args)
			if err != nil {
				return err
			}
			// Whole steps only, so a shortened final step does not break
			// the even sampling.
			if cfg.Fixed() && cfg.Steps == 0 {
				cfg.Steps = max(1, int(math.Floor(cfg.Duration/cfg.Dt+1e-9)))
			}
			res, err := runOnce(cfg)
			if err != nil {
				return err
			}
			freqs, amps, err := analysis.PowerSpectrum(res.Trajectory, col)
			if err != nil {
				return err
			}

			bins := make([]int, 0, len(freqs))
			for i := 1; i < len(freqs); i++ {
				bins = append(bins, i)
			}
			sort.SliceStable(bins, func(a, b int) bool { return amps[bins[a]] > amps[bins[b]] })

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FREQUENCY\tPERIOD\tAMPLITUDE")
			for _, i := range bins[:min(top, len(bins))] {
				fmt.Fprintf(w, "%.6g\t%.6g\t%.6g\n", freqs[i], 1/freqs[i], amps[i])
			}
			return w.Flush()
		},
	}
	rf.register(cmd)
	cmd.Flags().IntVarP(&col, "column", "c", 0, "state component to analyze")
	cmd.Flags().IntVar(&top, "top", 5, "number of frequencies to print")
	return cmd
}

func newPoincareCmd() *cobra.Command {
	var (
		rf        runFlags
		of        outputFlags
		cross     int
		threshold float64
		asCSV     bool
	)
	cmd := &cobra.Command{
		Use:     "poincare [system]",
		Short:   "plot where a component rises through a threshold",
		Example: "  odeint poincare rossler --cross 1 --x-axis 0 --y-axis 2 --duration 500",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd, args)
			if err != nil {
				return err
			}
			res, err := runOnce(cfg)
			if err != nil {
				return err
			}
			points, err := analysis.PoincareSection(res.Trajectory, cross, threshold, of.xCol, of.yCol)
			if err != nil {
				return err
			}
			logger.Info("section", "crossings", len(points))

			return withOutput(cmd.OutOrStdout(), of.out, func(w io.Writer) error {
				if asCSV {
					fmt.Fprintf(w, "t,x%d,x%d\n", of.xCol, of.yCol)
					for _, p := range points {
						if _, err := fmt.Fprintf(w, "%g,%g,%g\n", p.T, p.X, p.Y); err != nil {
							return err
						}
					}
					return nil
				}
				xs, ys := make([]float64, len(points)), make([]float64, len(points))
				for i, p := range points {
					xs[i], ys[i] = p.X, p.Y
				}
				c := viz.NewCanvas(of.width, of.height)
				c.Scatter(xs, ys)
				_, err := fmt.Fprintf(w, "%s%d crossings of x%d = %g\n", c.String(), len(points), cross, threshold)
				return err
			})
		},
	}
	rf.register(cmd)
	of.registerAxes(cmd)
	cmd.Flags().IntVar(&cross, "cross", 0, "state component whose crossings are recorded")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "value the component crosses")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print the crossings as csv")
	return cmd
}

func newBifurcationCmd() *cobra.Command {
	var (
		rf        runFlags
		param     string
		values    string
		col       int
		transient float64
		width     int
		height    int
	)
	cmd := &cobra.Command{
		Use:   "bifurcation [system]",
		Short: "sweep one parameter and plot the peaks of a component",
		Example: "  odeint bifurcation rossler -p a=0.2 -p b=0.2 --sweep c --range 2:6:40 -c 0 --duration 300 --transient 200\n" +
			"  odeint bifurcation oscillator --sweep k --range 1,4,9 --duration 20",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd, args)
			if err != nil {
				return err
			}
			sweep, err := config.ParseRange(values)
			if err != nil {
				return err
			}

			points, err := analysis.Bifurcation(cmd.Context(), experiment.NewRegistry(), cfg, param, sweep, col, transient, logger)
			if err != nil {
				return err
			}

			var xs, ys []float64
			for _, p := range points {
				for _, peak := range p.Peaks {
					xs = append(xs, p.Param)
					ys = append(ys, peak)
				}
			}
			c := viz.NewCanvas(width, height)
			c.Scatter(xs, ys)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s%s from %g to %g, %d peaks of x%d\n",
				c.String(), param, sweep[0], sweep[len(sweep)-1], len(ys), col)
			return err
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&param, "sweep", "", "parameter to sweep")
	cmd.Flags().StringVar(&values, "range", "", "values as lo:hi:n or a,b,c")
	cmd.Flags().IntVarP(&col, "column", "c", 0, "state component whose peaks are recorded")
	cmd.Flags().Float64Var(&transient, "transient", 0, "time to skip before recording peaks")
	cmd.Flags().IntVar(&width, "width", 70, "plot width")
	cmd.Flags().IntVar(&height, "height", 20, "plot height")
	_ = cmd.MarkFlagRequired("sweep")
	_ = cmd.MarkFlagRequired("range")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		rf     runFlags
		grid   []string
		metric string
	)
	cmd := &cobra.Command{
		Use:     "search [system]",
		Short:   "grid-search parameters for the smallest metric",
		Example: "  odeint search oscillator --integrator euler --grid k=0.5:2:4 --metric energy_drift",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd, args)
			if err != nil {
				return err
			}
			axes := make([]optim.Axis, len(grid))
			for i, g := range grid {
				if axes[i], err = optim.ParseAxis(g); err != nil {
					return err
				}
			}

			best, all, err := optim.NewGridSearch(axes...).Search(cmd.Context(), experiment.NewRegistry(), cfg, metric, logger)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			header := make([]string, 0, len(axes)+1)
			for _, a := range axes {
				header = append(header, strings.ToUpper(a.Name))
			}
			fmt.Fprintln(w, strings.Join(append(header, strings.ToUpper(metric)), "\t"))
			for _, o := range all {
				row := make([]string, 0, len(axes)+1)
				for _, a := range axes {
					row = append(row, fmt.Sprintf("%g", o.Params[a.Name]))
				}
				fmt.Fprintln(w, strings.Join(append(row, fmt.Sprintf("%.6g", o.Value)), "\t"))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "best: %v %s=%.6g\n", best.Params, metric, best.Value)
			return err
		},
	}
	rf.register(cmd)
	cmd.Flags().StringArrayVar(&grid, "grid", nil, "axis name=lo:hi:n or name=a,b,c (repeatable)")
	cmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimize")
	_ = cmd.MarkFlagRequired("grid")
	return cmd
}
