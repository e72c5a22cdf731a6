package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/san-kum/odeint/internal/export"
	"github.com/san-kum/odeint/internal/integrators"
	"github.com/san-kum/odeint/internal/storage"
	"github.com/san-kum/odeint/internal/viz"
	"github.com/spf13/cobra"
)

var formats = []string{"summary", "csv", "json", "svg", "plot", "phase", "steps"}

// runFlags are the run settings shared by run and compare. Flags the user
// sets win over the config file, which wins over the preset.
type runFlags struct {
	preset     string
	configFile string
	integrator string
	t0         float64
	initial    string
	params     []string
	dt         float64
	steps      int
	duration   float64
	dt0        float64
	accuracy   float64
	monitor    []int
	maxRows    int
	maxDepth   int
	norm       string
	maxSteps   int
	bound      float64
}

func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.preset, "preset", "", "start from a preset (name, or system/name)")
	fs.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&f.integrator, "integrator", config.RK4, "integrator: "+strings.Join(config.Integrators, ", "))
	fs.Float64Var(&f.t0, "t0", 0, "initial time")
	fs.StringVar(&f.initial, "initial", "", "initial state, comma separated")
	fs.StringArrayVarP(&f.params, "param", "p", nil, "system parameter name=value (repeatable)")
	fs.Float64Var(&f.dt, "dt", config.DefaultDt, "fixed step size")
	fs.IntVar(&f.steps, "steps", 0, "number of fixed steps (0 covers --duration)")
	fs.Float64Var(&f.duration, "duration", config.DefaultDuration, "length of the run")
	fs.Float64Var(&f.dt0, "dt0", config.DefaultDt, "first trial step of adaptive rk4")
	fs.Float64Var(&f.accuracy, "accuracy", config.DefaultAccuracy, "error target per unit time")
	fs.IntSliceVar(&f.monitor, "monitor", nil, "state components adaptive rk4 checks")
	fs.IntVar(&f.maxRows, "max-rows", 0, "bulirsch-stoer table rows (0 for default)")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "adaptive bulirsch-stoer bisection depth (0 for default)")
	fs.StringVar(&f.norm, "norm", "", "error norm: "+strings.Join(config.Norms, ", "))
	fs.IntVar(&f.maxSteps, "max-steps", 0, "stop after this many steps (0 for no limit)")
	fs.Float64Var(&f.bound, "bound", 0, "half-width of the stability box (0 only checks NaN/Inf)")
}

// resolve layers defaults, preset, config file, environment and flags.
func (f *runFlags) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	system := ""
	if len(args) > 0 {
		system = args[0]
	}

	cfg := config.DefaultConfig()
	if f.preset != "" {
		presetSystem, name := system, f.preset
		if s, n, ok := strings.Cut(f.preset, "/"); ok {
			presetSystem, name = s, n
		}
		p := config.GetPreset(presetSystem, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for system %q (available: %v)", name, presetSystem, config.ListPresets(presetSystem))
		}
		cfg = p
	}
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if system != "" {
		cfg.System = system
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if flags.Changed("t0") {
		cfg.T0 = f.t0
	}
	if flags.Changed("initial") {
		x0, err := config.ParseState(f.initial)
		if err != nil {
			return nil, err
		}
		cfg.Initial = x0
	}
	if flags.Changed("param") {
		params, err := config.ParseParams(f.params)
		if err != nil {
			return nil, err
		}
		cfg.Params = params
	}
	if flags.Changed("dt") {
		cfg.Dt = f.dt
	}
	if flags.Changed("steps") {
		cfg.Steps = f.steps
	}
	if flags.Changed("duration") {
		cfg.Duration = f.duration
	}
	if flags.Changed("dt0") {
		cfg.Dt0 = f.dt0
	}
	if flags.Changed("accuracy") {
		cfg.Accuracy = f.accuracy
	}
	if flags.Changed("monitor") {
		cfg.Monitor = f.monitor
	}
	if flags.Changed("max-rows") {
		cfg.MaxRows = f.maxRows
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if flags.Changed("norm") {
		cfg.Norm = f.norm
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = f.maxSteps
	}
	if flags.Changed("bound") {
		cfg.Bound = f.bound
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type outputFlags struct {
	format string
	out    string
	xCol   int
	yCol   int
	zCol   int
	width  int
	height int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&o.format, "format", "f", "summary", "output: "+strings.Join(formats, ", "))
	o.registerAxes(cmd)
}

func (o *outputFlags) registerAxes(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&o.out, "out", "o", "", "write output to a file instead of stdout")
	fs.IntVar(&o.xCol, "x-axis", 0, "state index for the x axis (-1 for time)")
	fs.IntVar(&o.yCol, "y-axis", 1, "state index for the y axis")
	fs.IntVar(&o.zCol, "z-axis", -1, "state index for a 3D phase portrait (-1 for 2D)")
	fs.IntVar(&o.width, "width", 70, "plot width")
	fs.IntVar(&o.height, "height", 20, "plot height")
}

func newRunCmd() *cobra.Command {
	var (
		rf   runFlags
		of   outputFlags
		live bool
		save bool
	)
	cmd := &cobra.Command{
		Use:   "run [system]",
		Short: "integrate one system",
		Example: "  odeint run lorenz --integrator bulirsch-stoer --steps 10000 --accuracy 1e-6\n" +
			"  odeint run --preset orbit/comet -f phase\n" +
			"  odeint run decay -p k=2 --integrator rk4-adaptive --duration 5 -f csv",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.resolve(cmd, args)
			if err != nil {
				return err
			}

			exp := experiment.New(cfg, experiment.NewRegistry()).WithLogger(logger, verbose)
			logger.Info("running", "system", cfg.System, "integrator", cfg.Integrator, "t_end", cfg.End())

			var res *experiment.Result
			if live {
				res, err = exp.RunWith(liveDriver(cfg))
			} else {
				res, err = exp.Run()
			}
			if err != nil {
				return err
			}
			if res.Err != nil {
				logger.Warn("integration stopped early", "err", res.Err, "samples", res.Trajectory.Len())
			}
			logger.Info("completed", "id", res.ID, "elapsed", res.Elapsed, "samples", res.Trajectory.Len())

			if save {
				st := storage.New(dataDir)
				if err := st.Init(); err != nil {
					return err
				}
				if _, err := st.Save(res); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				logger.Info("saved run", "id", res.ID, "dir", dataDir)
			}

			return withOutput(cmd.OutOrStdout(), of.out, func(w io.Writer) error {
				return of.write(w, res)
			})
		},
	}
	rf.register(cmd)
	of.register(cmd)
	cmd.Flags().BoolVar(&live, "live", false, "show progress in a terminal view while integrating")
	cmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	return cmd
}

func liveDriver(cfg *config.Config) experiment.Driver {
	return func(it integrators.Integrator, obs dynamo.Observer) (*dynamo.Trajectory, error) {
		m := viz.NewLive(it, cfg.End(), viz.LiveOptions{Observer: obs, MaxSteps: cfg.MaxSteps})
		if _, err := tea.NewProgram(m).Run(); err != nil {
			return nil, err
		}
		return m.Result()
	}
}

// withOutput runs write against path, or stdout when path is empty.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkColumn(name string, col, dim int, allowTime bool) error {
	if (allowTime && col == -1) || (col >= 0 && col < dim) {
		return nil
	}
	return fmt.Errorf("%s %d out of range for a %d-dimensional state", name, col, dim)
}

func (o *outputFlags) write(w io.Writer, res *experiment.Result) error {
	traj := res.Trajectory
	switch o.format {
	case "summary":
		name := res.Config.System + "/" + res.Integrator
		_, err := fmt.Fprintf(w, "%s\nrun id: %s\nelapsed: %v\n", viz.Summary(name, traj, res.Metrics, res.Err), res.ID, res.Elapsed)
		return err
	case "csv":
		return export.CSV(w, traj)
	case "json":
		meta := export.Meta{
			ID:         res.ID,
			System:     res.Config.System,
			Integrator: res.Integrator,
			Params:     res.Config.Params,
			Metrics:    res.Metrics,
		}
		if res.Err != nil {
			meta.Error = res.Err.Error()
		}
		return export.JSON(w, meta, traj)
	}
	return o.draw(w, traj)
}

// draw handles the formats that only need the samples.
func (o *outputFlags) draw(w io.Writer, traj *dynamo.Trajectory) error {
	dim := traj.Dim()
	switch o.format {
	case "svg":
		if err := checkColumn("x-axis", o.xCol, dim, true); err != nil {
			return err
		}
		if err := checkColumn("y-axis", o.yCol, dim, true); err != nil {
			return err
		}
		return export.SVG(w, traj, o.xCol, o.yCol, float64(o.width*10), float64(o.height*20))
	case "plot":
		cols := make([]int, 0, dim)
		for j := 0; j < min(dim, 4); j++ {
			cols = append(cols, j)
		}
		_, err := fmt.Fprintln(w, viz.PlotColumns(traj, cols, o.width, o.height))
		return err
	case "steps":
		_, err := fmt.Fprintln(w, viz.PlotStepSizes(traj, o.width, o.height))
		return err
	case "phase":
		if err := checkColumn("x-axis", o.xCol, dim, true); err != nil {
			return err
		}
		if err := checkColumn("y-axis", o.yCol, dim, true); err != nil {
			return err
		}
		if o.zCol >= 0 {
			if err := checkColumn("z-axis", o.zCol, dim, false); err != nil {
				return err
			}
			_, err := fmt.Fprint(w, viz.Portrait3D(traj, [3]int{o.xCol, o.yCol, o.zCol}, nil, o.width, o.height))
			return err
		}
		_, err := fmt.Fprint(w, viz.PhasePortrait(traj, o.xCol, o.yCol, o.width, o.height))
		return err
	}
	return fmt.Errorf("unknown format %q (want one of %v)", o.format, formats)
}
