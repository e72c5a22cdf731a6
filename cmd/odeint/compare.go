package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	var rf runFlags
	cmd := &cobra.Command{
		Use:   "compare [system] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same system",
		Example: "  odeint compare oscillator euler rk4 verlet --duration 100\n" +
			"  odeint compare orbit rk4-adaptive bulirsch-stoer-adaptive --preset comet",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgs := make([]*config.Config, 0, len(args)-1)
			for _, name := range args[1:] {
				rf.integrator = name
				if err := cmd.Flags().Set("integrator", name); err != nil {
					return err
				}
				cfg, err := rf.resolve(cmd, args[:1])
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				cfgs = append(cfgs, cfg)
			}

			results, err := experiment.Compare(cmd.Context(), experiment.NewRegistry(), cfgs, logger)
			if err != nil {
				return err
			}
			return printComparison(cmd, results)
		},
	}
	rf.register(cmd)
	return cmd
}

func printComparison(cmd *cobra.Command, results []*experiment.Result) error {
	names := map[string]bool{}
	for _, res := range results {
		for k := range res.Metrics {
			names[k] = true
		}
	}
	metricNames := make([]string, 0, len(names))
	for k := range names {
		metricNames = append(metricNames, k)
	}
	sort.Strings(metricNames)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := []string{"INTEGRATOR", "SAMPLES", "EVALS", "REJECTED", "T_END", "X0_END", "ELAPSED"}
	for _, k := range metricNames {
		header = append(header, strings.ToUpper(k))
	}
	header = append(header, "ERROR")
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, res := range results {
		traj := res.Trajectory
		tEnd, x := traj.Last()
		row := []string{
			res.Integrator,
			fmt.Sprint(traj.Len()),
			fmt.Sprint(traj.Stats.Evaluations),
			fmt.Sprint(traj.Stats.Rejected),
			fmt.Sprintf("%.6g", tEnd),
			fmt.Sprintf("%.10g", x[0]),
			res.Elapsed.String(),
		}
		for _, k := range metricNames {
			v, ok := res.Metrics[k]
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%.4g", v))
		}
		errText := "-"
		if res.Err != nil {
			errText = res.Err.Error()
		}
		row = append(row, errText)
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
