package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/san-kum/odeint/internal/storage"
	"github.com/san-kum/odeint/internal/viz"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no runs in %s\n", dataDir)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSYSTEM\tINTEGRATOR\tSAMPLES\tT_END\tWHEN\tERROR")
			for _, r := range runs {
				errText := "-"
				if r.Error != "" {
					errText = r.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.6g\t%s\t%s\n",
					r.ID, r.System, r.Integrator, r.Samples, r.TEnd, r.Timestamp.Format("2006-01-02 15:04:05"), errText)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	var (
		column        int
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one state component of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			traj, err := st.LoadTrajectory(args[0])
			if err != nil {
				return err
			}
			if err := checkColumn("column", column, traj.Dim(), false); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s/%s  %d samples\n\n", meta.System, meta.Integrator, meta.Samples)
			fmt.Fprintln(out, viz.PlotColumn(traj, column, width, height))
			return nil
		},
	}
	cmd.Flags().IntVarP(&column, "column", "c", 0, "state index to plot")
	cmd.Flags().IntVar(&width, "width", 70, "plot width")
	cmd.Flags().IntVar(&height, "height", 15, "plot height")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	var of outputFlags
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			traj, err := storage.New(dataDir).LoadTrajectory(args[0])
			if err != nil {
				return err
			}
			of.format = "phase"
			return withOutput(cmd.OutOrStdout(), of.out, func(w io.Writer) error {
				return of.draw(w, traj)
			})
		},
	}
	of.registerAxes(cmd)
	return cmd
}
