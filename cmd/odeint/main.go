package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/experiment"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	logger  *log.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if logger == nil {
			logger = newLogger(false)
		}
		logger.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "odeint",
		Short:         "integrate ordinary differential equations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odeint", "data directory for saved runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every step")

	rootCmd.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newSystemsCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newPhaseCmd(),
		newLyapunovCmd(),
		newSpectrumCmd(),
		newPoincareCmd(),
		newBifurcationCmd(),
		newSearchCmd(),
	)
	return rootCmd
}

func newLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{Prefix: "odeint"})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

func newSystemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "systems",
		Short: "list the built-in systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SYSTEM\tDIM\tPARAMS\tPRESETS")
			for _, name := range registry.ListSystems() {
				sys, err := registry.GetSystem(name)
				if err != nil {
					return err
				}
				dim := "any"
				if sys.Dim > 0 {
					dim = fmt.Sprint(sys.Dim)
				}
				params := "-"
				if len(sys.ParamNames) > 0 {
					params = strings.Join(sys.ParamNames, ",")
				}
				presets := "-"
				if p := config.ListPresets(name); len(p) > 0 {
					presets = strings.Join(p, ",")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, dim, params, presets)
			}
			return w.Flush()
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [system]",
		Short: "list presets, for one system or all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			systems := config.PresetSystems()
			if len(args) == 1 {
				systems = []string{args[0]}
			}
			sort.Strings(systems)

			for _, sys := range systems {
				presets := config.ListPresets(sys)
				if len(presets) == 0 {
					fmt.Fprintf(out, "no presets for system: %s\n", sys)
					continue
				}
				fmt.Fprintf(out, "%s:\n", sys)
				for _, p := range presets {
					cfg := config.GetPreset(sys, p)
					fmt.Fprintf(out, "  %-14s %s\n", p, cfg.Integrator)
				}
			}
			return nil
		},
	}
}
