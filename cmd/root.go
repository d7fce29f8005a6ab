package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/matheuskafuri/vizterm/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagDataset string
	flagGraph   string
	flagCheck   bool
)

var rootCmd = &cobra.Command{
	Use:   "vizterm",
	Short: "Terminal charts and record search backed by a local cache",
	Long: `vizterm draws datasets from a chart backend as bar or line charts and searches
a records endpoint by date range and keyword. Chart data is cached locally for a few
minutes so switching back and forth between datasets stays instant.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		cmd.SetContext(klog.NewContext(cmd.Context(), klog.Background().WithName("vizterm")))
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file path (default $XDG_STATE_HOME/vizterm/vizterm.log)")
	rootCmd.PersistentFlags().IntVarP(&flagVerbosity, "verbosity", "v", 0, "log verbosity")

	rootCmd.Flags().StringVar(&flagDataset, "dataset", "", "dataset to open on start (opens the chart screen)")
	rootCmd.Flags().StringVar(&flagGraph, "graph", "", "initial graph type: bar or line")

	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "check GitHub for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(statsCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vizterm %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagCheck {
			return
		}
		if res := update.Check(cmd.Context(), version); res != nil {
			fmt.Fprintf(out, "Update available: v%s\n", res.LatestVersion)
		} else {
			fmt.Fprintln(out, "No newer release found.")
		}
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
