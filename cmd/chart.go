package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/vizterm/internal/browser"
	"github.com/matheuskafuri/vizterm/internal/chart"
	"github.com/matheuskafuri/vizterm/internal/export"
)

var (
	flagChartGraph string
	flagExport     string
	flagOpen       bool
)

var chartCmd = &cobra.Command{
	Use:   "chart [dataset]",
	Short: "Load one dataset through the cache and print it",
	Long: `Load a dataset the same way the TUI does: a cache entry younger than the
configured TTL is used as is, otherwise the backend is queried and the cache updated.

Prints one "label<TAB>value" row per point. --export writes an .html (interactive,
with pan and zoom) or .png chart.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChart,
}

func init() {
	chartCmd.Flags().StringVar(&flagChartGraph, "graph", "", "graph type for --export: bar or line")
	chartCmd.Flags().StringVar(&flagExport, "export", "", "write the chart to this .html or .png file")
	chartCmd.Flags().BoolVar(&flagOpen, "open", false, "open the exported file")
}

func runChart(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	dataset := d.cfg.InitialDataset()
	if len(args) == 1 {
		dataset = args[0]
	}
	graph, err := resolveGraph(flagChartGraph, d.cfg)
	if err != nil {
		return err
	}

	loader, err := d.chartLoader(dataset, graph)
	if err != nil {
		return err
	}

	snap := loader.LoadData(cmd.Context())
	if snap.Status == chart.Error {
		return fmt.Errorf("loading %s: %w", dataset, snap.Err)
	}

	out := cmd.OutOrStdout()
	printSeries(out, snap)

	if flagExport == "" {
		return nil
	}
	if err := export.Write(flagExport, dataset, snap.Series, snap.Graph); err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported to %s\n", flagExport)
	if flagOpen {
		return browser.OpenFile(flagExport)
	}
	return nil
}

func printSeries(w io.Writer, s chart.Snapshot) {
	name := s.Dataset
	if name == "" {
		name = "(default)"
	}
	fmt.Fprintf(w, "# %s: %d points from %s\n", name, s.Series.Len(), s.Source)
	for _, p := range s.Series.Points() {
		fmt.Fprintf(w, "%s\t%s\n", p.Label, strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
}
