package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/matheuskafuri/vizterm/internal/config"
	"github.com/matheuskafuri/vizterm/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	d, err := loadDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	dataset := d.cfg.InitialDataset()
	if flagDataset != "" {
		dataset = flagDataset
	}
	graph, err := resolveGraph(flagGraph, d.cfg)
	if err != nil {
		return err
	}

	loader, err := d.chartLoader(dataset, graph)
	switch {
	case errors.Is(err, config.ErrNoBackend):
		klog.InfoS("charts disabled", "reason", err)
	case err != nil:
		return err
	}

	return tui.Run(tui.RunOpts{
		Context:    cmd.Context(),
		Loader:     loader,
		Panel:      d.recordsPanel(),
		Datasets:   datasetsWith(d.cfg.Datasets, dataset),
		ExportDir:  config.ExportDir(),
		StartChart: flagDataset != "",
		Version:    version,
	})
}

func parseSince(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
