package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"k8s.io/klog/v2"

	"github.com/matheuskafuri/vizterm/internal/config"
)

var (
	flagLogFile   string
	flagVerbosity int
)

// setupLogging sends klog output to a file. The TUI owns the terminal, so
// nothing below FATAL reaches stderr.
func setupLogging() error {
	path := flagLogFile
	if path == "" {
		path = config.LogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	settings := [][2]string{
		{"logtostderr", "false"},
		{"alsologtostderr", "false"},
		{"stderrthreshold", "FATAL"},
		{"log_file", path},
		{"v", strconv.Itoa(flagVerbosity)},
	}
	for _, s := range settings {
		if err := fs.Set(s[0], s[1]); err != nil {
			return fmt.Errorf("configuring logging (%s): %w", s[0], err)
		}
	}
	return nil
}
