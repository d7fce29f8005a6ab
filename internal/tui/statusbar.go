package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/vizterm/internal/chart"
	"github.com/matheuskafuri/vizterm/internal/filter"
)

// chartStatus summarises the loader snapshot for the status bar.
func chartStatus(s chart.Snapshot, vp chart.Viewport) string {
	parts := []string{s.Dataset, s.Graph.String()}
	switch s.Status {
	case chart.Loading:
		parts = append(parts, "loading...")
	case chart.Loaded:
		parts = append(parts, fmt.Sprintf("%s · %s", s.Source, relativeTime(s.UpdatedAt)))
	case chart.Error:
		parts = append(parts, "error")
	}
	if n := s.Series.Len(); n > 0 {
		if vp.Zoomed() {
			from, to := vp.Window(n)
			parts = append(parts, fmt.Sprintf("points %d-%d of %d", from+1, to, n))
		} else {
			parts = append(parts, fmt.Sprintf("%d points", n))
		}
	}
	return " " + strings.Join(parts, " · ")
}

func recordsStatus(s filter.State) string {
	left := fmt.Sprintf(" %d records", len(s.Records))
	if s.Loading {
		left += " (loading...)"
	}
	return left
}

func renderStatusBar(left, hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
