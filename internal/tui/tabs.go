package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// datasetTabs is the row of configured datasets on the chart screen.
type datasetTabs struct {
	names  []string
	cursor int
}

func newDatasetTabs(names []string, selected string) datasetTabs {
	t := datasetTabs{names: names}
	for i, n := range names {
		if n == selected {
			t.cursor = i
		}
	}
	return t
}

func (t *datasetTabs) current() string {
	if t.cursor < len(t.names) {
		return t.names[t.cursor]
	}
	return ""
}

// move shifts the selection by delta, wrapping at either end. It reports
// whether the selection changed.
func (t *datasetTabs) move(delta int) bool {
	n := len(t.names)
	if n < 2 {
		return false
	}
	t.cursor = ((t.cursor+delta)%n + n) % n
	return true
}

func (t *datasetTabs) selectIndex(i int) bool {
	if i < 0 || i >= len(t.names) || i == t.cursor {
		return false
	}
	t.cursor = i
	return true
}

func (t *datasetTabs) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string
	for i, n := range t.names {
		style := tabInactiveStyle
		if i == t.cursor {
			style = tabActiveStyle
		}
		label := n
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, n)
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
