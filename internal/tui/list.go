package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/vizterm/internal/models"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderRecordItem(r models.Record, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	date := " - " + r.Date
	descW := width - 2 - len([]rune(date))
	if descW < 4 {
		descW = 4
	}
	desc := truncateStr(r.Description, descW)

	if selected {
		return itemSelectedStyle.Render("> "+desc) + itemDateStyle.Render(date)
	}
	return itemTitleStyle.Render("  "+desc) + itemDateStyle.Render(date)
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// visibleRange returns the slice of items to draw so that cursor stays on screen.
func visibleRange(total, cursor, visible int) (start, end int) {
	if visible < 1 {
		visible = 1
	}
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end = start + visible
	if end > total {
		end = total
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func renderRecordList(records []models.Record, cursor int, height int, width int) string {
	if len(records) == 0 {
		return lipglossCenter("No records found", width, height)
	}

	start, end := visibleRange(len(records), cursor, height)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderRecordItem(records[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
