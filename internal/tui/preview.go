package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/vizterm/internal/filter"
	"github.com/matheuskafuri/vizterm/internal/models"
)

// renderPreview shows the selected record in full along with the query that
// produced it.
func renderPreview(record *models.Record, criteria models.Criteria, width, height int) string {
	if record == nil {
		return lipglossCenter("Select a record", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render("Record")
	date := previewDateStyle.Render(record.Date)

	desc := record.Description
	if desc == "" {
		desc = "(No description available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))
	query := previewQueryStyle.Width(contentWidth).Render(describeCriteria(criteria))

	content := lipgloss.JoinVertical(lipgloss.Left, title, date, "", body, "", query)

	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func describeCriteria(c models.Criteria) string {
	var parts []string
	for _, f := range filter.Fields {
		if v := filter.Get(c, f); v != "" {
			parts = append(parts, f.String()+"="+v)
		}
	}
	if len(parts) == 0 {
		return "Query: all records"
	}
	return "Query: " + strings.Join(parts, " ")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
