package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/vizterm/internal/filter"
	"github.com/matheuskafuri/vizterm/internal/models"
)

// filterForm holds one text input per criteria field, in filter.Fields order.
type filterForm struct {
	inputs  []textinput.Model
	focus   int
	editing bool
}

func newFilterForm() filterForm {
	f := filterForm{}
	for _, field := range filter.Fields {
		ti := textinput.New()
		ti.Prompt = formPromptStyle.Render("› ")
		ti.CharLimit = 100
		switch field {
		case filter.Start, filter.End:
			ti.Placeholder = "YYYY-MM-DD"
			ti.Width = 12
		case filter.Keyword:
			ti.Placeholder = "keyword"
			ti.Width = 20
		}
		f.inputs = append(f.inputs, ti)
	}
	return f
}

func (f *filterForm) start() tea.Cmd {
	f.editing = true
	return f.focusInput(f.focus)
}

func (f *filterForm) stop() {
	f.editing = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// cycle moves focus forward or backward, wrapping around.
func (f *filterForm) cycle(delta int) tea.Cmd {
	n := len(f.inputs)
	return f.focusInput(((f.focus+delta)%n + n) % n)
}

func (f *filterForm) focusInput(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *filterForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values pairs each field with the text currently typed for it.
func (f *filterForm) values() map[filter.Field]string {
	out := make(map[filter.Field]string, len(f.inputs))
	for i, field := range filter.Fields {
		out[field] = f.inputs[i].Value()
	}
	return out
}

// reset puts the inputs back in sync with c.
func (f *filterForm) reset(c models.Criteria) {
	for i, field := range filter.Fields {
		f.inputs[i].SetValue(filter.Get(c, field))
	}
}

func (f *filterForm) render(width int) string {
	var parts []string
	for i, field := range filter.Fields {
		parts = append(parts, formLabelStyle.Render(field.Label()+" ")+f.inputs[i].View())
	}
	row := " " + strings.Join(parts, "   ")
	if !f.editing {
		row += formLabelStyle.Render("   (/ to edit)")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(row)
}
