package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/vizterm/internal/chart"
	"github.com/matheuskafuri/vizterm/internal/models"
)

// plotRow is one terminal line of a plot: the y-axis gutter and the body.
type plotRow struct {
	axis string
	body string
}

func (r plotRow) String() string {
	return r.axis + r.body
}

// windowSeries returns the points of s visible through vp.
func windowSeries(s models.Series, vp chart.Viewport) models.Series {
	from, to := vp.Window(s.Len())
	if from == to {
		return models.Series{}
	}
	return models.Series{Labels: s.Labels[from:to], Values: s.Values[from:to]}
}

// plotSeries draws s into width x height cells. The last two rows are the
// x axis and its labels. Points that do not fit are dropped from the right.
func plotSeries(s models.Series, g models.GraphType, width, height int) []plotRow {
	rows := height - 2
	if s.Empty() || rows < 1 {
		return nil
	}

	lo, hi := valueRange(s.Values)
	top, bottom := formatValue(hi), formatValue(lo)
	axisW := max(len(top), len(bottom))
	plotW := width - axisW - 2
	if plotW < 1 {
		return nil
	}

	n := s.Len()
	colW := plotW / n
	if colW < 1 {
		colW = 1
		n = plotW
	}

	canvas := make([][]rune, rows)
	for r := range canvas {
		canvas[r] = []rune(strings.Repeat(" ", colW*n))
	}

	values := s.Values[:n]
	if g == models.Line {
		drawLine(canvas, values, lo, hi, colW)
	} else {
		drawBars(canvas, values, lo, hi, colW)
	}

	out := make([]plotRow, 0, height)
	for r := range canvas {
		label, tick := "", "│"
		switch r {
		case 0:
			label, tick = top, "┤"
		case rows - 1:
			label, tick = bottom, "┤"
		}
		out = append(out, plotRow{
			axis: fmt.Sprintf("%*s %s", axisW, label, tick),
			body: string(canvas[r]),
		})
	}
	out = append(out, plotRow{
		axis: strings.Repeat(" ", axisW) + " └",
		body: strings.Repeat("─", colW*n),
	})
	out = append(out, plotRow{
		axis: strings.Repeat(" ", axisW+2),
		body: labelRow(s.Labels[:n], colW),
	})
	return out
}

func drawBars(canvas [][]rune, values []float64, lo, hi float64, colW int) {
	rows := len(canvas)
	barW := colW - 1
	if barW < 1 {
		barW = 1
	}
	for i, v := range values {
		h := scale(v, lo, hi, rows)
		for r := 0; r < rows; r++ {
			if rows-1-r >= h {
				continue
			}
			for k := 0; k < barW; k++ {
				canvas[r][i*colW+k] = '█'
			}
		}
	}
}

func drawLine(canvas [][]rune, values []float64, lo, hi float64, colW int) {
	rows := len(canvas)
	xs := make([]int, len(values))
	ys := make([]int, len(values))
	for i, v := range values {
		xs[i] = i*colW + colW/2
		ys[i] = rows - 1 - scale(v, lo, hi, rows-1)
	}

	for i := 0; i+1 < len(values); i++ {
		dx := xs[i+1] - xs[i]
		for x := xs[i] + 1; x < xs[i+1]; x++ {
			t := float64(x-xs[i]) / float64(dx)
			y := int(math.Round(float64(ys[i]) + t*float64(ys[i+1]-ys[i])))
			if canvas[y][x] == ' ' {
				canvas[y][x] = '·'
			}
		}
	}
	for i := range values {
		canvas[ys[i]][xs[i]] = '●'
	}
}

// scale maps v in [lo, hi] onto 0..steps.
func scale(v, lo, hi float64, steps int) int {
	l := int(math.Round((v - lo) / (hi - lo) * float64(steps)))
	return min(max(l, 0), steps)
}

// valueRange always includes zero and never collapses to a single value.
func valueRange(values []float64) (lo, hi float64) {
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func labelRow(labels []string, colW int) string {
	var b strings.Builder
	for _, l := range labels {
		t := truncateStr(l, max(colW-1, 1))
		b.WriteString(t)
		if pad := colW - lipgloss.Width(t); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}

func renderPlot(rows []plotRow) string {
	lines := make([]string, len(rows))
	last := len(rows) - 2
	for i, r := range rows {
		if i >= last {
			lines[i] = axisStyle.Render(r.String())
			continue
		}
		lines[i] = axisStyle.Render(r.axis) + seriesStyle.Render(r.body)
	}
	return strings.Join(lines, "\n")
}
