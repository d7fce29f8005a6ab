// Package export writes a series as a standalone chart file.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matheuskafuri/vizterm/internal/models"
)

// Format is an export file type.
type Format string

const (
	HTML Format = "html"
	PNG  Format = "png"
)

var (
	seriesFill   = drawing.Color{R: 75, G: 192, B: 192, A: 102}
	seriesStroke = drawing.Color{R: 75, G: 192, B: 192, A: 255}
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return HTML, nil
	case ".png":
		return PNG, nil
	default:
		return "", fmt.Errorf("unsupported export extension %q (valid: .html, .png)", filepath.Ext(path))
	}
}

// Write renders the series to path in the format implied by its extension.
func Write(path, title string, s models.Series, g models.GraphType) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case HTML:
		err = WriteHTML(f, title, s, g)
	case PNG:
		err = WritePNG(f, title, s, g)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return f.Close()
}

// WriteHTML renders an interactive page with x-axis pan and zoom.
func WriteHTML(w io.Writer, title string, s models.Series, g models.GraphType) error {
	global := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     "900px",
			Height:    "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    true,
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", Start: 0, End: 100, XAxisIndex: []int{0}},
			opts.DataZoom{Type: "slider", Start: 0, End: 100, XAxisIndex: []int{0}},
		),
	}

	switch g {
	case models.Line:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		data := make([]opts.LineData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.LineData{Value: v}
		}
		line.SetXAxis(s.Labels).AddSeries(title, data)
		return line.Render(w)
	default:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			data[i] = opts.BarData{Value: v}
		}
		bar.SetXAxis(s.Labels).AddSeries(title, data)
		return bar.Render(w)
	}
}

// WritePNG renders a static image.
func WritePNG(w io.Writer, title string, s models.Series, g models.GraphType) error {
	if s.Empty() {
		return fmt.Errorf("nothing to plot")
	}

	if g == models.Bar {
		bars := make([]chart.Value, 0, s.Len())
		for _, p := range s.Points() {
			bars = append(bars, chart.Value{
				Label: p.Label,
				Value: p.Value,
				Style: chart.Style{FillColor: seriesFill, StrokeColor: seriesStroke, StrokeWidth: 1},
			})
		}
		graph := chart.BarChart{
			Title:    title,
			Height:   450,
			Width:    900,
			BarWidth: barWidth(s.Len(), 900),
			Background: chart.Style{
				Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
			},
			YAxis: chart.YAxis{Range: yRange(s.Values)},
			Bars:  bars,
		}
		return graph.Render(chart.PNG, w)
	}

	xs := make([]float64, s.Len())
	ticks := make([]chart.Tick, s.Len())
	for i, label := range s.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}
	// go-chart needs two points to draw a line
	ys := append([]float64(nil), s.Values...)
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
	}

	graph := chart.Chart{
		Title:  title,
		Height: 450,
		Width:  900,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: chart.YAxis{Range: yRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: title,
				Style: chart.Style{
					StrokeColor: seriesStroke,
					StrokeWidth: 2,
					DotColor:    seriesStroke,
					DotWidth:    4,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// yRange always includes zero and never collapses to a single value.
func yRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func barWidth(n, width int) int {
	if n <= 0 {
		return 40
	}
	w := (width - 80) / (n * 2)
	switch {
	case w < 4:
		return 4
	case w > 80:
		return 80
	}
	return w
}
