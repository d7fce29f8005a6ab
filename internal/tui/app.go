package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/vizterm/internal/browser"
	"github.com/matheuskafuri/vizterm/internal/chart"
	"github.com/matheuskafuri/vizterm/internal/export"
	"github.com/matheuskafuri/vizterm/internal/filter"
	"github.com/matheuskafuri/vizterm/internal/models"
	"github.com/matheuskafuri/vizterm/internal/update"
)

type screen int

const (
	screenHome screen = iota
	screenChart
	screenRecords
	screenHelp
)

type App struct {
	ctx       context.Context
	loader    *chart.Loader
	panel     *filter.Panel
	exportDir string
	version   string

	screen     screen
	prevScreen screen

	width  int
	height int

	// Sub-components
	tabs    datasetTabs
	form    filterForm
	spinner spinner.Model

	// State
	chart         chart.Snapshot
	viewport      chart.Viewport
	records       filter.State
	recordCursor  int
	currentDate   string
	updateVersion string
	notice        string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Context context.Context
	// Loader is nil when no chart backend is configured.
	Loader     *chart.Loader
	Panel      *filter.Panel
	Datasets   []string
	ExportDir  string
	StartChart bool
	// Version enables the background release check when set to a release build.
	Version string
}

func NewApp(opts RunOpts) *App {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		ctx:         ctx,
		loader:      opts.Loader,
		panel:       opts.Panel,
		exportDir:   opts.ExportDir,
		version:     opts.Version,
		form:        newFilterForm(),
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
		screen:      screenHome,
	}
	if a.loader != nil {
		a.chart = a.loader.Snapshot()
		if opts.StartChart {
			a.screen = screenChart
		}
	}
	a.tabs = newDatasetTabs(opts.Datasets, a.chart.Dataset)
	a.records = a.panel.State()
	a.form.reset(a.records.Criteria)
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.fetchRecordsCmd()}
	if a.loader != nil {
		cmds = append(cmds, a.loadChartCmd())
	}
	if a.version != "" && a.version != "dev" {
		cmds = append(cmds, checkUpdateCmd(a.ctx, a.version))
	}
	return tea.Batch(cmds...)
}

func (a *App) loading() bool {
	return a.chart.Status == chart.Loading || a.records.Loading
}

// spin starts the spinner unless a previous load already has it ticking.
func (a *App) spin(wasLoading bool) tea.Cmd {
	if wasLoading {
		return nil
	}
	return a.spinner.Tick
}

// loadChartCmd resolves the selected dataset. A fresh cache entry is shown
// right away; otherwise the fetch runs in a command holding the selection's ticket.
func (a *App) loadChartCmd() tea.Cmd {
	wasLoading := a.loading()
	t, snap, needFetch := a.loader.Begin()
	a.chart = snap
	if !needFetch {
		return nil
	}
	loader := a.loader
	ctx := a.ctx
	return tea.Batch(func() tea.Msg {
		return chartLoadedMsg{result: loader.Fetch(ctx, t)}
	}, a.spin(wasLoading))
}

func (a *App) selectDatasetCmd() tea.Cmd {
	a.chart = a.loader.SelectDataset(a.tabs.current())
	a.viewport = a.viewport.Reset()
	return a.loadChartCmd()
}

// fetchRecordsCmd captures the panel's current criteria into the closure.
func (a *App) fetchRecordsCmd() tea.Cmd {
	wasLoading := a.loading()
	t := a.panel.Begin()
	a.records = a.panel.State()
	panel := a.panel
	ctx := a.ctx
	return tea.Batch(func() tea.Msg {
		return recordsLoadedMsg{result: panel.Fetch(ctx, t)}
	}, a.spin(wasLoading))
}

func (a *App) submitCmd() tea.Cmd {
	for field, value := range a.form.values() {
		if _, err := a.panel.SetField(field, value); err != nil {
			a.err = err
			return nil
		}
	}
	a.recordCursor = 0
	return a.fetchRecordsCmd()
}

func (a *App) exportCmd() tea.Cmd {
	snap := a.chart
	if snap.Series.Empty() {
		a.err = fmt.Errorf("nothing to export for %s", snap.Dataset)
		return nil
	}
	path := filepath.Join(a.exportDir, exportName(snap.Dataset))
	return func() tea.Msg {
		if err := export.Write(path, snap.Dataset, snap.Series, snap.Graph); err != nil {
			return exportDoneMsg{err: err}
		}
		if err := browser.OpenFile(path); err != nil {
			return exportDoneMsg{path: path, err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func exportName(dataset string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, dataset)
	if strings.Trim(name, "-") == "" {
		name = "chart"
	}
	return name + ".html"
}

func checkUpdateCmd(ctx context.Context, version string) tea.Cmd {
	return func() tea.Msg {
		res := update.Check(ctx, version)
		if res == nil {
			return nil
		}
		return updateAvailableMsg{version: res.LatestVersion}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky messages on any keypress
		a.err = nil
		a.notice = ""
		return a.handleKey(msg)

	case chartLoadedMsg:
		// Superseded results leave the snapshot unchanged
		a.chart, _ = a.loader.Apply(msg.result)
		return a, nil

	case recordsLoadedMsg:
		state, applied := a.panel.Apply(msg.result)
		a.records = state
		if applied && a.recordCursor >= len(state.Records) {
			a.recordCursor = max(0, len(state.Records)-1)
		}
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.notice = "exported " + msg.path
		return a, nil

	case updateAvailableMsg:
		a.updateVersion = msg.version
		return a, nil

	case spinner.TickMsg:
		if a.loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	if a.screen == screenRecords && a.form.editing {
		return a.handleFormKey(msg)
	}

	switch a.screen {
	case screenHome:
		return a.handleHomeKey(msg)
	case screenHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.screen = a.prevScreen
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.prevScreen = a.screen
		a.screen = screenHelp
		return a, nil
	case "esc":
		a.screen = screenHome
		return a, nil
	case "tab":
		if a.screen == screenChart {
			a.screen = screenRecords
		} else if a.loader != nil {
			a.screen = screenChart
		}
		return a, nil
	}

	if a.screen == screenChart {
		return a.handleChartKey(msg)
	}
	return a.handleRecordsKey(msg)
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c", "1":
		if a.loader != nil {
			a.screen = screenChart
		}
		return a, nil
	case "r", "2":
		a.screen = screenRecords
		return a, nil
	case "?":
		a.prevScreen = screenHome
		a.screen = screenHelp
		return a, nil
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleChartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.loader == nil {
		return a, nil
	}
	n := a.chart.Series.Len()

	switch key := msg.String(); key {
	case "left":
		if a.tabs.move(-1) {
			return a, a.selectDatasetCmd()
		}
	case "right":
		if a.tabs.move(1) {
			return a, a.selectDatasetCmd()
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if a.tabs.selectIndex(int(key[0] - '1')) {
			return a, a.selectDatasetCmd()
		}
	case "g":
		a.chart = a.loader.SelectGraphType(a.chart.Graph.Toggle())
	case "r":
		return a, a.loadChartCmd()
	case "h", "[":
		a.pan(-1)
	case "l", "]":
		a.pan(1)
	case "+", "=":
		a.viewport = a.viewport.ZoomIn(n)
	case "-":
		a.viewport = a.viewport.ZoomOut(n)
	case "0":
		a.viewport = a.viewport.Reset()
	case "x":
		return a, a.exportCmd()
	}
	return a, nil
}

// pan moves the viewport by a quarter of the visible span.
func (a *App) pan(dir int) {
	n := a.chart.Series.Len()
	from, to := a.viewport.Window(n)
	step := max(1, (to-from)/4)
	a.viewport = a.viewport.Pan(dir*step, n)
}

func (a *App) handleRecordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "/", "e":
		return a, a.form.start()
	case "enter":
		return a, a.submitCmd()
	case "r":
		return a, a.fetchRecordsCmd()
	case "j", "down":
		if a.recordCursor < len(a.records.Records)-1 {
			a.recordCursor++
		}
	case "k", "up":
		if a.recordCursor > 0 {
			a.recordCursor--
		}
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.form.stop()
		a.form.reset(a.panel.Criteria())
		return a, nil
	case "tab", "down":
		return a, a.form.cycle(1)
	case "shift+tab", "up":
		return a, a.form.cycle(-1)
	case "enter":
		a.form.stop()
		return a, a.submitCmd()
	}
	return a, a.form.update(msg)
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderStatusBar("", hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) header(section string) string {
	left := headerStyle.Render("vizterm") + headerDateStyle.Render(" · "+section)
	right := headerDateStyle.Render(a.currentDate)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}

// statusLine swaps in the spinner, a sticky error or a notice.
func (a *App) statusLine(status string) string {
	if a.err != nil {
		return errorBannerStyle.Render(a.err.Error())
	}
	if a.notice != "" {
		return lipgloss.NewStyle().Foreground(colorGreen).PaddingLeft(1).Render(a.notice)
	}
	if a.loading() {
		return a.spinner.View() + " " + status
	}
	return status
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  vizterm")
	}

	switch a.screen {
	case screenHome:
		return a.withBottomBar(renderHomeScreen(a.width, a.height, a.loader != nil, a.updateVersion), "c charts  r records  ? help  q quit")
	case screenHelp:
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	case screenChart:
		return a.viewChart()
	default:
		return a.viewRecords()
	}
}

func (a *App) viewChart() string {
	parts := []string{a.header("charts"), a.tabs.render(a.width)}
	if a.chart.Status == chart.Error && a.chart.Err != nil {
		parts = append(parts, errorBannerStyle.Render(fmt.Sprintf("Failed to load %s: %v", a.chart.Dataset, a.chart.Err)))
	}

	// header, tabs, status and pane borders
	contentHeight := a.height - len(parts) - 1 - 2
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := a.width - 2

	var body string
	switch {
	case a.chart.Series.Empty() && a.chart.Status == chart.Loading:
		body = lipglossCenter("Loading "+a.chart.Dataset+"...", contentWidth, contentHeight)
	case a.chart.Series.Empty():
		body = lipglossCenter("No data", contentWidth, contentHeight)
	default:
		visible := windowSeries(a.chart.Series, a.viewport)
		body = renderPlot(plotSeries(visible, a.chart.Graph, contentWidth, contentHeight))
	}
	parts = append(parts, chartPaneStyle.Width(contentWidth).Height(contentHeight).Render(body))

	status := renderStatusBar(chartStatus(a.chart, a.viewport), "←/→ dataset  g graph  +/- zoom  h/l pan  x export  tab records", a.width)
	parts = append(parts, a.statusLine(status))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) viewRecords() string {
	parts := []string{a.header("records"), a.form.render(a.width)}
	if a.records.Err != nil {
		parts = append(parts, errorBannerStyle.Render("Failed to load records: "+a.records.Err.Error()))
	}

	contentHeight := a.height - len(parts) - 1 - 2
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := a.width / 2
	previewWidth := a.width - listWidth

	listContent := renderRecordList(a.records.Records, a.recordCursor, contentHeight, listWidth-4)
	listStyle := listPaneActiveStyle
	if a.form.editing {
		listStyle = listPaneStyle
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	previewContent := renderPreview(a.selectedRecord(), a.records.Criteria, previewWidth-4, contentHeight)
	previewPane := previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane))

	hints := "/ edit  enter search  j/k move  tab charts  q quit"
	if a.form.editing {
		hints = "tab next field  enter search  esc cancel"
	}
	parts = append(parts, a.statusLine(renderStatusBar(recordsStatus(a.records), hints, a.width)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("vizterm")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Charts") + "\n" +
		"  ←/→, 1-9      Select dataset\n" +
		"  g             Toggle bar/line\n" +
		"  r             Reload (cache is used while fresh)\n" +
		"  h/l, [/]      Pan along the x axis\n" +
		"  +/-, 0        Zoom in, zoom out, reset\n" +
		"  x             Export to HTML and open it\n\n" +
		dim.Render("Records") + "\n" +
		"  /, e          Edit the filter form\n" +
		"  tab           Next field while editing\n" +
		"  enter         Search\n" +
		"  j/k, ↑/↓     Move through results\n\n" +
		dim.Render("General") + "\n" +
		"  tab           Switch charts/records\n" +
		"  esc           Go to home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) selectedRecord() *models.Record {
	if a.recordCursor < len(a.records.Records) {
		return &a.records.Records[a.recordCursor]
	}
	return nil
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
