package tui

import (
	"github.com/matheuskafuri/vizterm/internal/chart"
	"github.com/matheuskafuri/vizterm/internal/filter"
)

type chartLoadedMsg struct {
	result chart.Result
}

type recordsLoadedMsg struct {
	result filter.Result
}

type exportDoneMsg struct {
	path string
	err  error
}

type updateAvailableMsg struct {
	version string
}
