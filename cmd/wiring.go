package cmd

import (
	"fmt"
	"slices"

	"github.com/matheuskafuri/vizterm/internal/api"
	"github.com/matheuskafuri/vizterm/internal/cache"
	"github.com/matheuskafuri/vizterm/internal/chart"
	"github.com/matheuskafuri/vizterm/internal/config"
	"github.com/matheuskafuri/vizterm/internal/filter"
	"github.com/matheuskafuri/vizterm/internal/models"
)

// deps is the configuration, cache and HTTP client shared by every command.
type deps struct {
	cfg    *config.Config
	db     *cache.Cache
	client *api.Client
}

func loadDeps() (*deps, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := cache.Open(config.CachePath())
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	// An unset backend only disables charts; records still work
	base, _ := cfg.ChartBaseURL()
	client := api.New(api.Options{
		BaseURL:         base,
		RecordsEndpoint: cfg.RecordsEndpoint(),
		RecordsFormat:   cfg.RecordsFormat(),
		Timeout:         cfg.RequestTimeoutDuration(),
		UserAgent:       "vizterm/" + version,
	})

	return &deps{cfg: cfg, db: db, client: client}, nil
}

func (d *deps) Close() error {
	return d.db.Close()
}

// chartLoader returns config.ErrNoBackend when no chart backend is configured.
func (d *deps) chartLoader(dataset string, graph models.GraphType) (*chart.Loader, error) {
	if _, err := d.cfg.ChartBaseURL(); err != nil {
		return nil, err
	}
	return chart.New(d.db, d.client,
		chart.WithTTL(d.cfg.CacheTTLDuration()),
		chart.WithDataset(dataset),
		chart.WithGraphType(graph),
	), nil
}

func (d *deps) recordsPanel() *filter.Panel {
	return filter.New(d.client)
}

// resolveGraph prefers the flag value and falls back to the configured default.
func resolveGraph(flagValue string, cfg *config.Config) (models.GraphType, error) {
	if flagValue == "" {
		return cfg.GraphType(), nil
	}
	g, err := models.ParseGraphType(flagValue)
	if err != nil {
		return 0, fmt.Errorf("invalid --graph value: %w", err)
	}
	return g, nil
}

// datasetsWith makes sure the selected dataset has a tab even when it is not
// in the configured list.
func datasetsWith(configured []string, selected string) []string {
	if selected == "" || slices.Contains(configured, selected) {
		return configured
	}
	return append(slices.Clone(configured), selected)
}
