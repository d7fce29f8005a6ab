package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/matheuskafuri/vizterm/internal/feed"
	"github.com/matheuskafuri/vizterm/internal/filter"
	"github.com/matheuskafuri/vizterm/internal/models"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned status %d", e.URL, e.Code)
}

type Options struct {
	// BaseURL is the chart backend origin. Series requests go to {BaseURL}/data[/{dataset}].
	BaseURL string
	// RecordsEndpoint is the full URL of the filtered records query.
	RecordsEndpoint string
	// RecordsFormat is "json" (default) or "feed".
	RecordsFormat string
	// Timeout of 0 leaves requests unbounded.
	Timeout   time.Duration
	UserAgent string
}

// Client talks to the chart and records endpoints. Failed requests are not retried.
type Client struct {
	client *resty.Client
	opts   Options
}

func New(opts Options) *Client {
	client := resty.New()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Client{client: client, opts: opts}
}

// SeriesURL is the request URL for a dataset. The empty dataset selects the
// unparameterized endpoint.
func (c *Client) SeriesURL(dataset string) string {
	if dataset == "" {
		return c.opts.BaseURL + "/data"
	}
	return c.opts.BaseURL + "/data/" + url.PathEscape(dataset)
}

func (c *Client) FetchSeries(ctx context.Context, dataset string) (models.Series, error) {
	if c.opts.BaseURL == "" {
		return models.Series{}, fmt.Errorf("fetching series %q: no backend URL", dataset)
	}
	u := c.SeriesURL(dataset)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(u)
	if err != nil {
		return models.Series{}, fmt.Errorf("fetching series %q: %w", dataset, err)
	}
	if !resp.IsSuccess() {
		return models.Series{}, &StatusError{Code: resp.StatusCode(), URL: u}
	}

	var s models.Series
	if err := json.Unmarshal(resp.Body(), &s); err != nil {
		return models.Series{}, fmt.Errorf("decoding series %q: %w", dataset, err)
	}
	if err := s.Validate(); err != nil {
		return models.Series{}, fmt.Errorf("decoding series %q: %w", dataset, err)
	}
	return s, nil
}

func (c *Client) FetchRecords(ctx context.Context, criteria models.Criteria) ([]models.Record, error) {
	endpoint := c.opts.RecordsEndpoint

	req := c.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(filter.Query(criteria))
	if c.opts.RecordsFormat == "feed" {
		req.SetHeader("Accept", "application/rss+xml, application/atom+xml, application/xml")
	} else {
		req.SetHeader("Accept", "application/json")
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), URL: endpoint}
	}

	if c.opts.RecordsFormat == "feed" {
		return feed.ParseRecords(resp.Body())
	}

	var records []models.Record
	if err := json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return records, nil
}
