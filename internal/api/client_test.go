package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/matheuskafuri/vizterm/internal/models"
)

func TestSeriesURL(t *testing.T) {
	c := New(Options{BaseURL: "http://api.local/"})
	tests := []struct {
		dataset string
		want    string
	}{
		{"", "http://api.local/data"},
		{"sales", "http://api.local/data/sales"},
		{"Dataset 1", "http://api.local/data/Dataset%201"},
	}
	for _, tt := range tests {
		if got := c.SeriesURL(tt.dataset); got != tt.want {
			t.Errorf("SeriesURL(%q) = %q, want %q", tt.dataset, got, tt.want)
		}
	}
}

func TestFetchSeries(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"labels":["Jan","Feb"],"values":[10,20]}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})
	got, err := c.FetchSeries(context.Background(), "Dataset 1")
	if err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	want := models.Series{Labels: []string{"Jan", "Feb"}, Values: []float64{10, 20}}
	if !got.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if gotPath != "/data/Dataset%201" {
		t.Errorf("unexpected request path %q", gotPath)
	}
}

func TestFetchSeriesUnparameterized(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"labels":[],"values":[]}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})
	if _, err := c.FetchSeries(context.Background(), ""); err != nil {
		t.Fatalf("FetchSeries: %v", err)
	}
	if gotPath != "/data" {
		t.Errorf("expected /data, got %q", gotPath)
	}
}

func TestFetchSeriesErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"labels":[],"values":[]}`},
		{"not found", http.StatusNotFound, `"Data not found"`},
		{"malformed body", http.StatusOK, `{"labels":`},
		{"length mismatch", http.StatusOK, `{"labels":["Jan"],"values":[1,2]}`},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(tt.body))
		}))
		c := New(Options{BaseURL: srv.URL})
		_, err := c.FetchSeries(context.Background(), "x")
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
		srv.Close()
	}
}

func TestFetchSeriesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL})
	_, err := c.FetchSeries(context.Background(), "x")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", se.Code)
	}
}

func TestFetchSeriesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := New(Options{BaseURL: base, Timeout: 2 * time.Second})
	if _, err := c.FetchSeries(context.Background(), "x"); err == nil {
		t.Error("expected error when backend is unreachable")
	}
}

func TestFetchSeriesNoBackend(t *testing.T) {
	c := New(Options{})
	if _, err := c.FetchSeries(context.Background(), "x"); err == nil {
		t.Error("expected error without backend URL")
	}
}

func TestFetchRecordsSendsCriteriaVerbatim(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`[{"description":"Order A","date":"2024-01-05"}]`))
	}))
	defer srv.Close()

	c := New(Options{RecordsEndpoint: srv.URL + "/data"})
	criteria := models.Criteria{
		DateRange: models.DateRange{Start: "2024-01-01", End: "2024-01-31"},
		Keyword:   "sale",
	}
	records, err := c.FetchRecords(context.Background(), criteria)
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if got.Get("start") != "2024-01-01" || got.Get("end") != "2024-01-31" || got.Get("keyword") != "sale" {
		t.Errorf("unexpected query %v", got)
	}
	if len(records) != 1 || records[0].String() != "Order A - 2024-01-05" {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestFetchRecordsKeepsEmptyParams(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Options{RecordsEndpoint: srv.URL})
	if _, err := c.FetchRecords(context.Background(), models.Criteria{}); err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	for _, k := range []string{"start", "end", "keyword"} {
		v, ok := got[k]
		if !ok {
			t.Errorf("expected empty %s param to be sent", k)
			continue
		}
		if len(v) != 1 || v[0] != "" {
			t.Errorf("expected empty %s, got %v", k, v)
		}
	}
}

func TestFetchRecordsPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"description":"Z","date":"2024-01-09"},{"description":"A","date":"2024-01-01"}]`))
	}))
	defer srv.Close()

	c := New(Options{RecordsEndpoint: srv.URL})
	records, err := c.FetchRecords(context.Background(), models.Criteria{})
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 2 || records[0].Description != "Z" || records[1].Description != "A" {
		t.Errorf("expected server order, got %+v", records)
	}
}

func TestFetchRecordsFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>
<item><title>Order A</title><pubDate>Fri, 05 Jan 2024 10:00:00 GMT</pubDate></item>
</channel></rss>`))
	}))
	defer srv.Close()

	c := New(Options{RecordsEndpoint: srv.URL, RecordsFormat: "feed"})
	records, err := c.FetchRecords(context.Background(), models.Criteria{Keyword: "sale"})
	if err != nil {
		t.Fatalf("FetchRecords: %v", err)
	}
	if len(records) != 1 || records[0].String() != "Order A - 2024-01-05" {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestFetchRecordsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Options{RecordsEndpoint: srv.URL})
	if _, err := c.FetchRecords(context.Background(), models.Criteria{}); err == nil {
		t.Error("expected error for 500 response")
	}
}
