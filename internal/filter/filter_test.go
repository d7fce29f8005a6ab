package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/matheuskafuri/vizterm/internal/models"
)

type fakeFetcher struct {
	calls   []models.Criteria
	records []models.Record
	err     error
}

func (f *fakeFetcher) FetchRecords(ctx context.Context, c models.Criteria) ([]models.Record, error) {
	f.calls = append(f.calls, c)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestSetChangesOneField(t *testing.T) {
	base := models.Criteria{
		DateRange: models.DateRange{Start: "2024-01-01", End: "2024-01-31"},
		Keyword:   "sale",
	}

	tests := []struct {
		field Field
		value string
		want  models.Criteria
	}{
		{Start, "2024-02-01", models.Criteria{DateRange: models.DateRange{Start: "2024-02-01", End: "2024-01-31"}, Keyword: "sale"}},
		{End, "2024-02-29", models.Criteria{DateRange: models.DateRange{Start: "2024-01-01", End: "2024-02-29"}, Keyword: "sale"}},
		{Keyword, "refund", models.Criteria{DateRange: models.DateRange{Start: "2024-01-01", End: "2024-01-31"}, Keyword: "refund"}},
	}
	for _, tt := range tests {
		got, err := Set(base, tt.field, tt.value)
		if err != nil {
			t.Fatalf("Set(%v): %v", tt.field, err)
		}
		if got != tt.want {
			t.Errorf("Set(%v, %q) = %+v, want %+v", tt.field, tt.value, got, tt.want)
		}
	}

	// The input is never modified
	if base.DateRange.Start != "2024-01-01" || base.DateRange.End != "2024-01-31" || base.Keyword != "sale" {
		t.Errorf("Set mutated its input: %+v", base)
	}
}

func TestSetUnknownField(t *testing.T) {
	_, err := Set(models.Criteria{}, Field(42), "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		name    string
		want    Field
		wantErr bool
	}{
		{"start", Start, false},
		{"startDate", Start, false},
		{"end", End, false},
		{"endDate", End, false},
		{"keyword", Keyword, false},
		{"dateRange", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseField(%q) err = %v", tt.name, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseField(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestQuery(t *testing.T) {
	q := Query(models.Criteria{
		DateRange: models.DateRange{Start: "2024-01-01", End: "2024-01-31"},
		Keyword:   "sale",
	})
	if q.Encode() != "end=2024-01-31&keyword=sale&start=2024-01-01" {
		t.Errorf("unexpected query %q", q.Encode())
	}

	empty := Query(models.Criteria{})
	if empty.Encode() != "end=&keyword=&start=" {
		t.Errorf("expected empty params kept, got %q", empty.Encode())
	}
}

func TestPanelSubmit(t *testing.T) {
	f := &fakeFetcher{records: []models.Record{{Description: "Order A", Date: "2024-01-05"}}}
	p := New(f)

	p.SetField(Start, "2024-01-01")
	p.SetField(End, "2024-01-31")
	p.SetField(Keyword, "sale")

	s := p.Submit(context.Background())

	if len(f.calls) != 1 {
		t.Fatalf("expected 1 fetch, got %d", len(f.calls))
	}
	want := models.Criteria{DateRange: models.DateRange{Start: "2024-01-01", End: "2024-01-31"}, Keyword: "sale"}
	if f.calls[0] != want {
		t.Errorf("fetched with %+v, want %+v", f.calls[0], want)
	}
	if len(s.Records) != 1 || s.Records[0].String() != "Order A - 2024-01-05" {
		t.Errorf("unexpected records %+v", s.Records)
	}
	if s.Loading || s.Err != nil {
		t.Errorf("expected settled state, got %+v", s)
	}
}

func TestPanelInitialFetchUsesEmptyCriteria(t *testing.T) {
	f := &fakeFetcher{}
	p := New(f)

	p.FetchFiltered(context.Background())
	if len(f.calls) != 1 || f.calls[0] != (models.Criteria{}) {
		t.Errorf("expected one fetch with empty criteria, got %+v", f.calls)
	}
}

func TestPanelFailureKeepsRecords(t *testing.T) {
	f := &fakeFetcher{records: []models.Record{{Description: "Order A", Date: "2024-01-05"}}}
	p := New(f)
	p.FetchFiltered(context.Background())

	f.err = errors.New("connection refused")
	f.records = nil
	s := p.Submit(context.Background())

	if s.Err == nil {
		t.Error("expected error in state")
	}
	if len(s.Records) != 1 || s.Records[0].Description != "Order A" {
		t.Errorf("expected previous records kept, got %+v", s.Records)
	}

	// Next attempt clears the error
	f.err = nil
	f.records = []models.Record{}
	s = p.Submit(context.Background())
	if s.Err != nil {
		t.Errorf("expected error cleared, got %v", s.Err)
	}
	if len(s.Records) != 0 {
		t.Errorf("expected empty result to replace list, got %+v", s.Records)
	}
}

func TestPanelDiscardsSupersededResult(t *testing.T) {
	f := &fakeFetcher{}
	p := New(f)

	first := p.Begin()
	p.SetField(Keyword, "newer")
	second := p.Begin()

	if _, applied := p.Apply(Result{Ticket: first, Records: []models.Record{{Description: "stale"}}}); applied {
		t.Error("expected superseded result to be discarded")
	}
	s, applied := p.Apply(Result{Ticket: second, Records: []models.Record{{Description: "fresh"}}})
	if !applied {
		t.Fatal("expected current result to apply")
	}
	if len(s.Records) != 1 || s.Records[0].Description != "fresh" {
		t.Errorf("unexpected records %+v", s.Records)
	}
	if second.Criteria.Keyword != "newer" {
		t.Errorf("ticket should capture criteria at issue time, got %+v", second.Criteria)
	}
}

func TestPanelStateIsSnapshot(t *testing.T) {
	f := &fakeFetcher{records: []models.Record{{Description: "Order A"}}}
	p := New(f)
	s := p.FetchFiltered(context.Background())

	s.Records[0].Description = "mutated"
	if p.State().Records[0].Description != "Order A" {
		t.Error("mutating a returned state must not affect the panel")
	}
}
