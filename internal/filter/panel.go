package filter

import (
	"context"
	"sync"

	"k8s.io/klog/v2"

	"github.com/matheuskafuri/vizterm/internal/models"
)

// Fetcher runs a record query.
type Fetcher interface {
	FetchRecords(ctx context.Context, criteria models.Criteria) ([]models.Record, error)
}

// State is an immutable view of the panel.
type State struct {
	Criteria   models.Criteria
	Records    []models.Record
	Loading    bool
	Err        error
	Generation uint64
}

// Ticket identifies one issued query.
type Ticket struct {
	Criteria   models.Criteria
	Generation uint64
}

type Result struct {
	Ticket  Ticket
	Records []models.Record
	Err     error
}

// Panel holds filter criteria and the last successful result list.
type Panel struct {
	fetcher Fetcher

	mu    sync.Mutex
	state State
}

func New(fetcher Fetcher) *Panel {
	return &Panel{fetcher: fetcher}
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Panel) Criteria() models.Criteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Criteria
}

// SetField replaces one criteria field. The previous criteria value is left untouched.
func (p *Panel) SetField(f Field, value string) (models.Criteria, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := Set(p.state.Criteria, f, value)
	if err != nil {
		return p.state.Criteria, err
	}
	p.state.Criteria = next
	return next, nil
}

// Begin captures the current criteria for a query and supersedes any query
// still in flight.
func (p *Panel) Begin() Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Generation++
	p.state.Loading = true
	p.state.Err = nil
	return Ticket{Criteria: p.state.Criteria, Generation: p.state.Generation}
}

// Fetch performs the query for t. Errors are logged and returned in the result.
func (p *Panel) Fetch(ctx context.Context, t Ticket) Result {
	log := klog.FromContext(ctx)

	records, err := p.fetcher.FetchRecords(ctx, t.Criteria)
	if err != nil {
		log.Error(err, "fetching filtered records",
			"start", t.Criteria.DateRange.Start,
			"end", t.Criteria.DateRange.End,
			"keyword", t.Criteria.Keyword)
		return Result{Ticket: t, Err: err}
	}
	log.V(2).Info("fetched filtered records", "count", len(records))
	return Result{Ticket: t, Records: records}
}

// Apply commits r unless a newer query has been issued since. On error the
// previous records stay in place.
func (p *Panel) Apply(r Result) (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r.Ticket.Generation != p.state.Generation {
		return p.snapshotLocked(), false
	}

	p.state.Loading = false
	if r.Err != nil {
		p.state.Err = r.Err
		return p.snapshotLocked(), true
	}
	p.state.Err = nil
	p.state.Records = r.Records
	return p.snapshotLocked(), true
}

// FetchFiltered runs a query with the current criteria and waits for it.
func (p *Panel) FetchFiltered(ctx context.Context) State {
	r := p.Fetch(ctx, p.Begin())
	s, _ := p.Apply(r)
	return s
}

// Submit is the form action.
func (p *Panel) Submit(ctx context.Context) State {
	return p.FetchFiltered(ctx)
}

func (p *Panel) snapshotLocked() State {
	s := p.state
	if s.Records != nil {
		s.Records = append([]models.Record(nil), s.Records...)
	}
	return s
}
