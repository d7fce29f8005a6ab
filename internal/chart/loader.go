// Package chart keeps a displayed series in sync with the selected dataset,
// reading through a short-lived cache before going to the network.
package chart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/matheuskafuri/vizterm/internal/cache"
	"github.com/matheuskafuri/vizterm/internal/models"
)

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Source records where the displayed series came from.
type Source int

const (
	SourceNone Source = iota
	SourceCache
	SourceNetwork
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceNetwork:
		return "network"
	default:
		return "none"
	}
}

// Fetcher retrieves a series for a dataset identifier.
type Fetcher interface {
	FetchSeries(ctx context.Context, dataset string) (models.Series, error)
}

// Snapshot is an immutable copy of the loader state.
type Snapshot struct {
	Dataset    string
	Graph      models.GraphType
	Series     models.Series
	Status     Status
	Err        error
	Source     Source
	Generation uint64
	// UpdatedAt is when Series was produced: the cache entry's timestamp or
	// the fetch completion time.
	UpdatedAt time.Time
}

// Ticket ties a network fetch to the selection that issued it.
type Ticket struct {
	Dataset    string
	Generation uint64
}

type Result struct {
	Ticket    Ticket
	Series    models.Series
	Err       error
	FetchedAt time.Time
}

type Loader struct {
	store   cache.Store
	fetcher Fetcher
	now     func() time.Time
	ttl     time.Duration

	mu    sync.Mutex
	state Snapshot
}

type Option func(*Loader)

func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(l *Loader) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

func WithDataset(name string) Option {
	return func(l *Loader) { l.state.Dataset = name }
}

func WithGraphType(g models.GraphType) Option {
	return func(l *Loader) { l.state.Graph = g }
}

func New(store cache.Store, fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		store:   store,
		fetcher: fetcher,
		now:     time.Now,
		ttl:     cache.DefaultTTL,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// SelectDataset commits a new dataset. Any fetch still in flight for the old
// selection will be discarded when it completes. Callers follow up with a load.
func (l *Loader) SelectDataset(name string) Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Dataset = name
	l.state.Generation++
	return l.snapshotLocked()
}

// SelectGraphType only changes how the series is drawn.
func (l *Loader) SelectGraphType(g models.GraphType) Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Graph = g
	return l.snapshotLocked()
}

// Begin resolves the current dataset against the cache. A fresh entry is
// committed immediately and needFetch is false. Otherwise the loader enters
// Loading and the returned ticket must be passed to Fetch.
func (l *Loader) Begin() (t Ticket, s Snapshot, needFetch bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dataset := l.state.Dataset
	key := cache.Key(dataset)
	now := l.now()

	entry, ok, err := l.store.Get(key)
	if err == nil && ok {
		if verr := entry.Data.Validate(); verr != nil {
			err = fmt.Errorf("%w %s: %v", cache.ErrMalformedEntry, key, verr)
		}
	}
	switch {
	case err != nil && errors.Is(err, cache.ErrMalformedEntry):
		klog.InfoS("ignoring malformed cache entry", "key", key, "err", err)
	case err != nil:
		klog.ErrorS(err, "reading chart cache", "key", key)
	case ok && entry.Fresh(now, l.ttl):
		klog.V(2).InfoS("chart cache hit", "key", key, "age", now.Sub(entry.Time()))
		l.state.Series = entry.Data.Clone()
		l.state.Status = Loaded
		l.state.Err = nil
		l.state.Source = SourceCache
		l.state.UpdatedAt = entry.Time()
		return Ticket{}, l.snapshotLocked(), false
	}

	l.state.Status = Loading
	l.state.Err = nil
	return Ticket{Dataset: dataset, Generation: l.state.Generation}, l.snapshotLocked(), true
}

// Fetch requests the series for t and, on success, writes it to the cache
// stamped with the completion time. It never returns an error directly.
func (l *Loader) Fetch(ctx context.Context, t Ticket) Result {
	log := klog.FromContext(ctx).WithValues("dataset", t.Dataset)

	series, err := l.fetcher.FetchSeries(ctx, t.Dataset)
	done := l.now()
	if err != nil {
		log.Error(err, "fetching chart data")
		return Result{Ticket: t, Err: err, FetchedAt: done}
	}

	key := cache.Key(t.Dataset)
	if err := l.store.Put(key, cache.NewEntry(series, done)); err != nil {
		// The fetched data is still good to display
		log.Error(err, "writing chart cache", "key", key)
	}
	log.V(2).Info("fetched chart data", "points", series.Len())
	return Result{Ticket: t, Series: series, FetchedAt: done}
}

// Apply commits a fetch result if its ticket still matches the current
// selection. Stale results are dropped and applied is false.
func (l *Loader) Apply(r Result) (s Snapshot, applied bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if r.Ticket.Generation != l.state.Generation || r.Ticket.Dataset != l.state.Dataset {
		return l.snapshotLocked(), false
	}

	if r.Err != nil {
		l.state.Status = Error
		l.state.Err = r.Err
		return l.snapshotLocked(), true
	}

	l.state.Series = r.Series.Clone()
	l.state.Status = Loaded
	l.state.Err = nil
	l.state.Source = SourceNetwork
	l.state.UpdatedAt = r.FetchedAt
	return l.snapshotLocked(), true
}

// LoadData resolves the current dataset from cache or network and waits for
// the result.
func (l *Loader) LoadData(ctx context.Context) Snapshot {
	t, s, needFetch := l.Begin()
	if !needFetch {
		return s
	}
	s, _ = l.Apply(l.Fetch(ctx, t))
	return s
}

func (l *Loader) snapshotLocked() Snapshot {
	s := l.state
	s.Series = l.state.Series.Clone()
	return s
}
