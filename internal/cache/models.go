package cache

import (
	"errors"
	"time"

	"github.com/matheuskafuri/vizterm/internal/models"
)

// DefaultTTL is how long a stored series counts as fresh.
const DefaultTTL = 5 * time.Minute

// ErrMalformedEntry is returned when a stored value cannot be decoded.
var ErrMalformedEntry = errors.New("malformed cache entry")

// Entry is a cached chart series. Timestamp is epoch milliseconds.
type Entry struct {
	Data      models.Series `json:"data"`
	Timestamp int64         `json:"timestamp"`
}

// NewEntry stamps data with t.
func NewEntry(data models.Series, t time.Time) Entry {
	return Entry{Data: data, Timestamp: t.UnixMilli()}
}

// Fresh reports whether the entry is younger than ttl at now.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	return now.UnixMilli()-e.Timestamp < ttl.Milliseconds()
}

func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Store is the minimal surface the chart loader needs.
type Store interface {
	Get(key string) (Entry, bool, error)
	Put(key string, e Entry) error
}

// Key derives the storage key for a dataset. The empty dataset maps to the
// unparameterized endpoint's key.
func Key(dataset string) string {
	if dataset == "" {
		return "chartData"
	}
	return "chartData_" + dataset
}
